/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package schema validates node configurations against component config schemas.
package schema

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/asgardeo/flowpack/internal/system/log"
	"github.com/asgardeo/flowpack/internal/system/utils"
)

const loggerComponentName = "SchemaValidator"

// NodeSchemaError is one schema violation located inside the flow document.
// Violations are accumulated, never thrown one at a time.
type NodeSchemaError struct {
	NodeID    string `json:"node_id"`
	Component string `json:"component"`
	Pointer   string `json:"pointer"`
	Message   string `json:"message"`
}

// SchemaValidatorInterface defines the interface for the schema validation service.
type SchemaValidatorInterface interface {
	// CompileComponentSchema compiles a component's config schema once and
	// memoizes it by the component's name@version key. A nil schema is valid
	// and disables validation for that component.
	CompileComponentSchema(componentKey string, schemaJSON []byte) error
	// ValidateNodeConfig validates one node's literal configuration object and
	// returns every violation. An empty slice means the configuration is valid.
	ValidateNodeConfig(nodeID string, componentName string, componentKey string,
		pointer string, config any) ([]NodeSchemaError, error)
}

// SchemaValidator is the implementation of SchemaValidatorInterface.
type SchemaValidator struct {
	compiled map[string]*jsonschema.Schema
}

// NewSchemaValidator creates a schema validation service with an empty schema memo.
func NewSchemaValidator() SchemaValidatorInterface {
	return &SchemaValidator{
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// CompileComponentSchema compiles and memoizes a component config schema.
func (v *SchemaValidator) CompileComponentSchema(componentKey string, schemaJSON []byte) error {
	if _, ok := v.compiled[componentKey]; ok {
		return nil
	}
	if len(schemaJSON) == 0 {
		v.compiled[componentKey] = nil
		return nil
	}

	url := fmt.Sprintf("flowpack:///%s/config.schema.json", componentKey)
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(schemaJSON)); err != nil {
		return fmt.Errorf("failed to load config schema for %s: %w", componentKey, err)
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return fmt.Errorf("failed to compile config schema for %s: %w", componentKey, err)
	}

	v.compiled[componentKey] = compiled
	log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
		Debug("Config schema compiled", log.String("componentKey", componentKey))
	return nil
}

// ValidateNodeConfig validates a node configuration against its component's schema.
func (v *SchemaValidator) ValidateNodeConfig(nodeID string, componentName string,
	componentKey string, pointer string, config any) ([]NodeSchemaError, error) {
	compiled, ok := v.compiled[componentKey]
	if !ok {
		return nil, fmt.Errorf("config schema for %s was never compiled", componentKey)
	}
	if compiled == nil {
		return nil, nil
	}

	// Round-trip through encoding/json so the instance carries only the value
	// shapes the validator understands.
	normalized, err := utils.NormalizeJSONValue(config)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration for node %s: %w", nodeID, err)
	}
	instance, err := utils.DeepCopyJSONValue(normalized)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration for node %s: %w", nodeID, err)
	}

	validationErr := compiled.Validate(instance)
	if validationErr == nil {
		return nil, nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(validationErr, &ve) {
		return nil, fmt.Errorf("schema validation failed for node %s: %w", nodeID, validationErr)
	}

	var nodeErrors []NodeSchemaError
	for _, leaf := range leafCauses(ve) {
		nodeErrors = append(nodeErrors, NodeSchemaError{
			NodeID:    nodeID,
			Component: componentName,
			Pointer:   pointer + leaf.InstanceLocation,
			Message:   leaf.Message,
		})
	}
	return nodeErrors, nil
}

// leafCauses flattens a validation error tree into its most specific causes.
func leafCauses(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var leaves []*jsonschema.ValidationError
	for _, cause := range ve.Causes {
		leaves = append(leaves, leafCauses(cause)...)
	}
	return leaves
}
