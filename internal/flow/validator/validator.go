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

// Package validator provides the flow validation service implementation.
package validator

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	yaml "gopkg.in/yaml.v3"

	"github.com/asgardeo/flowpack/internal/flow/constants"
	"github.com/asgardeo/flowpack/internal/flow/jsonmodel"
	"github.com/asgardeo/flowpack/internal/flow/model"
	"github.com/asgardeo/flowpack/internal/system/crypto/hash"
	"github.com/asgardeo/flowpack/internal/system/error/serviceerror"
	"github.com/asgardeo/flowpack/internal/system/log"
	"github.com/asgardeo/flowpack/internal/system/utils"
)

const loggerComponentName = "FlowValidator"

// FlowValidatorInterface defines the interface for the flow validation service.
type FlowValidatorInterface interface {
	ValidateFlow(source string, path string) (*model.FlowBundle, *serviceerror.ServiceError)
}

// FlowValidator is the implementation of FlowValidatorInterface.
type FlowValidator struct{}

// NewFlowValidator creates a new flow validation service.
func NewFlowValidator() FlowValidatorInterface {
	return &FlowValidator{}
}

// ValidateFlow parses and validates a flow document, returning its immutable bundle:
// identity, the ordered node list with component pins, the canonical JSON form and
// its content hash.
func (v *FlowValidator) ValidateFlow(source string, path string) (*model.FlowBundle, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	var def jsonmodel.FlowDefinition
	if err := yaml.Unmarshal([]byte(source), &def); err != nil {
		return nil, invalidFlow(fmt.Sprintf("failed to parse flow document %s: %v", path, err))
	}
	if def.ID == "" {
		return nil, invalidFlow("flow document is missing `id`")
	}
	if def.Type == "" {
		return nil, invalidFlow("flow document is missing `type`")
	}
	if len(def.Nodes) == 0 {
		return nil, invalidFlow("flow document has no nodes")
	}
	if def.Start != "" {
		if _, ok := def.Nodes[def.Start]; !ok {
			return nil, invalidFlow(fmt.Sprintf("start node `%s` is not declared in nodes", def.Start))
		}
	}
	for name, req := range def.Components {
		if _, err := semver.NewConstraint(req); err != nil {
			return nil, invalidFlow(fmt.Sprintf("invalid version requirement `%s` for component `%s`", req, name))
		}
	}

	order, err := nodeOrder(source)
	if err != nil {
		return nil, invalidFlow(err.Error())
	}

	document, svcErr := normalizeDocument(source)
	if svcErr != nil {
		return nil, svcErr
	}
	nodesMap, ok := document["nodes"].(map[string]any)
	if !ok {
		return nil, invalidFlow("flow document nodes must be a mapping")
	}

	nodes := make([]model.NodeRef, 0, len(order))
	for _, nodeID := range order {
		nodeValue, ok := nodesMap[nodeID].(map[string]any)
		if !ok {
			return nil, invalidFlow(fmt.Sprintf("node `%s` must be a mapping", nodeID))
		}

		componentName, err := componentKey(nodeID, nodeValue)
		if err != nil {
			return nil, invalidFlow(err.Error())
		}

		versionReq := constants.DefaultVersionRequirement
		if pinned, ok := def.Components[componentName]; ok {
			versionReq = pinned
		}

		schemaID, _ := nodeValue[constants.NodeKeySchema].(string)
		nodes = append(nodes, model.NodeRef{
			NodeID:    nodeID,
			Component: model.ComponentPin{Name: componentName, VersionReq: versionReq},
			SchemaID:  schemaID,
		})
	}

	canonical, jsonErr := utils.CanonicalJSON(document)
	if jsonErr != nil {
		return nil, invalidFlow(fmt.Sprintf("failed to canonicalize flow document: %v", jsonErr))
	}

	logger.Debug("Flow document validated", log.String(log.LoggerKeyFlowID, def.ID),
		log.Int("nodeCount", len(nodes)))

	return &model.FlowBundle{
		ID:            def.ID,
		Kind:          def.Type,
		Entry:         def.Start,
		Nodes:         nodes,
		SourceYAML:    source,
		Document:      document,
		CanonicalJSON: canonical,
		HashBlake3:    hash.Hash(canonical),
	}, nil
}

// normalizeDocument converts the YAML source into the plain JSON value tree
// shared by the rest of the pipeline.
func normalizeDocument(source string) (map[string]any, *serviceerror.ServiceError) {
	var raw any
	if err := yaml.Unmarshal([]byte(source), &raw); err != nil {
		return nil, invalidFlow(fmt.Sprintf("failed to parse flow document: %v", err))
	}
	normalized, err := utils.NormalizeJSONValue(raw)
	if err != nil {
		return nil, invalidFlow(fmt.Sprintf("failed to normalize flow document: %v", err))
	}
	document, ok := normalized.(map[string]any)
	if !ok {
		return nil, invalidFlow("flow document must be a mapping")
	}
	return document, nil
}

// componentKey finds the single non-reserved key of a node mapping, which names
// the component the node invokes.
func componentKey(nodeID string, nodeValue map[string]any) (string, error) {
	reserved := map[string]struct{}{
		constants.NodeKeyRouting:   {},
		constants.NodeKeySchema:    {},
		constants.NodeKeyOperation: {},
		constants.NodeKeyOp:        {},
	}

	var componentName string
	for key := range nodeValue {
		if _, ok := reserved[key]; ok {
			continue
		}
		if componentName != "" {
			return "", fmt.Errorf("node `%s` references more than one component (`%s`, `%s`)",
				nodeID, componentName, key)
		}
		componentName = key
	}
	if componentName == "" {
		return "", fmt.Errorf("node `%s` does not reference a component", nodeID)
	}
	return componentName, nil
}

// nodeOrder extracts node ids in document order. The generic YAML decoding
// loses ordering, and the bundle's node list must be deterministic.
func nodeOrder(source string) ([]string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(source), &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty flow document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("flow document must be a mapping")
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "nodes" {
			continue
		}
		nodes := root.Content[i+1]
		if nodes.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("flow document nodes must be a mapping")
		}
		order := make([]string, 0, len(nodes.Content)/2)
		for j := 0; j+1 < len(nodes.Content); j += 2 {
			order = append(order, nodes.Content[j].Value)
		}
		return order, nil
	}
	return nil, fmt.Errorf("flow document missing nodes map")
}

func invalidFlow(description string) *serviceerror.ServiceError {
	return serviceerror.CustomServiceError(constants.ErrorFlowValidationFailed, description)
}
