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

// Package model defines the validated flow bundle structures shared across the build pipeline.
package model

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/asgardeo/flowpack/internal/flow/constants"
)

// ComponentPin is a component reference with its version requirement.
type ComponentPin struct {
	Name       string `json:"name"`
	VersionReq string `json:"version_req"`
}

// NodeRef identifies one node of a validated flow and the component it invokes.
type NodeRef struct {
	NodeID    string       `json:"node_id"`
	Component ComponentPin `json:"component"`
	SchemaID  string       `json:"schema_id,omitempty"`
}

// FlowBundle is the validated flow identity together with its canonical JSON
// form and content hash. It is immutable once produced by the flow validator;
// consumers needing a mutable document must copy Document first.
type FlowBundle struct {
	ID            string
	Kind          string
	Entry         string
	Nodes         []NodeRef
	SourceYAML    string
	Document      map[string]any
	CanonicalJSON []byte
	HashBlake3    string
}

// BuiltInKind enumerates the engine-provided node families.
type BuiltInKind int

const (
	// BuiltInInlineExec is the generic inline-execution wrapper (component.exec).
	BuiltInInlineExec BuiltInKind = iota
	// BuiltInFlowCall is the sub-flow invocation node.
	BuiltInFlowCall
	// BuiltInSessionWait is the session suspension node.
	BuiltInSessionWait
	// BuiltInEmit covers the emit* node family.
	BuiltInEmit
)

// NodeKind is the closed classification of a flow node, decided once at
// resolution time instead of scattering prefix checks through the pipeline.
type NodeKind struct {
	IsBuiltIn bool
	BuiltIn   BuiltInKind
}

// ClassifyComponent classifies a component name as built-in or external.
func ClassifyComponent(name string) NodeKind {
	switch {
	case name == constants.ComponentExec:
		return NodeKind{IsBuiltIn: true, BuiltIn: BuiltInInlineExec}
	case name == constants.FlowCall:
		return NodeKind{IsBuiltIn: true, BuiltIn: BuiltInFlowCall}
	case name == constants.SessionWait:
		return NodeKind{IsBuiltIn: true, BuiltIn: BuiltInSessionWait}
	case strings.HasPrefix(name, constants.EmitPrefix):
		return NodeKind{IsBuiltIn: true, BuiltIn: BuiltInEmit}
	default:
		return NodeKind{}
	}
}

// ParseComponentRef parses a component reference of the form `name` or
// `name@version-requirement` into a pin. A bare name matches any version.
func ParseComponentRef(raw string) (ComponentPin, error) {
	name, req, found := strings.Cut(raw, "@")
	name = strings.TrimSpace(name)
	if name == "" {
		return ComponentPin{}, fmt.Errorf("empty component name in reference %q", raw)
	}
	if !found {
		return ComponentPin{Name: name, VersionReq: constants.DefaultVersionRequirement}, nil
	}

	req = strings.TrimSpace(req)
	if _, err := semver.NewConstraint(req); err != nil {
		return ComponentPin{}, fmt.Errorf("invalid version requirement %q: %w", req, err)
	}
	return ComponentPin{Name: name, VersionReq: req}, nil
}

// NodePointer returns the JSON pointer locating a node inside the flow document.
func NodePointer(nodeID string) string {
	return "/nodes/" + nodeID
}
