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

// Package jsonmodel provides the structure for representing a flow definition document.
package jsonmodel

// FlowDefinition represents the typed top-level shape of a flow document.
// Node configurations stay untyped because each node is keyed by the component
// it invokes and carries component-specific fields.
type FlowDefinition struct {
	SchemaVersion int               `yaml:"schema_version" json:"schema_version"`
	ID            string            `yaml:"id" json:"id"`
	Type          string            `yaml:"type" json:"type"`
	Start         string            `yaml:"start" json:"start"`
	Components    map[string]string `yaml:"components,omitempty" json:"components,omitempty"`
	Nodes         map[string]any    `yaml:"nodes" json:"nodes"`
}

// RoutingEntry represents a single outgoing edge of a node.
type RoutingEntry struct {
	To string `yaml:"to" json:"to"`
}
