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

// Package constants defines the constants used for flow documents and bundles.
package constants

const (
	// ComponentExec is the inline-execution wrapper node. Its payload must carry
	// an explicit component reference.
	ComponentExec = "component.exec"
	// FlowCall is the engine-provided sub-flow invocation node.
	FlowCall = "flow.call"
	// SessionWait is the engine-provided session suspension node.
	SessionWait = "session.wait"
	// EmitPrefix marks the engine-provided emit* node family.
	EmitPrefix = "emit"
)

const (
	// NodeKeyRouting holds a node's outgoing edges.
	NodeKeyRouting = "routing"
	// NodeKeyOperation is the current operation field of a node configuration.
	NodeKeyOperation = "operation"
	// NodeKeyOp is the legacy operation field of a node configuration.
	NodeKeyOp = "op"
	// NodeKeySchema optionally pins a schema id for a node.
	NodeKeySchema = "schema"
	// NodeKeyComponent is the component reference field of an inline-execution payload.
	NodeKeyComponent = "component"
)

// DefaultVersionRequirement matches any component version when a flow does not pin one.
const DefaultVersionRequirement = "*"
