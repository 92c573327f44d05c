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

package builder

import (
	"fmt"
	"strings"

	componentconstants "github.com/asgardeo/flowpack/internal/component/constants"
	"github.com/asgardeo/flowpack/internal/component/resolver"
	flowconstants "github.com/asgardeo/flowpack/internal/flow/constants"
	flowmodel "github.com/asgardeo/flowpack/internal/flow/model"
	"github.com/asgardeo/flowpack/internal/pack/constants"
	"github.com/asgardeo/flowpack/internal/pack/model"
	"github.com/asgardeo/flowpack/internal/system/error/serviceerror"
)

// resolveNodes walks the bundle's node list in document order, skips built-in
// nodes, resolves every external component reference and returns the nodes
// bound to their name@version memo keys. Node configs point into document, so
// later normalization mutates the document in place.
func resolveNodes(nodes []flowmodel.NodeRef, document map[string]any,
	componentResolver resolver.ComponentResolverInterface) ([]model.ResolvedNode, *serviceerror.ServiceError) {
	nodesMap, ok := document["nodes"].(map[string]any)
	if !ok {
		return nil, serviceerror.CustomServiceError(constants.ErrorMissingFlowNode,
			"flow document has no nodes map")
	}

	resolved := make([]model.ResolvedNode, 0, len(nodes))
	for _, ref := range nodes {
		nodeValue, ok := nodesMap[ref.NodeID].(map[string]any)
		if !ok {
			return nil, serviceerror.CustomServiceError(constants.ErrorMissingFlowNode,
				fmt.Sprintf("node `%s` is absent from the flow document", ref.NodeID))
		}

		componentName := ref.Component.Name
		kind := flowmodel.ClassifyComponent(componentName)
		if kind.IsBuiltIn && kind.BuiltIn != flowmodel.BuiltInInlineExec {
			continue
		}

		config := nodeConfig(nodeValue, componentName)
		pin := ref.Component
		if kind.IsBuiltIn {
			// Inline execution wraps a real component; its payload names it.
			execPin, svcErr := execComponentPin(ref.NodeID, config)
			if svcErr != nil {
				return nil, svcErr
			}
			pin = execPin
		}

		record, svcErr := componentResolver.ResolveComponent(pin.Name, pin.VersionReq)
		if svcErr != nil {
			return nil, svcErr
		}

		resolved = append(resolved, model.ResolvedNode{
			NodeID:       ref.NodeID,
			ComponentKey: record.Key(),
			Pointer:      flowmodel.NodePointer(ref.NodeID) + "/" + componentName,
			Config:       config,
		})
	}
	return resolved, nil
}

// nodeConfig returns the node's configuration mapping under its component key,
// materializing an empty one into the document when the key holds nothing.
func nodeConfig(nodeValue map[string]any, componentName string) map[string]any {
	if config, ok := nodeValue[componentName].(map[string]any); ok {
		return config
	}
	config := make(map[string]any)
	nodeValue[componentName] = config
	return config
}

// execComponentPin extracts the component reference an inline-execution
// payload must carry.
func execComponentPin(nodeID string, config map[string]any) (flowmodel.ComponentPin, *serviceerror.ServiceError) {
	raw, _ := config[flowconstants.NodeKeyComponent].(string)
	if strings.TrimSpace(raw) == "" {
		return flowmodel.ComponentPin{}, serviceerror.CustomServiceError(constants.ErrorMissingExecPayload,
			fmt.Sprintf("inline-execution node `%s` does not declare a `component` reference", nodeID))
	}
	pin, err := flowmodel.ParseComponentRef(raw)
	if err != nil {
		// The payload names a component; a reference that cannot be parsed is
		// a resolution failure, not a missing payload.
		return flowmodel.ComponentPin{}, serviceerror.CustomServiceError(componentconstants.ErrorComponentNotFound,
			fmt.Sprintf("inline-execution node `%s`: %v", nodeID, err))
	}
	return pin, nil
}
