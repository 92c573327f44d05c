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
	"strings"

	"github.com/asgardeo/flowpack/internal/component/resolver"
	flowconstants "github.com/asgardeo/flowpack/internal/flow/constants"
	"github.com/asgardeo/flowpack/internal/pack/model"
	"github.com/asgardeo/flowpack/internal/system/log"
)

// normalizeConfigs backfills the default operation into node configurations
// that declare none. A node carrying a non-blank `operation` or `op` is left
// untouched; otherwise the first manifest-declared operation is written under
// both keys, without overwriting a key that is already present. The mutation
// happens in the in-memory document only.
func normalizeConfigs(nodes []model.ResolvedNode, componentResolver resolver.ComponentResolverInterface) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	for _, node := range nodes {
		if hasOperation(node.Config) {
			continue
		}
		record, ok := componentResolver.ResolvedByKey(node.ComponentKey)
		if !ok {
			continue
		}
		operation, ok := record.DefaultOperation()
		if !ok {
			// Manifest declares no operations; schema validation decides
			// whether the node is acceptable as-is.
			continue
		}

		for _, key := range []string{flowconstants.NodeKeyOperation, flowconstants.NodeKeyOp} {
			if _, present := node.Config[key]; !present {
				node.Config[key] = operation
			}
		}
		logger.Debug("Backfilled default operation", log.String(log.LoggerKeyNodeID, node.NodeID),
			log.String("operation", operation))
	}
}

// hasOperation reports whether a configuration already names its operation.
func hasOperation(config map[string]any) bool {
	for _, key := range []string{flowconstants.NodeKeyOperation, flowconstants.NodeKeyOp} {
		if value, ok := config[key].(string); ok && strings.TrimSpace(value) != "" {
			return true
		}
	}
	return false
}
