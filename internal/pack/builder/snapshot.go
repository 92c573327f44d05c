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
	"os"
	"path/filepath"

	"github.com/asgardeo/flowpack/internal/component/resolver"
	"github.com/asgardeo/flowpack/internal/pack/model"
	"github.com/asgardeo/flowpack/internal/system/utils"
)

// writeSnapshots writes one resolved-config snapshot per node into the
// diagnostics directory, overwriting whatever a previous build left there.
func writeSnapshots(dir string, nodes []model.ResolvedNode,
	componentResolver resolver.ComponentResolverInterface) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create diagnostics directory %s: %w", dir, err)
	}

	for _, node := range nodes {
		snapshot := map[string]any{
			"node_id":       node.NodeID,
			"component_key": node.ComponentKey,
			"config":        node.Config,
		}
		if record, ok := componentResolver.ResolvedByKey(node.ComponentKey); ok {
			snapshot["component"] = record.Name
			snapshot["version"] = record.Version.String()
		}

		rendered, err := utils.CanonicalJSON(snapshot)
		if err != nil {
			return fmt.Errorf("failed to render snapshot for node %s: %w", node.NodeID, err)
		}
		path := filepath.Join(dir, node.NodeID+".json")
		if err := os.WriteFile(path, append(rendered, '\n'), 0640); err != nil {
			return fmt.Errorf("failed to write snapshot %s: %w", path, err)
		}
	}
	return nil
}
