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
	"github.com/asgardeo/flowpack/internal/component/resolver"
	"github.com/asgardeo/flowpack/internal/pack/model"
	"github.com/asgardeo/flowpack/internal/system/crypto/hash"
)

// collectArtifacts deduplicates the resolved nodes' component builds into one
// artifact per name@version, preserving first-seen order.
func collectArtifacts(nodes []model.ResolvedNode,
	componentResolver resolver.ComponentResolverInterface) []model.ComponentArtifact {
	seen := make(map[string]struct{}, len(nodes))
	artifacts := make([]model.ComponentArtifact, 0, len(nodes))

	for _, node := range nodes {
		if _, ok := seen[node.ComponentKey]; ok {
			continue
		}
		record, ok := componentResolver.ResolvedByKey(node.ComponentKey)
		if !ok {
			continue
		}
		seen[node.ComponentKey] = struct{}{}

		artifacts = append(artifacts, model.ComponentArtifact{
			Name:             record.Name,
			Version:          record.Version.String(),
			ArtifactPath:     record.ArtifactPath,
			ManifestJSON:     record.ManifestJSON,
			SchemaJSON:       record.SchemaJSON,
			CapabilitiesJSON: record.CapabilitiesJSON,
			World:            record.World,
			HashHex:          hash.StripScheme(record.ArtifactHash),
		})
	}
	return artifacts
}
