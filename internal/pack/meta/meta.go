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

// Package meta loads and defaults pack descriptor metadata.
package meta

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"

	"github.com/asgardeo/flowpack/internal/pack/constants"
	"github.com/asgardeo/flowpack/internal/pack/model"
	"github.com/asgardeo/flowpack/internal/system/log"
	"github.com/asgardeo/flowpack/internal/system/utils"
)

const loggerComponentName = "PackMeta"

// LoadPackMeta loads the TOML pack descriptor at metaPath, or synthesizes
// default metadata from the flow identity when metaPath is empty. flowID names
// the flow the pack is built from and becomes its only entry flow by default.
func LoadPackMeta(metaPath string, flowID string) (*model.PackMeta, error) {
	meta := &model.PackMeta{}

	if metaPath != "" {
		raw, err := os.ReadFile(filepath.Clean(metaPath))
		if err != nil {
			return nil, fmt.Errorf("failed to read pack descriptor %s: %w", metaPath, err)
		}
		if err := toml.Unmarshal(raw, meta); err != nil {
			return nil, fmt.Errorf("failed to parse pack descriptor %s: %w", metaPath, err)
		}
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
			Debug("Pack descriptor loaded", log.String("path", metaPath))
	}

	applyDefaults(meta, flowID)

	if _, err := semver.NewVersion(meta.Version); err != nil {
		return nil, fmt.Errorf("pack descriptor declares invalid version %q: %w", meta.Version, err)
	}
	if meta.Annotations != nil {
		// TOML decodes tables into shapes JSON cannot always carry; normalize up front.
		normalized, err := utils.NormalizeJSONValue(meta.Annotations)
		if err != nil {
			return nil, fmt.Errorf("pack descriptor annotations are not representable as JSON: %w", err)
		}
		annotations, ok := normalized.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("pack descriptor annotations must be a table")
		}
		meta.Annotations = annotations
	}
	for _, imported := range meta.Imports {
		if imported.PackID == "" {
			return nil, fmt.Errorf("pack descriptor import is missing pack_id")
		}
		if imported.VersionReq != "" {
			if _, err := semver.NewConstraint(imported.VersionReq); err != nil {
				return nil, fmt.Errorf("pack descriptor import %s declares invalid version requirement %q: %w",
					imported.PackID, imported.VersionReq, err)
			}
		}
	}

	return meta, nil
}

func applyDefaults(meta *model.PackMeta, flowID string) {
	if meta.ID == "" {
		meta.ID = constants.DefaultPackIDPrefix + flowID
	}
	if meta.Version == "" {
		meta.Version = constants.DefaultPackVersion
	}
	if meta.Kind == "" {
		meta.Kind = constants.DefaultPackKind
	}
	if len(meta.EntryFlows) == 0 && flowID != "" {
		meta.EntryFlows = []string{flowID}
	}
}
