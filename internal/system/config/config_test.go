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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) TearDownTest() {
	ResetFlowpackRuntime()
}

func (suite *ConfigTestSuite) TestDefaultConfig() {
	cfg := DefaultConfig()
	assert.Equal(suite.T(), "repository/components", cfg.Component.SearchDirectory)
	assert.Equal(suite.T(), ".flowpack/resolved_config", cfg.Diagnostics.Directory)
	assert.Equal(suite.T(), "pack.toml", cfg.Pack.DescriptorFile)
}

func (suite *ConfigTestSuite) TestLoadConfig() {
	content := `
component:
  search_directory: fixtures/components
diagnostics:
  directory: out/diag
`
	path := filepath.Join(suite.T().TempDir(), "deployment.yaml")
	require.NoError(suite.T(), os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadConfig(path)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "fixtures/components", cfg.Component.SearchDirectory)
	assert.Equal(suite.T(), "out/diag", cfg.Diagnostics.Directory)
	// Unset sections keep defaults.
	assert.Equal(suite.T(), "pack.toml", cfg.Pack.DescriptorFile)
}

func (suite *ConfigTestSuite) TestLoadConfigMissingFile() {
	_, err := LoadConfig(filepath.Join(suite.T().TempDir(), "missing.yaml"))
	assert.Error(suite.T(), err)
}

func (suite *ConfigTestSuite) TestRuntimeSingleton() {
	cfg := DefaultConfig()
	require.NoError(suite.T(), InitializeFlowpackRuntime("/tmp/home", cfg))

	runtime := GetFlowpackRuntime()
	assert.Equal(suite.T(), "/tmp/home", runtime.FlowpackHome)

	// Second initialization does not replace the runtime.
	require.NoError(suite.T(), InitializeFlowpackRuntime("/tmp/other", cfg))
	assert.Equal(suite.T(), "/tmp/home", GetFlowpackRuntime().FlowpackHome)
}

func (suite *ConfigTestSuite) TestRuntimePanicsWhenUninitialized() {
	assert.Panics(suite.T(), func() {
		GetFlowpackRuntime()
	})
}
