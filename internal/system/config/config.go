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

// Package config provides structures and functions for loading and managing builder configurations.
package config

import (
	"os"
	"path/filepath"

	"github.com/asgardeo/flowpack/internal/system/log"

	yaml "gopkg.in/yaml.v3"
)

// ComponentConfig holds the component resolution configuration details.
type ComponentConfig struct {
	// SearchDirectory is the local search path scanned for component builds.
	SearchDirectory string `yaml:"search_directory"`
}

// DiagnosticsConfig holds the build diagnostics configuration details.
type DiagnosticsConfig struct {
	// Directory receives one resolved-config JSON snapshot per node on every build.
	Directory string `yaml:"directory"`
}

// PackOutputConfig holds the pack assembly configuration details.
type PackOutputConfig struct {
	// DescriptorFile is the optional pack descriptor loaded before assembly.
	DescriptorFile string `yaml:"descriptor_file"`
}

// Config holds the complete configuration details of the builder.
type Config struct {
	Component   ComponentConfig   `yaml:"component"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
	Pack        PackOutputConfig  `yaml:"pack"`
}

// DefaultConfig returns the configuration used when no deployment file is present.
func DefaultConfig() *Config {
	return &Config{
		Component:   ComponentConfig{SearchDirectory: "repository/components"},
		Diagnostics: DiagnosticsConfig{Directory: ".flowpack/resolved_config"},
		Pack:        PackOutputConfig{DescriptorFile: "pack.toml"},
	}
}

// LoadConfig loads the configurations from the specified YAML file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	path = filepath.Clean(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if ferr := file.Close(); ferr != nil {
			log.GetLogger().Error("Failed to close config file", log.Error(ferr))
		}
	}()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
