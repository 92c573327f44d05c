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

import "sync"

// FlowpackRuntime holds the runtime configuration for the builder.
type FlowpackRuntime struct {
	FlowpackHome string `yaml:"flowpack_home"`
	Config       Config `yaml:"config"`
}

var (
	runtimeConfig *FlowpackRuntime
	once          sync.Once
)

// InitializeFlowpackRuntime initializes the FlowpackRuntime configuration.
func InitializeFlowpackRuntime(flowpackHome string, config *Config) error {
	once.Do(func() {
		runtimeConfig = &FlowpackRuntime{
			FlowpackHome: flowpackHome,
			Config:       *config,
		}
	})

	return nil
}

// GetFlowpackRuntime returns the FlowpackRuntime configuration.
func GetFlowpackRuntime() *FlowpackRuntime {
	if runtimeConfig == nil {
		panic("FlowpackRuntime is not initialized")
	}
	return runtimeConfig
}

// ResetFlowpackRuntime resets the FlowpackRuntime.
// This should only be used in tests to reset the singleton state.
func ResetFlowpackRuntime() {
	runtimeConfig = nil
	once = sync.Once{}
}
