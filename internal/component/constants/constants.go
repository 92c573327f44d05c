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

// Package constants defines the constants used for component resolution.
package constants

const (
	// ManifestFileName is the manifest file looked up under the component search path.
	ManifestFileName = "component.manifest.json"
	// ArtifactKeyComponentWasm is the manifest artifacts key naming the executable artifact.
	ArtifactKeyComponentWasm = "component_wasm"
	// DefaultArtifactFileName is assumed when a manifest omits the artifact entry.
	DefaultArtifactFileName = "component.wasm"
)
