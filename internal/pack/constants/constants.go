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

// Package constants defines the constants used for pack assembly.
package constants

const (
	// DefaultPackIDPrefix prefixes the synthesized pack id when no descriptor
	// supplies one.
	DefaultPackIDPrefix = "dev.local."
	// DefaultPackVersion is the synthesized pack version.
	DefaultPackVersion = "0.1.0"
	// DefaultPackKind is the synthesized pack kind.
	DefaultPackKind = "flow-pack"
)

const (
	// ArchiveManifestEntry is the archive path of the pack manifest.
	ArchiveManifestEntry = "pack/manifest.json"
	// ArchiveFlowDir is the archive directory holding flow sources.
	ArchiveFlowDir = "flows"
	// ArchiveComponentDir is the archive directory holding component builds.
	ArchiveComponentDir = "components"
	// ArchiveComponentArtifactName is the artifact file name inside a component entry.
	ArchiveComponentArtifactName = "component.wasm"
	// ArchiveComponentManifestName is the manifest file name inside a component entry.
	ArchiveComponentManifestName = "component.manifest.json"
)

// PackManifestSchemaVersion is the schema version stamped into pack manifests.
const PackManifestSchemaVersion = "1"
