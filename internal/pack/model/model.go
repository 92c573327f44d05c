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

// Package model defines the pack assembly structures shared across the build pipeline.
package model

// SigningMode selects how the pack manifest is signed.
type SigningMode string

const (
	// SigningNone omits the signature block from the pack manifest.
	SigningNone SigningMode = "none"
	// SigningDev embeds a development signature block in the pack manifest.
	SigningDev SigningMode = "dev"
)

// PackImport declares a dependency on another pack.
type PackImport struct {
	PackID     string `json:"pack_id" toml:"pack_id"`
	VersionReq string `json:"version_req" toml:"version_req"`
}

// Distribution carries the optional distribution section of a pack descriptor.
type Distribution struct {
	Registry string `json:"registry,omitempty" toml:"registry"`
	Channel  string `json:"channel,omitempty" toml:"channel"`
}

// PackMeta is the pack identity and descriptor metadata, either loaded from a
// TOML descriptor or synthesized from the flow.
type PackMeta struct {
	ID          string         `json:"id" toml:"id"`
	Version     string         `json:"version" toml:"version"`
	Kind        string         `json:"kind,omitempty" toml:"kind"`
	Name        string         `json:"name,omitempty" toml:"name"`
	Description string         `json:"description,omitempty" toml:"description"`
	Authors     []string       `json:"authors,omitempty" toml:"authors"`
	License     string         `json:"license,omitempty" toml:"license"`
	Homepage    string         `json:"homepage,omitempty" toml:"homepage"`
	Vendor      string         `json:"vendor,omitempty" toml:"vendor"`
	EntryFlows  []string       `json:"entry_flows,omitempty" toml:"entry_flows"`
	Annotations map[string]any `json:"annotations,omitempty" toml:"annotations"`
	Imports     []PackImport   `json:"imports,omitempty" toml:"imports"`
	Dist        *Distribution  `json:"distribution,omitempty" toml:"distribution"`
	CreatedAt   string         `json:"created_at,omitempty" toml:"created_at"`
}

// Provenance records where and when a pack was built. It is computed once per
// build invocation and frozen across the strict determinism re-run.
type Provenance struct {
	Builder     string `json:"builder"`
	BuiltAt     string `json:"built_at"`
	Host        string `json:"host,omitempty"`
	GitRevision string `json:"git_revision,omitempty"`
	GitRemote   string `json:"git_remote,omitempty"`
}

// ComponentArtifact is one deduplicated component build destined for the
// archive. HashHex carries the bare hex digest, scheme prefix stripped.
type ComponentArtifact struct {
	Name             string
	Version          string
	ArtifactPath     string
	ManifestJSON     []byte
	SchemaJSON       []byte
	CapabilitiesJSON []byte
	World            string
	HashHex          string
}

// Key returns the dedup key identifying this artifact.
func (a *ComponentArtifact) Key() string {
	return a.Name + "@" + a.Version
}

// ResolvedNode binds one external flow node to a resolved component build. The
// component is referenced by its name@version memo key, never by pointer.
type ResolvedNode struct {
	NodeID       string
	ComponentKey string
	Pointer      string
	Config       map[string]any
}

// BuildConfig is the complete, explicit input of one pack build. The pipeline
// reads nothing from the process environment.
type BuildConfig struct {
	FlowPath          string
	OutputPath        string
	Signing           SigningMode
	MetaPath          string
	ComponentDir      string
	DiagnosticsDir    string
	StrictDeterminism bool
	// GitRevision and GitRemote are optional provenance inputs supplied by the
	// caller; the pipeline never shells out to git itself.
	GitRevision string
	GitRemote   string
	// FrozenProvenance replaces the computed provenance record. The strict
	// determinism re-run uses it to rebuild with identical inputs.
	FrozenProvenance *Provenance
}

// BuildState is the orchestration state of one pack build.
type BuildState string

const (
	StateStart              BuildState = "Start"
	StateFlowValidated      BuildState = "FlowValidated"
	StateNodesResolved      BuildState = "NodesResolved"
	StateConfigNormalized   BuildState = "ConfigNormalized"
	StateSchemaChecked      BuildState = "SchemaChecked"
	StateArtifactsCollected BuildState = "ArtifactsCollected"
	StateAssembled          BuildState = "Assembled"
	StateDeterminismChecked BuildState = "DeterminismVerified"
	StateDone               BuildState = "Done"
	StateFailed             BuildState = "Failed"
)

// BuildResult is the outcome of a successful pack build.
type BuildResult struct {
	OutputPath    string
	PackID        string
	PackVersion   string
	ManifestHash  string
	FlowHash      string
	NodeCount     int
	ArtifactCount int
	State         BuildState
	Provenance    Provenance
}
