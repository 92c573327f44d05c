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

// Package model defines the component manifest and resolved component structures.
package model

import (
	"encoding/json"

	"github.com/Masterminds/semver/v3"
)

// Operation represents one operation declared by a component manifest.
type Operation struct {
	Name string `json:"name"`
}

// Manifest represents the JSON manifest every component build ships with.
type Manifest struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	World        string            `json:"world,omitempty"`
	Operations   []Operation       `json:"operations,omitempty"`
	ConfigSchema json.RawMessage   `json:"config_schema,omitempty"`
	Capabilities json.RawMessage   `json:"capabilities,omitempty"`
	Artifacts    map[string]string `json:"artifacts,omitempty"`
	Hashes       map[string]string `json:"hashes,omitempty"`
}

// ResolvedComponent is an immutable, version-pinned component build. One record
// is shared by every flow node referencing the same name and version; nodes
// hold the record's key into the resolver's memo table rather than a pointer.
type ResolvedComponent struct {
	Name             string
	Version          *semver.Version
	ArtifactPath     string
	ManifestJSON     []byte
	SchemaJSON       []byte
	CapabilitiesJSON []byte
	World            string
	// ArtifactHash is the artifact content hash as declared (or computed),
	// including the hash scheme prefix.
	ArtifactHash string
	Operations   []string
}

// Key returns the memo table key identifying this component build.
func (c *ResolvedComponent) Key() string {
	return c.Name + "@" + c.Version.String()
}

// DefaultOperation returns the first operation declared by the manifest, used
// to backfill node configurations that omit an explicit operation.
func (c *ResolvedComponent) DefaultOperation() (string, bool) {
	if len(c.Operations) == 0 {
		return "", false
	}
	return c.Operations[0], true
}
