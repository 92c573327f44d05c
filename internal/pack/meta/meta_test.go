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

package meta

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDescriptor(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pack.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadPackMetaDefaultsWithoutDescriptor(t *testing.T) {
	meta, err := LoadPackMeta("", "greeting")
	require.NoError(t, err)

	assert.Equal(t, "dev.local.greeting", meta.ID)
	assert.Equal(t, "0.1.0", meta.Version)
	assert.Equal(t, "flow-pack", meta.Kind)
	assert.Equal(t, []string{"greeting"}, meta.EntryFlows)
}

func TestLoadPackMetaFromDescriptor(t *testing.T) {
	path := writeDescriptor(t, `
id = "org.example.greeter"
version = "2.3.0"
name = "Greeter"
description = "Greets people"
authors = ["Ana", "Ben"]
license = "Apache-2.0"
vendor = "Example Org"
entry_flows = ["greeting", "farewell"]

[annotations]
tier = "gold"
weight = 7

[[imports]]
pack_id = "org.example.base"
version_req = "^1.0"

[distribution]
registry = "registry.example.org"
channel = "stable"
`)

	meta, err := LoadPackMeta(path, "greeting")
	require.NoError(t, err)

	assert.Equal(t, "org.example.greeter", meta.ID)
	assert.Equal(t, "2.3.0", meta.Version)
	assert.Equal(t, []string{"Ana", "Ben"}, meta.Authors)
	assert.Equal(t, []string{"greeting", "farewell"}, meta.EntryFlows)
	assert.Equal(t, "gold", meta.Annotations["tier"])
	require.Len(t, meta.Imports, 1)
	assert.Equal(t, "org.example.base", meta.Imports[0].PackID)
	require.NotNil(t, meta.Dist)
	assert.Equal(t, "stable", meta.Dist.Channel)
}

func TestLoadPackMetaPartialDescriptorKeepsDefaults(t *testing.T) {
	path := writeDescriptor(t, `name = "Just a name"`)

	meta, err := LoadPackMeta(path, "greeting")
	require.NoError(t, err)
	assert.Equal(t, "dev.local.greeting", meta.ID)
	assert.Equal(t, "0.1.0", meta.Version)
	assert.Equal(t, "Just a name", meta.Name)
}

func TestLoadPackMetaRejectsInvalidVersion(t *testing.T) {
	path := writeDescriptor(t, `version = "two point oh"`)
	_, err := LoadPackMeta(path, "greeting")
	assert.Error(t, err)
}

func TestLoadPackMetaRejectsInvalidImport(t *testing.T) {
	path := writeDescriptor(t, `
[[imports]]
version_req = "^1.0"
`)
	_, err := LoadPackMeta(path, "greeting")
	assert.Error(t, err)

	path = writeDescriptor(t, `
[[imports]]
pack_id = "org.example.base"
version_req = "not a requirement"
`)
	_, err = LoadPackMeta(path, "greeting")
	assert.Error(t, err)
}

func TestLoadPackMetaMissingFile(t *testing.T) {
	_, err := LoadPackMeta(filepath.Join(t.TempDir(), "nope.toml"), "greeting")
	assert.Error(t, err)
}
