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

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalJSONSortsKeys(t *testing.T) {
	value := map[string]any{"b": 1, "a": map[string]any{"z": true, "y": "x"}}

	encoded, err := CanonicalJSON(value)
	require.NoError(t, err)
	assert.Equal(t, `{"a":{"y":"x","z":true},"b":1}`, string(encoded))
}

func TestCanonicalJSONIsStable(t *testing.T) {
	value := map[string]any{
		"nodes": map[string]any{
			"start": map[string]any{"question": "hello?"},
			"end":   map[string]any{"question": "done"},
		},
		"id": "main",
	}

	first, err := CanonicalJSON(value)
	require.NoError(t, err)
	second, err := CanonicalJSON(value)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCanonicalJSONNoHTMLEscaping(t *testing.T) {
	encoded, err := CanonicalJSON(map[string]any{"url": "a&b<c>"})
	require.NoError(t, err)
	assert.Equal(t, `{"url":"a&b<c>"}`, string(encoded))
}

func TestNormalizeJSONValueConvertsInterfaceKeys(t *testing.T) {
	value := map[any]any{"outer": []any{map[any]any{"inner": 1}}}

	normalized, err := NormalizeJSONValue(value)
	require.NoError(t, err)

	outer, ok := normalized.(map[string]any)
	require.True(t, ok)
	items, ok := outer["outer"].([]any)
	require.True(t, ok)
	_, ok = items[0].(map[string]any)
	assert.True(t, ok)
}

func TestNormalizeJSONValueRejectsNonStringKeys(t *testing.T) {
	_, err := NormalizeJSONValue(map[any]any{1: "a"})
	assert.Error(t, err)
}

func TestDeepCopyJSONValueIsIndependent(t *testing.T) {
	original := map[string]any{"config": map[string]any{"op": "echo"}}

	copied, err := DeepCopyJSONValue(original)
	require.NoError(t, err)

	copiedMap := copied.(map[string]any)
	copiedMap["config"].(map[string]any)["op"] = "reverse"
	assert.Equal(t, "echo", original["config"].(map[string]any)["op"])
}
