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

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyComponent(t *testing.T) {
	testCases := []struct {
		name      string
		component string
		isBuiltIn bool
		kind      BuiltInKind
	}{
		{"InlineExec", "component.exec", true, BuiltInInlineExec},
		{"FlowCall", "flow.call", true, BuiltInFlowCall},
		{"SessionWait", "session.wait", true, BuiltInSessionWait},
		{"EmitConfig", "emit_config", true, BuiltInEmit},
		{"EmitDotted", "emit.event", true, BuiltInEmit},
		{"External", "dev.local.echo", false, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			kind := ClassifyComponent(tc.component)
			assert.Equal(t, tc.isBuiltIn, kind.IsBuiltIn)
			if tc.isBuiltIn {
				assert.Equal(t, tc.kind, kind.BuiltIn)
			}
		})
	}
}

func TestParseComponentRefBareName(t *testing.T) {
	pin, err := ParseComponentRef("dev.local.echo")
	require.NoError(t, err)
	assert.Equal(t, "dev.local.echo", pin.Name)
	assert.Equal(t, "*", pin.VersionReq)
}

func TestParseComponentRefWithRequirement(t *testing.T) {
	pin, err := ParseComponentRef("dev.local.echo@^1.0")
	require.NoError(t, err)
	assert.Equal(t, "dev.local.echo", pin.Name)
	assert.Equal(t, "^1.0", pin.VersionReq)
}

func TestParseComponentRefTrimsWhitespace(t *testing.T) {
	pin, err := ParseComponentRef(" dev.local.echo @ >=1.0.0 ")
	require.NoError(t, err)
	assert.Equal(t, "dev.local.echo", pin.Name)
	assert.Equal(t, ">=1.0.0", pin.VersionReq)
}

func TestParseComponentRefInvalid(t *testing.T) {
	_, err := ParseComponentRef("@1.0.0")
	assert.Error(t, err)

	_, err = ParseComponentRef("dev.local.echo@not-a-requirement")
	assert.Error(t, err)
}

func TestNodePointer(t *testing.T) {
	assert.Equal(t, "/nodes/start", NodePointer("start"))
}
