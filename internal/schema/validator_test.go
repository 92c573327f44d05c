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

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testComponentKey = "dev.local.echo@1.0.0"

const testSchema = `{
	"type": "object",
	"properties": {
		"message": {"type": "string"},
		"retries": {"type": "integer", "minimum": 0},
		"target": {
			"type": "object",
			"properties": {"host": {"type": "string"}},
			"required": ["host"]
		}
	},
	"required": ["message"]
}`

type SchemaValidatorTestSuite struct {
	suite.Suite
	validator SchemaValidatorInterface
}

func TestSchemaValidatorSuite(t *testing.T) {
	suite.Run(t, new(SchemaValidatorTestSuite))
}

func (suite *SchemaValidatorTestSuite) SetupTest() {
	suite.validator = NewSchemaValidator()
	require.NoError(suite.T(), suite.validator.CompileComponentSchema(testComponentKey, []byte(testSchema)))
}

func (suite *SchemaValidatorTestSuite) TestValidConfigProducesNoErrors() {
	violations, err := suite.validator.ValidateNodeConfig("greet", "dev.local.echo", testComponentKey,
		"/nodes/greet/dev.local.echo", map[string]any{"message": "hello", "retries": 2})
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), violations)
}

func (suite *SchemaValidatorTestSuite) TestViolationsAreAccumulated() {
	config := map[string]any{
		"retries": -1,
		"target":  map[string]any{"port": 8080},
	}
	violations, err := suite.validator.ValidateNodeConfig("greet", "dev.local.echo", testComponentKey,
		"/nodes/greet/dev.local.echo", config)
	require.NoError(suite.T(), err)

	// Missing required message, negative retries, missing target host.
	require.Len(suite.T(), violations, 3)
	pointers := make([]string, 0, len(violations))
	for _, violation := range violations {
		assert.Equal(suite.T(), "greet", violation.NodeID)
		assert.Equal(suite.T(), "dev.local.echo", violation.Component)
		assert.NotEmpty(suite.T(), violation.Message)
		pointers = append(pointers, violation.Pointer)
	}
	assert.Contains(suite.T(), pointers, "/nodes/greet/dev.local.echo")
	assert.Contains(suite.T(), pointers, "/nodes/greet/dev.local.echo/retries")
	assert.Contains(suite.T(), pointers, "/nodes/greet/dev.local.echo/target")
}

func (suite *SchemaValidatorTestSuite) TestYAMLShapedConfigIsNormalized() {
	config := map[any]any{
		"message": "hello",
		"retries": 3,
	}
	violations, err := suite.validator.ValidateNodeConfig("greet", "dev.local.echo", testComponentKey,
		"/nodes/greet/dev.local.echo", config)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), violations)
}

func (suite *SchemaValidatorTestSuite) TestNilSchemaDisablesValidation() {
	key := "dev.local.free@0.1.0"
	require.NoError(suite.T(), suite.validator.CompileComponentSchema(key, nil))

	violations, err := suite.validator.ValidateNodeConfig("free", "dev.local.free", key,
		"/nodes/free/dev.local.free", map[string]any{"anything": []any{1, 2, 3}})
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), violations)
}

func (suite *SchemaValidatorTestSuite) TestCompileIsMemoized() {
	// Recompiling with garbage must be a no-op once the key is memoized.
	require.NoError(suite.T(), suite.validator.CompileComponentSchema(testComponentKey, []byte("{broken")))
}

func (suite *SchemaValidatorTestSuite) TestCompileRejectsMalformedSchema() {
	err := suite.validator.CompileComponentSchema("dev.local.bad@1.0.0", []byte(`{"type": 42}`))
	assert.Error(suite.T(), err)

	err = suite.validator.CompileComponentSchema("dev.local.worse@1.0.0", []byte("{not json"))
	assert.Error(suite.T(), err)
}

func (suite *SchemaValidatorTestSuite) TestUncompiledKeyIsAnError() {
	_, err := suite.validator.ValidateNodeConfig("greet", "dev.local.echo", "dev.local.echo@9.9.9",
		"/nodes/greet/dev.local.echo", map[string]any{})
	assert.Error(suite.T(), err)
}
