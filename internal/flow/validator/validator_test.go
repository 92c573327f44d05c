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

package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const validFlow = `schema_version: 1
id: main
type: messaging
start: start
components:
  dev.local.echo: ">=1.0.0"
nodes:
  start:
    dev.local.echo:
      text: "hello"
    routing:
      - to: end
  end:
    dev.local.reverse:
      text: "done"
`

type FlowValidatorTestSuite struct {
	suite.Suite
	validator FlowValidatorInterface
}

func TestFlowValidatorSuite(t *testing.T) {
	suite.Run(t, new(FlowValidatorTestSuite))
}

func (suite *FlowValidatorTestSuite) SetupTest() {
	suite.validator = NewFlowValidator()
}

func (suite *FlowValidatorTestSuite) TestValidateFlow() {
	bundle, svcErr := suite.validator.ValidateFlow(validFlow, "main.yaml")
	require.Nil(suite.T(), svcErr)

	assert.Equal(suite.T(), "main", bundle.ID)
	assert.Equal(suite.T(), "messaging", bundle.Kind)
	assert.Equal(suite.T(), "start", bundle.Entry)
	assert.Equal(suite.T(), validFlow, bundle.SourceYAML)

	require.Len(suite.T(), bundle.Nodes, 2)
	assert.Equal(suite.T(), "start", bundle.Nodes[0].NodeID)
	assert.Equal(suite.T(), "dev.local.echo", bundle.Nodes[0].Component.Name)
	assert.Equal(suite.T(), ">=1.0.0", bundle.Nodes[0].Component.VersionReq)
	assert.Equal(suite.T(), "end", bundle.Nodes[1].NodeID)
	assert.Equal(suite.T(), "dev.local.reverse", bundle.Nodes[1].Component.Name)
	assert.Equal(suite.T(), "*", bundle.Nodes[1].Component.VersionReq)
}

func (suite *FlowValidatorTestSuite) TestValidateFlowCanonicalJSONIsStable() {
	first, svcErr := suite.validator.ValidateFlow(validFlow, "main.yaml")
	require.Nil(suite.T(), svcErr)
	second, svcErr := suite.validator.ValidateFlow(validFlow, "main.yaml")
	require.Nil(suite.T(), svcErr)

	assert.Equal(suite.T(), first.CanonicalJSON, second.CanonicalJSON)
	assert.Equal(suite.T(), first.HashBlake3, second.HashBlake3)
	assert.Len(suite.T(), first.HashBlake3, 64)
}

func (suite *FlowValidatorTestSuite) TestValidateFlowPreservesNodeOrder() {
	flow := `id: ordered
type: messaging
nodes:
  zeta:
    dev.local.echo: {}
  alpha:
    dev.local.echo: {}
  mid:
    dev.local.echo: {}
`
	bundle, svcErr := suite.validator.ValidateFlow(flow, "ordered.yaml")
	require.Nil(suite.T(), svcErr)

	ids := []string{bundle.Nodes[0].NodeID, bundle.Nodes[1].NodeID, bundle.Nodes[2].NodeID}
	assert.Equal(suite.T(), []string{"zeta", "alpha", "mid"}, ids)
}

func (suite *FlowValidatorTestSuite) TestValidateFlowMissingID() {
	flow := `type: messaging
nodes:
  start:
    dev.local.echo: {}
`
	_, svcErr := suite.validator.ValidateFlow(flow, "bad.yaml")
	require.NotNil(suite.T(), svcErr)
	assert.Equal(suite.T(), "FPB-1008", svcErr.Code)
	assert.Contains(suite.T(), svcErr.ErrorDescription, "id")
}

func (suite *FlowValidatorTestSuite) TestValidateFlowMissingNodes() {
	flow := `id: main
type: messaging
`
	_, svcErr := suite.validator.ValidateFlow(flow, "bad.yaml")
	require.NotNil(suite.T(), svcErr)
	assert.Contains(suite.T(), svcErr.ErrorDescription, "no nodes")
}

func (suite *FlowValidatorTestSuite) TestValidateFlowUnknownStartNode() {
	flow := `id: main
type: messaging
start: missing
nodes:
  start:
    dev.local.echo: {}
`
	_, svcErr := suite.validator.ValidateFlow(flow, "bad.yaml")
	require.NotNil(suite.T(), svcErr)
	assert.Contains(suite.T(), svcErr.ErrorDescription, "missing")
}

func (suite *FlowValidatorTestSuite) TestValidateFlowNodeWithoutComponent() {
	flow := `id: main
type: messaging
nodes:
  start:
    routing:
      - to: end
`
	_, svcErr := suite.validator.ValidateFlow(flow, "bad.yaml")
	require.NotNil(suite.T(), svcErr)
	assert.Contains(suite.T(), svcErr.ErrorDescription, "does not reference a component")
}

func (suite *FlowValidatorTestSuite) TestValidateFlowNodeWithTwoComponents() {
	flow := `id: main
type: messaging
nodes:
  start:
    dev.local.echo: {}
    dev.local.reverse: {}
`
	_, svcErr := suite.validator.ValidateFlow(flow, "bad.yaml")
	require.NotNil(suite.T(), svcErr)
	assert.Contains(suite.T(), svcErr.ErrorDescription, "more than one component")
}

func (suite *FlowValidatorTestSuite) TestValidateFlowInvalidVersionRequirement() {
	flow := `id: main
type: messaging
components:
  dev.local.echo: "not a requirement"
nodes:
  start:
    dev.local.echo: {}
`
	_, svcErr := suite.validator.ValidateFlow(flow, "bad.yaml")
	require.NotNil(suite.T(), svcErr)
	assert.Contains(suite.T(), svcErr.ErrorDescription, "version requirement")
}

func (suite *FlowValidatorTestSuite) TestValidateFlowMalformedYAML() {
	_, svcErr := suite.validator.ValidateFlow("id: [unclosed", "bad.yaml")
	assert.NotNil(suite.T(), svcErr)
}
