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

package log

import (
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/flowpack/internal/system/constants"
)

type LogTestSuite struct {
	suite.Suite
	originalLogLevel string
}

func TestLogSuite(t *testing.T) {
	suite.Run(t, new(LogTestSuite))
}

func (suite *LogTestSuite) SetupTest() {
	suite.originalLogLevel = os.Getenv(constants.LogLevelEnvironmentVariable)
}

func (suite *LogTestSuite) TearDownTest() {
	err := os.Setenv(constants.LogLevelEnvironmentVariable, suite.originalLogLevel)
	if err != nil {
		suite.T().Errorf("Failed to restore environment variable: %v", err)
	}

	// Reset logger singleton for next test
	logger = nil
	once = sync.Once{}
}

func (suite *LogTestSuite) TestInitLoggerWithEnvironmentVariable() {
	testCases := []struct {
		name     string
		logLevel string
	}{
		{"DefaultLevel", ""},
		{"DebugLevel", "debug"},
		{"InfoLevel", "info"},
		{"WarnLevel", "warn"},
		{"ErrorLevel", "error"},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			logger = nil
			once = sync.Once{}

			err := os.Setenv(constants.LogLevelEnvironmentVariable, tc.logLevel)
			assert.NoError(suite.T(), err)

			l := GetLogger()
			assert.NotNil(suite.T(), l)
			assert.NotNil(suite.T(), l.internal)
		})
	}
}

func (suite *LogTestSuite) TestParseLogLevel() {
	level, err := parseLogLevel("debug")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), level.String(), "DEBUG")

	_, err = parseLogLevel("unknown")
	assert.Error(suite.T(), err)
}

func (suite *LogTestSuite) TestWithAddsFields() {
	l := GetLogger().With(String(LoggerKeyComponentName, "LogTest"))
	assert.NotNil(suite.T(), l)
	assert.NotSame(suite.T(), GetLogger(), l)
}

func (suite *LogTestSuite) TestFieldConstructors() {
	assert.Equal(suite.T(), Field{Key: "a", Value: "b"}, String("a", "b"))
	assert.Equal(suite.T(), Field{Key: "n", Value: 7}, Int("n", 7))
	assert.Equal(suite.T(), Field{Key: "ok", Value: true}, Bool("ok", true))

	err := errors.New("boom")
	assert.Equal(suite.T(), Field{Key: "error", Value: err}, Error(err))
}
