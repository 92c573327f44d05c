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

// Package constants defines global constants used across the system module.
package constants

const (
	// LogLevelEnvironmentVariable is the environment variable name for the log level.
	LogLevelEnvironmentVariable = "FLOWPACK_LOG_LEVEL"
	// DefaultLogLevel is the default log level used if not specified.
	DefaultLogLevel = "info"
)

// StrictDeterminismEnvironmentVariable enables the determinism verification re-run.
// It is read only by the command-line entry point, never by the build pipeline.
const StrictDeterminismEnvironmentVariable = "FLOWPACK_CHECK_STRICT"

// ProductName is the builder identity recorded in pack provenance.
const ProductName = "flowpack"

// ProductVersion is the builder version recorded in pack provenance.
const ProductVersion = "0.1.0"
