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

package constants

import "github.com/asgardeo/flowpack/internal/system/error/serviceerror"

// ErrorMissingFlowNode is the error returned when a bundle node id is absent
// from the flow document.
var ErrorMissingFlowNode = serviceerror.ServiceError{
	Code:             "FPB-1003",
	Type:             serviceerror.ClientErrorType,
	Error:            "Missing flow node",
	ErrorDescription: "A node referenced by the flow bundle is absent from the flow document",
}

// ErrorMissingExecPayload is the error returned when an inline-execution node
// carries no component reference.
var ErrorMissingExecPayload = serviceerror.ServiceError{
	Code:             "FPB-1004",
	Type:             serviceerror.ClientErrorType,
	Error:            "Missing exec payload",
	ErrorDescription: "An inline-execution node does not declare the component to execute",
}

// ErrorSchemaValidationFailed is the error returned when one or more node
// configurations violate their component config schemas.
var ErrorSchemaValidationFailed = serviceerror.ServiceError{
	Code:             "FPB-1005",
	Type:             serviceerror.ClientErrorType,
	Error:            "Schema validation failed",
	ErrorDescription: "One or more node configurations do not satisfy their component config schemas",
}

// ErrorNonDeterministicBuild is the error returned when the strict determinism
// re-run produces different archive bytes.
var ErrorNonDeterministicBuild = serviceerror.ServiceError{
	Code:             "FPB-1006",
	Type:             serviceerror.ServerErrorType,
	Error:            "Non-deterministic build",
	ErrorDescription: "Rebuilding the pack from identical inputs produced different archive bytes",
}

// ErrorArchiveAssemblyFailed is the error returned when the pack archive
// cannot be written.
var ErrorArchiveAssemblyFailed = serviceerror.ServiceError{
	Code:             "FPB-1007",
	Type:             serviceerror.ServerErrorType,
	Error:            "Archive assembly failed",
	ErrorDescription: "The pack archive could not be assembled",
}
