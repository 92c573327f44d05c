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

// Client error structs

var ErrorComponentNotFound = serviceerror.ServiceError{
	Code:             "FPB-1001",
	Type:             serviceerror.ClientErrorType,
	Error:            "Component not found",
	ErrorDescription: "No component build satisfies the requested name and version requirement",
}

var ErrorManifestInvalid = serviceerror.ServiceError{
	Code:             "FPB-1002",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid component manifest",
	ErrorDescription: "A matched component manifest could not be parsed",
}
