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

// Package constants defines the errors of job operations.
package constants

import (
	"errors"

	"github.com/asgardeo/forge/internal/system/error/serviceerror"
)

// Client errors for job operations.
var (
	// ErrorJobDoesNotExist is the error returned when a job does not exist or belongs to another user.
	ErrorJobDoesNotExist = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "JOB-1001",
		Error:            "Job does not exist",
		ErrorDescription: "The job does not exist",
	}
	// ErrorMaxJobCountExceeded is the error returned when a user already runs the maximum number of
	// jobs of a type.
	ErrorMaxJobCountExceeded = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "JOB-1002",
		Error:            "Max job count exceeded",
		ErrorDescription: "The maximum number of running jobs of this type is reached",
	}
	// ErrorUnknownJobType is the error returned when a job type is not registered.
	ErrorUnknownJobType = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "JOB-1003",
		Error:            "Unknown job type",
		ErrorDescription: "The job type does not exist",
	}
	// ErrorInvalidJobParams is the error returned when the parameters of a job are invalid.
	ErrorInvalidJobParams = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "JOB-1004",
		Error:            "Invalid job parameters",
		ErrorDescription: "The job parameters are invalid",
	}
)

// Server errors for job operations.
var (
	// ErrorInternalServerError is the error returned when an internal server error occurs.
	ErrorInternalServerError = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "JOB-5000",
		Error:            "Internal server error",
		ErrorDescription: "An unexpected error occurred while processing the request",
	}
)

var (
	// ErrJobDoesNotExist is returned by the store when a job does not exist.
	ErrJobDoesNotExist = errors.New("job does not exist")
	// ErrMaxJobCountExceeded is returned when a user already runs the maximum number of jobs of a type.
	ErrMaxJobCountExceeded = errors.New("max job count exceeded")
)
