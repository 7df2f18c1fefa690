/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package classify

import (
	"net/http"

	"google.golang.org/grpc/codes"

	"dirpx.dev/apierror/kind"
)

// defaultByStatus is the inbound table for statuses the API documents.
var defaultByStatus = map[int]kind.Kind{
	http.StatusBadRequest:           kind.InvalidRequest,
	http.StatusNotFound:             kind.InvalidRequest,
	http.StatusUnsupportedMediaType: kind.InvalidRequest,
	http.StatusUnauthorized:         kind.Authentication,
	http.StatusForbidden:            kind.Permission,
	http.StatusConflict:             kind.TryAgain, // lock contention on the server side
	http.StatusTooManyRequests:      kind.RateLimit,
	http.StatusServiceUnavailable:   kind.ServiceUnavailable,
}

// defaultHTTP is the outbound status for each kind.
var defaultHTTP = map[kind.Kind]int{
	kind.API:                   http.StatusInternalServerError,
	kind.TryAgain:              http.StatusConflict,
	kind.Timeout:               http.StatusGatewayTimeout,
	kind.Connection:            http.StatusBadGateway,
	kind.InvalidRequest:        http.StatusBadRequest,
	kind.Authentication:        http.StatusUnauthorized,
	kind.Permission:            http.StatusForbidden,
	kind.RateLimit:             http.StatusTooManyRequests,
	kind.ServiceUnavailable:    http.StatusServiceUnavailable,
	kind.InvalidAPIType:        http.StatusBadRequest,
	kind.SignatureVerification: http.StatusBadRequest,
}

// defaultGRPC is the outbound gRPC code for each kind.
var defaultGRPC = map[kind.Kind]codes.Code{
	kind.API:                   codes.Internal,
	kind.TryAgain:              codes.Aborted,
	kind.Timeout:               codes.DeadlineExceeded,
	kind.Connection:            codes.Unavailable,
	kind.InvalidRequest:        codes.InvalidArgument,
	kind.Authentication:        codes.Unauthenticated,
	kind.Permission:            codes.PermissionDenied,
	kind.RateLimit:             codes.ResourceExhausted,
	kind.ServiceUnavailable:    codes.Unavailable,
	kind.InvalidAPIType:        codes.FailedPrecondition,
	kind.SignatureVerification: codes.Unauthenticated,
}
