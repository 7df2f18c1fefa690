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

// Package apierror is the error-classification layer of an HTTP API client.
//
// It turns transport artifacts (status code, headers, body bytes and the
// decoded JSON payload) into a typed error value. The taxonomy is closed:
// every value returned by this package is one of
//
//	GenericAPIError, RetryableError, TimeoutError, ConnectionError,
//	InvalidRequestError, AuthenticationError, PermissionError,
//	RateLimitError, ServiceUnavailableError, InvalidAPITypeError,
//	SignatureVerificationError
//
// and all of them satisfy the sealed Error interface. Callers either switch
// on the concrete type or on Error.Kind, or use errors.Is with the per-kind
// sentinels:
//
//	if errors.Is(err, apierror.ErrRateLimit) {
//	    // back off
//	}
//
// Construction never fails. A body that is not valid UTF-8 is replaced by
// UndecodableBody, a JSON payload without an "error" object simply yields a
// nil ErrorObject, and missing headers yield an empty header set.
//
// Values are immutable once built and are safe for concurrent readers.
// Decompose and Reconstruct form the explicit codec used whenever an error
// has to cross a process boundary; see packages codec and grpcx for the wire
// encodings built on top of it.
package apierror
