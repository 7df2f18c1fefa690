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

package kind

// Server-reported failures
//
// These kinds are derived from an HTTP response that the API actually sent.
const (
	// API is an unclassified server-side failure.
	// It is the fallback when no more specific kind applies.
	API Kind = "api"

	// TryAgain means the caller should attempt the same operation again
	// because the server state is transient (e.g. a conflicting concurrent
	// update). Typically derived from an HTTP 409.
	TryAgain Kind = "try_again"

	// InvalidRequest means the request was malformed. The variant carries the
	// name of the offending parameter when the server reported one.
	// Typically derived from an HTTP 400, 404 or 415.
	InvalidRequest Kind = "invalid_request"

	// Authentication means the credential is missing or invalid.
	// Typically derived from an HTTP 401.
	Authentication Kind = "authentication"

	// Permission means the credential is valid but lacks the required scope.
	// Typically derived from an HTTP 403.
	Permission Kind = "permission"

	// RateLimit means the request was throttled.
	// Typically derived from an HTTP 429.
	RateLimit Kind = "rate_limit"

	// ServiceUnavailable means the server is temporarily down or overloaded.
	// Typically derived from an HTTP 503.
	ServiceUnavailable Kind = "service_unavailable"
)

// Client-side failures
//
// These kinds describe failures where no usable response was obtained, or
// where the client itself is at fault.
const (
	// Timeout means the request exceeded its time budget.
	Timeout Kind = "timeout"

	// Connection means the transport failed before a response was obtained.
	// This is the only variant that carries a retry-eligibility flag.
	Connection Kind = "connection"

	// InvalidAPIType means the client was configured for the wrong API surface.
	InvalidAPIType Kind = "invalid_api_type"

	// SignatureVerification means a webhook signature check failed locally.
	// The variant carries the signature header value and the raw payload only.
	SignatureVerification Kind = "signature_verification"
)

var all = []Kind{
	API,
	TryAgain,
	Timeout,
	Connection,
	InvalidRequest,
	Authentication,
	Permission,
	RateLimit,
	ServiceUnavailable,
	InvalidAPIType,
	SignatureVerification,
}

var variantNames = map[Kind]string{
	API:                   "GenericAPIError",
	TryAgain:              "RetryableError",
	Timeout:               "TimeoutError",
	Connection:            "ConnectionError",
	InvalidRequest:        "InvalidRequestError",
	Authentication:        "AuthenticationError",
	Permission:            "PermissionError",
	RateLimit:             "RateLimitError",
	ServiceUnavailable:    "ServiceUnavailableError",
	InvalidAPIType:        "InvalidAPITypeError",
	SignatureVerification: "SignatureVerificationError",
}
