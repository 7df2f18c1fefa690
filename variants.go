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

package apierror

import (
	"fmt"
	"log/slog"

	"dirpx.dev/apierror/kind"
)

// GenericAPIError is an unclassified server-side failure.
type GenericAPIError struct{ base }

// RetryableError means the same operation should be attempted again.
type RetryableError struct{ base }

// TimeoutError means the request exceeded its time budget.
type TimeoutError struct{ base }

// ConnectionError is a transport failure before a response was obtained.
type ConnectionError struct {
	base
	shouldRetry bool
}

// ShouldRetry is the retry-eligibility signal. It defaults to false.
func (e *ConnectionError) ShouldRetry() bool { return e.shouldRetry }

// InvalidRequestError is a malformed request.
type InvalidRequestError struct {
	base
	param string
}

// Param names the offending request field, or "" when none was reported.
func (e *InvalidRequestError) Param() string { return e.param }

// GoString adds param and code to the diagnostic rendering. Param is always
// present, as nil when absent.
func (e *InvalidRequestError) GoString() string {
	return fmt.Sprintf("%s(message=%s, param=%s, code=%s, http_status=%s, request_id=%s)",
		e.kind.Name(), quoteOpt(e.message), quoteOpt(e.param), quoteOpt(e.code),
		statusOpt(e.httpStatus), quoteOpt(e.requestID))
}

// LogValue implements slog.LogValuer with the same fields as GoString.
func (e *InvalidRequestError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", string(e.kind)),
		slog.String("message", e.message),
		slog.String("param", e.param),
		slog.String("code", e.code),
		slog.Int("http_status", e.httpStatus),
		slog.String("request_id", e.requestID),
	)
}

// AuthenticationError means the credential is missing or invalid.
type AuthenticationError struct{ base }

// PermissionError means the credential lacks the required scope.
type PermissionError struct{ base }

// RateLimitError means the request was throttled.
type RateLimitError struct{ base }

// ServiceUnavailableError means the server is temporarily down.
type ServiceUnavailableError struct{ base }

// InvalidAPITypeError means the client selected the wrong API surface.
type InvalidAPITypeError struct{ base }

// SignatureVerificationError means a webhook signature check failed. It
// never carries status, JSON body, headers or code.
type SignatureVerificationError struct {
	base
	sigHeader string
}

// SigHeader returns the signature header value that failed verification.
func (e *SignatureVerificationError) SigHeader() string { return e.sigHeader }

// New builds the variant for k. Unknown kinds fall back to GenericAPIError,
// so New never fails.
//
// For kind.SignatureVerification only the body and WithSigHeader are used.
func New(k kind.Kind, message string, opts ...Option) Error {
	return build(k, message, collect(opts))
}

func build(k kind.Kind, message string, p *params) Error {
	switch k {
	case kind.TryAgain:
		return &RetryableError{newBase(k, message, p)}
	case kind.Timeout:
		return &TimeoutError{newBase(k, message, p)}
	case kind.Connection:
		return &ConnectionError{base: newBase(k, message, p), shouldRetry: p.shouldRetry}
	case kind.InvalidRequest:
		return &InvalidRequestError{base: newBase(k, message, p), param: p.param}
	case kind.Authentication:
		return &AuthenticationError{newBase(k, message, p)}
	case kind.Permission:
		return &PermissionError{newBase(k, message, p)}
	case kind.RateLimit:
		return &RateLimitError{newBase(k, message, p)}
	case kind.ServiceUnavailable:
		return &ServiceUnavailableError{newBase(k, message, p)}
	case kind.InvalidAPIType:
		return &InvalidAPITypeError{newBase(k, message, p)}
	case kind.SignatureVerification:
		return newSignatureVerification(message, p.sigHeader, p.body)
	default:
		return &GenericAPIError{newBase(kind.API, message, p)}
	}
}

// NewAPIError builds a GenericAPIError.
func NewAPIError(message string, opts ...Option) *GenericAPIError {
	return &GenericAPIError{newBase(kind.API, message, collect(opts))}
}

// NewRetryableError builds a RetryableError.
func NewRetryableError(message string, opts ...Option) *RetryableError {
	return &RetryableError{newBase(kind.TryAgain, message, collect(opts))}
}

// NewTimeoutError builds a TimeoutError.
func NewTimeoutError(message string, opts ...Option) *TimeoutError {
	return &TimeoutError{newBase(kind.Timeout, message, collect(opts))}
}

// NewConnectionError builds a ConnectionError. Pass WithShouldRetry(true)
// to mark it retry-eligible.
func NewConnectionError(message string, opts ...Option) *ConnectionError {
	p := collect(opts)
	return &ConnectionError{base: newBase(kind.Connection, message, p), shouldRetry: p.shouldRetry}
}

// NewInvalidRequestError builds an InvalidRequestError. The param argument
// takes precedence over WithParam.
func NewInvalidRequestError(message, param string, opts ...Option) *InvalidRequestError {
	return &InvalidRequestError{base: newBase(kind.InvalidRequest, message, collect(opts)), param: param}
}

// NewAuthenticationError builds an AuthenticationError.
func NewAuthenticationError(message string, opts ...Option) *AuthenticationError {
	return &AuthenticationError{newBase(kind.Authentication, message, collect(opts))}
}

// NewPermissionError builds a PermissionError.
func NewPermissionError(message string, opts ...Option) *PermissionError {
	return &PermissionError{newBase(kind.Permission, message, collect(opts))}
}

// NewRateLimitError builds a RateLimitError.
func NewRateLimitError(message string, opts ...Option) *RateLimitError {
	return &RateLimitError{newBase(kind.RateLimit, message, collect(opts))}
}

// NewServiceUnavailableError builds a ServiceUnavailableError.
func NewServiceUnavailableError(message string, opts ...Option) *ServiceUnavailableError {
	return &ServiceUnavailableError{newBase(kind.ServiceUnavailable, message, collect(opts))}
}

// NewInvalidAPITypeError builds an InvalidAPITypeError.
func NewInvalidAPITypeError(message string, opts ...Option) *InvalidAPITypeError {
	return &InvalidAPITypeError{newBase(kind.InvalidAPIType, message, collect(opts))}
}

// NewSignatureVerificationError builds a SignatureVerificationError from the
// webhook payload. body may be nil.
func NewSignatureVerificationError(message, sigHeader string, body []byte) *SignatureVerificationError {
	return newSignatureVerification(message, sigHeader, decodeBody(body))
}

func newSignatureVerification(message, sigHeader, body string) *SignatureVerificationError {
	return &SignatureVerificationError{
		base:      newBase(kind.SignatureVerification, message, &params{body: body}),
		sigHeader: sigHeader,
	}
}
