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
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"dirpx.dev/apierror/kind"
)

const (
	// EmptyMessage replaces a missing message in the Error() rendering.
	EmptyMessage = "<empty message>"

	// UndecodableBody replaces a response body that is not valid UTF-8.
	UndecodableBody = "<Could not decode body as utf-8. Please report to support@openai.com>"

	// Header names the request id and organization are read from. Lookup is
	// case-insensitive (canonical MIME keys).
	HeaderRequestID    = "request-id"
	HeaderOrganization = "openai-organization"
)

// Error is the sealed interface implemented by every variant of the
// taxonomy. It cannot be implemented outside this package.
//
// Empty strings and a zero status mean "absent".
type Error interface {
	error

	// Kind identifies the variant.
	Kind() kind.Kind

	// UserMessage returns the message exactly as passed at construction,
	// without the "Request <id>: " prefix used by Error().
	UserMessage() string

	// HTTPBody returns the decoded response body.
	HTTPBody() string

	// HTTPStatus returns the HTTP status code, or 0 when no response exists.
	HTTPStatus() int

	// JSONBody returns a copy of the decoded JSON payload, or nil. Numbers
	// are json.Number values.
	JSONBody() map[string]any

	// Headers returns a copy of the response headers; never nil.
	Headers() http.Header

	// Code returns the application-level error code.
	Code() string

	// RequestID returns the value of the "request-id" response header.
	RequestID() string

	// Organization returns the value of the "openai-organization" header.
	Organization() string

	// ErrorObject returns a copy of the server error object, or nil when the
	// JSON body carries no "error" mapping.
	ErrorObject() *ErrorObject

	sealed()
}

// base holds the attributes shared by all variants. Derived fields are
// computed once in newBase and never change.
type base struct {
	kind       kind.Kind
	message    string
	httpBody   string
	httpStatus int
	jsonBody   map[string]any
	headers    http.Header
	code       string

	requestID    string
	organization string
	object       *ErrorObject

	// cause is the local failure behind the error, if any. It is not part
	// of the reconstruction record.
	cause error
}

func newBase(k kind.Kind, message string, p *params) base {
	h := canonicalHeaders(p.headers)
	return base{
		kind:         k,
		message:      message,
		httpBody:     p.body,
		httpStatus:   p.status,
		jsonBody:     p.json,
		headers:      h,
		code:         p.code,
		requestID:    h.Get(HeaderRequestID),
		organization: h.Get(HeaderOrganization),
		object:       errorObjectFrom(p.json),
		cause:        p.cause,
	}
}

// Error renders "Request <id>: <message>", or just the message when there is
// no request id. An empty message renders as EmptyMessage.
func (b *base) Error() string {
	msg := b.message
	if msg == "" {
		msg = EmptyMessage
	}
	if b.requestID != "" {
		return "Request " + b.requestID + ": " + msg
	}
	return msg
}

func (b *base) Kind() kind.Kind { return b.kind }
func (b *base) UserMessage() string { return b.message }
func (b *base) HTTPBody() string { return b.httpBody }
func (b *base) HTTPStatus() int { return b.httpStatus }
func (b *base) JSONBody() map[string]any { return copyObject(b.jsonBody) }
func (b *base) Headers() http.Header { return b.headers.Clone() }
func (b *base) Code() string { return b.code }
func (b *base) RequestID() string { return b.requestID }
func (b *base) Organization() string { return b.organization }
func (b *base) ErrorObject() *ErrorObject { return b.object.clone() }
func (b *base) sealed() {}

// Unwrap returns the underlying cause, enabling errors.Is / errors.As chains.
func (b *base) Unwrap() error { return b.cause }

// Is matches the per-kind sentinels, so errors.Is(err, ErrRateLimit) holds
// for any wrapped *RateLimitError.
func (b *base) Is(target error) bool {
	s, ok := target.(*sentinel)
	return ok && s.kind == b.kind
}

// GoString is the diagnostic rendering used by %#v:
//
//	RateLimitError(message="slow down", http_status=429, request_id="req_1")
//
// Body and headers are never included.
func (b *base) GoString() string {
	return fmt.Sprintf("%s(message=%s, http_status=%s, request_id=%s)",
		b.kind.Name(), quoteOpt(b.message), statusOpt(b.httpStatus), quoteOpt(b.requestID))
}

// LogValue implements slog.LogValuer with the same fields as GoString.
func (b *base) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", string(b.kind)),
		slog.String("message", b.message),
		slog.Int("http_status", b.httpStatus),
		slog.String("request_id", b.requestID),
	)
}

func quoteOpt(s string) string {
	if s == "" {
		return "nil"
	}
	return strconv.Quote(s)
}

func statusOpt(status int) string {
	if status == 0 {
		return "nil"
	}
	return strconv.Itoa(status)
}

type sentinel struct {
	kind kind.Kind
}

func (s *sentinel) Error() string { return "apierror: " + string(s.kind) }

// Sentinels for errors.Is matching, one per kind.
var (
	ErrAPI                   error = &sentinel{kind.API}
	ErrTryAgain              error = &sentinel{kind.TryAgain}
	ErrTimeout               error = &sentinel{kind.Timeout}
	ErrConnection            error = &sentinel{kind.Connection}
	ErrInvalidRequest        error = &sentinel{kind.InvalidRequest}
	ErrAuthentication        error = &sentinel{kind.Authentication}
	ErrPermission            error = &sentinel{kind.Permission}
	ErrRateLimit             error = &sentinel{kind.RateLimit}
	ErrServiceUnavailable    error = &sentinel{kind.ServiceUnavailable}
	ErrInvalidAPIType        error = &sentinel{kind.InvalidAPIType}
	ErrSignatureVerification error = &sentinel{kind.SignatureVerification}
)

// From finds the first taxonomy error in err's chain.
func From(err error) (Error, bool) {
	var e Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of the first taxonomy error in err's chain.
func KindOf(err error) (kind.Kind, bool) {
	e, ok := From(err)
	if !ok {
		return kind.Empty, false
	}
	return e.Kind(), true
}
