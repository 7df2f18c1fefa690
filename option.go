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
	"net/http"
	"net/textproto"
	"unicode/utf8"
)

// Option configures the transport artifacts an error is built from.
// Options are applied in order; a later option overrides an earlier one.
type Option func(*params)

type params struct {
	body        string
	status      int
	json        map[string]any
	headers     http.Header
	code        string
	param       string
	sigHeader   string
	shouldRetry bool
	cause       error
}

func collect(opts []Option) *params {
	p := &params{}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// WithBody sets the raw response body. Bytes that are not valid UTF-8 are
// replaced by UndecodableBody.
func WithBody(b []byte) Option {
	return func(p *params) { p.body = decodeBody(b) }
}

// WithBodyString sets an already decoded response body.
func WithBodyString(s string) Option {
	return func(p *params) { p.body = s }
}

// WithStatus sets the HTTP status code. Zero means "no response".
func WithStatus(status int) Option {
	return func(p *params) { p.status = status }
}

// WithJSON sets the decoded JSON payload. The map is deep-copied and its
// numbers are normalized to json.Number, so later changes by the caller do
// not reach the error.
func WithJSON(body map[string]any) Option {
	return func(p *params) { p.json = copyObject(body) }
}

// WithHeaders sets the response headers. They are copied with canonical keys.
func WithHeaders(h http.Header) Option {
	return func(p *params) { p.headers = h }
}

// WithCode sets the application-level error code.
func WithCode(code string) Option {
	return func(p *params) { p.code = code }
}

// WithParam sets the offending request parameter. Only InvalidRequestError
// carries it; New uses it when building that kind.
func WithParam(param string) Option {
	return func(p *params) { p.param = param }
}

// WithSigHeader sets the signature header value. Only
// SignatureVerificationError carries it; New uses it when building that kind.
func WithSigHeader(sig string) Option {
	return func(p *params) { p.sigHeader = sig }
}

// WithShouldRetry sets the retry-eligibility flag. Only ConnectionError
// carries it.
func WithShouldRetry(retry bool) Option {
	return func(p *params) { p.shouldRetry = retry }
}

// WithCause attaches the local error that produced this one, typically a
// transport failure. It is reachable through errors.Is and errors.As but is
// not carried by Decompose.
func WithCause(err error) Option {
	return func(p *params) { p.cause = err }
}

func decodeBody(b []byte) string {
	if !utf8.Valid(b) {
		return UndecodableBody
	}
	return string(b)
}

// canonicalHeaders copies h into a fresh, never-nil header set keyed by
// canonical MIME header names.
func canonicalHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, vs := range h {
		ck := textproto.CanonicalMIMEHeaderKey(k)
		out[ck] = append(out[ck], vs...)
	}
	return out
}
