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
	"net/http"

	"dirpx.dev/apierror/kind"
)

// Record is the flat reconstruction tuple of an error: every input needed to
// rebuild an equal value. Derived fields (request id, organization, error
// object) are not stored; Reconstruct recomputes them.
//
// Record is the shape the wire codecs (JSON in package codec, protobuf in
// package grpcx) serialize.
type Record struct {
	Kind        kind.Kind      `json:"kind"`
	Message     string         `json:"message,omitempty"`
	Param       string         `json:"param,omitempty"`
	SigHeader   string         `json:"sig_header,omitempty"`
	Code        string         `json:"code,omitempty"`
	HTTPBody    string         `json:"http_body,omitempty"`
	HTTPStatus  int            `json:"http_status,omitempty"`
	JSONBody    map[string]any `json:"json_body"`
	Headers     http.Header    `json:"headers,omitempty"`
	ShouldRetry bool           `json:"should_retry,omitempty"`
}

// Decompose flattens e into its reconstruction tuple.
func Decompose(e Error) Record {
	r := Record{
		Kind:       e.Kind(),
		Message:    e.UserMessage(),
		Code:       e.Code(),
		HTTPBody:   e.HTTPBody(),
		HTTPStatus: e.HTTPStatus(),
		JSONBody:   e.JSONBody(),
		Headers:    e.Headers(),
	}
	switch v := e.(type) {
	case *ConnectionError:
		r.ShouldRetry = v.shouldRetry
	case *InvalidRequestError:
		r.Param = v.param
	case *SignatureVerificationError:
		r.SigHeader = v.sigHeader
	case *GenericAPIError, *RetryableError, *TimeoutError, *AuthenticationError,
		*PermissionError, *RateLimitError, *ServiceUnavailableError, *InvalidAPITypeError:
		// no variant fields
	}
	return r
}

// Reconstruct rebuilds the error described by r. It fails only when r.Kind
// is not a known kind.
//
// The body is taken as already decoded; UndecodableBody stays as is.
func Reconstruct(r Record) (Error, error) {
	if err := kind.Validate(r.Kind); err != nil {
		return nil, fmt.Errorf("reconstruct %q: %w", r.Kind, err)
	}
	p := &params{
		body:        r.HTTPBody,
		status:      r.HTTPStatus,
		json:        copyObject(r.JSONBody),
		headers:     r.Headers,
		code:        r.Code,
		param:       r.Param,
		sigHeader:   r.SigHeader,
		shouldRetry: r.ShouldRetry,
	}
	return build(r.Kind, r.Message, p), nil
}
