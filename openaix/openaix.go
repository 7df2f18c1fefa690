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

// Package openaix classifies errors returned by github.com/sashabaranov/go-openai
// into the apierror taxonomy, so SDK users get the same kinds, retry signal
// and request metadata as callers of package httpx.
package openaix

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/url"

	openai "github.com/sashabaranov/go-openai"

	"dirpx.dev/apierror"
	"dirpx.dev/apierror/classify"
	"dirpx.dev/apierror/httpx"
)

// Adapter converts SDK errors. The zero value uses classify.Default().
type Adapter struct {
	Mapper *classify.Mapper
}

// FromSDK classifies err with the default mapper.
func FromSDK(err error) (apierror.Error, bool) {
	return Adapter{}.FromSDK(err)
}

// FromSDK classifies err. It recognizes, anywhere in the chain:
//
//   - taxonomy errors, returned unchanged;
//   - *openai.APIError, classified from its status and envelope fields;
//   - *openai.RequestError, classified from its status and raw body, or as
//     a transport failure when no status was received;
//   - transport failures (net, url and context errors).
//
// It reports false for nil and for anything else.
func (a Adapter) FromSDK(err error) (apierror.Error, bool) {
	if err == nil {
		return nil, false
	}
	if e, ok := apierror.From(err); ok {
		return e, true
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return a.fromAPIError(apiErr), true
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode == 0 {
			return httpx.FromTransportError(reqErr.Err), true
		}
		return a.parser().Interpret(reqErr.HTTPStatusCode, reqErr.Body, nil), true
	}

	var (
		urlErr *url.Error
		netErr net.Error
	)
	if errors.As(err, &urlErr) || errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return httpx.FromTransportError(err), true
	}
	return nil, false
}

func (a Adapter) parser() httpx.Parser {
	return httpx.Parser{Mapper: a.Mapper}
}

// fromAPIError rebuilds the error envelope the SDK decoded and runs it
// through the same interpretation as a raw response.
func (a Adapter) fromAPIError(e *openai.APIError) apierror.Error {
	inner := map[string]any{
		"message": e.Message,
		"type":    e.Type,
		"param":   nil,
		"code":    e.Code,
	}
	if e.Param != nil {
		inner["param"] = *e.Param
	}
	if e.InnerError != nil && e.InnerError.Code != "" {
		inner["innererror"] = map[string]any{"code": e.InnerError.Code}
	}
	body, err := json.Marshal(map[string]any{"error": inner})
	if err != nil {
		// Code holds something json cannot encode; drop it.
		inner["code"] = nil
		body, _ = json.Marshal(map[string]any{"error": inner})
	}
	return a.parser().Interpret(e.HTTPStatusCode, body, nil)
}
