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

package openaix

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"syscall"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/apierror"
	"dirpx.dev/apierror/classify"
	"dirpx.dev/apierror/kind"
)

func strPtr(s string) *string { return &s }

func TestFromSDK_APIError(t *testing.T) {
	tests := []struct {
		name     string
		err      *openai.APIError
		wantKind kind.Kind
		wantCode string
	}{
		{
			name:     "rate limit",
			err:      &openai.APIError{HTTPStatusCode: 429, Message: "Rate limit reached", Type: "requests", Code: "rate_limit_exceeded"},
			wantKind: kind.RateLimit,
			wantCode: "rate_limit_exceeded",
		},
		{
			name:     "authentication with numeric code",
			err:      &openai.APIError{HTTPStatusCode: 401, Message: "Incorrect API key", Type: "invalid_request_error", Code: 401},
			wantKind: kind.Authentication,
			wantCode: "401",
		},
		{
			name:     "server error",
			err:      &openai.APIError{HTTPStatusCode: 500, Message: "boom", Type: "server_error"},
			wantKind: kind.API,
		},
		{
			name:     "overloaded",
			err:      &openai.APIError{HTTPStatusCode: 503, Message: "overloaded"},
			wantKind: kind.ServiceUnavailable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := FromSDK(fmt.Errorf("create completion: %w", tt.err))
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, e.Kind())
			assert.Equal(t, tt.err.Message, e.UserMessage())
			assert.Equal(t, tt.err.HTTPStatusCode, e.HTTPStatus())
			assert.Equal(t, tt.wantCode, e.Code())
			require.NotNil(t, e.ErrorObject())
			assert.Equal(t, tt.err.Message, *e.ErrorObject().Message)
		})
	}
}

func TestFromSDK_InvalidRequestParam(t *testing.T) {
	e, ok := FromSDK(&openai.APIError{
		HTTPStatusCode: 400,
		Message:        "The model does not exist",
		Type:           "invalid_request_error",
		Param:          strPtr("model"),
		Code:           "model_not_found",
	})
	require.True(t, ok)
	ir, isIR := e.(*apierror.InvalidRequestError)
	require.True(t, isIR, "got %T", e)
	assert.Equal(t, "model", ir.Param())
	assert.Equal(t, "model_not_found", ir.Code())
}

func TestFromSDK_CustomMapper(t *testing.T) {
	m, err := classify.New(classify.WithRule(429, "*.insufficient_quota", kind.API))
	require.NoError(t, err)

	e, ok := Adapter{Mapper: m}.FromSDK(&openai.APIError{HTTPStatusCode: 429, Message: "quota", Type: "insufficient_quota", Code: "insufficient_quota"})
	require.True(t, ok)
	assert.Equal(t, kind.API, e.Kind())
}

func TestFromSDK_RequestError(t *testing.T) {
	e, ok := FromSDK(&openai.RequestError{HTTPStatusCode: 502, Body: []byte("<html>bad gateway</html>"), Err: errors.New("invalid character '<'")})
	require.True(t, ok)
	assert.Equal(t, kind.API, e.Kind())
	assert.Equal(t, "Invalid response body from API: <html>bad gateway</html> (HTTP response code was 502)", e.UserMessage())
	assert.Equal(t, "<html>bad gateway</html>", e.HTTPBody())

	e, ok = FromSDK(&openai.RequestError{Err: context.DeadlineExceeded})
	require.True(t, ok)
	assert.IsType(t, &apierror.TimeoutError{}, e)
}

func TestFromSDK_Transport(t *testing.T) {
	e, ok := FromSDK(&url.Error{Op: "Post", URL: "https://api.openai.com/v1/chat/completions", Err: syscall.ECONNRESET})
	require.True(t, ok)
	ce, isConn := e.(*apierror.ConnectionError)
	require.True(t, isConn, "got %T", e)
	assert.True(t, ce.ShouldRetry())

	e, ok = FromSDK(context.Canceled)
	require.True(t, ok)
	assert.Equal(t, kind.Connection, e.Kind())
}

func TestFromSDK_Passthrough(t *testing.T) {
	want := apierror.NewRateLimitError("slow")
	got, ok := FromSDK(fmt.Errorf("wrap: %w", want))
	require.True(t, ok)
	assert.Same(t, want, got)

	_, ok = FromSDK(nil)
	assert.False(t, ok)
	_, ok = FromSDK(errors.New("unrelated"))
	assert.False(t, ok)
}
