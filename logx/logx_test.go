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

package logx

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"dirpx.dev/apierror"
)

func TestAttr_Slog(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	e := apierror.NewRateLimitError("slow down",
		apierror.WithStatus(429),
		apierror.WithBodyString(`{"secret":"body"}`),
		apierror.WithHeaders(http.Header{"Request-Id": {"req_1"}, "Authorization": {"Bearer sk"}}),
	)
	log.Info("call failed", Attr("err", e))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	group, ok := rec["err"].(map[string]any)
	if !ok {
		t.Fatalf("err attr = %#v, want a group", rec["err"])
	}
	if group["kind"] != "rate_limit" || group["message"] != "slow down" || group["request_id"] != "req_1" || group["http_status"] != 429.0 {
		t.Fatalf("err group = %#v", group)
	}
	if strings.Contains(buf.String(), "secret") || strings.Contains(buf.String(), "Bearer") {
		t.Fatalf("log line leaks body or headers: %s", buf.String())
	}
}

func TestErr(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	log.Info("a", Err(apierror.NewTimeoutError("slow")))
	log.Info("b", Err(errors.New("plain")))
	log.Info("c", Err(nil))

	out := buf.String()
	for _, want := range []string{"error.kind=timeout", "error.message=slow", "error=plain"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output %q missing %q", out, want)
		}
	}
}

func TestZerolog(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	e := apierror.NewInvalidRequestError("bad", "model",
		apierror.WithStatus(400),
		apierror.WithCode("model_not_found"),
		apierror.WithHeaders(http.Header{"request-id": {"req_2"}}),
	)
	log.Error().Object("error", Zerolog(e)).Msg("call failed")
	log.Error().Object("error", Zerolog(apierror.NewConnectionError("reset", apierror.WithShouldRetry(true)))).Msg("call failed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}

	var first struct {
		Error map[string]any `json:"error"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"kind": "invalid_request", "message": "bad", "http_status": 400.0,
		"request_id": "req_2", "code": "model_not_found", "param": "model",
	}
	for k, v := range want {
		if first.Error[k] != v {
			t.Fatalf("error.%s = %#v, want %#v (line %s)", k, first.Error[k], v, lines[0])
		}
	}
	if !strings.Contains(lines[1], `"should_retry":true`) {
		t.Fatalf("connection line %s missing should_retry", lines[1])
	}
	if strings.Contains(lines[1], "http_status") {
		t.Fatalf("absent status must be omitted: %s", lines[1])
	}
}
