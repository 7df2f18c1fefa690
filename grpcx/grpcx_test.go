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

package grpcx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	gstatus "google.golang.org/grpc/status"

	"dirpx.dev/apierror"
	"dirpx.dev/apierror/classify"
	"dirpx.dev/apierror/kind"
)

func sample(t *testing.T, k kind.Kind) apierror.Error {
	t.Helper()
	const body = `{"error":{"message":"bad","type":"invalid_request_error","param":"model","code":9007199254740993}}`
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var js map[string]any
	if err := dec.Decode(&js); err != nil {
		t.Fatal(err)
	}
	return apierror.New(k, "bad",
		apierror.WithBodyString(body),
		apierror.WithStatus(400),
		apierror.WithJSON(js),
		apierror.WithHeaders(http.Header{"request-id": {"req_1"}, "X-Multi": {"a", "b"}, "X-Empty": nil}),
		apierror.WithCode("9007199254740993"),
		apierror.WithParam("model"),
		apierror.WithSigHeader("t=1,v1=abc"),
		apierror.WithShouldRetry(true),
	)
}

func TestStatusRoundTrip_AllKinds(t *testing.T) {
	for _, k := range kind.All() {
		t.Run(string(k), func(t *testing.T) {
			e := sample(t, k)
			st := ToStatus(e, nil)
			if st.Code() != classify.Default().GRPCCode(k) {
				t.Fatalf("Code() = %v, want %v", st.Code(), classify.Default().GRPCCode(k))
			}
			if st.Message() != "bad" {
				t.Fatalf("Message() = %q", st.Message())
			}

			got, ok := FromStatus(st.Err())
			if !ok {
				t.Fatal("FromStatus() found no detail")
			}
			if diff := cmp.Diff(apierror.Decompose(e), apierror.Decompose(got)); diff != "" {
				t.Fatalf("record mismatch (-want +got):\n%s", diff)
			}
			if got.RequestID() != "req_1" {
				t.Fatalf("RequestID() = %q", got.RequestID())
			}
			if diff := cmp.Diff(e.ErrorObject(), got.ErrorObject()); diff != "" {
				t.Fatalf("error object mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToStatus_CustomMapper(t *testing.T) {
	m, err := classify.New(classify.WithGRPCCode(kind.RateLimit, codes.Unavailable))
	if err != nil {
		t.Fatal(err)
	}
	if c := ToStatus(apierror.NewRateLimitError("slow"), m).Code(); c != codes.Unavailable {
		t.Fatalf("Code() = %v, want Unavailable", c)
	}
}

func TestToStatus_InvalidUTF8FallsBackToPlainStatus(t *testing.T) {
	st := ToStatus(apierror.NewAPIError("bad \xff"), nil)
	if st.Code() != codes.Internal {
		t.Fatalf("Code() = %v", st.Code())
	}
	if _, ok := FromStatus(st.Err()); ok {
		t.Fatal("plain status must not decode")
	}
}

func TestFromStatus_Foreign(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"nil", nil},
		{"plain error", errors.New("x")},
		{"status without details", gstatus.Error(codes.NotFound, "nope")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := FromStatus(tt.err); ok {
				t.Fatal("FromStatus() must report false")
			}
		})
	}
	if _, err := Decode(gstatus.New(codes.NotFound, "nope")); !errors.Is(err, ErrNoDetail) {
		t.Fatalf("Decode() err = %v, want ErrNoDetail", err)
	}
}

func TestInterceptors(t *testing.T) {
	server := UnaryServerInterceptor(nil)
	client := UnaryClientInterceptor()
	info := &grpc.UnaryServerInfo{FullMethod: "/svc/Method"}
	want := apierror.NewInvalidRequestError("bad", "model", apierror.WithStatus(400))

	// server side: taxonomy error becomes a status
	_, err := server(context.Background(), nil, info, func(context.Context, any) (any, error) {
		return nil, want
	})
	if c := gstatus.Code(err); c != codes.InvalidArgument {
		t.Fatalf("server code = %v, want InvalidArgument", c)
	}

	// client side: the status becomes the taxonomy error again
	got := client(context.Background(), "/svc/Method", nil, nil, nil,
		func(context.Context, string, any, any, *grpc.ClientConn, ...grpc.CallOption) error { return err })
	var ir *apierror.InvalidRequestError
	if !errors.As(got, &ir) || ir.Param() != "model" || ir.HTTPStatus() != 400 {
		t.Fatalf("client err = %#v", got)
	}

	// foreign errors pass through both ways
	plain := errors.New("plain")
	if _, err := server(context.Background(), nil, info, func(context.Context, any) (any, error) { return nil, plain }); err != plain {
		t.Fatalf("server passthrough = %v", err)
	}
	if err := client(context.Background(), "/m", nil, nil, nil,
		func(context.Context, string, any, any, *grpc.ClientConn, ...grpc.CallOption) error { return plain }); err != plain {
		t.Fatalf("client passthrough = %v", err)
	}

	// success passes the response through
	resp, err := server(context.Background(), nil, info, func(context.Context, any) (any, error) { return "ok", nil })
	if err != nil || resp != "ok" {
		t.Fatalf("server success = (%v, %v)", resp, err)
	}
}

func TestStatusRoundTrip_PlainUnmarshalBody(t *testing.T) {
	var js map[string]any
	if err := json.Unmarshal([]byte(`{"error":{"message":"slow","code":429},"n":1}`), &js); err != nil {
		t.Fatal(err)
	}
	e := apierror.NewRateLimitError("slow", apierror.WithStatus(429), apierror.WithJSON(js))

	got, ok := FromStatus(ToStatus(e, nil).Err())
	if !ok {
		t.Fatal("FromStatus() found no detail")
	}
	if diff := cmp.Diff(e.JSONBody(), got.JSONBody()); diff != "" {
		t.Fatalf("json body mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(e.ErrorObject(), got.ErrorObject()); diff != "" {
		t.Fatalf("error object mismatch (-want +got):\n%s", diff)
	}
}
