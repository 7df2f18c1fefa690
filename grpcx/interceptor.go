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

	"google.golang.org/grpc"

	"dirpx.dev/apierror"
	"dirpx.dev/apierror/classify"
)

// UnaryServerInterceptor converts taxonomy errors returned by handlers into
// gRPC statuses via ToStatus. Other errors pass through untouched.
func UnaryServerInterceptor(m *classify.Mapper) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		e, ok := apierror.From(err)
		if !ok {
			return nil, err
		}
		return nil, ToStatus(e, m).Err()
	}
}

// UnaryClientInterceptor turns statuses produced by UnaryServerInterceptor
// back into the original taxonomy errors. Other errors pass through.
func UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		err := invoker(ctx, method, req, reply, cc, opts...)
		if err == nil {
			return nil
		}
		if e, ok := FromStatus(err); ok {
			return e
		}
		return err
	}
}
