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

package classify

import (
	"google.golang.org/grpc/codes"

	"dirpx.dev/apierror/kind"
)

// Option configures a Mapper at build time.
type Option func(*builder)

// WithStatusKind sets the kind for an HTTP status, replacing the default.
func WithStatusKind(status int, k kind.Kind) Option {
	return func(b *builder) { b.byStatus[status] = k }
}

// WithRule adds an envelope rule for one HTTP status. pattern is matched
// against the "<type>.<code>" key; "*" matches one segment. Rules take
// precedence over the status default.
func WithRule(status int, pattern string, k kind.Kind) Option {
	return func(b *builder) { b.rules = append(b.rules, rule{status, pattern, k}) }
}

// WithFallback sets the kind used when neither a rule nor a status default
// matches.
func WithFallback(k kind.Kind) Option {
	return func(b *builder) { b.fallback = k }
}

// WithHTTPStatus sets the outbound HTTP status for a kind.
func WithHTTPStatus(k kind.Kind, status int) Option {
	return func(b *builder) { b.http[k] = status }
}

// WithGRPCCode sets the outbound gRPC code for a kind.
func WithGRPCCode(k kind.Kind, c codes.Code) Option {
	return func(b *builder) { b.grpc[k] = c }
}

type rule struct {
	status  int
	pattern string
	kind    kind.Kind
}

type builder struct {
	byStatus map[int]kind.Kind
	rules    []rule
	fallback kind.Kind
	http     map[kind.Kind]int
	grpc     map[kind.Kind]codes.Code
}

// newBuilder seeds a builder with the package defaults. Maps are fresh
// copies, so options never touch the package tables.
func newBuilder() *builder {
	b := &builder{
		byStatus: make(map[int]kind.Kind, len(defaultByStatus)),
		fallback: kind.API,
		http:     make(map[kind.Kind]int, len(defaultHTTP)),
		grpc:     make(map[kind.Kind]codes.Code, len(defaultGRPC)),
	}
	for s, k := range defaultByStatus {
		b.byStatus[s] = k
	}
	for k, s := range defaultHTTP {
		b.http[k] = s
	}
	for k, c := range defaultGRPC {
		b.grpc[k] = c
	}
	return b
}
