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
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/grpc/codes"

	"dirpx.dev/apierror"
	"dirpx.dev/apierror/classify/internal/segmenttrie"
	"dirpx.dev/apierror/kind"
)

// None stands in for an absent or unusable segment of the envelope key.
const None = "none"

// Mapper is an immutable classification snapshot. The zero value is not
// usable; build one with New or use Default.
type Mapper struct {
	byStatus map[int]kind.Kind
	rules    map[int]*segmenttrie.Trie[kind.Kind]
	fallback kind.Kind
	http     map[kind.Kind]int
	grpc     map[kind.Kind]codes.Code
}

var std = func() *Mapper {
	m, err := New()
	if err != nil {
		panic(err)
	}
	return m
}()

// Default returns the mapper built from the package defaults alone.
func Default() *Mapper { return std }

// New builds a Mapper from the package defaults and opts.
//
// It fails when an option names an unknown kind, an HTTP status outside
// 100..599, or a malformed rule pattern.
func New(opts ...Option) (*Mapper, error) {
	b := newBuilder()
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}

	if err := kind.Validate(b.fallback); err != nil {
		return nil, fmt.Errorf("classify: fallback %q: %w", b.fallback, err)
	}
	for s, k := range b.byStatus {
		if err := checkStatus(s); err != nil {
			return nil, err
		}
		if err := kind.Validate(k); err != nil {
			return nil, fmt.Errorf("classify: status %d kind %q: %w", s, k, err)
		}
	}
	for k, s := range b.http {
		if err := kind.Validate(k); err != nil {
			return nil, fmt.Errorf("classify: HTTP status for kind %q: %w", k, err)
		}
		if err := checkStatus(s); err != nil {
			return nil, err
		}
	}
	for k := range b.grpc {
		if err := kind.Validate(k); err != nil {
			return nil, fmt.Errorf("classify: gRPC code for kind %q: %w", k, err)
		}
	}

	rules := make(map[int]*segmenttrie.Trie[kind.Kind])
	for _, r := range b.rules {
		if err := checkStatus(r.status); err != nil {
			return nil, err
		}
		if err := kind.Validate(r.kind); err != nil {
			return nil, fmt.Errorf("classify: rule %d %q kind %q: %w", r.status, r.pattern, r.kind, err)
		}
		t, ok := rules[r.status]
		if !ok {
			t = segmenttrie.New[kind.Kind]()
			rules[r.status] = t
		}
		if err := t.Insert(strings.ToLower(strings.TrimSpace(r.pattern)), r.kind); err != nil {
			return nil, fmt.Errorf("classify: rule %d %q: %w", r.status, r.pattern, err)
		}
	}

	// The builder maps were allocated by newBuilder and are not shared with
	// callers, so they can be frozen as is.
	return &Mapper{
		byStatus: b.byStatus,
		rules:    rules,
		fallback: b.fallback,
		http:     b.http,
		grpc:     b.grpc,
	}, nil
}

func checkStatus(s int) error {
	if s < 100 || s > 599 {
		return fmt.Errorf("classify: invalid HTTP status %d", s)
	}
	return nil
}

// Kind picks the variant for a failed response with the given status and
// decoded envelope. obj may be nil.
func (m *Mapper) Kind(status int, obj *apierror.ErrorObject) kind.Kind {
	k, _, _ := m.resolve(status, obj)
	return k
}

func (m *Mapper) resolve(status int, obj *apierror.ErrorObject) (k kind.Kind, source, pattern string) {
	if t, ok := m.rules[status]; ok {
		if k, p, ok := t.Lookup(Key(obj)); ok {
			return k, "rule", p
		}
	}
	if k, ok := m.byStatus[status]; ok {
		return k, "status", ""
	}
	return m.fallback, "fallback", ""
}

// HTTPStatus returns the outbound HTTP status for k, 500 for unknown kinds.
func (m *Mapper) HTTPStatus(k kind.Kind) int {
	if s, ok := m.http[k]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// GRPCCode returns the outbound gRPC code for k, codes.Internal for unknown
// kinds.
func (m *Mapper) GRPCCode(k kind.Kind) codes.Code {
	if c, ok := m.grpc[k]; ok {
		return c
	}
	return codes.Internal
}

// Explain describes how a status and envelope were classified and which
// transport statuses the resulting kind maps back to.
//
//	status=429 key="requests.insufficient_quota"
//	kind: source=rule pattern="*.insufficient_quota" -> api
//	http: 500
//	grpc: INTERNAL(13)
//
// The output is meant for humans and tests, not for parsing.
func (m *Mapper) Explain(status int, obj *apierror.ErrorObject) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "status=%d key=%q\n", status, Key(obj))

	k, source, pattern := m.resolve(status, obj)
	if source == "rule" {
		_, _ = fmt.Fprintf(&b, "kind: source=rule pattern=%q -> %s\n", pattern, k)
	} else {
		_, _ = fmt.Fprintf(&b, "kind: source=%s -> %s\n", source, k)
	}
	_, _ = fmt.Fprintf(&b, "http: %d\n", m.HTTPStatus(k))
	c := m.GRPCCode(k)
	_, _ = fmt.Fprintf(&b, "grpc: %s(%d)", strings.ToUpper(c.String()), int(c))
	return b.String()
}

// Key builds the "<type>.<code>" envelope key rules are matched against.
func Key(obj *apierror.ErrorObject) string {
	typ, code := None, None
	if obj != nil {
		if obj.Type != nil {
			typ = segment(*obj.Type)
		}
		code = segment(obj.CodeString())
	}
	return typ + "." + code
}

func segment(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if !segmenttrie.ValidSegment(s) {
		return None
	}
	return s
}
