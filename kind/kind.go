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

package kind

import (
	"bytes"
	"encoding"
	"errors"
	"strings"
)

// Kind is the canonical, validated name of an error variant.
//
// It is a separate type (not just string) so that raw user input cannot be
// mixed with values that passed validation.
type Kind string

var (
	// ErrKindInvalid is returned when a value is not one of the known kinds.
	ErrKindInvalid = errors.New("apierror: invalid kind")
)

// Ensure Kind implements encoding.TextMarshaler / encoding.TextUnmarshaler
// so it can be embedded into JSON records and config structs.
var (
	_ encoding.TextMarshaler   = (*Kind)(nil)
	_ encoding.TextUnmarshaler = (*Kind)(nil)
)

// Empty is the zero-value kind. It is never valid.
var Empty Kind = ""

// Parse normalizes s and checks that it names a known kind.
func Parse(s string) (Kind, error) {
	k := Kind(Normalize(s))
	if err := Validate(k); err != nil {
		return Empty, err
	}
	return k, nil
}

// MustParse is the panic-on-error variant of Parse.
func MustParse(s string) Kind {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return k
}

// Normalize trims spaces, lowercases the value and replaces '-' with '_'.
//
// It does NOT guarantee that the result is a known kind.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// Validate reports whether k is one of the known kinds.
func Validate(k Kind) error {
	if _, ok := variantNames[k]; !ok {
		return ErrKindInvalid
	}
	return nil
}

// All returns every known kind in declaration order.
// The returned slice is a fresh copy.
func All() []Kind {
	out := make([]Kind, len(all))
	copy(out, all)
	return out
}

// String returns the canonical string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// Name returns the Go type name of the variant carrying this kind, e.g.
// "RateLimitError". Unknown kinds yield "".
func (k Kind) Name() string {
	return variantNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if err := Validate(k); err != nil {
		return nil, err
	}
	return []byte(k), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
// It normalizes and validates the provided text before assigning.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
