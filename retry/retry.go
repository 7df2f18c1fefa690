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

// Package retry decides whether a failed call is worth repeating and
// bridges that decision to github.com/cenkalti/backoff/v4.
//
// The only retry signal the taxonomy carries by itself is
// ConnectionError.ShouldRetry. A Policy can widen that to whole kinds.
package retry

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"dirpx.dev/apierror"
	"dirpx.dev/apierror/kind"
)

// Policy is an immutable retry decision. Build one with NewPolicy.
type Policy struct {
	kinds      map[kind.Kind]bool
	connection bool
}

// Option configures a Policy.
type Option func(*Policy)

// WithKinds makes every error of the given kinds retryable.
func WithKinds(ks ...kind.Kind) Option {
	return func(p *Policy) {
		for _, k := range ks {
			p.kinds[k] = true
		}
	}
}

// WithoutConnectionSignal ignores ConnectionError.ShouldRetry.
func WithoutConnectionSignal() Option {
	return func(p *Policy) { p.connection = false }
}

// NewPolicy returns a policy that honors ConnectionError.ShouldRetry plus
// whatever opts add.
func NewPolicy(opts ...Option) *Policy {
	p := &Policy{kinds: make(map[kind.Kind]bool), connection: true}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

var std = NewPolicy()

// DefaultPolicy returns the policy that only honors
// ConnectionError.ShouldRetry.
func DefaultPolicy() *Policy { return std }

// Retryable reports whether err should be retried. Errors outside the
// taxonomy are never retryable.
func (p *Policy) Retryable(err error) bool {
	e, ok := apierror.From(err)
	if !ok {
		return false
	}
	if p.kinds[e.Kind()] {
		return true
	}
	var ce *apierror.ConnectionError
	return p.connection && errors.As(err, &ce) && ce.ShouldRetry()
}

// Classify returns err unchanged when it is retryable and wrapped in
// backoff.Permanent otherwise, which stops a backoff.Retry loop. A nil err
// stays nil.
func (p *Policy) Classify(err error) error {
	if err == nil || p.Retryable(err) {
		return err
	}
	return backoff.Permanent(err)
}

// Operation adapts op for backoff.Retry under this policy.
//
//	err := backoff.Retry(policy.Operation(call), backoff.NewExponentialBackOff())
func (p *Policy) Operation(op backoff.Operation) backoff.Operation {
	return func() error { return p.Classify(op()) }
}

// Retryable reports whether err is retryable under DefaultPolicy.
func Retryable(err error) bool { return std.Retryable(err) }

// maxRetryAfterSeconds is the largest delay a time.Duration can hold.
const maxRetryAfterSeconds = math.MaxInt64 / int64(time.Second)

// RetryAfter reads the Retry-After header of e, in delta-seconds or HTTP
// date form. It reports false when the header is absent, unparsable or too
// large for a time.Duration.
func RetryAfter(e apierror.Error, now time.Time) (time.Duration, bool) {
	if e == nil {
		return 0, false
	}
	v := strings.TrimSpace(e.Headers().Get("Retry-After"))
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.ParseInt(v, 10, 64); err == nil {
		if secs < 0 || secs > maxRetryAfterSeconds {
			return 0, false
		}
		return time.Duration(secs) * time.Second, true
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := t.Sub(now); d > 0 {
			return d, true
		}
		return 0, true
	}
	return 0, false
}
