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

package segmenttrie

import (
	"errors"
	"strings"
)

// Wildcard matches exactly one segment when used inside a pattern.
const Wildcard = "*"

// ErrInvalidPattern is returned by Insert for empty patterns, empty or
// malformed segments, and patterns made only of wildcards.
var ErrInvalidPattern = errors.New("segmenttrie: invalid pattern")

// Trie indexes dot-separated patterns segment by segment. Lookups return the
// value of the deepest pattern that prefixes the key, so a more specific rule
// wins over a shorter one. At equal depth an exact segment beats a wildcard.
//
// A Trie is not safe for concurrent Insert; once built it may be read from
// any number of goroutines.
type Trie[T any] struct {
	children map[string]*Trie[T]
	hasVal   bool
	val      T
	// pattern is the dotted pattern stored at this node, kept for Lookup.
	pattern string
}

// New creates an empty trie.
func New[T any]() *Trie[T] {
	return &Trie[T]{children: make(map[string]*Trie[T])}
}

// Insert associates val with pattern, replacing any previous value.
//
//	"rate_limit_error"
//	"invalid_request_error.model_not_found"
//	"*.insufficient_quota"
func (t *Trie[T]) Insert(pattern string, val T) error {
	if t == nil {
		return ErrInvalidPattern
	}
	segs, ok := split(pattern, true)
	if !ok || len(segs) == 0 {
		return ErrInvalidPattern
	}
	allWild := true
	for _, s := range segs {
		if s != Wildcard {
			allWild = false
			break
		}
	}
	if allWild {
		return ErrInvalidPattern
	}

	cur := t
	for _, s := range segs {
		child, ok := cur.children[s]
		if !ok {
			child = New[T]()
			cur.children[s] = child
		}
		cur = child
	}
	cur.hasVal = true
	cur.val = val
	cur.pattern = pattern
	return nil
}

// Match returns the value of the deepest pattern matching key.
func (t *Trie[T]) Match(key string) (T, bool) {
	v, _, ok := t.Lookup(key)
	return v, ok
}

// Lookup is Match that also reports which pattern won.
// Malformed keys never match.
func (t *Trie[T]) Lookup(key string) (val T, pattern string, ok bool) {
	if t == nil {
		return val, "", false
	}
	segs, valid := split(key, false)
	if !valid {
		return val, "", false
	}

	best := -1
	var walk func(n *Trie[T], depth int)
	walk = func(n *Trie[T], depth int) {
		if n.hasVal && depth > best {
			best, val, pattern = depth, n.val, n.pattern
		}
		if depth == len(segs) {
			return
		}
		if next, ok := n.children[segs[depth]]; ok {
			walk(next, depth+1)
		}
		if next, ok := n.children[Wildcard]; ok {
			walk(next, depth+1)
		}
	}
	walk(t, 0)
	return val, pattern, best >= 0
}

// Len reports how many patterns carry a value.
func (t *Trie[T]) Len() int {
	if t == nil {
		return 0
	}
	n := 0
	if t.hasVal {
		n++
	}
	for _, c := range t.children {
		n += c.Len()
	}
	return n
}

func split(s string, allowWildcard bool) ([]string, bool) {
	if s == "" {
		return nil, true
	}
	segs := strings.Split(s, ".")
	for _, seg := range segs {
		if !ValidSegment(seg) && !(allowWildcard && seg == Wildcard) {
			return nil, false
		}
	}
	return segs, true
}

// ValidSegment reports whether seg matches [a-z0-9][a-z0-9_]*.
func ValidSegment(seg string) bool {
	if seg == "" || seg[0] == '_' {
		return false
	}
	for i := 0; i < len(seg); i++ {
		c := seg[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			continue
		}
		return false
	}
	return true
}
