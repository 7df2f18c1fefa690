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

import "testing"

func TestInsertAndLookup(t *testing.T) {
	tr := New[string]()
	must(t, tr.Insert("invalid_request_error", "a"))
	must(t, tr.Insert("invalid_request_error.model_not_found", "b"))
	must(t, tr.Insert("server_error", "c"))

	tests := []struct {
		key, want, pattern string
		ok                 bool
	}{
		{"invalid_request_error.model_not_found", "b", "invalid_request_error.model_not_found", true},
		{"invalid_request_error.none", "a", "invalid_request_error", true},
		{"server_error.500", "c", "server_error", true},
		{"tokens.rate_limit_exceeded", "", "", false},
		{"", "", "", false},
	}
	for _, tt := range tests {
		v, p, ok := tr.Lookup(tt.key)
		if ok != tt.ok || v != tt.want || p != tt.pattern {
			t.Fatalf("Lookup(%q) = (%q, %q, %v); want (%q, %q, %v)", tt.key, v, p, ok, tt.want, tt.pattern, tt.ok)
		}
	}
	if n := tr.Len(); n != 3 {
		t.Fatalf("Len() = %d, want 3", n)
	}
}

func TestWildcard_OneSegment(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("*.insufficient_quota", 1))
	must(t, tr.Insert("requests.insufficient_quota", 2)) // exact beats wildcard at same depth

	if v, p, ok := tr.Lookup("requests.insufficient_quota"); !ok || v != 2 || p != "requests.insufficient_quota" {
		t.Fatalf("exact must win over wildcard, got ok=%v v=%v p=%q", ok, v, p)
	}
	if v, p, ok := tr.Lookup("tokens.insufficient_quota"); !ok || v != 1 || p != "*.insufficient_quota" {
		t.Fatalf("wildcard match failed: ok=%v v=%v p=%q", ok, v, p)
	}
	if _, ok := tr.Match("insufficient_quota"); ok {
		t.Fatal("wildcard must not match zero segments")
	}
}

func TestLookup_PrefersDeeperWildcardPath(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("a.*.c", 7))
	must(t, tr.Insert("a.b", 1))

	if v, p, ok := tr.Lookup("a.b.c"); !ok || v != 7 || p != "a.*.c" {
		t.Fatalf("deepest match must win: ok=%v v=%v p=%q", ok, v, p)
	}
}

func TestInsert_Replaces(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("a", 1))
	must(t, tr.Insert("a", 2))
	if v, _ := tr.Match("a"); v != 2 {
		t.Fatalf("Match(a) = %d, want 2", v)
	}
	if n := tr.Len(); n != 1 {
		t.Fatalf("Len() = %d, want 1", n)
	}
}

func TestInvalidInputs(t *testing.T) {
	tr := New[int]()
	for _, p := range []string{"", "UPPER.case", "a..b", "*", "*.*", "_lead", "a-b"} {
		if err := tr.Insert(p, 1); err == nil {
			t.Fatalf("Insert(%q) must fail", p)
		}
	}
	must(t, tr.Insert("a.b", 1))
	for _, k := range []string{"A.b", "a..b", "a.*"} {
		if _, ok := tr.Match(k); ok {
			t.Fatalf("Match(%q) must not match a malformed key", k)
		}
	}
	var nilTrie *Trie[int]
	if err := nilTrie.Insert("a", 1); err == nil {
		t.Fatal("Insert on nil trie must fail")
	}
	if _, ok := nilTrie.Match("a"); ok {
		t.Fatal("Match on nil trie must not match")
	}
}

func TestValidSegment(t *testing.T) {
	valid := []string{"a", "429", "rate_limit_exceeded", "v1"}
	invalid := []string{"", "_a", "A", "a.b", "a-b", "*"}
	for _, s := range valid {
		if !ValidSegment(s) {
			t.Fatalf("ValidSegment(%q) = false", s)
		}
	}
	for _, s := range invalid {
		if ValidSegment(s) {
			t.Fatalf("ValidSegment(%q) = true", s)
		}
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
