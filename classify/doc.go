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

// Package classify maps transport facts to error kinds and back.
//
// # Inbound
//
// When an HTTP response fails, Mapper.Kind picks the variant to build from
// the status code and the decoded error envelope. Resolution order:
//
//  1. per-status rule on the envelope key (longest pattern wins);
//  2. per-status default;
//  3. fallback kind (kind.API unless configured).
//
// The envelope key is "<type>.<code>", each segment lowercased and replaced
// by "none" when absent or not a plain identifier. Rule patterns use the same
// dotted form, where "*" matches exactly one segment:
//
//	m, err := classify.New(
//	    classify.WithRule(http.StatusTooManyRequests, "*.insufficient_quota", kind.API),
//	)
//
// # Outbound
//
// HTTPStatus and GRPCCode turn a kind back into a transport status, for
// servers that render errors (package httpx Writer, package grpcx).
//
// A Mapper is an immutable snapshot. Options are applied once by New and the
// result is safe for concurrent use.
package classify
