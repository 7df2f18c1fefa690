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

// Package kind defines the closed set of error kinds understood by apierror.
//
// A kind is the machine-readable name of one variant of the error taxonomy,
// such as "rate_limit", "invalid_request" or "connection". Kinds are:
//
//   - fixed: the set is closed, unknown values are rejected by Parse;
//   - lowercased and underscore-separated;
//   - stable, so they can travel in JSON and protobuf payloads.
//
// Adding a new failure category means adding a new Kind (and a new variant in
// package apierror), never overloading the meaning of an existing one.
package kind
