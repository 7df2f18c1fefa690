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

// Package grpcx carries apierror values across gRPC.
//
// ToStatus encodes an error as a status whose code comes from a
// classify.Mapper and whose details hold the full reconstruction record as a
// google.protobuf.Struct. FromStatus rebuilds the identical error on the
// other side. The unary interceptors apply both directions automatically.
package grpcx
