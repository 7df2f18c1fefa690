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

// Package httpx connects the error taxonomy to net/http.
//
// On the client side Parser turns a failed *http.Response (or a transport
// failure) into the matching apierror variant. On the server side Writer
// renders any apierror value as the JSON error envelope
//
//	{"error": {"message": "...", "type": "...", "param": null, "code": null}}
//
// with the variant's status code and request-id header, so that a Parser on
// the other end classifies it back to the same kind.
package httpx
