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

package apierror

import (
	"encoding/json"
	"strconv"
)

// ErrorObject is the server's own description of a failure, as found in the
// "error" member of a JSON error envelope:
//
//	{"error": {"message": "...", "type": "...", "param": "...", "code": "..."}}
//
// Absent (or null) members leave the corresponding field nil.
type ErrorObject struct {
	// Type is the server-side error class, e.g. "invalid_request_error".
	Type *string

	// Message is the human-readable description sent by the server.
	Message *string

	// Param names the request field that triggered the failure.
	Param *string

	// Code is the application error code. It holds a string, a json.Number,
	// a float64 or an integer, depending on how the payload was decoded.
	Code any

	// Extra keeps members that are not part of the schema above, and schema
	// members whose value had an unexpected JSON type. It is nil when there
	// is nothing to keep.
	Extra map[string]any
}

// ConstructFrom builds an ErrorObject from a decoded JSON mapping.
//
// Only the schema members are copied into typed fields. It never fails.
func ConstructFrom(values map[string]any) *ErrorObject {
	o := &ErrorObject{}
	for k, v := range values {
		if v == nil && isSchemaKey(k) {
			continue
		}
		switch k {
		case "type":
			if s, ok := v.(string); ok {
				o.Type = &s
				continue
			}
		case "message":
			if s, ok := v.(string); ok {
				o.Message = &s
				continue
			}
		case "param":
			if s, ok := v.(string); ok {
				o.Param = &s
				continue
			}
		case "code":
			if isCode(v) {
				o.Code = v
				continue
			}
		}
		if o.Extra == nil {
			o.Extra = make(map[string]any)
		}
		o.Extra[k] = v
	}
	return o
}

// CodeString renders Code as text: strings as is, numbers in their shortest
// decimal form. It returns "" when o or Code is nil.
func (o *ErrorObject) CodeString() string {
	if o == nil {
		return ""
	}
	switch c := o.Code.(type) {
	case string:
		return c
	case json.Number:
		return c.String()
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(c), 'f', -1, 32)
	case int:
		return strconv.Itoa(c)
	case int32:
		return strconv.FormatInt(int64(c), 10)
	case int64:
		return strconv.FormatInt(c, 10)
	}
	return ""
}

func isSchemaKey(k string) bool {
	switch k {
	case "type", "message", "param", "code":
		return true
	}
	return false
}

func isCode(v any) bool {
	switch v.(type) {
	case string, json.Number, float64, float32, int, int32, int64:
		return true
	}
	return false
}

// errorObjectFrom derives the ErrorObject of a JSON body: nil unless the body
// has an "error" member that is itself a mapping.
func errorObjectFrom(body map[string]any) *ErrorObject {
	if body == nil {
		return nil
	}
	m, ok := body["error"].(map[string]any)
	if !ok {
		return nil
	}
	return ConstructFrom(m)
}
