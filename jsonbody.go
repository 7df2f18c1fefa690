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
	"math"
	"strconv"
)

// copyJSON deep-copies a decoded JSON value. Numbers are normalized to
// json.Number, the form a UseNumber decoder produces, so a body built from
// json.Unmarshal output and the same body read back from the wire compare
// equal. NaN and infinities have no JSON form and are kept as is, as are
// values of types json never produces.
func copyJSON(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return copyObject(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = copyJSON(item)
		}
		return out
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return t
		}
		return json.Number(strconv.FormatFloat(t, 'f', -1, 64))
	case float32:
		f := float64(t)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return t
		}
		return json.Number(strconv.FormatFloat(f, 'f', -1, 32))
	case int:
		return json.Number(strconv.Itoa(t))
	case int32:
		return json.Number(strconv.FormatInt(int64(t), 10))
	case int64:
		return json.Number(strconv.FormatInt(t, 10))
	default:
		return v
	}
}

func copyObject(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyJSON(v)
	}
	return out
}

// clone returns an independent copy of o.
func (o *ErrorObject) clone() *ErrorObject {
	if o == nil {
		return nil
	}
	return &ErrorObject{
		Type:    cloneString(o.Type),
		Message: cloneString(o.Message),
		Param:   cloneString(o.Param),
		Code:    o.Code,
		Extra:   copyObject(o.Extra),
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
