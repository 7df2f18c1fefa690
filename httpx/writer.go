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

package httpx

import (
	"net/http"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"dirpx.dev/apierror"
	"dirpx.dev/apierror/classify"
)

// Writer renders taxonomy errors as HTTP error responses.
type Writer struct {
	// Mapper resolves the status for errors that carry none. Nil means
	// classify.Default().
	Mapper *classify.Mapper
}

// Write sends e as a JSON error envelope. The status is the error's own
// HTTP status when it is a 4xx or 5xx, otherwise the Mapper's status for its kind.
// Request id and organization headers are echoed back. Nothing is written
// for a nil error.
func (w Writer) Write(rw http.ResponseWriter, e apierror.Error) {
	if e == nil {
		return
	}
	m := w.Mapper
	if m == nil {
		m = classify.Default()
	}
	status := e.HTTPStatus()
	if status < 400 || status > 599 {
		status = m.HTTPStatus(e.Kind())
	}

	h := rw.Header()
	h.Set("Content-Type", "application/json")
	if id := e.RequestID(); id != "" {
		h.Set(apierror.HeaderRequestID, id)
	}
	if org := e.Organization(); org != "" {
		h.Set(apierror.HeaderOrganization, org)
	}
	rw.WriteHeader(status)

	b, err := protojson.Marshal(Envelope(e))
	if err != nil {
		return
	}
	_, _ = rw.Write(b)
}

// Envelope builds the {"error": {...}} document for e. Absent param and code
// are rendered as JSON null.
func Envelope(e apierror.Error) *structpb.Struct {
	obj := e.ErrorObject()

	typ := string(e.Kind()) + "_error"
	if obj != nil && obj.Type != nil {
		typ = *obj.Type
	}

	param := structpb.NewNullValue()
	if ir, ok := e.(*apierror.InvalidRequestError); ok && ir.Param() != "" {
		param = structpb.NewStringValue(valid(ir.Param()))
	} else if obj != nil && obj.Param != nil {
		param = structpb.NewStringValue(valid(*obj.Param))
	}

	code := structpb.NewNullValue()
	if c := e.Code(); c != "" {
		code = structpb.NewStringValue(valid(c))
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"error": structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"message": structpb.NewStringValue(valid(e.UserMessage())),
			"type":    structpb.NewStringValue(valid(typ)),
			"param":   param,
			"code":    code,
		}}),
	}}
}

// valid replaces invalid UTF-8, which protojson refuses to encode.
func valid(s string) string {
	return strings.ToValidUTF8(s, "\uFFFD")
}
