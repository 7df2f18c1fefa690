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

package grpcx

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"dirpx.dev/apierror"
	"dirpx.dev/apierror/classify"
	"dirpx.dev/apierror/kind"
)

// DetailKey is the top-level field of the Struct detail that holds the
// record. Structs without it are ignored by FromStatus.
const DetailKey = "apierror"

// ErrNoDetail is returned by Decode when a status carries no record.
var ErrNoDetail = errors.New("grpcx: status has no apierror detail")

// ToStatus converts e into a gRPC status. A nil m means classify.Default().
// If the detail cannot be attached (strings that are not valid UTF-8 cannot
// be marshaled) the plain status is returned.
func ToStatus(e apierror.Error, m *classify.Mapper) *gstatus.Status {
	if m == nil {
		m = classify.Default()
	}
	st := gstatus.New(m.GRPCCode(e.Kind()), e.UserMessage())
	detail, err := Encode(e)
	if err != nil {
		return st
	}
	with, err := st.WithDetails(detail)
	if err != nil {
		return st
	}
	return with
}

// FromStatus rebuilds the error carried by a gRPC error, if any.
func FromStatus(err error) (apierror.Error, bool) {
	if err == nil {
		return nil, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return nil, false
	}
	e, derr := Decode(st)
	if derr != nil {
		return nil, false
	}
	return e, true
}

// Decode finds the record detail in st and rebuilds the error.
func Decode(st *gstatus.Status) (apierror.Error, error) {
	for _, d := range st.Details() {
		s, ok := d.(*structpb.Struct)
		if !ok {
			continue
		}
		rec, ok := s.GetFields()[DetailKey]
		if !ok {
			continue
		}
		return decodeRecord(rec.GetStructValue())
	}
	return nil, ErrNoDetail
}

// Encode builds the Struct detail for e.
func Encode(e apierror.Error) (*structpb.Struct, error) {
	r := apierror.Decompose(e)

	fields := map[string]*structpb.Value{
		"kind":         structpb.NewStringValue(string(r.Kind)),
		"message":      structpb.NewStringValue(r.Message),
		"param":        structpb.NewStringValue(r.Param),
		"sig_header":   structpb.NewStringValue(r.SigHeader),
		"code":         structpb.NewStringValue(r.Code),
		"http_body":    structpb.NewStringValue(r.HTTPBody),
		"http_status":  structpb.NewNumberValue(float64(r.HTTPStatus)),
		"should_retry": structpb.NewBoolValue(r.ShouldRetry),
	}

	// The JSON body travels as text: structpb numbers are float64 and would
	// lose integer precision.
	if r.JSONBody != nil {
		b, err := json.Marshal(r.JSONBody)
		if err != nil {
			return nil, fmt.Errorf("grpcx: encode json body: %w", err)
		}
		fields["json_body"] = structpb.NewStringValue(string(b))
	}

	headers := make(map[string]*structpb.Value, len(r.Headers))
	for k, vs := range r.Headers {
		list := make([]*structpb.Value, len(vs))
		for i, v := range vs {
			list[i] = structpb.NewStringValue(v)
		}
		headers[k] = structpb.NewListValue(&structpb.ListValue{Values: list})
	}
	fields["headers"] = structpb.NewStructValue(&structpb.Struct{Fields: headers})

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		DetailKey: structpb.NewStructValue(&structpb.Struct{Fields: fields}),
	}}, nil
}

func decodeRecord(s *structpb.Struct) (apierror.Error, error) {
	if s == nil {
		return nil, ErrNoDetail
	}
	f := s.GetFields()
	r := apierror.Record{
		Kind:        kind.Kind(f["kind"].GetStringValue()),
		Message:     f["message"].GetStringValue(),
		Param:       f["param"].GetStringValue(),
		SigHeader:   f["sig_header"].GetStringValue(),
		Code:        f["code"].GetStringValue(),
		HTTPBody:    f["http_body"].GetStringValue(),
		HTTPStatus:  int(f["http_status"].GetNumberValue()),
		ShouldRetry: f["should_retry"].GetBoolValue(),
	}
	if v, ok := f["json_body"]; ok {
		dec := json.NewDecoder(bytes.NewReader([]byte(v.GetStringValue())))
		dec.UseNumber()
		if err := dec.Decode(&r.JSONBody); err != nil {
			return nil, fmt.Errorf("grpcx: decode json body: %w", err)
		}
	}
	if hs := f["headers"].GetStructValue(); hs != nil {
		r.Headers = make(http.Header, len(hs.GetFields()))
		for k, v := range hs.GetFields() {
			var vals []string
			for _, item := range v.GetListValue().GetValues() {
				vals = append(vals, item.GetStringValue())
			}
			r.Headers[k] = vals
		}
	}
	return apierror.Reconstruct(r)
}
