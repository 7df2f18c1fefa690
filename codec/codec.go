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

// Package codec serializes apierror values to JSON and back.
//
// The wire shape is apierror.Record. Errors hold their JSON body numbers as
// json.Number and the decoder reads them back the same way, so integer and
// float payloads survive a round trip unchanged.
//
// A stream is a sequence of records, one per line, as written by Encode.
// Read it with a Decoder; Decode reads a single record.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"dirpx.dev/apierror"
)

// ErrMalformed is returned when the input is not a valid encoded record.
var ErrMalformed = errors.New("codec: malformed error record")

// Marshal encodes e as a JSON record.
func Marshal(e apierror.Error) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, e); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Unmarshal decodes a JSON record produced by Marshal and rebuilds the error.
func Unmarshal(data []byte) (apierror.Error, error) {
	return Decode(bytes.NewReader(data))
}

// Encode writes e as one JSON record followed by a newline.
func Encode(w io.Writer, e apierror.Error) error {
	if e == nil {
		return fmt.Errorf("%w: nil error", ErrMalformed)
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(apierror.Decompose(e)); err != nil {
		return fmt.Errorf("codec: encode: %w", err)
	}
	return nil
}

// Decode reads one JSON record from r and rebuilds the error. It may read
// past the end of that record, so use a Decoder for streams. An empty input
// is malformed.
func Decode(r io.Reader) (apierror.Error, error) {
	e, err := NewDecoder(r).Decode()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return e, err
}

// Decoder reads a stream of records.
type Decoder struct {
	dec *json.Decoder
}

// NewDecoder returns a Decoder reading from r. The Decoder buffers, so r
// must not be read by anyone else afterwards.
func NewDecoder(r io.Reader) *Decoder {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &Decoder{dec: dec}
}

// Decode reads the next record and rebuilds the error. At the end of the
// stream it returns io.EOF unwrapped; any other failure wraps ErrMalformed.
func (d *Decoder) Decode() (apierror.Error, error) {
	var rec apierror.Record
	if err := d.dec.Decode(&rec); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	e, err := apierror.Reconstruct(rec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return e, nil
}
