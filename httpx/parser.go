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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"dirpx.dev/apierror"
	"dirpx.dev/apierror/classify"
	"dirpx.dev/apierror/logx"
)

// DefaultMaxBody caps how much of an error response body Parser reads.
const DefaultMaxBody int64 = 1 << 20

// Observer is notified of every error a Parser produces.
// *metricx.Recorder satisfies it.
type Observer interface {
	Observe(e apierror.Error)
}

// Parser classifies failed HTTP exchanges. The zero value is ready to use.
type Parser struct {
	// Mapper picks the kind from status and envelope. Nil means
	// classify.Default().
	Mapper *classify.Mapper

	// MaxBody limits the bytes read from an error body. Zero or negative
	// means DefaultMaxBody.
	MaxBody int64

	// Logger, if set, receives one debug record per classified error.
	Logger *slog.Logger

	// Observer, if set, is called with every classified error.
	Observer Observer
}

// Do sends req with c and returns the response when its status is 2xx.
// Any other outcome comes back as an apierror.Error; in that case the
// response body has already been read and closed.
func (p Parser) Do(c *http.Client, req *http.Request) (*http.Response, error) {
	if c == nil {
		c = http.DefaultClient
	}
	resp, err := c.Do(req)
	if err != nil {
		e := FromTransportError(err)
		p.report(e)
		return nil, e
	}
	if e := p.FromResponse(resp); e != nil {
		return nil, e
	}
	return resp, nil
}

// FromResponse returns nil for 2xx responses and leaves their body alone.
// For any other status it reads (at most MaxBody bytes) and closes the body
// and returns the classified error.
func (p Parser) FromResponse(resp *http.Response) apierror.Error {
	if resp == nil || (resp.StatusCode >= 200 && resp.StatusCode < 300) {
		return nil
	}
	var body []byte
	if resp.Body != nil {
		defer func() { _ = resp.Body.Close() }()
		b, err := io.ReadAll(io.LimitReader(resp.Body, p.maxBody()))
		if err != nil {
			e := FromTransportError(err)
			p.report(e)
			return e
		}
		body = b
	}
	return p.Interpret(resp.StatusCode, body, resp.Header)
}

// Interpret classifies a failed response that has already been read.
//
// A body that is not a JSON object yields a GenericAPIError, as does a JSON
// object without an "error" mapping. Otherwise the kind comes from the
// Mapper, the message from error.message (with error.internal_message
// appended after a blank line) and the code and param from the envelope.
func (p Parser) Interpret(status int, body []byte, header http.Header) apierror.Error {
	opts := []apierror.Option{
		apierror.WithBody(body),
		apierror.WithStatus(status),
		apierror.WithHeaders(header),
	}

	data, err := decodeObject(body)
	if err != nil {
		e := apierror.NewAPIError(fmt.Sprintf("Invalid response body from API: %s (HTTP response code was %d)", bodyText(body), status), opts...)
		p.report(e)
		return e
	}
	opts = append(opts, apierror.WithJSON(data))

	envelope, ok := data["error"].(map[string]any)
	if !ok {
		e := apierror.NewAPIError(fmt.Sprintf("Invalid response object from API: %s (HTTP response code was %d)", bodyText(body), status), opts...)
		p.report(e)
		return e
	}

	obj := apierror.ConstructFrom(envelope)
	var message string
	if obj.Message != nil {
		message = *obj.Message
	}
	if internal, ok := obj.Extra["internal_message"].(string); ok {
		message += "\n\n" + internal
	}
	if code := obj.CodeString(); code != "" {
		opts = append(opts, apierror.WithCode(code))
	}
	if obj.Param != nil {
		opts = append(opts, apierror.WithParam(*obj.Param))
	}

	e := apierror.New(p.mapper().Kind(status, obj), message, opts...)
	p.report(e)
	return e
}

func (p Parser) mapper() *classify.Mapper {
	if p.Mapper != nil {
		return p.Mapper
	}
	return classify.Default()
}

func (p Parser) maxBody() int64 {
	if p.MaxBody > 0 {
		return p.MaxBody
	}
	return DefaultMaxBody
}

func (p Parser) report(e apierror.Error) {
	if p.Logger != nil {
		p.Logger.Debug("api request failed", logx.Attr("error", e))
	}
	if p.Observer != nil {
		p.Observer.Observe(e)
	}
}

var errTrailingData = errors.New("httpx: trailing data after JSON value")

// decodeObject decodes body as a single JSON object, keeping numbers as
// json.Number.
func decodeObject(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	if m == nil {
		// a literal null
		return nil, errors.New("httpx: JSON body is null")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}
	return m, nil
}

func bodyText(body []byte) string {
	if !utf8.Valid(body) {
		return apierror.UndecodableBody
	}
	return string(body)
}
