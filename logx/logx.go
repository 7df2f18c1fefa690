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

// Package logx adapts apierror values to the structured loggers in use:
// log/slog attributes and zerolog objects. Both render the diagnostic
// fields only; bodies and headers never reach a log line.
package logx

import (
	"log/slog"

	"github.com/rs/zerolog"

	"dirpx.dev/apierror"
)

// Attr returns e as a slog group under key. A nil e renders as an empty
// group, which handlers drop.
func Attr(key string, e apierror.Error) slog.Attr {
	if e == nil {
		return slog.Group(key)
	}
	return slog.Attr{Key: key, Value: e.(slog.LogValuer).LogValue()}
}

// Err returns an "error" attribute for any error. Taxonomy errors render as
// a group; everything else as its message.
func Err(err error) slog.Attr {
	if e, ok := apierror.From(err); ok {
		return Attr("error", e)
	}
	if err == nil {
		return slog.Group("error")
	}
	return slog.String("error", err.Error())
}

// Zerolog wraps e for zerolog's Event.Object.
//
//	log.Error().Object("error", logx.Zerolog(e)).Msg("completion failed")
func Zerolog(e apierror.Error) zerolog.LogObjectMarshaler {
	return object{e}
}

type object struct {
	e apierror.Error
}

func (o object) MarshalZerologObject(ev *zerolog.Event) {
	if o.e == nil {
		return
	}
	ev.Str("kind", string(o.e.Kind())).Str("message", o.e.UserMessage())
	if s := o.e.HTTPStatus(); s != 0 {
		ev.Int("http_status", s)
	}
	if id := o.e.RequestID(); id != "" {
		ev.Str("request_id", id)
	}
	if c := o.e.Code(); c != "" {
		ev.Str("code", c)
	}
	switch v := o.e.(type) {
	case *apierror.ConnectionError:
		ev.Bool("should_retry", v.ShouldRetry())
	case *apierror.InvalidRequestError:
		if p := v.Param(); p != "" {
			ev.Str("param", p)
		}
	}
}
