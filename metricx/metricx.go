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

// Package metricx counts classified API errors with Prometheus.
package metricx

import (
	"errors"
	"strconv"

	prom "github.com/prometheus/client_golang/prometheus"

	"dirpx.dev/apierror"
)

// Recorder counts errors by kind and HTTP status class. A nil *Recorder is
// a no-op, so callers can leave metrics unwired.
type Recorder struct {
	errors *prom.CounterVec
}

// NewRecorder registers the error counter with reg, or with a fresh
// registry when reg is nil. Registering twice against the same registry
// reuses the existing collector.
func NewRecorder(reg prom.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	cv := prom.NewCounterVec(prom.CounterOpts{
		Namespace: "apierror",
		Name:      "errors_total",
		Help:      "API errors by kind and HTTP status class",
	}, []string{"kind", "status_class"})

	if err := reg.Register(cv); err != nil {
		var are prom.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(*prom.CounterVec)
		if !ok {
			return nil, err
		}
		cv = existing
	}
	return &Recorder{errors: cv}, nil
}

// Observe counts e. Nil errors are ignored.
func (r *Recorder) Observe(e apierror.Error) {
	if r == nil || r.errors == nil || e == nil {
		return
	}
	r.errors.WithLabelValues(string(e.Kind()), StatusClass(e.HTTPStatus())).Inc()
}

// StatusClass buckets an HTTP status into "4xx", "5xx" and so on. Errors
// without a status (transport failures) fall into "none".
func StatusClass(status int) string {
	if status < 100 || status > 599 {
		return "none"
	}
	return strconv.Itoa(status/100) + "xx"
}
