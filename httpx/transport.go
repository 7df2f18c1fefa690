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
	"context"
	"errors"
	"io"
	"net"
	"syscall"

	"dirpx.dev/apierror"
)

// FromTransportError classifies a failure that happened before a response
// was received. Timeouts become a TimeoutError; everything else becomes a
// ConnectionError, marked retryable when the connection was reset or closed
// mid-exchange. err stays reachable through errors.Is and errors.As.
// Errors that already belong to the taxonomy are returned unchanged.
// A nil err yields nil.
func FromTransportError(err error) apierror.Error {
	if err == nil {
		return nil
	}
	if e, ok := apierror.From(err); ok {
		return e
	}
	if isTimeout(err) {
		return apierror.NewTimeoutError("Request timed out: "+err.Error(), apierror.WithCause(err))
	}
	return apierror.NewConnectionError(
		"Error communicating with OpenAI: "+err.Error(),
		apierror.WithShouldRetry(isReset(err)),
		apierror.WithCause(err),
	)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, syscall.ETIMEDOUT) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func isReset(err error) bool {
	return errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, net.ErrClosed)
}
