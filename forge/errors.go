/*
Copyright 2026 The Triagebot Authors
SPDX-License-Identifier: Apache-2.0
*/

package forge

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/agentic-community/triagebot/retry"
	"github.com/google/go-github/v84/github"
)

// RequestError reports a call that failed for a reason retrying cannot fix:
// malformed input, a missing resource, or a 4xx response from the forge.
type RequestError struct {
	Operation string
	Err       error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %v", e.Operation, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// EnumerationError reports that a paginated listing aborted partway through.
// Partial results are discarded; callers must treat enumeration as
// all-or-nothing.
type EnumerationError struct {
	Operation string
	Err       error
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("%s: enumeration aborted: %v", e.Operation, e.Err)
}

func (e *EnumerationError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is a transient failure whose retry budget
// was exhausted.
func IsTransient(err error) bool {
	var exhausted *retry.ExhaustedError
	return errors.As(err, &exhausted)
}

// retryable classifies forge API failures. Transport-level errors, 5xx
// responses, and rate limiting are worth retrying; anything else is not.
func retryable(err error) bool {
	if err == nil {
		return false
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		code := ghErr.Response.StatusCode
		return code >= http.StatusInternalServerError || code == http.StatusTooManyRequests
	}
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return true
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// The GraphQL client surfaces non-2xx responses as opaque errors; match
	// the 5xx and 429 families textually.
	msg := err.Error()
	if strings.Contains(msg, "non-200 OK status code: 5") ||
		strings.Contains(msg, "non-200 OK status code: 429") {
		return true
	}

	return false
}

// wrapErr classifies a failed call: exhausted-retry errors pass through so
// callers can detect them with IsTransient, everything else becomes a
// *RequestError.
func wrapErr(operation string, err error) error {
	if err == nil {
		return nil
	}
	if IsTransient(err) {
		return err
	}
	return &RequestError{Operation: operation, Err: err}
}
