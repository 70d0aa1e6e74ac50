/*
Copyright 2026 The Triagebot Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package forge wraps the GitHub REST and GraphQL APIs behind a client with
// bounded automatic retry.
//
// Every outbound call is attempted up to three times with a fixed delay
// between attempts; only transport-level failures and 5xx/rate-limit
// responses are retried. Non-retryable failures (4xx responses, malformed
// requests) surface immediately as *RequestError without consuming the retry
// budget, and exhausted retries surface as *retry.ExhaustedError (see
// IsTransient).
//
// Listing endpoints are walked to exhaustion and are all-or-nothing: a page
// fetch that exhausts its retries aborts the whole enumeration with
// *EnumerationError and no partial results. Remote-reported ordering is
// preserved; an optional maximum item count short-circuits the walk.
//
// The client holds no cursor or cache state between calls; re-invoking a
// listing re-fetches from the forge.
package forge
