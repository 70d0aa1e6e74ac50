/*
Copyright 2026 The Triagebot Authors
SPDX-License-Identifier: Apache-2.0
*/

package forge

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/agentic-community/triagebot/retry"
	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

// Client accesses one repository on the forge over both the REST and GraphQL
// APIs, sharing a single authenticated HTTP client. All calls carry the
// client's retry policy.
type Client struct {
	owner string
	repo  string

	http  *http.Client
	rest  *github.Client
	gql   *githubv4.Client
	retry retry.Config
}

// Option configures a Client.
type Option func(*Client) error

// WithRetryConfig overrides the default retry policy.
func WithRetryConfig(cfg retry.Config) Option {
	return func(c *Client) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		c.retry = cfg
		return nil
	}
}

// WithEnterpriseURLs points the client at a non-github.com API host, e.g. a
// GitHub Enterprise instance or a test server.
func WithEnterpriseURLs(restURL, graphqlURL string) Option {
	return func(c *Client) error {
		rest, err := c.rest.WithEnterpriseURLs(restURL, restURL)
		if err != nil {
			return fmt.Errorf("configuring REST base URL: %w", err)
		}
		c.rest = rest
		c.gql = githubv4.NewEnterpriseClient(graphqlURL, c.http)
		return nil
	}
}

// New creates a client for owner/repo authenticated with the given token.
func New(ctx context.Context, owner, repo, token string, opts ...Option) (*Client, error) {
	if owner == "" || repo == "" {
		return nil, fmt.Errorf("owner and repo are required")
	}
	if token == "" {
		return nil, fmt.Errorf("token is required")
	}

	hc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	c := &Client{
		owner: owner,
		repo:  repo,
		http:  hc,
		rest:  github.NewClient(hc),
		gql:   githubv4.NewClient(hc),
		retry: retry.DefaultConfig(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("applying option: %w", err)
		}
	}

	return c, nil
}

// Owner returns the repository owner this client is bound to.
func (c *Client) Owner() string { return c.owner }

// Repo returns the repository name this client is bound to.
func (c *Client) Repo() string { return c.repo }

// logCall records one outbound call for observability. Retries are logged
// separately by the retry package with attempt numbers.
func logCall(ctx context.Context, method, target string) {
	clog.FromContext(ctx).With("method", method).With("target", target).Debug("forge request")
}

// issuePath builds the REST path for an issue-scoped endpoint.
func (c *Client) issuePath(number int, parts ...string) string {
	path := fmt.Sprintf("repos/%s/%s/issues/%d", c.owner, c.repo, number)
	if len(parts) > 0 {
		path += "/" + strings.Join(parts, "/")
	}
	return path
}
