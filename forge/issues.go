/*
Copyright 2026 The Triagebot Authors
SPDX-License-Identifier: Apache-2.0
*/

package forge

import (
	"context"
	"fmt"
	"net/http"

	"github.com/agentic-community/triagebot/retry"
	"github.com/agentic-community/triagebot/triage"
	"github.com/google/go-github/v84/github"
)

// searchPageSize is the forge's maximum page size for search results.
const searchPageSize = 100

// GetIssue fetches a point-in-time snapshot of a single issue.
func (c *Client) GetIssue(ctx context.Context, number int) (triage.Item, error) {
	logCall(ctx, http.MethodGet, c.issuePath(number))

	issue, err := retry.Do(ctx, c.retry, "get_issue", retryable, func() (*github.Issue, error) {
		issue, _, err := c.rest.Issues.Get(ctx, c.owner, c.repo, number)
		return issue, err
	})
	if err != nil {
		return triage.Item{}, wrapErr("get_issue", err)
	}
	return itemFromIssue(issue), nil
}

// searchPage carries one page of search results plus the continuation marker.
type searchPage struct {
	issues []*github.Issue
	next   int
}

// SearchOpenIssues walks the issue search endpoint to exhaustion and returns
// snapshots in the order the forge reports them (most recently created
// first). When maxItems is positive, the walk stops once that many items are
// collected without fetching further pages. Enumeration is all-or-nothing: a
// page fetch that exhausts its retries aborts with *EnumerationError and no
// partial results.
func (c *Client) SearchOpenIssues(ctx context.Context, maxItems int) ([]triage.Item, error) {
	query := fmt.Sprintf("repo:%s/%s is:open is:issue", c.owner, c.repo)
	opts := &github.SearchOptions{
		Sort:        "created",
		Order:       "desc",
		ListOptions: github.ListOptions{PerPage: searchPageSize},
	}

	var items []triage.Item
	for {
		logCall(ctx, http.MethodGet, fmt.Sprintf("search/issues?page=%d", opts.Page))

		page, err := retry.Do(ctx, c.retry, "search_issues", retryable, func() (searchPage, error) {
			result, resp, err := c.rest.Search.Issues(ctx, query, opts)
			if err != nil {
				return searchPage{}, err
			}
			return searchPage{issues: result.Issues, next: resp.NextPage}, nil
		})
		if err != nil {
			return nil, &EnumerationError{Operation: "search_issues", Err: err}
		}

		for _, issue := range page.issues {
			items = append(items, itemFromIssue(issue))
			if maxItems > 0 && len(items) >= maxItems {
				return items, nil
			}
		}

		if page.next == 0 {
			return items, nil
		}
		opts.Page = page.next
	}
}

// AddLabels adds the given labels to an issue.
func (c *Client) AddLabels(ctx context.Context, number int, labels ...string) error {
	logCall(ctx, http.MethodPost, c.issuePath(number, "labels"))

	_, err := retry.Do(ctx, c.retry, "add_labels", retryable, func() ([]*github.Label, error) {
		applied, _, err := c.rest.Issues.AddLabelsToIssue(ctx, c.owner, c.repo, number, labels)
		return applied, err
	})
	return wrapErr("add_labels", err)
}

// AddAssignees assigns the given logins to an issue.
func (c *Client) AddAssignees(ctx context.Context, number int, assignees ...string) error {
	logCall(ctx, http.MethodPost, c.issuePath(number, "assignees"))

	_, err := retry.Do(ctx, c.retry, "add_assignees", retryable, func() (*github.Issue, error) {
		issue, _, err := c.rest.Issues.AddAssignees(ctx, c.owner, c.repo, number, assignees)
		return issue, err
	})
	return wrapErr("add_assignees", err)
}

// AddComment posts a comment on an issue.
func (c *Client) AddComment(ctx context.Context, number int, body string) error {
	logCall(ctx, http.MethodPost, c.issuePath(number, "comments"))

	_, err := retry.Do(ctx, c.retry, "add_comment", retryable, func() (*github.IssueComment, error) {
		comment, _, err := c.rest.Issues.CreateComment(ctx, c.owner, c.repo, number, &github.IssueComment{
			Body: github.Ptr(body),
		})
		return comment, err
	})
	return wrapErr("add_comment", err)
}

// SetIssueType changes an issue's type (e.g. "Bug" or "Feature"). The typed
// issue API has no field for this, so the request is built by hand.
func (c *Client) SetIssueType(ctx context.Context, number int, issueType string) error {
	if issueType == "" {
		return &RequestError{Operation: "set_issue_type", Err: fmt.Errorf("issue type cannot be empty")}
	}
	path := c.issuePath(number)
	logCall(ctx, http.MethodPatch, path)

	_, err := retry.Do(ctx, c.retry, "set_issue_type", retryable, func() (struct{}, error) {
		req, err := c.rest.NewRequest(http.MethodPatch, path, map[string]string{"type": issueType})
		if err != nil {
			return struct{}{}, err
		}
		_, err = c.rest.Do(ctx, req, nil)
		return struct{}{}, err
	})
	return wrapErr("set_issue_type", err)
}

// itemFromIssue snapshots a forge issue into a triage item. Missing optional
// fields decode to empty values, never to a crash.
func itemFromIssue(issue *github.Issue) triage.Item {
	if issue == nil {
		return triage.Item{}
	}
	item := triage.Item{
		Number:      issue.GetNumber(),
		Title:       issue.GetTitle(),
		Body:        issue.GetBody(),
		Author:      issue.GetUser().GetLogin(),
		AuthorIsBot: issue.GetUser().GetType() == "Bot",
		CreatedAt:   issue.GetCreatedAt().Time,
	}
	for _, l := range issue.Labels {
		if name := l.GetName(); name != "" {
			item.Labels = append(item.Labels, name)
		}
	}
	for _, a := range issue.Assignees {
		if login := a.GetLogin(); login != "" {
			item.Assignees = append(item.Assignees, login)
		}
	}
	return item
}
