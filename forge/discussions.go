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
	"time"

	"github.com/agentic-community/triagebot/retry"
	"github.com/shurcooL/githubv4"
)

// discussionPageSize is the page size used when walking discussions.
const discussionPageSize = 100

// Discussion is a point-in-time snapshot of a discussion and its most recent
// comments.
type Discussion struct {
	// ID is the GraphQL node ID, needed for label and comment mutations.
	ID       string              `json:"id"`
	Number   int                 `json:"number"`
	Title    string              `json:"title"`
	Body     string              `json:"body"`
	Author   string              `json:"author"`
	Labels   []string            `json:"labels"`
	Comments []DiscussionComment `json:"comments"`
}

// DiscussionComment is one comment within a discussion snapshot.
type DiscussionComment struct {
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// ListOpenDiscussions pages through open discussions ordered by most recent
// update and returns their numbers in that order. When maxItems is positive,
// the walk stops once that many numbers are collected. Enumeration is
// all-or-nothing: any page failure aborts with *EnumerationError.
func (c *Client) ListOpenDiscussions(ctx context.Context, maxItems int) ([]int, error) {
	var q struct {
		Repository struct {
			Discussions struct {
				Nodes []struct {
					Number int
				}
				PageInfo struct {
					EndCursor   githubv4.String
					HasNextPage bool
				}
			} `graphql:"discussions(first: $count, after: $cursor, orderBy: {field: UPDATED_AT, direction: DESC}, states: [OPEN])"`
		} `graphql:"repository(owner: $owner, name: $repo)"`
	}
	vars := map[string]any{
		"owner":  githubv4.String(c.owner),
		"repo":   githubv4.String(c.repo),
		"count":  githubv4.Int(discussionPageSize),
		"cursor": (*githubv4.String)(nil),
	}

	var numbers []int
	for {
		logCall(ctx, http.MethodPost, "graphql:discussions")

		if _, err := retry.Do(ctx, c.retry, "list_discussions", retryable, func() (struct{}, error) {
			return struct{}{}, c.gql.Query(ctx, &q, vars)
		}); err != nil {
			return nil, &EnumerationError{Operation: "list_discussions", Err: err}
		}

		for _, node := range q.Repository.Discussions.Nodes {
			numbers = append(numbers, node.Number)
			if maxItems > 0 && len(numbers) >= maxItems {
				return numbers, nil
			}
		}

		pageInfo := q.Repository.Discussions.PageInfo
		if !pageInfo.HasNextPage {
			return numbers, nil
		}
		vars["cursor"] = githubv4.NewString(pageInfo.EndCursor)
	}
}

// GetDiscussion fetches a snapshot of one discussion: title, body, author,
// labels, and the last hundred comments.
func (c *Client) GetDiscussion(ctx context.Context, number int) (Discussion, error) {
	var q struct {
		Repository struct {
			Discussion *struct {
				ID     string
				Title  string
				Body   string
				Author struct {
					Login string
				}
				Comments struct {
					Nodes []struct {
						Author struct {
							Login string
						}
						Body      string
						CreatedAt githubv4.DateTime
					}
				} `graphql:"comments(last: 100)"`
				Labels struct {
					Nodes []struct {
						Name string
					}
				} `graphql:"labels(last: 10)"`
			} `graphql:"discussion(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $repo)"`
	}
	vars := map[string]any{
		"owner":  githubv4.String(c.owner),
		"repo":   githubv4.String(c.repo),
		"number": githubv4.Int(number),
	}

	logCall(ctx, http.MethodPost, fmt.Sprintf("graphql:discussion/%d", number))

	if _, err := retry.Do(ctx, c.retry, "get_discussion", retryable, func() (struct{}, error) {
		return struct{}{}, c.gql.Query(ctx, &q, vars)
	}); err != nil {
		return Discussion{}, wrapErr("get_discussion", err)
	}

	node := q.Repository.Discussion
	if node == nil {
		return Discussion{}, &RequestError{
			Operation: "get_discussion",
			Err:       fmt.Errorf("discussion #%d not found", number),
		}
	}

	d := Discussion{
		ID:     node.ID,
		Number: number,
		Title:  node.Title,
		Body:   node.Body,
		Author: node.Author.Login,
	}
	for _, l := range node.Labels.Nodes {
		if l.Name != "" {
			d.Labels = append(d.Labels, l.Name)
		}
	}
	for _, comment := range node.Comments.Nodes {
		d.Comments = append(d.Comments, DiscussionComment{
			Author:    comment.Author.Login,
			Body:      comment.Body,
			CreatedAt: comment.CreatedAt.Time,
		})
	}
	return d, nil
}

// AddDiscussionLabel applies a label, by name, to a discussion.
//
// The forge's label mutation wants a label ID, so the repository's label list
// is re-fetched on every call rather than cached: labels can be renamed out
// from under a long-running batch, and freshness is worth one extra request
// per mutation at this volume.
func (c *Client) AddDiscussionLabel(ctx context.Context, discussionID, labelName string) error {
	labelID, err := c.resolveLabelID(ctx, labelName)
	if err != nil {
		return err
	}

	var m struct {
		AddLabelsToLabelable struct {
			ClientMutationID githubv4.String
		} `graphql:"addLabelsToLabelable(input: $input)"`
	}
	input := githubv4.AddLabelsToLabelableInput{
		LabelableID: githubv4.ID(discussionID),
		LabelIDs:    []githubv4.ID{githubv4.ID(labelID)},
	}

	logCall(ctx, http.MethodPost, "graphql:addLabelsToLabelable")

	if _, err := retry.Do(ctx, c.retry, "add_discussion_label", retryable, func() (struct{}, error) {
		return struct{}{}, c.gql.Mutate(ctx, &m, input, nil)
	}); err != nil {
		return wrapErr("add_discussion_label", err)
	}
	return nil
}

// AddDiscussionComment posts a comment on a discussion.
func (c *Client) AddDiscussionComment(ctx context.Context, discussionID, body string) error {
	var m struct {
		AddDiscussionComment struct {
			ClientMutationID githubv4.String
		} `graphql:"addDiscussionComment(input: $input)"`
	}
	input := githubv4.AddDiscussionCommentInput{
		DiscussionID: githubv4.ID(discussionID),
		Body:         githubv4.String(body),
	}

	logCall(ctx, http.MethodPost, "graphql:addDiscussionComment")

	if _, err := retry.Do(ctx, c.retry, "add_discussion_comment", retryable, func() (struct{}, error) {
		return struct{}{}, c.gql.Mutate(ctx, &m, input, nil)
	}); err != nil {
		return wrapErr("add_discussion_comment", err)
	}
	return nil
}

// resolveLabelID looks up a repository label's node ID by name,
// case-insensitively.
func (c *Client) resolveLabelID(ctx context.Context, labelName string) (string, error) {
	var q struct {
		Repository struct {
			Labels struct {
				Nodes []struct {
					ID   string
					Name string
				}
			} `graphql:"labels(first: 100)"`
		} `graphql:"repository(owner: $owner, name: $repo)"`
	}
	vars := map[string]any{
		"owner": githubv4.String(c.owner),
		"repo":  githubv4.String(c.repo),
	}

	logCall(ctx, http.MethodPost, "graphql:labels")

	if _, err := retry.Do(ctx, c.retry, "resolve_label", retryable, func() (struct{}, error) {
		return struct{}{}, c.gql.Query(ctx, &q, vars)
	}); err != nil {
		return "", wrapErr("resolve_label", err)
	}

	for _, label := range q.Repository.Labels.Nodes {
		if strings.EqualFold(label.Name, labelName) {
			return label.ID, nil
		}
	}
	return "", &RequestError{
		Operation: "resolve_label",
		Err:       fmt.Errorf("label %q not found in repository", labelName),
	}
}
