package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v82/github"

	"github.com/prvet-dev/prvet/internal/review"
)

// SubmitReview posts a review payload to the pull request:
//   - comments present: one review carrying every inline comment plus
//     the top-level body and event
//   - no comments but a body: a standalone issue-level comment
//   - both empty: nothing
func (c *Client) SubmitReview(ctx context.Context, ref PRRef, payload review.Payload) error {
	if len(payload.Comments) == 0 {
		if payload.Body == "" {
			return nil
		}
		return c.CreateIssueComment(ctx, ref, payload.Body)
	}

	drafts := make([]*gh.DraftReviewComment, 0, len(payload.Comments))
	for _, cm := range payload.Comments {
		side := cm.Side
		if side == "" {
			side = review.SideRight
		}
		drafts = append(drafts, &gh.DraftReviewComment{
			Path: gh.Ptr(cm.Path),
			Line: gh.Ptr(cm.Line),
			Body: gh.Ptr(cm.Body),
			Side: gh.Ptr(side),
		})
	}

	req := &gh.PullRequestReviewRequest{
		Body:     gh.Ptr(payload.Body),
		Event:    gh.Ptr(string(payload.Event)),
		Comments: drafts,
	}

	_, _, err := c.gh.PullRequests.CreateReview(ctx, ref.Owner, ref.Repo, ref.Number, req)
	if err != nil {
		return fmt.Errorf("creating review for %s: %w", ref, err)
	}
	return nil
}

// CreateIssueComment adds a PR-level comment via the Issues API.
func (c *Client) CreateIssueComment(ctx context.Context, ref PRRef, body string) error {
	comment := &gh.IssueComment{Body: gh.Ptr(body)}
	_, _, err := c.gh.Issues.CreateComment(ctx, ref.Owner, ref.Repo, ref.Number, comment)
	if err != nil {
		return fmt.Errorf("creating comment on %s: %w", ref, err)
	}
	return nil
}

// ReplyToComment replies to an existing review comment thread.
func (c *Client) ReplyToComment(ctx context.Context, ref PRRef, commentID int64, body string) error {
	_, _, err := c.gh.PullRequests.CreateCommentInReplyTo(ctx, ref.Owner, ref.Repo, ref.Number, body, commentID)
	if err != nil {
		return fmt.Errorf("replying to comment %d on %s: %w", commentID, ref, err)
	}
	return nil
}
