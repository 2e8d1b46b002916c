package api

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Submission review states.
const (
	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
	SubmissionRejected = "rejected"
)

// MoveSubmission is a member-submitted video awaiting moderator review.
type MoveSubmission struct {
	ID          int64      `json:"id"`
	MoveName    string     `json:"moveName"`
	StyleID     int64      `json:"styleId"`
	StyleName   string     `json:"styleName"`
	SubmittedBy string     `json:"submittedBy"`
	VideoURL    string     `json:"videoUrl"`
	Status      string     `json:"status"`
	ReviewNote  string     `json:"reviewNote"`
	SubmittedAt time.Time  `json:"submittedAt"`
	ReviewedAt  *time.Time `json:"reviewedAt,omitempty"`
}

type SubmissionFilter struct {
	Status string
	Page   int
	Limit  int
}

func (f SubmissionFilter) query() string {
	values := url.Values{}
	if f.Status != "" {
		values.Set("status", f.Status)
	}
	addPaging(values, f.Page, f.Limit)
	return encodeQuery(values)
}

// ReviewDecision resolves a pending submission.
type ReviewDecision struct {
	Status string `json:"status"` // SubmissionApproved or SubmissionRejected
	Note   string `json:"note,omitempty"`
}

func (c *Client) ListSubmissions(ctx context.Context, filter SubmissionFilter) ([]MoveSubmission, *Pagination, error) {
	return c.listSubmissions(ctx, filter, nil)
}

// ListSubmissionsFresh bypasses the response cache; the watch loop uses it so
// polling observes server-side changes inside the cache TTL.
func (c *Client) ListSubmissionsFresh(ctx context.Context, filter SubmissionFilter) ([]MoveSubmission, *Pagination, error) {
	return c.listSubmissions(ctx, filter, &RequestOptions{SkipCache: true})
}

func (c *Client) listSubmissions(ctx context.Context, filter SubmissionFilter, opts *RequestOptions) ([]MoveSubmission, *Pagination, error) {
	env, err := c.Get(ctx, "/admin/move-submissions"+filter.query(), opts)
	if err != nil {
		return nil, nil, err
	}

	var subs []MoveSubmission
	if err := env.Decode(&subs); err != nil {
		return nil, nil, err
	}

	return subs, env.Pagination, nil
}

func (c *Client) GetSubmission(ctx context.Context, id int64) (*MoveSubmission, error) {
	env, err := c.Get(ctx, fmt.Sprintf("/admin/move-submissions/%d", id), nil)
	if err != nil {
		return nil, err
	}

	sub := &MoveSubmission{}
	if err := env.Decode(sub); err != nil {
		return nil, err
	}

	return sub, nil
}

// ReviewSubmission approves or rejects a pending submission.
func (c *Client) ReviewSubmission(ctx context.Context, id int64, decision ReviewDecision) (*MoveSubmission, error) {
	env, err := c.Put(ctx, fmt.Sprintf("/admin/move-submissions/%d/review", id), decision)
	if err != nil {
		return nil, err
	}

	sub := &MoveSubmission{}
	if err := env.Decode(sub); err != nil {
		return nil, err
	}

	return sub, nil
}
