package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Move publication states.
const (
	MoveStatusDraft     = "draft"
	MoveStatusPublished = "published"
	MoveStatusArchived  = "archived"
)

type DanceMove struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	StyleID     int64     `json:"styleId"`
	StyleName   string    `json:"styleName"`
	Difficulty  string    `json:"difficulty"`
	Description string    `json:"description"`
	VideoURL    string    `json:"videoUrl"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type MoveFilter struct {
	StyleID    int64
	Difficulty string
	Status     string
	Search     string
	Page       int
	Limit      int
}

func (f MoveFilter) query() string {
	values := url.Values{}
	if f.StyleID > 0 {
		values.Set("styleId", strconv.FormatInt(f.StyleID, 10))
	}
	if f.Difficulty != "" {
		values.Set("difficulty", f.Difficulty)
	}
	if f.Status != "" {
		values.Set("status", f.Status)
	}
	if f.Search != "" {
		values.Set("search", f.Search)
	}
	addPaging(values, f.Page, f.Limit)
	return encodeQuery(values)
}

type MoveParams struct {
	Name        string `json:"name,omitempty"`
	StyleID     int64  `json:"styleId,omitempty"`
	Difficulty  string `json:"difficulty,omitempty"`
	Description string `json:"description,omitempty"`
	VideoURL    string `json:"videoUrl,omitempty"`
	Status      string `json:"status,omitempty"`
}

func (c *Client) ListMoves(ctx context.Context, filter MoveFilter) ([]DanceMove, *Pagination, error) {
	env, err := c.Get(ctx, "/admin/moves"+filter.query(), nil)
	if err != nil {
		return nil, nil, err
	}

	var moves []DanceMove
	if err := env.Decode(&moves); err != nil {
		return nil, nil, err
	}

	return moves, env.Pagination, nil
}

func (c *Client) GetMove(ctx context.Context, id int64) (*DanceMove, error) {
	env, err := c.Get(ctx, fmt.Sprintf("/admin/moves/%d", id), nil)
	if err != nil {
		return nil, err
	}

	move := &DanceMove{}
	if err := env.Decode(move); err != nil {
		return nil, err
	}

	return move, nil
}

func (c *Client) CreateMove(ctx context.Context, params MoveParams) (*DanceMove, error) {
	env, err := c.Post(ctx, "/admin/moves", params)
	if err != nil {
		return nil, err
	}

	move := &DanceMove{}
	if err := env.Decode(move); err != nil {
		return nil, err
	}

	return move, nil
}

func (c *Client) UpdateMove(ctx context.Context, id int64, params MoveParams) (*DanceMove, error) {
	env, err := c.Put(ctx, fmt.Sprintf("/admin/moves/%d", id), params)
	if err != nil {
		return nil, err
	}

	move := &DanceMove{}
	if err := env.Decode(move); err != nil {
		return nil, err
	}

	return move, nil
}

func (c *Client) DeleteMove(ctx context.Context, id int64) error {
	_, err := c.Delete(ctx, fmt.Sprintf("/admin/moves/%d", id))
	return err
}
