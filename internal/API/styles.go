package api

import (
	"context"
	"fmt"
	"net/url"
)

type DanceStyle struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Origin      string `json:"origin"`
	MoveCount   int    `json:"moveCount"`
}

type StyleParams struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Origin      string `json:"origin,omitempty"`
}

func (c *Client) ListStyles(ctx context.Context, search string) ([]DanceStyle, error) {
	values := url.Values{}
	if search != "" {
		values.Set("search", search)
	}

	env, err := c.Get(ctx, "/dance-styles"+encodeQuery(values), nil)
	if err != nil {
		return nil, err
	}

	var styles []DanceStyle
	if err := env.Decode(&styles); err != nil {
		return nil, err
	}

	return styles, nil
}

func (c *Client) GetStyle(ctx context.Context, id int64) (*DanceStyle, error) {
	env, err := c.Get(ctx, fmt.Sprintf("/dance-styles/%d", id), nil)
	if err != nil {
		return nil, err
	}

	style := &DanceStyle{}
	if err := env.Decode(style); err != nil {
		return nil, err
	}

	return style, nil
}

func (c *Client) CreateStyle(ctx context.Context, params StyleParams) (*DanceStyle, error) {
	env, err := c.Post(ctx, "/dance-styles", params)
	if err != nil {
		return nil, err
	}

	style := &DanceStyle{}
	if err := env.Decode(style); err != nil {
		return nil, err
	}

	return style, nil
}

func (c *Client) UpdateStyle(ctx context.Context, id int64, params StyleParams) (*DanceStyle, error) {
	env, err := c.Put(ctx, fmt.Sprintf("/dance-styles/%d", id), params)
	if err != nil {
		return nil, err
	}

	style := &DanceStyle{}
	if err := env.Decode(style); err != nil {
		return nil, err
	}

	return style, nil
}

func (c *Client) DeleteStyle(ctx context.Context, id int64) error {
	_, err := c.Delete(ctx, fmt.Sprintf("/dance-styles/%d", id))
	return err
}
