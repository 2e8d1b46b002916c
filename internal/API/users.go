package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserFilter narrows the user list; zero fields are omitted from the query.
type UserFilter struct {
	Role   string
	Search string
	Active *bool
	Page   int
	Limit  int
}

func (f UserFilter) query() string {
	values := url.Values{}
	if f.Role != "" {
		values.Set("role", f.Role)
	}
	if f.Search != "" {
		values.Set("search", f.Search)
	}
	if f.Active != nil {
		values.Set("active", strconv.FormatBool(*f.Active))
	}
	addPaging(values, f.Page, f.Limit)
	return encodeQuery(values)
}

// UserParams carries the mutable user fields for create and update.
type UserParams struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
	Active   *bool  `json:"active,omitempty"`
	Password string `json:"password,omitempty"`
}

func (c *Client) ListUsers(ctx context.Context, filter UserFilter) ([]User, *Pagination, error) {
	env, err := c.Get(ctx, "/admin/users"+filter.query(), nil)
	if err != nil {
		return nil, nil, err
	}

	var users []User
	if err := env.Decode(&users); err != nil {
		return nil, nil, err
	}

	return users, env.Pagination, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	env, err := c.Get(ctx, fmt.Sprintf("/admin/users/%d", id), nil)
	if err != nil {
		return nil, err
	}

	user := &User{}
	if err := env.Decode(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (c *Client) CreateUser(ctx context.Context, params UserParams) (*User, error) {
	env, err := c.Post(ctx, "/admin/users", params)
	if err != nil {
		return nil, err
	}

	user := &User{}
	if err := env.Decode(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int64, params UserParams) (*User, error) {
	env, err := c.Put(ctx, fmt.Sprintf("/admin/users/%d", id), params)
	if err != nil {
		return nil, err
	}

	user := &User{}
	if err := env.Decode(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	_, err := c.Delete(ctx, fmt.Sprintf("/admin/users/%d", id))
	return err
}

func addPaging(values url.Values, page, limit int) {
	if page > 0 {
		values.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
}

func encodeQuery(values url.Values) string {
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}
