package api

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user,omitempty"`
}

// Login exchanges credentials for a session token pair and persists it.
func (c *Client) Login(ctx context.Context, username, password string) (*User, error) {
	env, err := c.Post(ctx, "/auth/login", loginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	session := sessionResponse{}
	if err := env.Decode(&session); err != nil {
		return nil, err
	}
	if session.AccessToken == "" {
		return nil, errors.New("login response carried no access token")
	}

	if c.creds != nil {
		if err := c.creds.Save(session.AccessToken, session.RefreshToken); err != nil {
			return nil, errors.Wrap(err, "persist session")
		}
	}

	return session.User, nil
}

// RefreshSession trades the stored refresh token for a new token pair.
func (c *Client) RefreshSession(ctx context.Context) error {
	if c.creds == nil {
		return errors.New("no credential store configured")
	}

	refresh := c.creds.RefreshToken()
	if refresh == "" {
		return errors.New("no refresh token stored")
	}

	env, err := c.Post(ctx, "/auth/refresh", map[string]string{"refreshToken": refresh})
	if err != nil {
		return err
	}

	session := sessionResponse{}
	if err := env.Decode(&session); err != nil {
		return err
	}
	if session.AccessToken == "" {
		return errors.New("refresh response carried no access token")
	}

	return errors.Wrap(c.creds.Save(session.AccessToken, session.RefreshToken), "persist session")
}

// Logout drops the local session first, then tells the server to revoke the
// token it held. Clearing before the call keeps a stale-session 401 from
// re-triggering the unauthorized broadcast in the middle of a deliberate
// sign-out.
func (c *Client) Logout(ctx context.Context) error {
	token := ""
	if c.creds != nil {
		token = c.creds.AccessToken()
		c.creds.Clear()
	}
	if token == "" {
		return nil
	}

	opts := &RequestOptions{Headers: map[string]string{"Authorization": "Bearer " + token}}
	_, err := c.Request(ctx, http.MethodPost, "/auth/logout", nil, opts)
	if IsStatus(err, http.StatusUnauthorized) {
		// The server already considers the session dead; sign-out is done.
		return nil
	}
	return err
}
