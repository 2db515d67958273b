package api

import (
	"context"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token. The token is stored
// on the client for subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	res, err := doJSON[LoginResponse](c, ctx, http.MethodPost, "/auth/login",
		loginRequest{Email: email, Password: password}, false)
	if err != nil {
		return nil, err
	}
	c.token = res.Token
	return &res, nil
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*LoginResponse, error) {
	res, err := doJSON[LoginResponse](c, ctx, http.MethodPost, "/auth/register",
		registerRequest{Name: name, Email: email, Password: password}, false)
	if err != nil {
		return nil, err
	}
	c.token = res.Token
	return &res, nil
}

func (c *Client) Whoami(ctx context.Context) (*User, error) {
	res, err := doJSON[User](c, ctx, http.MethodGet, "/auth/whoami", nil, true)
	if err != nil {
		return nil, err
	}
	return &res, nil
}
