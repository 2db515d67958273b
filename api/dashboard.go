package api

import (
	"context"
	"net/http"
)

func (c *Client) FresherDashboard(ctx context.Context) (*FresherDashboard, error) {
	res, err := doJSON[FresherDashboard](c, ctx, http.MethodGet, "/dashboard/fresher", nil, true)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ManagerDashboard(ctx context.Context) (*ManagerDashboard, error) {
	res, err := doJSON[ManagerDashboard](c, ctx, http.MethodGet, "/dashboard/manager", nil, true)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) AdminDashboard(ctx context.Context) (*AdminDashboard, error) {
	res, err := doJSON[AdminDashboard](c, ctx, http.MethodGet, "/dashboard/admin", nil, true)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateUser provisions a platform account. Admin only.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	res, err := doJSON[User](c, ctx, http.MethodPost, "/admin/users", req, true)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	return doJSON[[]User](c, ctx, http.MethodGet, "/admin/users", nil, true)
}
