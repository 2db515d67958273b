package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/freshtrack/client/api"
)

// Roles known to the platform.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleFresher = "fresher"
)

// Claims mirror what the platform puts into its access tokens.
type Claims struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Context is the auth state injected into each view: token, user, and
// the login/logout operations. Its lifetime is tied to the application
// root; logout tears it down. No singleton.
type Context struct {
	client *api.Client
	user   *api.User
}

func NewContext(client *api.Client) *Context {
	return &Context{client: client}
}

func (a *Context) Token() string   { return a.client.Token() }
func (a *Context) User() *api.User { return a.user }

// Login authenticates and stores the bearer token on the API client.
func (a *Context) Login(ctx context.Context, email, password string) (*api.User, error) {
	res, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	a.user = &res.User
	return a.user, nil
}

func (a *Context) Logout() {
	a.user = nil
	a.client.SetToken("")
}

// Valid reports whether a usable credential is present. The token is
// parsed without signature verification: the client has no key and
// only needs the expiry; the server remains the authority.
func (a *Context) Valid() bool {
	token := a.client.Token()
	if token == "" {
		return false
	}
	claims, err := ParseClaims(token)
	if err != nil {
		return false
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return false
	}
	return true
}

// Role returns the role claim of the current token, or empty.
func (a *Context) Role() string {
	if a.user != nil {
		return a.user.Role
	}
	claims, err := ParseClaims(a.client.Token())
	if err != nil {
		return ""
	}
	return claims.Role
}

// ParseClaims decodes token claims without verifying the signature.
func ParseClaims(token string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}
