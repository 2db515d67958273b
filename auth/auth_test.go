package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/freshtrack/client/api"
	"github.com/freshtrack/client/auth"
)

func mintToken(t *testing.T, role string, expiresIn time.Duration) string {
	t.Helper()
	claims := &auth.Claims{
		Name:  "Finn Fresher",
		Email: "fresher@freshtrack.dev",
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("key"))
	require.NoError(t, err)
	return token
}

func TestParseClaims(t *testing.T) {
	claims, err := auth.ParseClaims(mintToken(t, auth.RoleFresher, time.Hour))
	require.NoError(t, err)
	require.Equal(t, "fresher@freshtrack.dev", claims.Email)
	require.Equal(t, auth.RoleFresher, claims.Role)
}

func TestParseClaimsRejectsGarbage(t *testing.T) {
	_, err := auth.ParseClaims("not-a-jwt")
	require.Error(t, err)
}

func TestValid(t *testing.T) {
	client := api.NewClient("http://unused", api.WithToken(mintToken(t, auth.RoleFresher, time.Hour)))
	authCtx := auth.NewContext(client)
	require.True(t, authCtx.Valid())
}

func TestValidRejectsExpiredToken(t *testing.T) {
	client := api.NewClient("http://unused", api.WithToken(mintToken(t, auth.RoleFresher, -time.Minute)))
	authCtx := auth.NewContext(client)
	require.False(t, authCtx.Valid())
}

func TestValidRejectsEmptyToken(t *testing.T) {
	authCtx := auth.NewContext(api.NewClient("http://unused"))
	require.False(t, authCtx.Valid())
}

func TestRoleFromTokenClaims(t *testing.T) {
	client := api.NewClient("http://unused", api.WithToken(mintToken(t, auth.RoleManager, time.Hour)))
	authCtx := auth.NewContext(client)
	require.Equal(t, auth.RoleManager, authCtx.Role())
}

func TestLoginAndLogout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := json.Marshal(map[string]any{
			"status": "success",
			"data": api.LoginResponse{
				Token: mintToken(t, auth.RoleFresher, time.Hour),
				User:  api.User{ID: "u-1", Email: "fresher@freshtrack.dev", Role: auth.RoleFresher},
			},
		})
		w.Write(body)
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL)
	authCtx := auth.NewContext(client)

	user, err := authCtx.Login(context.Background(), "fresher@freshtrack.dev", "password")
	require.NoError(t, err)
	require.Equal(t, auth.RoleFresher, user.Role)
	require.True(t, authCtx.Valid())
	require.Equal(t, auth.RoleFresher, authCtx.Role())

	authCtx.Logout()
	require.False(t, authCtx.Valid())
	require.Nil(t, authCtx.User())
	require.Empty(t, client.Token())
}
