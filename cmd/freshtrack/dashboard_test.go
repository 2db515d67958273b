package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freshtrack/client/api"
)

func TestDashboardAuthErrorReturnsToLogin(t *testing.T) {
	for _, err := range []error{api.ErrUnauthorized(), api.ErrMissingToken()} {
		m := newDashboardModel(nil)
		m, cmd := m.Update(dashboardLoaded{err: err})
		require.NotNil(t, cmd)
		require.IsType(t, loggedOut{}, cmd(), "a dead credential navigates to sign in")
		require.Empty(t, m.errMsg)
	}
}

func TestDashboardOtherErrorsStayInline(t *testing.T) {
	m := newDashboardModel(nil)
	m, cmd := m.Update(dashboardLoaded{err: errors.New("connection refused")})
	require.Nil(t, cmd)
	require.Equal(t, "connection refused", m.errMsg)
}
