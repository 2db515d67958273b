package api

import (
	"net/http"

	"github.com/freshtrack/client/srvcerror"
)

const ErrCodeMissingToken = "missing_token"

// ErrMissingToken means no credential is available. Callers treat this
// as an authentication failure and navigate to login; no network call
// is attempted.
func ErrMissingToken() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeMissingToken,
		"You are not signed in",
	).SetHttpStatusCode(http.StatusUnauthorized)
}

const ErrCodeUnauthorized = "unauthorized"

func ErrUnauthorized() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeUnauthorized,
		"Your session has expired, please sign in again",
	).SetHttpStatusCode(http.StatusUnauthorized)
}

const ErrCodeRequestFailed = "request_failed"

func ErrRequestFailed() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeRequestFailed,
		"Could not reach the server",
	).SetHttpStatusCode(http.StatusBadGateway)
}

const ErrCodeNoCompletedAttempts = "no_completed_attempts"

func ErrNoCompletedAttempts() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNoCompletedAttempts,
		"No completed attempts found for this assessment.",
	).SetHttpStatusCode(http.StatusNotFound)
}

// serverError carries the server's error message through verbatim so
// the UI can show exactly what the backend said.
func serverError(code, msg string, httpStatus int) *srvcerror.Error {
	if code == "" {
		code = "server_error"
	}
	if msg == "" {
		msg = http.StatusText(httpStatus)
	}
	return srvcerror.New(code, msg).SetHttpStatusCode(httpStatus)
}
