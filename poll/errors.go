package poll

import (
	"net/http"

	"github.com/freshtrack/client/srvcerror"
)

const ErrCodeMissingTraceID = "missing_trace_id"

func ErrMissingTraceID() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeMissingTraceID,
		"No grading trace to follow",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeGradingFailed = "grading_failed"

func ErrGradingFailed() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeGradingFailed,
		MsgGradingFailed,
	)
}

const ErrCodePollingTimedOut = "polling_timed_out"

func ErrPollingTimedOut() *srvcerror.Error {
	return srvcerror.New(
		ErrCodePollingTimedOut,
		MsgTimedOut,
	).SetHttpStatusCode(http.StatusGatewayTimeout)
}

const ErrCodeStatusRequestFailed = "status_request_failed"

func ErrStatusRequestFailed() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeStatusRequestFailed,
		"Failed to check grading status",
	).SetHttpStatusCode(http.StatusBadGateway)
}
