package session

import (
	"net/http"

	"github.com/freshtrack/client/srvcerror"
)

const ErrCodeNoAnswers = "no_answers"

func ErrNoAnswers() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNoAnswers,
		"Please answer at least one question before submitting",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeEmptyCode = "empty_code"

func ErrEmptyCode() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeEmptyCode,
		"Your solution is empty",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeEmptyAssignment = "empty_assignment"

func ErrEmptyAssignment() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeEmptyAssignment,
		"Write your submission or attach a file before submitting",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeAttachmentTooLarge = "attachment_too_large"

func ErrAttachmentTooLarge() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeAttachmentTooLarge,
		"File is too large, the limit is 10 MB",
	).SetHttpStatusCode(http.StatusRequestEntityTooLarge)
}

const ErrCodeAttachmentUnreadable = "attachment_unreadable"

func ErrAttachmentUnreadable() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeAttachmentUnreadable,
		"Could not read the selected file",
	).SetHttpStatusCode(http.StatusBadRequest)
}

const ErrCodeNotActive = "session_not_active"

func ErrNotActive() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNotActive,
		"The assessment is not open for submission",
	).SetHttpStatusCode(http.StatusConflict)
}

const ErrCodeNotConfirming = "session_not_confirming"

func ErrNotConfirming() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNotConfirming,
		"There is nothing to confirm",
	).SetHttpStatusCode(http.StatusConflict)
}
