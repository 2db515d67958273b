package session

import (
	"github.com/freshtrack/client/api"
)

// Session statuses. Submitting is exclusive: no second submission can
// start while one is pending.
const (
	StatusLoading    = "loading"
	StatusActive     = "active"
	StatusConfirming = "confirming"
	StatusSubmitting = "submitting"
	StatusSubmitted  = "submitted"
	StatusErrored    = "errored"
)

// Session owns the transient state of one assessment attempt: the
// countdown, the in-progress buffer, and the submit state machine. It
// is single-owner state, driven from one goroutine (the UI loop).
type Session struct {
	assessmentID string
	kind         string
	timeLimit    int // seconds
	remaining    int

	status        string
	autoSubmitted bool // pending submission came from timer expiry
	autoFired     bool // expiry auto-submit already happened once
	errMsg        string

	buffer Buffer
}

// New creates a session in the loading status. timeLimitSeconds of
// zero means the attempt is untimed. questionIDs matter only for
// quizzes, where they define the answered/unanswered split.
func New(assessment *api.Assessment, timeLimitSeconds int) *Session {
	questionIDs := make([]string, 0, len(assessment.Questions))
	for _, q := range assessment.Questions {
		questionIDs = append(questionIDs, q.ID)
	}
	if timeLimitSeconds < 0 {
		timeLimitSeconds = 0
	}
	return &Session{
		assessmentID: assessment.ID,
		kind:         assessment.Type,
		timeLimit:    timeLimitSeconds,
		status:       StatusLoading,
		buffer:       newBuffer(assessment.Type, questionIDs, assessment.Language),
	}
}

func (s *Session) AssessmentID() string { return s.assessmentID }
func (s *Session) Kind() string         { return s.kind }
func (s *Session) Status() string       { return s.status }
func (s *Session) Remaining() int       { return s.remaining }
func (s *Session) TimeLimit() int       { return s.timeLimit }

// ErrMsg is the last submission error, shown while errored.
func (s *Session) ErrMsg() string { return s.errMsg }

// AutoSubmitted reports whether the pending submission was triggered by
// timer expiry rather than the user.
func (s *Session) AutoSubmitted() bool { return s.autoSubmitted }

func (s *Session) Buffer() *Buffer { return &s.buffer }

// Activate starts the attempt and arms the countdown.
func (s *Session) Activate() {
	if s.status != StatusLoading {
		return
	}
	s.remaining = s.timeLimit
	s.status = StatusActive
}

// Tick advances the countdown by one second. The clock keeps running
// while the confirmation prompt is open; time does not stop to let the
// user decide. On reaching zero the session transitions straight to
// submitting, exactly once, bypassing the confirmation gate: the user
// cannot answer a prompt once time has expired. An expired auto-submit
// proceeds even with an empty buffer, matching what the grading side
// expects of a timed-out attempt. Returns true on the tick that fires
// the auto-submit.
func (s *Session) Tick() bool {
	if s.timeLimit <= 0 {
		return false
	}
	if s.status != StatusActive && s.status != StatusConfirming {
		return false
	}
	if s.remaining > 0 {
		s.remaining--
	}
	if s.remaining == 0 && !s.autoFired {
		s.status = StatusSubmitting
		s.autoSubmitted = true
		s.autoFired = true
		return true
	}
	return false
}

// RequestSubmit is the first half of the confirmation gate: validate
// the buffer and, if it passes, move to confirming so the UI can show
// a summary. An invalid buffer keeps the session active with a
// user-visible validation error.
func (s *Session) RequestSubmit() error {
	if s.status != StatusActive {
		return ErrNotActive()
	}
	if err := s.buffer.Validate(); err != nil {
		return err
	}
	s.status = StatusConfirming
	return nil
}

// Confirm is the explicit second decision. Only valid while confirming;
// a confirm racing an in-flight submission is rejected, which is what
// guarantees at most one submission per session.
func (s *Session) Confirm() error {
	if s.status != StatusConfirming {
		return ErrNotConfirming()
	}
	s.status = StatusSubmitting
	s.autoSubmitted = false
	return nil
}

// CancelConfirm returns to editing without touching the buffer.
func (s *Session) CancelConfirm() {
	if s.status == StatusConfirming {
		s.status = StatusActive
	}
}

// SubmitSucceeded finalizes the session once a trace ID came back.
func (s *Session) SubmitSucceeded() {
	if s.status == StatusSubmitting {
		s.status = StatusSubmitted
	}
}

// SubmitFailed records the server's error verbatim and re-opens the
// session for a user-initiated retry. The buffer is never cleared on
// error.
func (s *Session) SubmitFailed(errMsg string) {
	if s.status != StatusSubmitting {
		return
	}
	s.status = StatusErrored
	s.errMsg = errMsg
}

// ResumeEditing acknowledges a submission error and returns to active
// so the user can retry through the same gate.
func (s *Session) ResumeEditing() {
	if s.status == StatusErrored {
		s.status = StatusActive
		s.errMsg = ""
	}
}

// BuildRequest assembles the immutable submission payload from the
// current buffer.
func (s *Session) BuildRequest() api.SubmitRequest {
	req := api.SubmitRequest{
		AssessmentID:   s.assessmentID,
		SubmissionType: s.kind,
	}
	switch s.kind {
	case api.KindQuiz:
		req.Answers = s.buffer.Answers
	case api.KindCode:
		req.Code = s.buffer.Code
		req.Language = s.buffer.Language
	case api.KindAssignment:
		req.Text = s.buffer.Text
		if s.buffer.File != nil {
			req.FileName = s.buffer.File.Name
			req.FileMIME = s.buffer.File.MIME
		}
	}
	return req
}

// Summary describes what is about to be submitted, shown by the
// confirmation gate.
type Summary struct {
	Answered   int
	Unanswered int
	WordCount  int
	CharCount  int
	FileName   string
}

func (s *Session) Summary() Summary {
	return s.buffer.summary()
}
