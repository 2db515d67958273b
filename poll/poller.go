package poll

import (
	"context"
	"time"

	"github.com/freshtrack/client/logger"
	"github.com/freshtrack/client/result"
)

// Poller states. A poller only ever moves forward: idle -> polling ->
// one of the terminal three.
const (
	StateIdle     = "idle"
	StatePolling  = "polling"
	StateResolved = "resolved"
	StateFailed   = "failed"
	StateTimedOut = "timed_out"
)

const (
	DefaultInterval    = 2 * time.Second
	DefaultMaxAttempts = 30
)

// Messages surfaced to the user on the two self-inflicted terminal
// states. A timed-out poll is not a grading failure: the work may still
// complete server-side, the client simply stopped waiting.
const (
	MsgGradingFailed = "Assessment grading failed. Please contact support."
	MsgTimedOut      = "Grading is taking longer than expected. Please check back later."
)

// FetchFunc performs one status request for a trace ID.
type FetchFunc func(ctx context.Context, traceID string) ([]byte, error)

// Poller tracks grading progress for a single workflow trace. It is a
// plain state machine: an external driver asks Due, performs the fetch,
// and hands the response back via Feed. That keeps cancellation and the
// attempt bound trivially testable, and guarantees at most one request
// in flight per trace.
type Poller struct {
	traceID     string
	interval    time.Duration
	maxAttempts int

	state    string
	attempts int
	nextDue  time.Time
	inFlight bool

	res    *result.Result
	errMsg string
}

type Option func(*Poller)

func WithInterval(d time.Duration) Option {
	return func(p *Poller) { p.interval = d }
}

func WithMaxAttempts(n int) Option {
	return func(p *Poller) { p.maxAttempts = n }
}

func New(traceID string, opts ...Option) (*Poller, error) {
	if traceID == "" {
		return nil, ErrMissingTraceID()
	}
	p := &Poller{
		traceID:     traceID,
		interval:    DefaultInterval,
		maxAttempts: DefaultMaxAttempts,
		state:       StateIdle,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *Poller) TraceID() string { return p.traceID }
func (p *Poller) State() string   { return p.state }
func (p *Poller) Attempts() int   { return p.attempts }

// Result is non-nil only in the resolved state.
func (p *Poller) Result() *result.Result { return p.res }

// Message is the user-facing explanation for failed and timed_out.
func (p *Poller) Message() string { return p.errMsg }

// Start arms the poller; the first poll is due immediately.
func (p *Poller) Start(now time.Time) {
	if p.state != StateIdle {
		return
	}
	p.state = StatePolling
	p.nextDue = now
}

// Due reports whether the driver should issue a status request now.
// Never true while a request is already in flight.
func (p *Poller) Due(now time.Time) bool {
	return p.state == StatePolling && !p.inFlight && !now.Before(p.nextDue)
}

// Begin marks a status request as in flight. Returns false when the
// poller is not due, so a racing driver cannot start a second request.
func (p *Poller) Begin(now time.Time) bool {
	if !p.Due(now) {
		return false
	}
	p.inFlight = true
	return true
}

// Feed classifies one status response. Terminal statuses (or a payload
// that already carries a pass/fail verdict) resolve the poller; an
// explicit "failed" fails it; anything else counts as an attempt and
// schedules the next poll, up to the attempt bound.
func (p *Poller) Feed(now time.Time, body []byte) error {
	if p.state != StatePolling {
		return nil
	}
	p.inFlight = false

	res, err := result.FromStatusPayload(body)
	if err != nil {
		p.state = StateFailed
		p.errMsg = err.Error()
		return err
	}

	switch {
	case res.Status == result.StatusFailed:
		p.state = StateFailed
		p.errMsg = MsgGradingFailed
	case result.IsTerminal(res.Status) || res.HasVerdict():
		p.state = StateResolved
		p.res = res
	default:
		p.attempts++
		if p.attempts >= p.maxAttempts {
			p.state = StateTimedOut
			p.errMsg = MsgTimedOut
		} else {
			p.nextDue = now.Add(p.interval)
		}
	}
	return nil
}

// FeedError reports a failed status request. Request errors are
// surfaced, never silently retried.
func (p *Poller) FeedError(err error) {
	if p.state != StatePolling {
		return
	}
	p.inFlight = false
	p.state = StateFailed
	p.errMsg = err.Error()
}

// Cancel releases the poller on view teardown. No poll is due after.
func (p *Poller) Cancel() {
	if p.state == StatePolling {
		p.state = StateIdle
		p.inFlight = false
	}
}

// Run drives the poller to a terminal state. It is strictly
// sequential: one fetch at a time, with the configured delay between
// attempts. Context cancellation releases everything immediately.
func (p *Poller) Run(ctx context.Context, fetch FetchFunc) (*result.Result, error) {
	log := logger.FromContext(logger.WithTraceID(ctx, p.traceID))
	p.Start(time.Now())
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			p.Cancel()
			return nil, ctx.Err()
		case <-timer.C:
			if !p.Begin(time.Now()) {
				timer.Reset(time.Until(p.nextDue))
				continue
			}
			body, err := fetch(ctx, p.traceID)
			if err != nil {
				p.FeedError(err)
				return nil, ErrStatusRequestFailed().SetDebug(err)
			}
			if err := p.Feed(time.Now(), body); err != nil {
				return nil, ErrStatusRequestFailed().SetDebug(err)
			}
			switch p.state {
			case StateResolved:
				log.Debug("grading resolved", "status", p.res.Status, "attempts", p.attempts)
				return p.res, nil
			case StateFailed:
				log.Warn("grading failed", "attempts", p.attempts)
				return nil, ErrGradingFailed()
			case StateTimedOut:
				log.Warn("gave up waiting for grading", "attempts", p.attempts)
				return nil, ErrPollingTimedOut()
			}
			timer.Reset(time.Until(p.nextDue))
		}
	}
}
