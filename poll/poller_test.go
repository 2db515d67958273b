package poll_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/freshtrack/client/poll"
)

var pendingBody = []byte(`{"status":"pending"}`)

func newPolling(t *testing.T, now time.Time, opts ...poll.Option) *poll.Poller {
	t.Helper()
	p, err := poll.New("trace-1", opts...)
	require.NoError(t, err)
	p.Start(now)
	return p
}

func TestNewRequiresTraceID(t *testing.T) {
	_, err := poll.New("")
	require.Error(t, err)
}

func TestPollTerminationAfterMaxAttempts(t *testing.T) {
	now := time.Now()
	p := newPolling(t, now)

	for i := 0; i < poll.DefaultMaxAttempts; i++ {
		require.True(t, p.Begin(now), "attempt %d should be due", i+1)
		require.NoError(t, p.Feed(now, pendingBody))
		now = now.Add(poll.DefaultInterval)
	}

	require.Equal(t, poll.StateTimedOut, p.State())
	require.Equal(t, poll.DefaultMaxAttempts, p.Attempts())
	require.Equal(t, poll.MsgTimedOut, p.Message())

	// nothing is due once timed out
	require.False(t, p.Due(now.Add(time.Hour)))
}

func TestPollNotDueBeforeInterval(t *testing.T) {
	now := time.Now()
	p := newPolling(t, now)

	require.True(t, p.Begin(now))
	require.NoError(t, p.Feed(now, pendingBody))

	require.False(t, p.Due(now.Add(poll.DefaultInterval-time.Millisecond)))
	require.True(t, p.Due(now.Add(poll.DefaultInterval)))
}

func TestSequentialInFlightGuard(t *testing.T) {
	now := time.Now()
	p := newPolling(t, now)

	require.True(t, p.Begin(now))
	// a racing driver may not start a second request
	require.False(t, p.Begin(now))
	require.False(t, p.Due(now))
}

func TestResolvedOnCompletedStatus(t *testing.T) {
	now := time.Now()
	p := newPolling(t, now)

	require.True(t, p.Begin(now))
	body := []byte(`{"status":"completed","state":{"score":80,"max_score":100,"pass_status":"passed"}}`)
	require.NoError(t, p.Feed(now, body))

	require.Equal(t, poll.StateResolved, p.State())
	res := p.Result()
	require.NotNil(t, res)
	require.Equal(t, 80.0, res.Score)
	require.Equal(t, "passed", res.PassStatus)
}

func TestResolvedOnVerdictWithoutTerminalStatus(t *testing.T) {
	now := time.Now()
	p := newPolling(t, now)

	require.True(t, p.Begin(now))
	// no terminal status token, but the verdict is already present
	body := []byte(`{"status":"processing","score":50,"pass_status":"failed"}`)
	require.NoError(t, p.Feed(now, body))
	require.Equal(t, poll.StateResolved, p.State())
}

func TestFailedStatus(t *testing.T) {
	now := time.Now()
	p := newPolling(t, now)

	require.True(t, p.Begin(now))
	require.NoError(t, p.Feed(now, []byte(`{"status":"failed"}`)))

	require.Equal(t, poll.StateFailed, p.State())
	require.Equal(t, poll.MsgGradingFailed, p.Message())
}

func TestFeedErrorStopsPolling(t *testing.T) {
	now := time.Now()
	p := newPolling(t, now)

	require.True(t, p.Begin(now))
	p.FeedError(errors.New("connection refused"))

	require.Equal(t, poll.StateFailed, p.State())
	require.Equal(t, "connection refused", p.Message())
}

func TestCancelReleasesPoller(t *testing.T) {
	now := time.Now()
	p := newPolling(t, now)

	require.True(t, p.Begin(now))
	require.NoError(t, p.Feed(now, pendingBody))

	p.Cancel()
	require.Equal(t, poll.StateIdle, p.State())
	require.False(t, p.Due(now.Add(time.Hour)))
	require.False(t, p.Begin(now.Add(time.Hour)))
}

func TestRunResolves(t *testing.T) {
	p, err := poll.New("trace-xyz", poll.WithInterval(time.Millisecond))
	require.NoError(t, err)

	var calls atomic.Int32
	fetch := func(ctx context.Context, traceID string) ([]byte, error) {
		require.Equal(t, "trace-xyz", traceID)
		if calls.Add(1) < 3 {
			return pendingBody, nil
		}
		return []byte(`{"status":"graded","score":"95","max_score":100,"pass_status":"passed"}`), nil
	}

	res, err := p.Run(context.Background(), fetch)
	require.NoError(t, err)
	require.Equal(t, 95.0, res.Score)
	require.EqualValues(t, 3, calls.Load())
}

func TestRunTimesOut(t *testing.T) {
	p, err := poll.New("trace-xyz",
		poll.WithInterval(time.Millisecond),
		poll.WithMaxAttempts(5))
	require.NoError(t, err)

	var calls atomic.Int32
	fetch := func(ctx context.Context, traceID string) ([]byte, error) {
		calls.Add(1)
		return pendingBody, nil
	}

	_, err = p.Run(context.Background(), fetch)
	require.Error(t, err)
	require.Equal(t, poll.StateTimedOut, p.State())
	require.EqualValues(t, 5, calls.Load())
}

func TestRunCancelledByContext(t *testing.T) {
	p, err := poll.New("trace-xyz", poll.WithInterval(50*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	fetch := func(ctx context.Context, traceID string) ([]byte, error) {
		cancel() // tear down mid-flight
		return pendingBody, nil
	}

	_, err = p.Run(ctx, fetch)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, poll.StateIdle, p.State())
}
