package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/freshtrack/client/api"
	"github.com/freshtrack/client/conf"
	"github.com/freshtrack/client/poll"
	"github.com/freshtrack/client/result"
)

// resultsModel drives the result poller. With a trace ID it polls the
// workflow status until a terminal outcome; without one it performs the
// one-shot latest-result fetch.
type resultsModel struct {
	client *api.Client

	assessmentID string
	poller       *poll.Poller
	interval     time.Duration

	res     *result.Result
	loading bool
	errMsg  string
}

type pollDue struct{}

type pollFed struct {
	body []byte
	err  error
}

type latestLoaded struct {
	res *result.Result
	err error
}

func newResultsModel(cfg conf.Config, client *api.Client, assessmentID, traceID string) resultsModel {
	m := resultsModel{
		client:       client,
		assessmentID: assessmentID,
		interval:     time.Duration(cfg.PollIntervalMS) * time.Millisecond,
		loading:      true,
	}
	if traceID != "" {
		p, err := poll.New(traceID,
			poll.WithInterval(time.Duration(cfg.PollIntervalMS)*time.Millisecond),
			poll.WithMaxAttempts(cfg.PollMaxAttempts),
		)
		if err == nil {
			m.poller = p
		}
	}
	return m
}

func (m resultsModel) Init() tea.Cmd {
	if m.poller == nil {
		// no trace: one-shot fetch of the latest known result
		client, id := m.client, m.assessmentID
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			res, err := client.LatestResult(ctx, id)
			return latestLoaded{res: res, err: err}
		}
	}
	m.poller.Start(time.Now())
	return m.fetchCmd()
}

func (m resultsModel) fetchCmd() tea.Cmd {
	if !m.poller.Begin(time.Now()) {
		return nil
	}
	client, traceID := m.client, m.poller.TraceID()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		body, err := client.WorkflowStatus(ctx, traceID)
		return pollFed{body: body, err: err}
	}
}

func (m *resultsModel) teardown() {
	if m.poller != nil {
		m.poller.Cancel()
	}
}

func (m resultsModel) Update(msg tea.Msg) (resultsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case latestLoaded:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.res = msg.res
		return m, nil

	case pollFed:
		if m.poller == nil || m.poller.State() != poll.StatePolling {
			return m, nil // torn down or already terminal
		}
		if msg.err != nil {
			m.poller.FeedError(msg.err)
			m.loading = false
			m.errMsg = m.poller.Message()
			return m, nil
		}
		if err := m.poller.Feed(time.Now(), msg.body); err != nil {
			m.loading = false
			m.errMsg = err.Error()
			return m, nil
		}
		switch m.poller.State() {
		case poll.StateResolved:
			m.loading = false
			m.res = m.poller.Result()
			return m, nil
		case poll.StateFailed, poll.StateTimedOut:
			m.loading = false
			m.errMsg = m.poller.Message()
			return m, nil
		}
		// still pending: wake up when the next poll is due
		return m, tea.Tick(m.interval, func(time.Time) tea.Msg { return pollDue{} })

	case pollDue:
		if m.poller == nil {
			return m, nil
		}
		return m, m.fetchCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "b", "esc":
			m.teardown()
			return m, func() tea.Msg { return backToDashboard{} }
		case "t":
			// retake the assessment
			m.teardown()
			id := m.assessmentID
			return m, func() tea.Msg { return openAssessment{id: id} }
		case "q":
			m.teardown()
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m resultsModel) View() string {
	if m.loading {
		attempts := 0
		if m.poller != nil {
			attempts = m.poller.Attempts()
		}
		s := "Waiting for grading results"
		if attempts > 0 {
			s += fmt.Sprintf(" (check %d)", attempts)
		}
		return s + "...\n\nPress b to return to the dashboard.\n"
	}
	if m.errMsg != "" {
		return errStyle("%s", m.errMsg) +
			"\n\nPress b for dashboard, t to take the assessment again.\n"
	}

	res := m.res
	s := b("Results") + "\n\n"
	if res.AssessmentTitle != "" {
		s += res.AssessmentTitle + "\n"
	}
	s += fmt.Sprintf("Score: %.0f / %.0f\n", res.Score, res.MaxScore)
	switch res.PassStatus {
	case "passed":
		s += okStyle("PASSED") + "\n"
	case "failed":
		s += errStyle("NOT PASSED") + "\n"
	default:
		s += "Verdict: " + res.PassStatus + "\n"
	}

	if res.Feedback.OverallComment != "" {
		s += "\n" + res.Feedback.OverallComment + "\n"
	}
	if len(res.Feedback.Strengths) > 0 {
		s += "\nStrengths:\n"
		for _, item := range res.Feedback.Strengths {
			s += "  + " + item + "\n"
		}
	}
	if len(res.Feedback.Weaknesses) > 0 {
		s += "\nWeaknesses:\n"
		for _, item := range res.Feedback.Weaknesses {
			s += "  - " + item + "\n"
		}
	}
	if len(res.TestResults) > 0 {
		s += "\nTests:\n"
		for _, tr := range res.TestResults {
			mark := errStyle("✗")
			if tr.Passed {
				mark = okStyle("✓")
			}
			s += fmt.Sprintf("  %s %s\n", mark, tr.Name)
		}
	}

	s += "\nPress b for dashboard, t to retake, q to quit.\n"
	return s
}
