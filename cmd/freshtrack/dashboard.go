package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/freshtrack/client/api"
	"github.com/freshtrack/client/srvcerror"
)

type dashboardModel struct {
	client *api.Client

	dash    *api.FresherDashboard
	loading bool
	errMsg  string
}

type dashboardLoaded struct {
	dash *api.FresherDashboard
	err  error
}

func newDashboardModel(client *api.Client) dashboardModel {
	return dashboardModel{client: client, loading: true}
}

func isAuthError(err error) bool {
	srvcErr := &srvcerror.Error{}
	if !errors.As(err, &srvcErr) {
		return false
	}
	code := srvcErr.ErrorCode()
	return code == api.ErrCodeMissingToken || code == api.ErrCodeUnauthorized
}

func (m dashboardModel) Init() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		dash, err := client.FresherDashboard(ctx)
		return dashboardLoaded{dash: dash, err: err}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoaded:
		m.loading = false
		if msg.err != nil {
			// a dead credential sends the user back to sign in
			if isAuthError(msg.err) {
				return m, func() tea.Msg { return loggedOut{} }
			}
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.dash = msg.dash
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "o":
			return m, func() tea.Msg { return loggedOut{} }
		case "r":
			m.loading = true
			m.errMsg = ""
			return m, m.Init()
		default:
			if m.dash == nil {
				return m, nil
			}
			// digits open a pending assessment
			for i := range m.dash.Pending {
				if msg.String() == fmt.Sprintf("%d", i+1) {
					id := m.dash.Pending[i].ID
					return m, func() tea.Msg { return openAssessment{id: id} }
				}
			}
			// letters view a completed assessment's latest result
			for i := range m.dash.Completed {
				if msg.String() == string(rune('a'+i)) {
					id := m.dash.Completed[i].ID
					return m, func() tea.Msg {
						return openResults{assessmentID: id}
					}
				}
			}
		}
	}
	return m, nil
}

func (m dashboardModel) View() string {
	if m.loading {
		return "Loading dashboard...\n"
	}
	if m.errMsg != "" {
		return errStyle("Error: %s", m.errMsg) + "\n\nPress r to retry, q to quit.\n"
	}

	s := b("Freshtrack") + " fresher dashboard\n\n"
	s += fmt.Sprintf("Progress: %.0f%%   Average score: %.1f\n\n",
		m.dash.OverallProgress, m.dash.AverageScore)

	s += "Pending assessments:\n"
	if len(m.dash.Pending) == 0 {
		s += "  (none, you are all caught up)\n"
	}
	for i, a := range m.dash.Pending {
		s += fmt.Sprintf("  %s %s [%s, %d min]\n",
			v("%d.", i+1), a.Title, a.Type, a.TimeLimitMinutes)
	}

	s += "\nCompleted:\n"
	if len(m.dash.Completed) == 0 {
		s += "  (none yet)\n"
	}
	for i, a := range m.dash.Completed {
		s += fmt.Sprintf("  %s %s: %.0f/%.0f\n",
			v("%c.", rune('a'+i)), a.Title, a.Score, a.MaxScore)
	}

	s += "\nPress a number to start, a letter to view results,\n"
	s += "r to refresh, o to sign out, q to quit.\n"
	return s
}
