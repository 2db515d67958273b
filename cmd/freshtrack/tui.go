// tui.go
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/freshtrack/client/api"
	"github.com/freshtrack/client/auth"
	"github.com/freshtrack/client/conf"
	"github.com/freshtrack/client/store"
)

type phase int

const (
	phaseLogin phase = iota
	phaseDashboard
	phaseSession
	phaseResults
)

type model struct {
	phase phase

	cfg     conf.Config
	client  *api.Client
	authCtx *auth.Context
	cache   *store.Cache

	login     loginModel
	dashboard dashboardModel
	session   sessionModel
	results   resultsModel
}

func initialModel(cfg conf.Config, client *api.Client, authCtx *auth.Context, cache *store.Cache) model {
	return model{
		phase:   phaseLogin,
		cfg:     cfg,
		client:  client,
		authCtx: authCtx,
		cache:   cache,
		login:   newLoginModel(authCtx),
	}
}

func (m model) Init() tea.Cmd {
	return m.login.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case loggedIn:
		m.phase = phaseDashboard
		m.dashboard = newDashboardModel(m.client)
		return m, m.dashboard.Init()

	case openAssessment:
		m.phase = phaseSession
		m.session = newSessionModel(m.client, m.cache, msg.id)
		return m, m.session.Init()

	case openResults:
		m.phase = phaseResults
		m.results = newResultsModel(m.cfg, m.client, msg.assessmentID, msg.traceID)
		return m, m.results.Init()

	case backToDashboard:
		// releases any pending reschedules of the leaving view
		if m.phase == phaseResults {
			m.results.teardown()
		}
		if m.phase == phaseSession {
			m.session.teardown()
		}
		m.phase = phaseDashboard
		m.dashboard = newDashboardModel(m.client)
		return m, m.dashboard.Init()

	case loggedOut:
		m.authCtx.Logout()
		m.phase = phaseLogin
		m.login = newLoginModel(m.authCtx)
		return m, m.login.Init()
	}

	var cmd tea.Cmd
	switch m.phase {
	case phaseLogin:
		m.login, cmd = m.login.Update(msg)
	case phaseDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	case phaseSession:
		m.session, cmd = m.session.Update(msg)
	case phaseResults:
		m.results, cmd = m.results.Update(msg)
	}
	return m, cmd
}

func (m model) View() string {
	switch m.phase {
	case phaseLogin:
		return m.login.View()
	case phaseDashboard:
		return m.dashboard.View()
	case phaseSession:
		return m.session.View()
	case phaseResults:
		return m.results.View()
	default:
		return ""
	}
}

// navigation messages between views

type loggedIn struct{}
type loggedOut struct{}
type backToDashboard struct{}

type openAssessment struct{ id string }

type openResults struct {
	assessmentID string
	traceID      string // empty means "show latest known result"
}

// shared lipgloss helpers, taskcli-style

func b(format string, a ...any) string {
	blueText := lipgloss.NewStyle().Foreground(lipgloss.Color("#3498db"))
	return blueText.Render(fmt.Sprintf(format, a...))
}

func v(format string, a ...any) string {
	violetText := lipgloss.NewStyle().Foreground(lipgloss.Color("#e056fd"))
	return violetText.Render(fmt.Sprintf(format, a...))
}

func errStyle(format string, a ...any) string {
	redText := lipgloss.NewStyle().Foreground(lipgloss.Color("#e74c3c"))
	return redText.Render(fmt.Sprintf(format, a...))
}

func okStyle(format string, a ...any) string {
	greenText := lipgloss.NewStyle().Foreground(lipgloss.Color("#2ecc71"))
	return greenText.Render(fmt.Sprintf(format, a...))
}
