package main

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/freshtrack/client/auth"
)

type loginModel struct {
	authCtx *auth.Context

	email    textinput.Model
	password textinput.Model
	onEmail  bool
	waiting  bool
	errMsg   string
}

type loginResult struct {
	err error
}

func newLoginModel(authCtx *auth.Context) loginModel {
	email := textinput.New()
	email.Placeholder = "you@company.com"
	email.CharLimit = 156
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 156
	password.Width = 40

	return loginModel{
		authCtx:  authCtx,
		email:    email,
		password: password,
		onEmail:  true,
	}
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResult:
		m.waiting = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			m.password.SetValue("")
			return m, nil
		}
		return m, func() tea.Msg { return loggedIn{} }

	case tea.KeyMsg:
		if m.waiting {
			return m, nil
		}
		switch msg.Type {
		case tea.KeyTab:
			m.onEmail = !m.onEmail
			m.focusInputs()
			return m, nil
		case tea.KeyEnter:
			if m.onEmail {
				m.onEmail = false
				m.focusInputs()
				return m, nil
			}
			m.waiting = true
			m.errMsg = ""
			email, password := m.email.Value(), m.password.Value()
			return m, func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
				defer cancel()
				_, err := m.authCtx.Login(ctx, email, password)
				return loginResult{err: err}
			}
		}
	}

	var cmd tea.Cmd
	if m.onEmail {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *loginModel) focusInputs() {
	if m.onEmail {
		m.email.Focus()
		m.password.Blur()
	} else {
		m.email.Blur()
		m.password.Focus()
	}
}

func (m loginModel) View() string {
	s := b("Freshtrack") + " sign in\n\n"
	s += "Email:    " + m.email.View() + "\n"
	s += "Password: " + m.password.View() + "\n\n"
	if m.waiting {
		s += "Signing in...\n"
	}
	if m.errMsg != "" {
		s += errStyle("%s", m.errMsg) + "\n"
	}
	s += "\nTab to switch fields, Enter to submit, Ctrl+C to quit.\n"
	return s
}
