package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/freshtrack/client/api"
	"github.com/freshtrack/client/session"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadedQuiz(t *testing.T) sessionModel {
	t.Helper()
	m := newSessionModel(nil, nil, "a-1")
	m, cmd := m.Update(assessmentLoaded{assessment: &api.Assessment{
		ID:               "a-1",
		Title:            "Onboarding Basics Quiz",
		Type:             api.KindQuiz,
		TimeLimitMinutes: 1,
		Questions: []api.Question{
			{ID: "q1", Text: "Where do code reviews happen?", Options: []string{"Email", "Pull requests"}},
		},
	}})
	require.NotNil(t, cmd, "a timed session arms the clock")
	return m
}

func TestClockSurvivesConfirmCancel(t *testing.T) {
	m := loadedQuiz(t)
	var cmd tea.Cmd

	m, _ = m.Update(keyRunes("1"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Equal(t, session.StatusConfirming, m.sess.Status())

	// a tick arriving while the prompt is open still counts down and
	// keeps the chain alive
	m, cmd = m.Update(clockTick{})
	require.Equal(t, 59, m.sess.Remaining())
	require.NotNil(t, cmd, "tick chain must not die while confirming")

	m, _ = m.Update(keyRunes("n"))
	require.Equal(t, session.StatusActive, m.sess.Status())

	// and the countdown keeps going after the cancel
	m, cmd = m.Update(clockTick{})
	require.Equal(t, 58, m.sess.Remaining())
	require.NotNil(t, cmd, "tick chain must survive cancelling the confirm gate")
}

func TestExpiryWhileConfirmingAutoSubmits(t *testing.T) {
	m := loadedQuiz(t)
	var cmd tea.Cmd

	m, _ = m.Update(keyRunes("1"))
	for m.sess.Remaining() > 1 {
		m, _ = m.Update(clockTick{})
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Equal(t, session.StatusConfirming, m.sess.Status())

	m, cmd = m.Update(clockTick{})
	require.Equal(t, session.StatusSubmitting, m.sess.Status())
	require.NotNil(t, cmd, "expiry fires the submit command")
}

func TestQuizWithoutQuestionsDoesNotPanic(t *testing.T) {
	m := newSessionModel(nil, nil, "a-0")
	m, _ = m.Update(assessmentLoaded{assessment: &api.Assessment{
		ID:               "a-0",
		Title:            "Empty Quiz",
		Type:             api.KindQuiz,
		TimeLimitMinutes: 1,
	}})

	require.NotPanics(t, func() { _ = m.View() })
	require.Contains(t, m.View(), "no questions")
	require.NotPanics(t, func() { m, _ = m.Update(keyRunes("1")) })
}

func TestCodeSessionLocalDryRun(t *testing.T) {
	m := newSessionModel(nil, nil, "a-2")
	m, _ = m.Update(assessmentLoaded{assessment: &api.Assessment{
		ID:          "a-2",
		Title:       "String Utilities Kata",
		Type:        api.KindCode,
		StarterCode: "def reverse_words(s):\n    pass\n",
		Language:    "python",
		TestCases: []api.TestCase{
			{ID: "t1", Name: "single word", Expected: "hello"},
			{ID: "t2", Name: "hidden edge case", Hidden: true},
		},
	}})

	// untouched starter: the dry run reports failures
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	require.Len(t, m.localTests, 1, "hidden cases stay hidden")
	require.False(t, m.localTests[0].Passed)

	m.editor.SetValue("def reverse_words(s):\n    return ' '.join(reversed(s.split()))\n")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	require.True(t, m.localTests[0].Passed)

	// the preview is labeled as such, never as the graded outcome
	require.Contains(t, m.View(), "not your grade")
	// and running it does not submit anything
	require.Equal(t, session.StatusActive, m.sess.Status())
}
