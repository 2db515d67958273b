package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/freshtrack/client/api"
	"github.com/freshtrack/client/result"
	"github.com/freshtrack/client/session"
	"github.com/freshtrack/client/store"
)

// sessionModel owns one assessment attempt: the countdown, the buffer
// editing, the confirmation gate, and the submit call.
type sessionModel struct {
	client *api.Client
	cache  *store.Cache

	assessmentID string
	assessment   *api.Assessment
	sess         *session.Session

	question   int // current quiz question index
	editor     textarea.Model
	filePath   textinput.Model
	attaching  bool
	localTests []result.TestResult // local dry run, never a grading result

	done      bool // view torn down, drop stale ticks
	loading   bool
	loadErr   string
	noticeMsg string
}

type assessmentLoaded struct {
	assessment *api.Assessment
	err        error
}

type clockTick struct{}

type submitDone struct {
	resp *api.SubmitResponse
	err  error
}

func newSessionModel(client *api.Client, cache *store.Cache, assessmentID string) sessionModel {
	editor := textarea.New()
	editor.CharLimit = 64 * 1000
	editor.SetWidth(76)
	editor.SetHeight(12)

	filePath := textinput.New()
	filePath.Placeholder = "/path/to/file"
	filePath.Width = 50

	return sessionModel{
		client:       client,
		cache:        cache,
		assessmentID: assessmentID,
		editor:       editor,
		filePath:     filePath,
		loading:      true,
	}
}

func (m sessionModel) Init() tea.Cmd {
	client, cache, id := m.client, m.cache, m.assessmentID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		assessment, err := client.GetAssessment(ctx, id)
		if err != nil && cache != nil {
			// offline tolerance: render from the advisory cache
			if cached, cacheErr := cache.Get(id); cacheErr == nil {
				return assessmentLoaded{assessment: cached}
			}
		}
		if err == nil && cache != nil {
			_ = cache.Put(assessment)
		}
		return assessmentLoaded{assessment: assessment, err: err}
	}
}

func tickOnce() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return clockTick{} })
}

func (m *sessionModel) teardown() {
	m.done = true
}

func (m sessionModel) Update(msg tea.Msg) (sessionModel, tea.Cmd) {
	switch msg := msg.(type) {
	case assessmentLoaded:
		m.loading = false
		if msg.err != nil {
			m.loadErr = msg.err.Error()
			return m, nil
		}
		m.assessment = msg.assessment
		m.sess = session.New(msg.assessment, msg.assessment.TimeLimitMinutes*60)
		m.sess.Activate()
		if m.assessment.Type == api.KindCode {
			m.editor.SetValue(m.assessment.StarterCode)
			m.syncEditor()
			m.editor.Focus()
		}
		if m.assessment.Type == api.KindAssignment {
			m.editor.Focus()
		}
		if m.sess.TimeLimit() > 0 {
			return m, tickOnce()
		}
		return m, nil

	case clockTick:
		if m.done || m.sess == nil {
			return m, nil
		}
		if m.sess.Tick() {
			// time expired: submit without confirmation
			return m, m.submitCmd()
		}
		// the clock keeps running through the confirm prompt
		switch m.sess.Status() {
		case session.StatusActive, session.StatusConfirming:
			return m, tickOnce()
		}
		return m, nil

	case submitDone:
		if m.done || m.sess == nil {
			return m, nil
		}
		if msg.err != nil {
			m.sess.SubmitFailed(msg.err.Error())
			return m, nil
		}
		m.sess.SubmitSucceeded()
		assessmentID, traceID := m.assessmentID, msg.resp.TraceID
		return m, func() tea.Msg {
			return openResults{assessmentID: assessmentID, traceID: traceID}
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

func (m sessionModel) handleKey(msg tea.KeyMsg) (sessionModel, tea.Cmd) {
	if m.loadErr != "" {
		switch msg.String() {
		case "b", "esc":
			return m, func() tea.Msg { return backToDashboard{} }
		}
		return m, nil
	}
	if m.sess == nil {
		return m, nil
	}

	switch m.sess.Status() {
	case session.StatusConfirming:
		switch msg.String() {
		case "y", "Y":
			if err := m.sess.Confirm(); err != nil {
				m.noticeMsg = err.Error()
				return m, nil
			}
			return m, m.submitCmd()
		case "n", "N", "esc":
			m.sess.CancelConfirm()
			return m, nil
		}
		return m, nil

	case session.StatusErrored:
		switch msg.String() {
		case "enter":
			m.sess.ResumeEditing()
			if m.sess.TimeLimit() > 0 && m.sess.Remaining() > 0 {
				return m, tickOnce()
			}
			return m, nil
		case "b":
			return m, func() tea.Msg { return backToDashboard{} }
		}
		return m, nil

	case session.StatusSubmitting, session.StatusSubmitted:
		// submit action stays disabled while a call is in flight
		return m, nil
	}

	// active
	if m.attaching {
		switch msg.Type {
		case tea.KeyEnter:
			m.attaching = false
			m.noticeMsg = ""
			if err := m.sess.Buffer().AttachFile(m.filePath.Value()); err != nil {
				m.noticeMsg = err.Error()
			}
			m.filePath.Blur()
			m.editor.Focus()
			return m, nil
		case tea.KeyEsc:
			m.attaching = false
			m.filePath.Blur()
			m.editor.Focus()
			return m, nil
		}
		var cmd tea.Cmd
		m.filePath, cmd = m.filePath.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+s":
		m.noticeMsg = ""
		m.syncEditor()
		if err := m.sess.RequestSubmit(); err != nil {
			m.noticeMsg = err.Error()
		}
		return m, nil
	case "ctrl+b":
		m.teardown()
		return m, func() tea.Msg { return backToDashboard{} }
	}

	if m.assessment.Type == api.KindQuiz {
		if len(m.assessment.Questions) == 0 {
			return m, nil
		}
		switch msg.String() {
		case "right", "n":
			if m.question < len(m.assessment.Questions)-1 {
				m.question++
			}
			return m, nil
		case "left", "p":
			if m.question > 0 {
				m.question--
			}
			return m, nil
		default:
			q := m.assessment.Questions[m.question]
			for i, opt := range q.Options {
				if msg.String() == fmt.Sprintf("%d", i+1) {
					m.sess.Buffer().Answer(q.ID, opt)
					return m, nil
				}
			}
		}
		return m, nil
	}

	if m.assessment.Type == api.KindCode && msg.String() == "ctrl+t" {
		m.syncEditor()
		m.localTests = session.SimulateTests(m.sess.Buffer().Code, m.assessment.TestCases)
		return m, nil
	}

	if m.assessment.Type == api.KindAssignment && msg.String() == "ctrl+f" {
		m.attaching = true
		m.editor.Blur()
		m.filePath.Focus()
		return m, textinput.Blink
	}

	return m.updateInputs(msg)
}

func (m sessionModel) updateInputs(msg tea.Msg) (sessionModel, tea.Cmd) {
	if m.assessment == nil ||
		(m.assessment.Type != api.KindCode && m.assessment.Type != api.KindAssignment) {
		return m, nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.syncEditor()
	return m, cmd
}

// syncEditor mirrors the textarea into the session buffer.
func (m *sessionModel) syncEditor() {
	if m.sess == nil {
		return
	}
	switch m.assessment.Type {
	case api.KindCode:
		m.sess.Buffer().Code = m.editor.Value()
	case api.KindAssignment:
		m.sess.Buffer().Text = m.editor.Value()
	}
}

func (m sessionModel) submitCmd() tea.Cmd {
	client := m.client
	req := m.sess.BuildRequest()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		resp, err := client.SubmitWorkflow(ctx, req)
		return submitDone{resp: resp, err: err}
	}
}

func (m sessionModel) View() string {
	if m.loading {
		return "Loading assessment...\n"
	}
	if m.loadErr != "" {
		return errStyle("Error loading assessment: %s", m.loadErr) +
			"\n\nPress b to return to the dashboard.\n"
	}

	s := b("%s", m.assessment.Title)
	if m.sess.TimeLimit() > 0 {
		s += "   " + v("⏱ %s", session.FormatClock(m.sess.Remaining()))
	}
	s += "\n\n"

	switch m.sess.Status() {
	case session.StatusConfirming:
		return s + m.confirmView()
	case session.StatusSubmitting:
		return s + "Submitting...\n"
	case session.StatusSubmitted:
		return s + "Submitted. Waiting for grading...\n"
	case session.StatusErrored:
		return s + errStyle("Submission failed: %s", m.sess.ErrMsg()) +
			"\n\nYour work is untouched. Press Enter to edit and retry, b for dashboard.\n"
	}

	switch m.assessment.Type {
	case api.KindQuiz:
		s += m.quizView()
	case api.KindCode:
		s += m.assessment.Instructions + "\n\n" + m.editor.View() + "\n"
		if len(m.localTests) > 0 {
			s += "\nLocal dry run (preview only, not your grade):\n"
			for _, tr := range m.localTests {
				mark := errStyle("✗")
				if tr.Passed {
					mark = okStyle("✓")
				}
				s += fmt.Sprintf("  %s %s\n", mark, tr.Name)
			}
		}
		s += "\nCtrl+T to run the visible tests locally.\n"
	case api.KindAssignment:
		s += m.assessment.Instructions + "\n\n" + m.editor.View() + "\n"
		if f := m.sess.Buffer().File; f != nil {
			s += okStyle("✓ %s (%.1f KB)", f.Name, float64(f.Size)/1024) + "\n"
		}
		if m.attaching {
			s += "\nAttach file: " + m.filePath.View() + "  (Enter to attach, Esc to cancel)\n"
		} else {
			s += "\nCtrl+F to attach a file.\n"
		}
	}

	if m.noticeMsg != "" {
		s += "\n" + errStyle("%s", m.noticeMsg) + "\n"
	}
	s += "\nCtrl+S to submit, Ctrl+B for dashboard.\n"
	return s
}

func (m sessionModel) quizView() string {
	if len(m.assessment.Questions) == 0 {
		return "This quiz has no questions.\n"
	}
	q := m.assessment.Questions[m.question]
	s := fmt.Sprintf("Question %d of %d\n\n%s\n\n",
		m.question+1, len(m.assessment.Questions), q.Text)
	chosen := m.sess.Buffer().Answers[q.ID]
	for i, opt := range q.Options {
		marker := "  "
		if opt == chosen {
			marker = okStyle("✓ ")
		}
		s += fmt.Sprintf("%s%s %s\n", marker, v("%d.", i+1), opt)
	}
	s += fmt.Sprintf("\n%d of %d answered. ←/→ to navigate, 1-9 to answer.\n",
		m.sess.Buffer().AnsweredCount(), len(m.assessment.Questions))
	return s
}

func (m sessionModel) confirmView() string {
	sum := m.sess.Summary()
	s := "Submit this assessment?\n\n"
	switch m.assessment.Type {
	case api.KindQuiz:
		s += fmt.Sprintf("  Answered: %d\n", sum.Answered)
		if sum.Unanswered > 0 {
			s += errStyle("  %d unanswered", sum.Unanswered) + "\n"
		}
	case api.KindCode:
		s += fmt.Sprintf("  %d words, %d characters of source\n", sum.WordCount, sum.CharCount)
	case api.KindAssignment:
		s += fmt.Sprintf("  %d words, %d characters\n", sum.WordCount, sum.CharCount)
		if sum.FileName != "" {
			s += fmt.Sprintf("  Attached: %s\n", sum.FileName)
		}
	}
	s += "\nPress " + v("Y") + " to confirm & submit, " + v("N") + " to keep working.\n"
	return s
}
