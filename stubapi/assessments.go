package stubapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/freshtrack/client/api"
)

func (s *Server) seedAssessments() {
	quiz := &api.Assessment{
		ID:               "a-101",
		Title:            "Onboarding Basics Quiz",
		Description:      "Company processes and tooling fundamentals.",
		Instructions:     "Answer every question. Partial submissions are accepted.",
		Type:             api.KindQuiz,
		TimeLimitMinutes: 30,
		MaxScore:         100,
		PassingScore:     60,
		MaxAttempts:      3,
		Questions: []api.Question{
			{ID: "q1", Text: "Where do code reviews happen?", Options: []string{"Email", "Pull requests", "Chat"}},
			{ID: "q2", Text: "Which branch is deployed to production?", Options: []string{"main", "develop", "release"}},
			{ID: "q3", Text: "Who approves vacation requests?", Options: []string{"HR", "Your manager", "The CEO"}},
			{ID: "q4", Text: "Where are incidents reported?", Options: []string{"On-call channel", "Email", "Ticket queue"}},
			{ID: "q5", Text: "How often are retrospectives held?", Options: []string{"Weekly", "Per sprint", "Monthly"}},
		},
	}
	s.assessments[quiz.ID] = quiz
	s.answerKeys[quiz.ID] = map[string]string{
		"q1": "Pull requests",
		"q2": "main",
		"q3": "Your manager",
		"q4": "On-call channel",
		"q5": "Per sprint",
	}

	code := &api.Assessment{
		ID:               "a-102",
		Title:            "String Utilities Kata",
		Description:      "Implement the missing helper functions.",
		Instructions:     "Fill in the starter code so all test cases pass.",
		Type:             api.KindCode,
		TimeLimitMinutes: 60,
		MaxScore:         100,
		PassingScore:     60,
		MaxAttempts:      2,
		StarterCode:      "def reverse_words(s):\n    pass\n",
		Language:         "python",
		TestCases: []api.TestCase{
			{ID: "t1", Name: "single word", Input: "hello", Expected: "hello"},
			{ID: "t2", Name: "two words", Input: "hello world", Expected: "world hello"},
			{ID: "t3", Name: "hidden edge case", Hidden: true},
		},
	}
	s.assessments[code.ID] = code

	assignment := &api.Assessment{
		ID:               "a-103",
		Title:            "Team Processes Writeup",
		Description:      "Summarize your team's development workflow.",
		Instructions:     "Write at least a few paragraphs, or attach a document.",
		Type:             api.KindAssignment,
		TimeLimitMinutes: 0,
		MaxScore:         100,
		PassingScore:     60,
		MaxAttempts:      1,
	}
	s.assessments[assignment.ID] = assignment
}

func summaryOf(a *api.Assessment) api.AssessmentSummary {
	return api.AssessmentSummary{
		ID:               a.ID,
		Title:            a.Title,
		Description:      a.Description,
		Type:             a.Type,
		TimeLimitMinutes: a.TimeLimitMinutes,
		MaxScore:         a.MaxScore,
		PassingScore:     a.PassingScore,
	}
}

func (s *Server) listAssessments(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]api.AssessmentSummary, 0, len(s.assessments))
	for _, a := range s.assessments {
		out = append(out, summaryOf(a))
	}
	s.mu.Unlock()
	writeJsonSuccess(w, out)
}

func (s *Server) getAssessment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	a := s.assessments[id]
	s.mu.Unlock()
	if a == nil {
		writeJsonError(w, "assessment not found", http.StatusNotFound, "assessment_not_found")
		return
	}
	writeJsonSuccess(w, a)
}

func (s *Server) startAssessment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	a := s.assessments[id]
	s.mu.Unlock()
	if a == nil {
		writeJsonError(w, "assessment not found", http.StatusNotFound, "assessment_not_found")
		return
	}
	writeJsonSuccess(w, api.StartResponse{
		SubmissionID: uuid.NewString(),
		Status:       "in_progress",
	})
}

// pendingAssessments lists assessments the caller has not submitted.
func (s *Server) pendingAssessments(w http.ResponseWriter, r *http.Request) {
	acc := accountFrom(r.Context())
	s.mu.Lock()
	submitted := map[string]bool{}
	for _, sub := range s.submissions {
		if sub.UserID == acc.ID {
			submitted[sub.AssessmentID] = true
		}
	}
	out := []api.AssessmentSummary{}
	for _, a := range s.assessments {
		if !submitted[a.ID] {
			out = append(out, summaryOf(a))
		}
	}
	s.mu.Unlock()
	writeJsonSuccess(w, out)
}

func (s *Server) completedAssessments(w http.ResponseWriter, r *http.Request) {
	acc := accountFrom(r.Context())
	s.mu.Lock()
	out := []api.AssessmentSummary{}
	for _, sub := range s.submissions {
		if sub.UserID != acc.ID || !sub.terminal() {
			continue
		}
		a := s.assessments[sub.AssessmentID]
		if a == nil {
			continue
		}
		summary := summaryOf(a)
		summary.Status = sub.Status
		summary.Score = sub.Score
		summary.SubmittedAt = sub.SubmittedAt.Format(time.RFC3339)
		if sub.GradedAt != nil {
			summary.GradedAt = sub.GradedAt.Format(time.RFC3339)
		}
		out = append(out, summary)
	}
	s.mu.Unlock()
	writeJsonSuccess(w, out)
}

// latestResult returns the caller's most recent terminal submission
// for one assessment, if any.
func (s *Server) latestResult(w http.ResponseWriter, r *http.Request) {
	acc := accountFrom(r.Context())
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	var latest *submission
	for _, sub := range s.submissions {
		if sub.UserID != acc.ID || sub.AssessmentID != id || !sub.terminal() {
			continue
		}
		if latest == nil || sub.SubmittedAt.After(latest.SubmittedAt) {
			latest = sub
		}
	}
	s.mu.Unlock()

	if latest == nil {
		writeJsonError(w, "no completed attempts", http.StatusNotFound, "no_completed_attempts")
		return
	}
	writeJsonSuccess(w, latest.resultFields())
}
