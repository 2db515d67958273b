package stubapi

import (
	"net/http"

	"github.com/freshtrack/client/api"
	"github.com/freshtrack/client/auth"
)

func (s *Server) fresherDashboard(w http.ResponseWriter, r *http.Request) {
	acc := accountFrom(r.Context())

	s.mu.Lock()
	submitted := map[string]bool{}
	var scoreSum float64
	var graded int
	completed := []api.AssessmentSummary{}
	for _, sub := range s.submissions {
		if sub.UserID != acc.ID {
			continue
		}
		submitted[sub.AssessmentID] = true
		if sub.terminal() {
			graded++
			scoreSum += sub.Score
			if a := s.assessments[sub.AssessmentID]; a != nil {
				summary := summaryOf(a)
				summary.Status = sub.Status
				summary.Score = sub.Score
				completed = append(completed, summary)
			}
		}
	}
	pending := []api.AssessmentSummary{}
	for _, a := range s.assessments {
		if !submitted[a.ID] {
			pending = append(pending, summaryOf(a))
		}
	}
	total := len(s.assessments)
	s.mu.Unlock()

	dash := api.FresherDashboard{
		Pending:   pending,
		Completed: completed,
	}
	if total > 0 {
		dash.OverallProgress = float64(graded) / float64(total) * 100
	}
	if graded > 0 {
		dash.AverageScore = scoreSum / float64(graded)
	}
	writeJsonSuccess(w, dash)
}

func (s *Server) managerDashboard(w http.ResponseWriter, r *http.Request) {
	if accountFrom(r.Context()).Role == auth.RoleFresher {
		writeJsonError(w, "manager role required", http.StatusForbidden, "forbidden")
		return
	}

	s.mu.Lock()
	freshers := []api.FresherOverview{}
	for _, acc := range s.accounts {
		if acc.Role != auth.RoleFresher {
			continue
		}
		var scoreSum float64
		var graded int
		for _, sub := range s.submissions {
			if sub.UserID == acc.ID && sub.terminal() {
				graded++
				scoreSum += sub.Score
			}
		}
		overview := api.FresherOverview{
			ID:        acc.ID,
			Name:      acc.Name,
			Email:     acc.Email,
			RiskLevel: "low",
		}
		if total := len(s.assessments); total > 0 {
			overview.Progress = float64(graded) / float64(total) * 100
		}
		if graded > 0 {
			overview.AverageScore = scoreSum / float64(graded)
			if overview.AverageScore < 50 {
				overview.RiskLevel = "high"
			} else if overview.AverageScore < 70 {
				overview.RiskLevel = "medium"
			}
		}
		freshers = append(freshers, overview)
	}
	s.mu.Unlock()

	writeJsonSuccess(w, api.ManagerDashboard{Freshers: freshers})
}

func (s *Server) adminDashboard(w http.ResponseWriter, r *http.Request) {
	if accountFrom(r.Context()).Role != auth.RoleAdmin {
		writeJsonError(w, "admin role required", http.StatusForbidden, "forbidden")
		return
	}

	s.mu.Lock()
	dash := api.AdminDashboard{
		TotalUsers:  len(s.accounts),
		Assessments: len(s.assessments),
	}
	for _, acc := range s.accounts {
		switch acc.Role {
		case auth.RoleFresher:
			dash.ActiveFreshers++
		case auth.RoleManager:
			dash.Managers++
		}
	}
	s.mu.Unlock()

	writeJsonSuccess(w, dash)
}
