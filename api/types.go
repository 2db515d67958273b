package api

// Assessment kinds. Mirrored by the submission_type field on submit.
const (
	KindQuiz       = "quiz"
	KindCode       = "code"
	KindAssignment = "assignment"
)

// Assessment is the full definition served by GET /assessments/{id}.
// Kind-specific fields are populated only for the matching type.
type Assessment struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Instructions     string  `json:"instructions"`
	Type             string  `json:"assessment_type"`
	TimeLimitMinutes int     `json:"time_limit_minutes"`
	MaxScore         float64 `json:"max_score"`
	PassingScore     float64 `json:"passing_score"`
	MaxAttempts      int     `json:"max_attempts"`

	// quiz
	Questions []Question `json:"questions,omitempty"`

	// code
	TestCases   []TestCase `json:"test_cases,omitempty"`
	StarterCode string     `json:"starter_code,omitempty"`
	Language    string     `json:"language,omitempty"`
}

type Question struct {
	ID      string   `json:"id"`
	Text    string   `json:"question"`
	Options []string `json:"options"`
}

type TestCase struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Hidden   bool   `json:"hidden"`
}

// AssessmentSummary is the list form used by dashboards.
type AssessmentSummary struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	Type             string  `json:"assessment_type"`
	TimeLimitMinutes int     `json:"time_limit_minutes"`
	MaxScore         float64 `json:"max_score"`
	PassingScore     float64 `json:"passing_score"`
	Status           string  `json:"status,omitempty"`
	Score            float64 `json:"score,omitempty"`
	SubmittedAt      string  `json:"submitted_at,omitempty"`
	GradedAt         string  `json:"graded_at,omitempty"`
}

// SubmitRequest is assembled once from the session buffer at submit
// time. Only the fields matching SubmissionType are set.
type SubmitRequest struct {
	AssessmentID   string            `json:"assessment_id"`
	SubmissionType string            `json:"submission_type"`
	Answers        map[string]string `json:"answers,omitempty"`
	Code           string            `json:"code,omitempty"`
	Language       string            `json:"language,omitempty"`
	Text           string            `json:"text,omitempty"`
	FileName       string            `json:"file_name,omitempty"`
	FileMIME       string            `json:"file_mime,omitempty"`
}

// SubmitResponse carries the trace ID, the sole key for result polling.
type SubmitResponse struct {
	SubmissionID string `json:"submission_id"`
	TraceID      string `json:"trace_id"`
	Status       string `json:"status"`
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type FresherDashboard struct {
	OverallProgress float64             `json:"overall_progress"`
	AverageScore    float64             `json:"average_score"`
	Pending         []AssessmentSummary `json:"pending"`
	Completed       []AssessmentSummary `json:"completed"`
}

type FresherOverview struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Progress     float64 `json:"progress"`
	AverageScore float64 `json:"average_score"`
	RiskLevel    string  `json:"risk_level"`
}

type ManagerDashboard struct {
	Freshers []FresherOverview `json:"freshers"`
}

type AdminDashboard struct {
	TotalUsers     int `json:"total_users"`
	ActiveFreshers int `json:"active_freshers"`
	Managers       int `json:"managers"`
	Assessments    int `json:"assessments"`
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}
