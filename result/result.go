package result

// Workflow status tokens reported by the grading service. Compared
// case-sensitively; anything else means grading is still in progress.
const (
	StatusPending   = "pending"
	StatusGrading   = "grading"
	StatusCompleted = "completed"
	StatusGraded    = "graded"
	StatusFailed    = "failed"
)

// IsTerminal reports whether polling must stop for good on this status.
func IsTerminal(status string) bool {
	switch status {
	case StatusCompleted, StatusGraded, StatusFailed:
		return true
	}
	return false
}

// Result is the single strict shape the rest of the client works with.
// The ambiguous wire payload never propagates past this package.
type Result struct {
	SubmissionID    string       `json:"submission_id"`
	AssessmentID    string       `json:"assessment_id,omitempty"`
	Status          string       `json:"status"`
	Score           float64      `json:"score"`
	MaxScore        float64      `json:"max_score"`
	PassStatus      string       `json:"pass_status"`
	Feedback        Feedback     `json:"feedback"`
	TestResults     []TestResult `json:"test_results"`
	AssessmentTitle string       `json:"assessment_title,omitempty"`
	SubmittedAt     string       `json:"submitted_at,omitempty"`
	GradedAt        string       `json:"graded_at,omitempty"`
}

type Feedback struct {
	OverallComment string             `json:"overall_comment"`
	Strengths      []string           `json:"strengths"`
	Weaknesses     []string           `json:"weaknesses"`
	Suggestions    []string           `json:"suggestions"`
	MissingPoints  []string           `json:"missing_points"`
	Errors         []string           `json:"errors"`
	Improvements   []string           `json:"improvements"`
	RiskLevel      string             `json:"risk_level"`
	RiskFactors    []string           `json:"risk_factors"`
	TestScore      *float64           `json:"test_score,omitempty"`
	StyleScore     *float64           `json:"style_score,omitempty"`
	AccuracyScore  *float64           `json:"accuracy_score,omitempty"`
	RubricScores   map[string]float64 `json:"rubric_scores,omitempty"`
}

type TestResult struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Passed   bool    `json:"passed"`
	Expected string  `json:"expected"`
	Actual   string  `json:"actual"`
	Error    string  `json:"error,omitempty"`
	Points   float64 `json:"points"`
}

// HasVerdict reports whether the payload carried a pass/fail
// determination, which counts as a terminal outcome even when the
// status token itself is still non-terminal.
func (r *Result) HasVerdict() bool {
	return r.PassStatus != "" && r.PassStatus != "pending"
}

// PassedAgainst is a display-only approximation of the pass verdict
// computed from the assessment definition's passing score. The
// authoritative verdict is always the server-provided PassStatus.
func (r *Result) PassedAgainst(passingScore float64) bool {
	return r.Score >= passingScore
}
