package result

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// The workflow status endpoint is not consistent about its payload
// shape: some deployments nest the graded result under a "state" field,
// others flatten it at the top level, and scores occasionally arrive as
// strings. FromStatusPayload accepts all of these and produces one
// strict Result. Preference goes to the nested "state" object when it
// is present.
func FromStatusPayload(body []byte) (*Result, error) {
	var envelope struct {
		Status string          `json:"status"`
		State  json.RawMessage `json:"state"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse workflow status payload: %w", err)
	}

	inner := body
	if len(envelope.State) > 0 && string(envelope.State) != "null" {
		inner = envelope.State
	}

	var raw rawResult
	if err := json.Unmarshal(inner, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse workflow result fields: %w", err)
	}

	res := raw.normalize()
	// the outer status token wins over whatever the inner object says
	if envelope.Status != "" {
		res.Status = envelope.Status
	}
	return res, nil
}

// rawResult mirrors the wire fields before defaulting.
type rawResult struct {
	SubmissionID    string       `json:"submission_id"`
	AssessmentID    string       `json:"assessment_id"`
	Status          string       `json:"status"`
	Score           flexFloat    `json:"score"`
	MaxScore        *flexFloat   `json:"max_score"`
	PassStatus      string       `json:"pass_status"`
	Feedback        *rawFeedback `json:"feedback"`
	TestResults     []TestResult `json:"test_results"`
	AssessmentTitle string       `json:"assessment_title"`
	SubmittedAt     string       `json:"submitted_at"`
	GradedAt        string       `json:"graded_at"`
}

type rawFeedback struct {
	OverallComment string             `json:"overall_comment"`
	Strengths      []string           `json:"strengths"`
	Weaknesses     []string           `json:"weaknesses"`
	Suggestions    []string           `json:"suggestions"`
	MissingPoints  []string           `json:"missing_points"`
	Errors         []string           `json:"errors"`
	Improvements   []string           `json:"improvements"`
	RiskLevel      string             `json:"risk_level"`
	RiskFactors    []string           `json:"risk_factors"`
	TestScore      *flexFloat         `json:"test_score"`
	StyleScore     *flexFloat         `json:"style_score"`
	AccuracyScore  *flexFloat         `json:"accuracy_score"`
	RubricScores   map[string]float64 `json:"rubric_scores"`
}

func (raw *rawResult) normalize() *Result {
	res := &Result{
		SubmissionID:    raw.SubmissionID,
		AssessmentID:    raw.AssessmentID,
		Status:          raw.Status,
		Score:           float64(raw.Score),
		MaxScore:        100,
		PassStatus:      "pending",
		TestResults:     []TestResult{},
		AssessmentTitle: raw.AssessmentTitle,
		SubmittedAt:     raw.SubmittedAt,
		GradedAt:        raw.GradedAt,
	}
	if raw.MaxScore != nil && float64(*raw.MaxScore) > 0 {
		res.MaxScore = float64(*raw.MaxScore)
	}
	if raw.PassStatus != "" {
		res.PassStatus = raw.PassStatus
	}
	if raw.TestResults != nil {
		res.TestResults = raw.TestResults
	}
	res.Feedback = raw.Feedback.normalize()
	return res
}

func (raw *rawFeedback) normalize() Feedback {
	fb := Feedback{
		Strengths:     []string{},
		Weaknesses:    []string{},
		Suggestions:   []string{},
		MissingPoints: []string{},
		Errors:        []string{},
		Improvements:  []string{},
		RiskLevel:     "low",
		RiskFactors:   []string{},
	}
	if raw == nil {
		return fb
	}
	fb.OverallComment = raw.OverallComment
	if raw.Strengths != nil {
		fb.Strengths = raw.Strengths
	}
	if raw.Weaknesses != nil {
		fb.Weaknesses = raw.Weaknesses
	}
	if raw.Suggestions != nil {
		fb.Suggestions = raw.Suggestions
	}
	if raw.MissingPoints != nil {
		fb.MissingPoints = raw.MissingPoints
	}
	if raw.Errors != nil {
		fb.Errors = raw.Errors
	}
	if raw.Improvements != nil {
		fb.Improvements = raw.Improvements
	}
	if raw.RiskLevel != "" {
		fb.RiskLevel = raw.RiskLevel
	}
	if raw.RiskFactors != nil {
		fb.RiskFactors = raw.RiskFactors
	}
	fb.TestScore = raw.TestScore.ptr()
	fb.StyleScore = raw.StyleScore.ptr()
	fb.AccuracyScore = raw.AccuracyScore.ptr()
	fb.RubricScores = raw.RubricScores
	return fb
}

// flexFloat accepts both numeric and stringly-typed scores.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = 0
		return nil
	}
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat(num)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("score is neither number nor string: %s", string(data))
	}
	if str == "" {
		*f = 0
		return nil
	}
	num, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return fmt.Errorf("failed to parse score %q: %w", str, err)
	}
	*f = flexFloat(num)
	return nil
}

func (f *flexFloat) ptr() *float64 {
	if f == nil {
		return nil
	}
	v := float64(*f)
	return &v
}
