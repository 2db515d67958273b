package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/freshtrack/client/result"
	"github.com/freshtrack/client/srvcerror"
)

func (c *Client) GetAssessment(ctx context.Context, id string) (*Assessment, error) {
	res, err := doJSON[Assessment](c, ctx, http.MethodGet, "/assessments/"+id, nil, true)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ListAssessments(ctx context.Context) ([]AssessmentSummary, error) {
	return doJSON[[]AssessmentSummary](c, ctx, http.MethodGet, "/assessments", nil, true)
}

// PendingAssessments lists active assessments the user has not yet
// submitted.
func (c *Client) PendingAssessments(ctx context.Context) ([]AssessmentSummary, error) {
	return doJSON[[]AssessmentSummary](c, ctx, http.MethodGet, "/assessments/my/pending", nil, true)
}

func (c *Client) CompletedAssessments(ctx context.Context) ([]AssessmentSummary, error) {
	return doJSON[[]AssessmentSummary](c, ctx, http.MethodGet, "/assessments/my/completed", nil, true)
}

type StartResponse struct {
	SubmissionID string `json:"submission_id"`
	Status       string `json:"status"`
}

// StartAssessment records the beginning of an attempt server-side.
func (c *Client) StartAssessment(ctx context.Context, id string) (*StartResponse, error) {
	res, err := doJSON[StartResponse](c, ctx, http.MethodPost, "/assessments/"+id+"/start", nil, true)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// LatestResult is the one-shot, non-polling path used when there is no
// trace ID: it fetches the most recent completed result for an
// assessment, or reports that no completed attempts exist.
func (c *Client) LatestResult(ctx context.Context, assessmentID string) (*result.Result, error) {
	raw, err := c.doRaw(ctx, http.MethodGet, "/assessments/"+assessmentID+"/latest-result", nil, true)
	if err != nil {
		srvcErr := &srvcerror.Error{}
		if errors.As(err, &srvcErr) && srvcErr.HttpStatusCode() == http.StatusNotFound {
			return nil, ErrNoCompletedAttempts()
		}
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, ErrNoCompletedAttempts()
	}
	res, err := result.FromStatusPayload(raw)
	if err != nil {
		return nil, err
	}
	if res.Status == "" {
		res.Status = result.StatusCompleted
	}
	return res, nil
}
