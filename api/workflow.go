package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// SubmitWorkflow posts the assembled submission to the grading
// workflow. The returned trace ID is the sole key for status polling.
func (c *Client) SubmitWorkflow(ctx context.Context, req SubmitRequest) (*SubmitResponse, error) {
	res, err := doJSON[SubmitResponse](c, ctx, http.MethodPost, "/workflow/submit", req, true)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// WorkflowStatus returns the raw status payload for a trace. The shape
// is ambiguous on the wire (nested state vs flattened), so it is handed
// to the result package untouched for normalization.
func (c *Client) WorkflowStatus(ctx context.Context, traceID string) (json.RawMessage, error) {
	return c.doRaw(ctx, http.MethodGet, "/workflow/status/"+traceID, nil, true)
}
