package result_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freshtrack/client/result"
)

func TestNestedAndFlattenedShapesNormalizeIdentically(t *testing.T) {
	nested := []byte(`{
		"status": "completed",
		"state": {
			"submission_id": "s-1",
			"score": 80,
			"max_score": 100,
			"pass_status": "passed",
			"feedback": {"overall_comment": "good work", "strengths": ["clear"]}
		}
	}`)
	flattened := []byte(`{
		"status": "completed",
		"submission_id": "s-1",
		"score": 80,
		"max_score": 100,
		"pass_status": "passed",
		"feedback": {"overall_comment": "good work", "strengths": ["clear"]}
	}`)

	fromNested, err := result.FromStatusPayload(nested)
	require.NoError(t, err)
	fromFlattened, err := result.FromStatusPayload(flattened)
	require.NoError(t, err)

	require.Equal(t, fromNested, fromFlattened)
	require.Equal(t, "completed", fromNested.Status)
	require.Equal(t, 80.0, fromNested.Score)
	require.Equal(t, "good work", fromNested.Feedback.OverallComment)
}

func TestNestedStateWinsOverTopLevelFields(t *testing.T) {
	body := []byte(`{
		"status": "graded",
		"score": 10,
		"state": {"score": 90, "pass_status": "passed"}
	}`)
	res, err := result.FromStatusPayload(body)
	require.NoError(t, err)
	require.Equal(t, 90.0, res.Score)
	require.Equal(t, "graded", res.Status)
}

func TestDefaultsForMissingFields(t *testing.T) {
	res, err := result.FromStatusPayload([]byte(`{"status":"completed","score":42}`))
	require.NoError(t, err)

	require.Equal(t, 42.0, res.Score)
	require.Equal(t, 100.0, res.MaxScore)
	require.Equal(t, "pending", res.PassStatus)
	require.NotNil(t, res.TestResults)
	require.Empty(t, res.TestResults)

	// feedback is empty but well typed
	require.Equal(t, "low", res.Feedback.RiskLevel)
	require.NotNil(t, res.Feedback.Strengths)
	require.NotNil(t, res.Feedback.Weaknesses)
	require.NotNil(t, res.Feedback.Suggestions)
	require.Empty(t, res.Feedback.Strengths)
}

func TestStringlyTypedScores(t *testing.T) {
	body := []byte(`{
		"status": "completed",
		"score": "87.5",
		"max_score": "100",
		"feedback": {"test_score": "12", "style_score": 3}
	}`)
	res, err := result.FromStatusPayload(body)
	require.NoError(t, err)

	require.Equal(t, 87.5, res.Score)
	require.Equal(t, 100.0, res.MaxScore)
	require.NotNil(t, res.Feedback.TestScore)
	require.Equal(t, 12.0, *res.Feedback.TestScore)
	require.NotNil(t, res.Feedback.StyleScore)
	require.Equal(t, 3.0, *res.Feedback.StyleScore)
}

func TestMalformedScoreIsAnError(t *testing.T) {
	_, err := result.FromStatusPayload([]byte(`{"status":"completed","score":"not-a-number"}`))
	require.Error(t, err)
}

func TestMalformedPayloadIsAnError(t *testing.T) {
	_, err := result.FromStatusPayload([]byte(`{`))
	require.Error(t, err)
}

func TestIsTerminal(t *testing.T) {
	require.True(t, result.IsTerminal(result.StatusCompleted))
	require.True(t, result.IsTerminal(result.StatusGraded))
	require.True(t, result.IsTerminal(result.StatusFailed))
	require.False(t, result.IsTerminal(result.StatusPending))
	require.False(t, result.IsTerminal("processing"))
	// case sensitive on purpose
	require.False(t, result.IsTerminal("Completed"))
}

func TestHasVerdict(t *testing.T) {
	res, err := result.FromStatusPayload([]byte(`{"status":"processing","pass_status":"failed"}`))
	require.NoError(t, err)
	require.True(t, res.HasVerdict())

	res, err = result.FromStatusPayload([]byte(`{"status":"processing"}`))
	require.NoError(t, err)
	require.False(t, res.HasVerdict())
}

func TestPassedAgainstIsDisplayOnly(t *testing.T) {
	res, err := result.FromStatusPayload([]byte(`{"status":"completed","score":59,"pass_status":"passed"}`))
	require.NoError(t, err)

	// the approximation may disagree with the authoritative verdict
	require.False(t, res.PassedAgainst(60))
	require.Equal(t, "passed", res.PassStatus)
}
