package stubapi_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/freshtrack/client/api"
	"github.com/freshtrack/client/poll"
	"github.com/freshtrack/client/srvcerror"
	"github.com/freshtrack/client/stubapi"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	stub := stubapi.NewServer([]byte("test-key"), stubapi.WithGradeDelay(20*time.Millisecond))
	srv := httptest.NewServer(stub.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func loginAs(t *testing.T, srv *httptest.Server, email string) *api.Client {
	t.Helper()
	client := api.NewClient(srv.URL)
	_, err := client.Login(context.Background(), email, "password")
	require.NoError(t, err)
	return client
}

func TestLoginRejectsBadPassword(t *testing.T) {
	srv := newTestServer(t)
	client := api.NewClient(srv.URL)
	_, err := client.Login(context.Background(), "fresher@freshtrack.dev", "wrong")
	require.Error(t, err)
}

func TestWhoami(t *testing.T) {
	srv := newTestServer(t)
	client := loginAs(t, srv, "fresher@freshtrack.dev")

	user, err := client.Whoami(context.Background())
	require.NoError(t, err)
	require.Equal(t, "fresher@freshtrack.dev", user.Email)
	require.Equal(t, "fresher", user.Role)
}

func TestQuizSubmitAndPollToResult(t *testing.T) {
	srv := newTestServer(t)
	client := loginAs(t, srv, "fresher@freshtrack.dev")
	ctx := context.Background()

	assessment, err := client.GetAssessment(ctx, "a-101")
	require.NoError(t, err)
	require.Equal(t, api.KindQuiz, assessment.Type)
	require.Len(t, assessment.Questions, 5)

	// 4 of 5 correct
	submitted, err := client.SubmitWorkflow(ctx, api.SubmitRequest{
		AssessmentID:   "a-101",
		SubmissionType: api.KindQuiz,
		Answers: map[string]string{
			"q1": "Pull requests",
			"q2": "main",
			"q3": "Your manager",
			"q4": "On-call channel",
			"q5": "Weekly",
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, submitted.TraceID)
	require.Equal(t, "grading", submitted.Status)

	poller, err := poll.New(submitted.TraceID,
		poll.WithInterval(10*time.Millisecond),
		poll.WithMaxAttempts(100))
	require.NoError(t, err)

	res, err := poller.Run(ctx, func(ctx context.Context, traceID string) ([]byte, error) {
		return client.WorkflowStatus(ctx, traceID)
	})
	require.NoError(t, err)
	require.Equal(t, poll.StateResolved, poller.State())
	require.Equal(t, 80.0, res.Score)
	require.Equal(t, 100.0, res.MaxScore)
	require.Equal(t, "passed", res.PassStatus)
}

func TestBothStatusShapesResolveIdentically(t *testing.T) {
	srv := newTestServer(t)
	client := loginAs(t, srv, "fresher@freshtrack.dev")
	ctx := context.Background()

	submitted, err := client.SubmitWorkflow(ctx, api.SubmitRequest{
		AssessmentID:   "a-101",
		SubmissionType: api.KindQuiz,
		Answers:        map[string]string{"q1": "Pull requests"},
	})
	require.NoError(t, err)

	// wait for the terminal state, then hit the status endpoint twice:
	// the stub alternates between the nested and flattened shapes
	time.Sleep(60 * time.Millisecond)

	var scores []float64
	for i := 0; i < 2; i++ {
		poller, err := poll.New(submitted.TraceID, poll.WithInterval(time.Millisecond))
		require.NoError(t, err)
		res, err := poller.Run(ctx, func(ctx context.Context, traceID string) ([]byte, error) {
			return client.WorkflowStatus(ctx, traceID)
		})
		require.NoError(t, err)
		scores = append(scores, res.Score)
	}
	require.Equal(t, scores[0], scores[1])
}

func TestLatestResultAfterGrading(t *testing.T) {
	srv := newTestServer(t)
	client := loginAs(t, srv, "fresher@freshtrack.dev")
	ctx := context.Background()

	_, err := client.LatestResult(ctx, "a-103")
	require.Error(t, err, "nothing submitted yet")
	srvcErr := &srvcerror.Error{}
	require.True(t, errors.As(err, &srvcErr))
	require.Equal(t, api.ErrCodeNoCompletedAttempts, srvcErr.ErrorCode())

	_, err = client.SubmitWorkflow(ctx, api.SubmitRequest{
		AssessmentID:   "a-103",
		SubmissionType: api.KindAssignment,
		Text:           "Our team reviews every change in a pull request before merging to main.",
	})
	require.NoError(t, err)
	time.Sleep(60 * time.Millisecond)

	res, err := client.LatestResult(ctx, "a-103")
	require.NoError(t, err)
	require.Greater(t, res.Score, 0.0)
	require.Equal(t, "completed", res.Status)
}

func TestPendingShrinksAfterSubmit(t *testing.T) {
	srv := newTestServer(t)
	client := loginAs(t, srv, "fresher@freshtrack.dev")
	ctx := context.Background()

	pending, err := client.PendingAssessments(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 3)

	_, err = client.SubmitWorkflow(ctx, api.SubmitRequest{
		AssessmentID:   "a-101",
		SubmissionType: api.KindQuiz,
		Answers:        map[string]string{"q1": "Email"},
	})
	require.NoError(t, err)

	pending, err = client.PendingAssessments(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
}

func TestDashboardRoleEnforcement(t *testing.T) {
	srv := newTestServer(t)

	fresher := loginAs(t, srv, "fresher@freshtrack.dev")
	_, err := fresher.AdminDashboard(context.Background())
	require.Error(t, err)
	srvcErr := &srvcerror.Error{}
	require.True(t, errors.As(err, &srvcErr))
	require.Equal(t, "forbidden", srvcErr.ErrorCode())

	_, err = fresher.ManagerDashboard(context.Background())
	require.Error(t, err)

	admin := loginAs(t, srv, "admin@freshtrack.dev")
	dash, err := admin.AdminDashboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, dash.TotalUsers)

	manager := loginAs(t, srv, "manager@freshtrack.dev")
	mdash, err := manager.ManagerDashboard(context.Background())
	require.NoError(t, err)
	require.Len(t, mdash.Freshers, 1)
}

func TestCreateUserIsAdminOnly(t *testing.T) {
	srv := newTestServer(t)

	manager := loginAs(t, srv, "manager@freshtrack.dev")
	_, err := manager.CreateUser(context.Background(), api.CreateUserRequest{
		Name:     "New Fresher",
		Email:    "new@freshtrack.dev",
		Password: "password",
		Role:     "fresher",
	})
	require.Error(t, err)

	admin := loginAs(t, srv, "admin@freshtrack.dev")
	created, err := admin.CreateUser(context.Background(), api.CreateUserRequest{
		Name:     "New Fresher",
		Email:    "new@freshtrack.dev",
		Password: "password",
		Role:     "fresher",
	})
	require.NoError(t, err)
	require.Equal(t, "new@freshtrack.dev", created.Email)

	// the new account can sign in
	loginAs(t, srv, "new@freshtrack.dev")
}

func TestReportDownloadRoundtrip(t *testing.T) {
	srv := newTestServer(t)
	client := loginAs(t, srv, "fresher@freshtrack.dev")

	data, err := client.DownloadReport(context.Background(), "progress")
	require.NoError(t, err)
	require.NotEmpty(t, data)
	require.Contains(t, string(data), "Progress report")
}

func TestRequestsWithoutTokenAreRejected(t *testing.T) {
	srv := newTestServer(t)
	client := api.NewClient(srv.URL, api.WithToken("not-a-jwt"))

	_, err := client.PendingAssessments(context.Background())
	require.Error(t, err)
	srvcErr := &srvcerror.Error{}
	require.True(t, errors.As(err, &srvcErr))
	require.Equal(t, api.ErrCodeUnauthorized, srvcErr.ErrorCode())
}
