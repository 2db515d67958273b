// Package stubapi is an in-memory stand-in for the platform's workflow
// and assessment API, for local development and end-to-end tests. It is
// not the real backend and never persists anything.
package stubapi

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"

	"github.com/freshtrack/client/api"
)

type Server struct {
	router *chi.Mux
	jwtKey []byte

	// gradeDelay simulates the asynchronous grading workflow: a
	// submission stays "grading" for this long before completing.
	gradeDelay time.Duration

	mu          sync.Mutex
	accounts    map[string]*account // keyed by email
	assessments map[string]*api.Assessment
	answerKeys  map[string]map[string]string // assessmentID -> questionID -> correct
	submissions map[string]*submission       // keyed by trace id
	shapeFlip   bool                         // alternates status payload shapes
}

type Option func(*Server)

func WithGradeDelay(d time.Duration) Option {
	return func(s *Server) { s.gradeDelay = d }
}

func NewServer(jwtKey []byte, opts ...Option) *Server {
	s := &Server{
		jwtKey:      jwtKey,
		gradeDelay:  2 * time.Second,
		accounts:    map[string]*account{},
		assessments: map[string]*api.Assessment{},
		answerKeys:  map[string]map[string]string{},
		submissions: map[string]*submission{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.seedAccounts()
	s.seedAssessments()

	router := chi.NewRouter()

	logger := httplog.NewLogger("freshtrack-stub", httplog.Options{
		LogLevel:         slog.LevelDebug,
		Concise:          true,
		MessageFieldName: "message",
		Tags: map[string]string{
			"env": "dev",
		},
	})
	router.Use(httplog.RequestLogger(logger))

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           3000,
	})
	router.Use(corsMiddleware.Handler)

	s.router = router
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Post("/auth/login", s.login)
	s.router.Post("/auth/register", s.register)

	s.router.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/auth/whoami", s.whoami)

		r.Get("/assessments", s.listAssessments)
		r.Get("/assessments/my/pending", s.pendingAssessments)
		r.Get("/assessments/my/completed", s.completedAssessments)
		r.Get("/assessments/{id}", s.getAssessment)
		r.Post("/assessments/{id}/start", s.startAssessment)
		r.Get("/assessments/{id}/latest-result", s.latestResult)

		r.Post("/workflow/submit", s.submitWorkflow)
		r.Get("/workflow/status/{traceID}", s.workflowStatus)

		r.Get("/dashboard/fresher", s.fresherDashboard)
		r.Get("/dashboard/manager", s.managerDashboard)
		r.Get("/dashboard/admin", s.adminDashboard)

		r.Get("/admin/users", s.listUsers)
		r.Post("/admin/users", s.createUser)

		r.Get("/reports/{id}/download", s.downloadReport)
	})
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(address string) error {
	return http.ListenAndServe(address, s.router)
}
