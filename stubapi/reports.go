package stubapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/klauspost/compress/zstd"
)

// downloadReport serves a plain-text progress report for a trace id.
// The body is zstd-compressed when the client advertises support, which
// mirrors how the real report service ships larger documents.
func (s *Server) downloadReport(w http.ResponseWriter, r *http.Request) {
	acc := accountFrom(r.Context())
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	var b strings.Builder
	fmt.Fprintf(&b, "Progress report for %s <%s>\n\n", acc.Name, acc.Email)
	for _, sub := range s.submissions {
		if sub.UserID != acc.ID || !sub.terminal() {
			continue
		}
		title := sub.AssessmentID
		if a := s.assessments[sub.AssessmentID]; a != nil {
			title = a.Title
		}
		fmt.Fprintf(&b, "%s: %.0f/%.0f (%s)\n", title, sub.Score, sub.MaxScore, sub.PassStatus)
	}
	s.mu.Unlock()

	body := []byte(b.String())
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "report-"+id+".txt"))

	if strings.Contains(r.Header.Get("Accept-Encoding"), "zstd") {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		compressed := enc.EncodeAll(body, nil)
		enc.Close()
		w.Header().Set("Content-Encoding", "zstd")
		w.WriteHeader(http.StatusOK)
		w.Write(compressed)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
