package session

import (
	"strings"

	"github.com/freshtrack/client/api"
	"github.com/freshtrack/client/result"
)

// SimulateTests is a local dry run of the visible test cases against
// the current source. It never executes the code: a non-trivial
// solution is assumed to satisfy the visible cases, and hidden cases
// are skipped entirely. The outcome is a preview for the editing loop
// only; it is never a substitute for the graded result.
func SimulateTests(code string, cases []api.TestCase) []result.TestResult {
	passed := strings.TrimSpace(code) != "" && !strings.Contains(code, "pass\n")
	out := []result.TestResult{}
	for _, tc := range cases {
		if tc.Hidden {
			continue
		}
		tr := result.TestResult{
			ID:       tc.ID,
			Name:     tc.Name,
			Passed:   passed,
			Expected: tc.Expected,
		}
		if passed {
			tr.Actual = tc.Expected
		} else {
			tr.Error = "solution looks incomplete"
		}
		out = append(out, tr)
	}
	return out
}
