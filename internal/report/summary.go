package report

import (
	"math"

	"github.com/hamed0406/synccheck/internal/domain"
)

// Summary aggregates a result list.
type Summary struct {
	Total    int     `json:"total"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	Errors   int     `json:"errors"`   // failed with ERROR severity
	Warnings int     `json:"warnings"` // failed with WARNING severity
	Rate     float64 `json:"success_rate"`
}

// Summarize is pure: the same results always give the same summary.
func Summarize(results []domain.ProbeResult) Summary {
	var s Summary
	for _, r := range results {
		s.Total++
		switch {
		case r.Success:
			s.Passed++
		case r.IsWarning():
			s.Failed++
			s.Warnings++
		default:
			s.Failed++
			s.Errors++
		}
	}
	if s.Total > 0 {
		s.Rate = math.Round(float64(s.Passed)/float64(s.Total)*1000) / 10
	}
	return s
}

// OK reports whether the run should exit 0.
func (s Summary) OK() bool { return s.Errors == 0 }

// ExitCode is 0 when no ERROR-severity probe failed, 1 otherwise.
func (s Summary) ExitCode() int {
	if s.OK() {
		return 0
	}
	return 1
}
