package notify

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/hamed0406/synccheck/internal/domain"
	"github.com/hamed0406/synccheck/internal/report"
)

type Notifier interface {
	Send(ctx context.Context, title, text string) error
}

// Multi fans out to every notifier and returns all delivery errors combined.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, title, text string) error {
	var err error
	for _, n := range m {
		if n == nil {
			continue
		}
		err = multierr.Append(err, n.Send(ctx, title, text))
	}
	return err
}

// RunMessage renders a finished run as a notification title and body.
// The counts and the issue list are separate paragraphs.
func RunMessage(target string, s report.Summary, results []domain.ProbeResult) (title, text string) {
	if s.OK() {
		title = "Booking sync check passed: " + target
	} else {
		title = "Booking sync check FAILED: " + target
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*Total:* %d  *Passed:* %d  *Failed:* %d  *Success Rate:* %.1f%%", s.Total, s.Passed, s.Failed, s.Rate)
	if s.Failed > 0 {
		fmt.Fprintf(&b, "\n\n*Issues (%d errors, %d warnings)*", s.Errors, s.Warnings)
		for _, r := range results {
			if !r.Success {
				b.WriteString("\n• ")
				b.WriteString(r.Issue())
			}
		}
	}
	return title, b.String()
}
