package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/hamed0406/synccheck/internal/domain"
)

const ruleWidth = 60

// Reporter prints the console report. Styling is applied only when the
// writer is a terminal and NO_COLOR is unset.
type Reporter struct {
	w      io.Writer
	width  int
	styled bool

	Title  lipgloss.Style
	Pass   lipgloss.Style
	Fail   lipgloss.Style
	Warn   lipgloss.Style
	Info   lipgloss.Style
	Muted  lipgloss.Style
	Header lipgloss.Style
}

func NewReporter(w io.Writer) *Reporter {
	width, isTTY := terminalInfo(w)
	_, noColor := os.LookupEnv("NO_COLOR")
	return newReporter(w, width, isTTY && !noColor)
}

func newReporter(w io.Writer, width int, styled bool) *Reporter {
	r := &Reporter{w: w, width: width, styled: styled}
	if styled {
		r.Title = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
		r.Pass = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
		r.Fail = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
		r.Warn = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
		r.Info = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		r.Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		r.Header = lipgloss.NewStyle().Bold(true)
	} else {
		r.Title = lipgloss.NewStyle()
		r.Pass = lipgloss.NewStyle()
		r.Fail = lipgloss.NewStyle()
		r.Warn = lipgloss.NewStyle()
		r.Info = lipgloss.NewStyle()
		r.Muted = lipgloss.NewStyle()
		r.Header = lipgloss.NewStyle()
	}
	return r
}

// terminalInfo returns the terminal width and whether w is a TTY.
func terminalInfo(w io.Writer) (width int, isTTY bool) {
	width = 100
	f, ok := w.(*os.File)
	if !ok {
		return width, false
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return width, false
	}
	if cols, _, err := term.GetSize(fd); err == nil && cols >= 40 {
		width = cols
	}
	return width, true
}

// Marker is the pass/fail label printed in front of a result.
func Marker(res domain.ProbeResult) string {
	switch {
	case res.Success:
		return "✅ PASS"
	case res.IsWarning():
		return "⚠️ WARN"
	}
	return "❌ FAIL"
}

func (r *Reporter) style(res domain.ProbeResult) lipgloss.Style {
	switch {
	case res.Success:
		return r.Pass
	case res.IsWarning():
		return r.Warn
	}
	return r.Fail
}

// Banner prints the run header.
func (r *Reporter) Banner(title string, lines ...string) {
	fmt.Fprintln(r.w, r.Title.Render(title))
	fmt.Fprintln(r.w, r.Title.Render(strings.Repeat("=", ruleWidth)))
	for _, l := range lines {
		fmt.Fprintln(r.w, r.Info.Render("ℹ️ "+l))
	}
}

// Result prints one result as it completes.
func (r *Reporter) Result(res domain.ProbeResult) {
	fmt.Fprintf(r.w, "%s: %s\n", r.style(res).Render(Marker(res)), res.Name)
	if res.Detail != "" {
		fmt.Fprintln(r.w, r.Muted.Render("   Details: "+res.Detail))
	}
}

// Report prints the results table, the counts, the issue list and the
// overall status.
func (r *Reporter) Report(s Summary, results []domain.ProbeResult) {
	rule := r.Title.Render(strings.Repeat("=", ruleWidth))
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, rule)
	fmt.Fprintln(r.w, r.Title.Render("📊 TEST SUMMARY"))
	fmt.Fprintln(r.w, rule)

	if len(results) > 0 {
		fmt.Fprintln(r.w, r.table(results))
	}

	fmt.Fprintf(r.w, "Total Tests: %d\n", s.Total)
	fmt.Fprintf(r.w, "Passed: %s\n", r.Pass.Render(strconv.Itoa(s.Passed)))
	fmt.Fprintf(r.w, "Failed: %s\n", r.Fail.Render(strconv.Itoa(s.Failed)))
	fmt.Fprintf(r.w, "Success Rate: %.1f%%\n", s.Rate)

	var issues []string
	for _, res := range results {
		if !res.Success {
			issues = append(issues, res.Issue())
		}
	}
	if len(issues) == 0 {
		fmt.Fprintln(r.w, "\n"+r.Pass.Render("🎉 NO ISSUES FOUND!"))
	} else {
		fmt.Fprintln(r.w, "\n"+r.Warn.Render(fmt.Sprintf("⚠️ ISSUES FOUND (%d):", len(issues))))
		for _, is := range issues {
			fmt.Fprintf(r.w, "  • %s\n", is)
		}
	}

	if s.OK() {
		fmt.Fprintln(r.w, "\n"+r.Pass.Render("🎯 OVERALL STATUS: SYNCHRONIZED ✅"))
	} else {
		fmt.Fprintln(r.w, "\n"+r.Fail.Render("❌ OVERALL STATUS: SYNC ISSUES DETECTED"))
	}
}

// Saved prints where the results file went.
func (r *Reporter) Saved(path string) {
	fmt.Fprintf(r.w, "\n💾 Results saved to: %s\n", path)
}

func (r *Reporter) table(results []domain.ProbeResult) string {
	detailWidth := r.width - 50
	if detailWidth < 20 {
		detailWidth = 20
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.Muted).
		Headers("PROBE", "RESULT", "HTTP", "DETAIL").
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return base.Inherit(r.Header)
			}
			if col == 1 && row >= 0 && row < len(results) {
				return base.Inherit(r.style(results[row]))
			}
			return base
		})

	for _, res := range results {
		code := "-"
		if res.HTTPStatus != 0 {
			code = strconv.Itoa(res.HTTPStatus)
		}
		t.Row(res.Name, Marker(res), code, truncate(res.Detail, detailWidth))
	}
	return t.String()
}

func truncate(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n-1]) + "…"
}
