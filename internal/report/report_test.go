package report

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamed0406/synccheck/internal/domain"
)

func sample() []domain.ProbeResult {
	ts := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	return []domain.ProbeResult{
		{Name: "Frontend Home", Success: true, Detail: "status 200", Severity: domain.SeverityError, HTTPStatus: 200, Timestamp: ts},
		{Name: "Availability Check", Success: true, Detail: "status 200, 4 slots", Severity: domain.SeverityError, HTTPStatus: 200, Timestamp: ts},
		{Name: "Weekly Bookings", Success: false, Detail: "no token available", Severity: domain.SeverityError, Kind: domain.KindAuthUnavailable, Skipped: true, Timestamp: ts},
		{Name: "Frontend /faqs", Success: false, Detail: "expected [200], got 404: not found", Severity: domain.SeverityWarning, Kind: domain.KindUnexpectedStatus, HTTPStatus: 404, Timestamp: ts},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sample())
	assert.Equal(t, Summary{Total: 4, Passed: 2, Failed: 2, Errors: 1, Warnings: 1, Rate: 50}, s)
	assert.False(t, s.OK())
	assert.Equal(t, 1, s.ExitCode())
	assert.Equal(t, s, Summarize(sample()))
}

func TestSummarize_RoundsToOneDecimal(t *testing.T) {
	results := []domain.ProbeResult{{Success: true}, {Success: true}, {Success: false, Severity: domain.SeverityWarning}}
	s := Summarize(results)
	assert.Equal(t, 66.7, s.Rate)
	assert.True(t, s.OK(), "warning failures do not fail the run")
	assert.Equal(t, 0, s.ExitCode())
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, Summary{}, s)
	assert.Equal(t, 0, s.ExitCode())
}

func TestWriteFile_ReadFileRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	at := time.Date(2026, 10, 16, 9, 30, 5, 0, time.UTC)

	path, err := WriteFile(dir, sample(), at)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "synccheck_results_20261016_093005.json"), path)

	got, err := ReadFile(path)
	require.NoError(t, err)
	want := sample()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.Equal(t, want[i].Success, got[i].Success)
		assert.Equal(t, want[i].Detail, got[i].Detail)
		assert.Equal(t, want[i].Severity, got[i].Severity)
		assert.Equal(t, want[i].Kind, got[i].Kind)
	}
}

func TestWriteFile_EmptyIsArray(t *testing.T) {
	path, err := WriteFile(t.TempDir(), nil, time.Now())
	require.NoError(t, err)
	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadFile_Errors(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestMarker(t *testing.T) {
	r := sample()
	assert.Equal(t, "✅ PASS", Marker(r[0]))
	assert.Equal(t, "❌ FAIL", Marker(r[2]))
	assert.Equal(t, "⚠️ WARN", Marker(r[3]))
}

func TestReporter_ResultLines(t *testing.T) {
	var buf bytes.Buffer
	rep := NewReporter(&buf)
	for _, res := range sample() {
		rep.Result(res)
	}
	out := buf.String()
	assert.Contains(t, out, "✅ PASS: Frontend Home\n   Details: status 200\n")
	assert.Contains(t, out, "❌ FAIL: Weekly Bookings\n   Details: no token available\n")
	assert.Contains(t, out, "⚠️ WARN: Frontend /faqs\n")
	assert.NotContains(t, out, "\x1b[", "non-terminal output is unstyled")
}

func TestReporter_Report(t *testing.T) {
	var buf bytes.Buffer
	rep := NewReporter(&buf)
	results := sample()
	rep.Report(Summarize(results), results)
	out := buf.String()

	assert.Contains(t, out, "📊 TEST SUMMARY")
	assert.Contains(t, out, "PROBE")
	assert.Contains(t, out, "Availability Check")
	assert.Contains(t, out, "Total Tests: 4\n")
	assert.Contains(t, out, "Passed: 2\n")
	assert.Contains(t, out, "Failed: 2\n")
	assert.Contains(t, out, "Success Rate: 50.0%\n")
	assert.Contains(t, out, "ISSUES FOUND (2)")
	assert.Contains(t, out, "• ERROR: Weekly Bookings: no token available")
	assert.Contains(t, out, "• WARNING: Frontend /faqs: expected [200], got 404: not found")
	assert.Contains(t, out, "SYNC ISSUES DETECTED")

	errIdx := strings.Index(out, "ERROR: Weekly Bookings")
	warnIdx := strings.Index(out, "WARNING: Frontend /faqs")
	assert.Less(t, errIdx, warnIdx, "issues keep execution order")
}

func TestReporter_ReportAllPassing(t *testing.T) {
	var buf bytes.Buffer
	rep := NewReporter(&buf)
	results := sample()[:2]
	rep.Report(Summarize(results), results)
	out := buf.String()
	assert.Contains(t, out, "Success Rate: 100.0%")
	assert.Contains(t, out, "NO ISSUES FOUND")
	assert.Contains(t, out, "OVERALL STATUS: SYNCHRONIZED")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
