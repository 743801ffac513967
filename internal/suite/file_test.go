package suite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/hamed0406/synccheck/internal/domain"
	"github.com/hamed0406/synccheck/internal/probe"
)

func writeSuite(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFile_AppliesOverridesAndExtras(t *testing.T) {
	path := writeSuite(t, `
overrides:
  Availability Check:
    accept: [200]
    severity: warning
    timeout: 8s
extra:
  - name: Admin Revenue
    method: get
    path: /api/booking/admin/revenue
    auth: true
    expect: {query: ".total", label: total}
  - name: Frontend /gallery
    target: frontend
    path: /gallery
    severity: warning
`)
	f, err := LoadFile(path)
	require.NoError(t, err)

	base := Build(testConfig(), fixedNow)
	probes, err := f.Apply(testConfig(), base)
	require.NoError(t, err)
	require.Len(t, probes, len(base)+2)

	avail := byName(t, probes, "Availability Check")
	assert.Equal(t, []int{200}, avail.Accept)
	assert.Equal(t, domain.SeverityWarning, avail.Severity)
	assert.Equal(t, 8*time.Second, avail.Timeout)

	// defaults are not mutated
	assert.Equal(t, []int{200, 422}, byName(t, base, "Availability Check").Accept)

	revenue := probes[len(base)]
	assert.Equal(t, "Admin Revenue", revenue.Name)
	assert.Equal(t, "GET", revenue.Method)
	assert.Equal(t, "http://api.test/api/booking/admin/revenue", revenue.URL)
	assert.True(t, revenue.RequiresAuth)
	assert.Equal(t, []int{200}, revenue.Accept)
	require.NotNil(t, revenue.Expect)
	assert.Equal(t, ".total", revenue.Expect.Query)

	gallery := probes[len(base)+1]
	assert.Equal(t, probe.KindPage, gallery.Kind)
	assert.Equal(t, "http://web.test/gallery", gallery.URL)
}

func TestApply_ReportsAllProblems(t *testing.T) {
	path := writeSuite(t, `
overrides:
  No Such Probe: {accept: [200]}
  Weekly Bookings: {severity: fatal}
extra:
  - name: Relative
    path: admin/kpis
  - name: Activity Logs
    path: /dup
`)
	f, err := LoadFile(path)
	require.NoError(t, err)

	_, err = f.Apply(testConfig(), Build(testConfig(), fixedNow))
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 4)
}

func TestLoadFile_RejectsUnknownKeys(t *testing.T) {
	path := writeSuite(t, "overides: {}\n")
	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_EmptyFile(t *testing.T) {
	f, err := LoadFile(writeSuite(t, ""))
	require.NoError(t, err)
	probes, err := f.Apply(testConfig(), Build(testConfig(), fixedNow))
	require.NoError(t, err)
	assert.Len(t, probes, 12+len(FrontendRoutes))
}
