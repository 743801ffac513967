package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger_WritesJSONLines(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	log, err := NewLogger(dir, false)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}

	log.Info("probe_done")
	log.Debug("probe_response") // below level
	if err := log.Sync(); err != nil {
		t.Logf("sync: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("log file missing: %v", err)
	}
	out := string(b)
	if !strings.Contains(out, `"msg":"probe_done"`) || !strings.Contains(out, `"app":"synccheck"`) {
		t.Fatalf("unexpected log content: %s", out)
	}
	if strings.Contains(out, "probe_response") {
		t.Fatalf("debug entry should be filtered at info level")
	}
}
