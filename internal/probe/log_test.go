package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRunSuite_LogsEvents(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer s.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	h := NewHarness(zap.New(core))
	h.RunSuite(context.Background(), []Probe{
		LoginProbe("Admin Login", s.URL+"/token", Credentials{Username: "a", Password: "b"}),
		{Name: "Weekly Bookings", URL: s.URL + "/admin", Accept: []int{200}, RequiresAuth: true},
	}, NewSession())

	if n := logs.FilterMessage("login_failed").Len(); n != 1 {
		t.Fatalf("want 1 login_failed, got %d", n)
	}
	skipped := logs.FilterMessage("probe_skipped").All()
	if len(skipped) != 1 || skipped[0].ContextMap()["probe"] != "Weekly Bookings" {
		t.Fatalf("unexpected probe_skipped entries: %+v", skipped)
	}
	if n := logs.FilterMessage("probe_done").Len(); n != 2 {
		t.Fatalf("want 2 probe_done, got %d", n)
	}
}
