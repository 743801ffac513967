package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"github.com/hamed0406/synccheck/internal/domain"
	"github.com/hamed0406/synccheck/internal/report"
)

func TestSlack_OK(t *testing.T) {
	var got slackMessage
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(200)
	}))
	defer ts.Close()

	s := NewSlack(ts.URL)
	if s == nil {
		t.Fatal("expected slack client")
	}
	if err := s.Send(context.Background(), "Title", "counts\n\nissues"); err != nil {
		t.Fatalf("send err: %v", err)
	}
	if got.Text != "Title" {
		t.Fatalf("fallback text: %q", got.Text)
	}
	// header, two sections, context
	if len(got.Blocks) != 4 {
		t.Fatalf("want 4 blocks, got %+v", got.Blocks)
	}
	if got.Blocks[0].Type != "header" || got.Blocks[0].Text.Text != "Title" {
		t.Fatalf("header block: %+v", got.Blocks[0])
	}
	if got.Blocks[1].Text.Text != "counts" || got.Blocks[2].Text.Text != "issues" {
		t.Fatalf("section blocks: %+v %+v", got.Blocks[1], got.Blocks[2])
	}
}

func TestBuildSlackMessage_ClipsLongText(t *testing.T) {
	msg := buildSlackMessage(strings.Repeat("t", 200), strings.Repeat("x", 4000))
	if n := len([]rune(msg.Blocks[0].Text.Text)); n != maxHeaderLen {
		t.Fatalf("header length %d", n)
	}
	if n := len([]rune(msg.Blocks[1].Text.Text)); n != maxSectionLen {
		t.Fatalf("section length %d", n)
	}
}

func TestSlack_Non2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer ts.Close()

	s := NewSlack(ts.URL)
	if err := s.Send(context.Background(), "X", "Y"); err == nil {
		t.Fatalf("expected error on non-2xx")
	}
}

func TestNewSlack_Disabled(t *testing.T) {
	if s := NewSlack(""); s != nil {
		t.Fatalf("expected nil notifier without webhook")
	}
}

type fakeNotifier struct {
	err   error
	calls int
}

func (f *fakeNotifier) Send(context.Context, string, string) error {
	f.calls++
	return f.err
}

func TestMulti_CombinesErrors(t *testing.T) {
	a := &fakeNotifier{err: errors.New("a down")}
	b := &fakeNotifier{}
	c := &fakeNotifier{err: errors.New("c down")}

	err := Multi{a, nil, b, c}.Send(context.Background(), "t", "x")
	if got := len(multierr.Errors(err)); got != 2 {
		t.Fatalf("want 2 errors, got %d (%v)", got, err)
	}
	if a.calls != 1 || b.calls != 1 || c.calls != 1 {
		t.Fatalf("every notifier should be called once")
	}
}

func TestRunMessage(t *testing.T) {
	results := []domain.ProbeResult{
		{Name: "API Health Check", Success: true, Severity: domain.SeverityError},
		{Name: "Weekly Bookings", Detail: "no token available", Severity: domain.SeverityError},
	}
	title, text := RunMessage("http://localhost:8000", report.Summarize(results), results)
	if !strings.Contains(title, "FAILED") {
		t.Fatalf("title: %q", title)
	}
	if !strings.Contains(text, "*Success Rate:* 50.0%") {
		t.Fatalf("text missing rate: %q", text)
	}
	if !strings.Contains(text, "\n\n*Issues (1 errors, 0 warnings)*\n• ERROR: Weekly Bookings: no token available") {
		t.Fatalf("text missing issue: %q", text)
	}
}
