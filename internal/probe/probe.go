package probe

import (
	"net/url"
	"slices"
	"time"

	"github.com/hamed0406/synccheck/internal/domain"
)

// Kind selects how a probe's response is interpreted.
type Kind string

const (
	KindAPI   Kind = "api"   // JSON API call
	KindLogin Kind = "login" // token exchange; stores the bearer token in the session
	KindPage  Kind = "page"  // frontend HTML page
)

const (
	DefaultAPITimeout  = 10 * time.Second
	DefaultPageTimeout = 5 * time.Second
)

// Expect describes an optional JSON field to pull out of an accepted 2xx body.
// Query is a jq expression. Scalars render as "label=value", arrays and
// objects as "<n> label".
type Expect struct {
	Query    string `yaml:"query"`
	Label    string `yaml:"label"`
	Required bool   `yaml:"required"`
}

// Probe is one HTTP call to attempt.
type Probe struct {
	Name         string
	Kind         Kind
	Method       string
	URL          string
	Headers      map[string]string
	JSON         any        // encoded as the request body when non-nil
	Form         url.Values // form-encoded body when non-nil and JSON is nil
	Accept       []int
	RequiresAuth bool
	Timeout      time.Duration
	Severity     domain.Severity
	Expect       *Expect
}

// Accepts reports whether code is in the accepted status set.
func (p Probe) Accepts(code int) bool {
	return slices.Contains(p.Accept, code)
}

func (p Probe) severity() domain.Severity {
	if p.Severity == "" {
		return domain.SeverityError
	}
	return p.Severity
}

func (p Probe) timeout() time.Duration {
	if p.Timeout > 0 {
		return p.Timeout
	}
	if p.Kind == KindPage {
		return DefaultPageTimeout
	}
	return DefaultAPITimeout
}

// Credentials are posted form-encoded to the token endpoint.
type Credentials struct {
	Username string
	Password string
}

// Session is run-scoped state: the bearer token (once a login succeeded) and
// the append-only list of results in execution order.
type Session struct {
	Token   string
	results []domain.ProbeResult
}

func NewSession() *Session {
	return &Session{results: make([]domain.ProbeResult, 0, 32)}
}

func (s *Session) HasToken() bool { return s.Token != "" }

// Record appends a result.
func (s *Session) Record(r domain.ProbeResult) {
	s.results = append(s.results, r)
}

// Results returns a copy of the accumulated results.
func (s *Session) Results() []domain.ProbeResult {
	return slices.Clone(s.results)
}
