package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/hamed0406/synccheck/internal/domain"
)

const (
	maxBodyBytes   = 2 << 20
	bodySnippetLen = 100
)

// Harness executes probes one at a time and turns every outcome into a
// ProbeResult. Nothing it does returns an error to the caller.
type Harness struct {
	Client *http.Client
	Logger *zap.Logger

	// OnResult, when set, is called with each result as soon as it is recorded.
	OnResult func(domain.ProbeResult)

	now func() time.Time
}

// NewHarness returns a harness whose client relies on per-probe deadlines
// instead of a global client timeout.
func NewHarness(logger *zap.Logger) *Harness {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Harness{
		Client: &http.Client{},
		Logger: logger,
		now:    time.Now,
	}
}

// The accessors below let a zero or struct-literal Harness work like one
// from NewHarness.

func (h *Harness) client() *http.Client {
	if h.Client == nil {
		return http.DefaultClient
	}
	return h.Client
}

func (h *Harness) log() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

func (h *Harness) clock() time.Time {
	if h.now == nil {
		return time.Now()
	}
	return h.now()
}

// exchange holds a received response.
type exchange struct {
	status int
	body   []byte
}

// Run issues the request described by p. When p requires auth and the session
// has no token, no request is sent and a failed AUTH_UNAVAILABLE result is
// returned. Run does not record the result in the session.
func (h *Harness) Run(ctx context.Context, p Probe, s *Session) domain.ProbeResult {
	res, ex := h.do(ctx, p, s)
	if ex == nil || !res.Success || !isSuccessStatus(ex.status) {
		return res
	}

	switch p.Kind {
	case KindPage:
		title, hash := inspectPage(ex.body)
		res.PageTitle = title
		res.BodyMMH3 = hash
		if title != "" {
			res.Detail += fmt.Sprintf(", title=%q", title)
		}
	default:
		if p.Expect == nil {
			break
		}
		frag, err := evalExpect(p.Expect, ex.body)
		switch {
		case err != nil && p.Expect.Required:
			res.Success = false
			res.Kind = domain.KindMissingData
			res.Detail = fmt.Sprintf("status %d, %v", ex.status, err)
		case frag != "":
			res.Detail += ", " + frag
		}
	}
	return res
}

// do sends the request and classifies the status code. ex is nil when no
// response was received.
func (h *Harness) do(ctx context.Context, p Probe, s *Session) (domain.ProbeResult, *exchange) {
	res := domain.ProbeResult{Name: p.Name, Severity: p.severity()}

	if p.RequiresAuth && !s.HasToken() {
		res.Kind = domain.KindAuthUnavailable
		res.Skipped = true
		res.Detail = "no token available"
		res.Timestamp = h.clock().UTC()
		h.log().Warn("probe_skipped",
			zap.String("probe", p.Name),
			zap.String("reason", res.Detail),
		)
		return res, nil
	}

	cctx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	req, err := p.newRequest(cctx)
	if err != nil {
		res.Kind = domain.KindNetwork
		res.Detail = "network error (invalid request): " + err.Error()
		res.Timestamp = h.clock().UTC()
		return res, nil
	}
	if p.RequiresAuth {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	start := time.Now()
	resp, err := h.client().Do(req)
	if err != nil {
		res.LatencyMS = time.Since(start).Seconds() * 1000
		res.Kind = domain.KindNetwork
		res.Detail = fmt.Sprintf("network error (%s): %v", classifyNetErr(err), err)
		res.Timestamp = h.clock().UTC()
		h.log().Warn("probe_network_error",
			zap.String("probe", p.Name),
			zap.String("url", p.URL),
			zap.Error(err),
		)
		return res, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	res.LatencyMS = time.Since(start).Seconds() * 1000
	res.HTTPStatus = resp.StatusCode
	res.Timestamp = h.clock().UTC()
	if err != nil {
		res.Kind = domain.KindNetwork
		res.Detail = fmt.Sprintf("network error (%s): status %d, reading body: %v", classifyNetErr(err), resp.StatusCode, err)
		return res, nil
	}

	if !p.Accepts(resp.StatusCode) {
		res.Kind = domain.KindUnexpectedStatus
		res.Detail = fmt.Sprintf("expected %v, got %d", p.Accept, resp.StatusCode)
		if snip := snippet(body); snip != "" {
			res.Detail += ": " + snip
		}
	} else {
		res.Success = true
		res.Detail = fmt.Sprintf("status %d", resp.StatusCode)
	}

	h.log().Debug("probe_response",
		zap.String("probe", p.Name),
		zap.String("method", req.Method),
		zap.String("url", p.URL),
		zap.Int("status", resp.StatusCode),
		zap.Float64("latency_ms", res.LatencyMS),
	)
	return res, &exchange{status: resp.StatusCode, body: body}
}

func (p Probe) newRequest(ctx context.Context) (*http.Request, error) {
	method := p.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	contentType := ""
	switch {
	case p.JSON != nil:
		b, err := json.Marshal(p.JSON)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	case p.Form != nil:
		body = strings.NewReader(p.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	req, err := http.NewRequestWithContext(ctx, method, p.URL, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if p.Kind == KindPage {
		req.Header.Set("Accept", "text/html")
	} else {
		req.Header.Set("Accept", "application/json")
	}
	for k, v := range p.Headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

func isSuccessStatus(code int) bool { return code >= 200 && code < 300 }

// snippet returns the first bodySnippetLen characters of body on one line.
func snippet(body []byte) string {
	s := strings.Join(strings.Fields(string(body)), " ")
	if utf8.RuneCountInString(s) <= bodySnippetLen {
		return s
	}
	r := []rune(s)
	return string(r[:bodySnippetLen])
}
