package probe

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/hamed0406/synccheck/internal/domain"
)

// LoginProbe builds the form-encoded token request for creds.
func LoginProbe(name, tokenURL string, creds Credentials) Probe {
	return Probe{
		Name:   name,
		Kind:   KindLogin,
		Method: http.MethodPost,
		URL:    tokenURL,
		Form: url.Values{
			"username": {creds.Username},
			"password": {creds.Password},
		},
		Accept:  []int{http.StatusOK},
		Timeout: DefaultAPITimeout,
	}
}

// Authenticate exchanges creds for a bearer token at tokenURL. On success the
// token is stored in s and returned; otherwise it returns "". Either way the
// outcome is recorded in s.
func (h *Harness) Authenticate(ctx context.Context, tokenURL string, creds Credentials, s *Session) string {
	return h.authenticate(ctx, LoginProbe("Admin Login", tokenURL, creds), s)
}

func (h *Harness) authenticate(ctx context.Context, p Probe, s *Session) string {
	token, res := h.login(ctx, p, s)
	h.record(s, res)
	return token
}

func (h *Harness) login(ctx context.Context, p Probe, s *Session) (string, domain.ProbeResult) {
	res, ex := h.do(ctx, p, s)
	if ex == nil || !res.Success {
		h.log().Warn("login_failed",
			zap.String("probe", p.Name),
			zap.Int("status", res.HTTPStatus),
			zap.String("detail", res.Detail),
		)
		return "", res
	}

	v, err := queryJSON(".access_token", ex.body)
	token, _ := v.(string)
	if err != nil || token == "" {
		res.Success = false
		res.Kind = domain.KindMissingData
		res.Detail = fmt.Sprintf("status %d but no access_token in response", ex.status)
		h.log().Warn("login_failed",
			zap.String("probe", p.Name),
			zap.Int("status", ex.status),
			zap.String("detail", res.Detail),
		)
		return "", res
	}

	s.Token = token
	res.Detail = fmt.Sprintf("status %d, token received", ex.status)
	return token, res
}
