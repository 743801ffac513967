package probe

import (
	"context"

	"go.uber.org/zap"

	"github.com/hamed0406/synccheck/internal/domain"
)

// RunSuite executes probes strictly in order and returns exactly one result
// per probe. Login probes go through the token exchange and, when it succeeds,
// unlock the auth-requiring probes that follow. Failures never stop the suite.
func (h *Harness) RunSuite(ctx context.Context, probes []Probe, s *Session) []domain.ProbeResult {
	out := make([]domain.ProbeResult, 0, len(probes))
	for _, p := range probes {
		var res domain.ProbeResult
		if p.Kind == KindLogin {
			_, res = h.login(ctx, p, s)
		} else {
			res = h.Run(ctx, p, s)
		}
		h.record(s, res)
		out = append(out, res)
	}
	return out
}

func (h *Harness) record(s *Session, res domain.ProbeResult) {
	s.Record(res)
	h.log().Info("probe_done",
		zap.String("probe", res.Name),
		zap.Bool("success", res.Success),
		zap.Int("status", res.HTTPStatus),
		zap.String("kind", string(res.Kind)),
		zap.String("severity", string(res.Severity)),
		zap.Float64("latency_ms", res.LatencyMS),
		zap.String("detail", res.Detail),
	)
	if h.OnResult != nil {
		h.OnResult(res)
	}
}
