package stubapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Serve runs the API and frontend listeners until ctx is done, then shuts
// both down.
func Serve(ctx context.Context, l *zap.Logger, apiAddr, frontendAddr string, accounts ...Account) error {
	api := NewServer(l, NewStore(), NewTokens(accounts...))
	servers := []*http.Server{
		{Addr: apiAddr, Handler: api.Router(), ReadHeaderTimeout: 5 * time.Second},
		{Addr: frontendAddr, Handler: FrontendRouter(), ReadHeaderTimeout: 5 * time.Second},
	}

	errc := make(chan error, len(servers))
	for _, srv := range servers {
		srv := srv
		l.Info("stub_listen", zap.String("addr", srv.Addr))
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- err
				return
			}
			errc <- nil
		}()
	}

	var err error
	select {
	case <-ctx.Done():
	case err = <-errc:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, srv := range servers {
		err = multierr.Append(err, srv.Shutdown(shutdownCtx))
	}
	l.Info("stub_stopped", zap.Error(err))
	return err
}
