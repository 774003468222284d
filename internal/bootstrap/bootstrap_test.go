package bootstrap

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/ai-healthcoach/internal/domain/coach"
	"github.com/yanqian/ai-healthcoach/internal/infra/config"
)

func TestAppRunsShellEvenWhenBackendIsDown(t *testing.T) {
	shell := &stubShell{}
	app := NewApp(&config.Config{}, newTestLogger(), stubProber{err: errors.New("connection refused")}, shell)

	require.NoError(t, app.Run(context.Background()))
	require.True(t, shell.ran)
}

func TestAppReturnsShellError(t *testing.T) {
	app := NewApp(&config.Config{}, newTestLogger(), stubProber{}, &stubShell{err: errors.New("no tty")})

	require.EqualError(t, app.Run(context.Background()), "no tty")
}

func TestServerStopsOnCancel(t *testing.T) {
	srv := NewServer(newTestLogger(), &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

type stubProber struct {
	err error
}

func (s stubProber) Health(ctx context.Context) (coach.HealthStatus, error) {
	if s.err != nil {
		return coach.HealthStatus{}, s.err
	}
	return coach.HealthStatus{Status: "healthy"}, nil
}

type stubShell struct {
	ran bool
	err error
}

func (s *stubShell) Run(ctx context.Context) error {
	s.ran = true
	return s.err
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
