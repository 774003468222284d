package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"github.com/yanqian/ai-healthcoach/internal/domain/coach"
	"github.com/yanqian/ai-healthcoach/internal/infra/config"
)

// HealthProber reports backend readiness.
type HealthProber interface {
	Health(ctx context.Context) (coach.HealthStatus, error)
}

// Shell is the interactive front end.
type Shell interface {
	Run(ctx context.Context) error
}

// App encapsulates the client lifecycle.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	health HealthProber
	shell  Shell
}

// NewApp is used by Wire to build the runnable client.
func NewApp(cfg *config.Config, logger *slog.Logger, health HealthProber, shell Shell) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), health: health, shell: shell}
}

// Run probes the backend once and then blocks in the shell until the user quits.
// An unreachable backend is logged; every view reports its own failures.
func (a *App) Run(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	status, err := a.health.Health(probeCtx)
	cancel()
	if err != nil {
		a.logger.Warn("backend health probe failed", "base_url", a.cfg.API.BaseURL, "error", err)
	} else {
		a.logger.Info("backend reachable", "base_url", a.cfg.API.BaseURL, "status", status.Status, "ai_configured", status.AIConfigured, "database", status.Database)
	}

	a.logger.Info("client starting", "meal_plan_cache", a.cfg.MealPlan.Cache)
	if err := a.shell.Run(ctx); err != nil {
		return err
	}
	a.logger.Info("client stopped")
	return nil
}
