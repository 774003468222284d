package main

import (
	"log/slog"

	"github.com/yanqian/ai-healthcoach/internal/infra/config"
	"github.com/yanqian/ai-healthcoach/pkg/logger"
)

func provideLogger(cfg *config.Config) (*slog.Logger, error) {
	log, _, err := logger.New(cfg.Log.Level, "", "healthcoach-mockbackend")
	return log, err
}
