//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/ai-healthcoach/internal/bootstrap"
	"github.com/yanqian/ai-healthcoach/internal/infra/config"
	"github.com/yanqian/ai-healthcoach/internal/mockbackend"
)

func initializeServer() (*bootstrap.Server, error) {
	wire.Build(
		config.Load,
		provideLogger,
		mockbackend.DefaultMealPlan,
		mockbackend.NewStore,
		mockbackend.NewHandler,
		mockbackend.NewRouter,
		bootstrap.NewServer,
	)
	return nil, nil
}
