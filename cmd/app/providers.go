package main

import (
	"log/slog"

	"github.com/yanqian/ai-healthcoach/internal/domain/dashboard"
	"github.com/yanqian/ai-healthcoach/internal/domain/mealplan"
	"github.com/yanqian/ai-healthcoach/internal/domain/navigation"
	"github.com/yanqian/ai-healthcoach/internal/domain/profile"
	"github.com/yanqian/ai-healthcoach/internal/infra/coachapi"
	"github.com/yanqian/ai-healthcoach/internal/infra/config"
	"github.com/yanqian/ai-healthcoach/pkg/logger"
)

// The terminal owns stdout, so the client logs to cfg.Log.File.
func provideLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	return logger.New(cfg.Log.Level, cfg.Log.File, "healthcoach")
}

func provideAPIClient(cfg *config.Config, logger *slog.Logger) *coachapi.Client {
	return coachapi.NewClient(cfg.API.BaseURL, cfg.API.Timeout, logger)
}

func provideMealPlanConfig(cfg *config.Config) mealplan.Config {
	return mealplan.Config{Cache: cfg.MealPlan.Cache}
}

func provideNavigator(logger *slog.Logger, dash *dashboard.State, prof *profile.State, plan *mealplan.State) *navigation.Router {
	return navigation.NewRouter(logger, map[navigation.View]navigation.Activator{
		navigation.ViewDashboard: dash,
		navigation.ViewProfile:   prof,
		navigation.ViewMealPlan:  plan,
	})
}
