//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/ai-healthcoach/internal/bootstrap"
	"github.com/yanqian/ai-healthcoach/internal/domain/analyzer"
	"github.com/yanqian/ai-healthcoach/internal/domain/conversation"
	"github.com/yanqian/ai-healthcoach/internal/domain/dashboard"
	"github.com/yanqian/ai-healthcoach/internal/domain/mealplan"
	"github.com/yanqian/ai-healthcoach/internal/domain/profile"
	"github.com/yanqian/ai-healthcoach/internal/infra/coachapi"
	"github.com/yanqian/ai-healthcoach/internal/infra/config"
	"github.com/yanqian/ai-healthcoach/internal/interface/tui"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		provideLogger,
		provideAPIClient,
		provideMealPlanConfig,
		dashboard.NewState,
		profile.NewState,
		mealplan.NewState,
		analyzer.NewState,
		conversation.NewState,
		provideNavigator,
		tui.NewModel,
		wire.Bind(new(dashboard.Client), new(*coachapi.Client)),
		wire.Bind(new(profile.Client), new(*coachapi.Client)),
		wire.Bind(new(mealplan.Client), new(*coachapi.Client)),
		wire.Bind(new(analyzer.Client), new(*coachapi.Client)),
		wire.Bind(new(conversation.Client), new(*coachapi.Client)),
		wire.Bind(new(bootstrap.HealthProber), new(*coachapi.Client)),
		wire.Bind(new(bootstrap.Shell), new(*tui.Model)),
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
