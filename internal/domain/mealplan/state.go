package mealplan

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/yanqian/ai-healthcoach/internal/domain/coach"
)

// Status is the lifecycle position of the meal plan view.
type Status string

const (
	StatusUninitialized Status = "uninitialized"
	StatusLoading       Status = "loading"
	StatusLoaded        Status = "loaded"
	StatusLoadFailed    Status = "load_failed"
)

// Client is the slice of the backend the meal plan view needs.
type Client interface {
	GetMealPlan(ctx context.Context) (coach.MealPlan, error)
	// ProfileRevision changes whenever the profile the plan derives from is saved.
	ProfileRevision() uint64
}

// Config controls plan reloads.
type Config struct {
	// Cache keeps a loaded plan across activations while the profile revision is unchanged.
	// When false every activation refetches.
	Cache bool
}

// Snapshot is a consistent copy of the view for rendering.
type Snapshot struct {
	Status Status
	Plan   coach.MealPlan
	Err    error
}

// State holds the read-only plan of the current activation.
type State struct {
	mu     sync.Mutex
	cfg    Config
	client Client
	logger *slog.Logger
	group  singleflight.Group

	status     Status
	plan       coach.MealPlan
	err        error
	key        uint64
	generation uint64
}

// NewState builds the meal plan view.
func NewState(cfg Config, client Client, logger *slog.Logger) *State {
	return &State{
		cfg:    cfg,
		client: client,
		logger: logger.With("component", "mealplan.state"),
		status: StatusUninitialized,
	}
}

// Activate loads the plan for this activation. Overlapping activations share a single
// request, and only the most recent activation writes the outcome.
func (s *State) Activate(ctx context.Context) error {
	key := s.client.ProfileRevision()

	s.mu.Lock()
	if s.cfg.Cache && s.status == StatusLoaded && s.key == key {
		s.mu.Unlock()
		s.logger.Debug("meal plan served from cache", "profile_revision", key)
		return nil
	}
	s.generation++
	gen := s.generation
	s.status = StatusLoading
	s.plan = coach.MealPlan{}
	s.err = nil
	s.mu.Unlock()

	value, err, shared := s.group.Do(strconv.FormatUint(key, 10), func() (any, error) {
		return s.client.GetMealPlan(ctx)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return err
	}
	if err != nil {
		s.status = StatusLoadFailed
		s.err = err
		s.logger.Error("meal plan load failed", "error", err)
		return err
	}
	s.status = StatusLoaded
	s.plan = value.(coach.MealPlan)
	s.key = key
	s.logger.Info("meal plan loaded", "days", len(s.plan.Days), "profile_revision", key, "shared", shared)
	return nil
}

// Snapshot copies the current view state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Status: s.status, Plan: s.plan, Err: s.err}
}
