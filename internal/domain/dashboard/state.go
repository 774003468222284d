package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"github.com/yanqian/ai-healthcoach/internal/domain/coach"
)

// Status is the lifecycle position of the dashboard.
type Status string

const (
	StatusUninitialized Status = "uninitialized"
	StatusLoading       Status = "loading"
	StatusLoaded        Status = "loaded"
	StatusLoadFailed    Status = "load_failed"
)

// Client is the slice of the backend the dashboard needs.
type Client interface {
	GetProfile(ctx context.Context) (coach.Profile, bool, error)
}

// Snapshot is a consistent copy of the dashboard for rendering.
type Snapshot struct {
	Status Status
	// HasProfile drives the "no profile yet" prompt; it follows the server name field only.
	HasProfile bool
	Profile    coach.Profile
	Err        error
}

// State shows a read-only summary of the profile, refreshed on every activation.
type State struct {
	mu     sync.Mutex
	client Client
	logger *slog.Logger

	generation uint64
	snapshot   Snapshot
}

// NewState builds the dashboard view.
func NewState(client Client, logger *slog.Logger) *State {
	return &State{
		client:   client,
		logger:   logger.With("component", "dashboard.state"),
		snapshot: Snapshot{Status: StatusUninitialized},
	}
}

// Activate reloads the profile summary. Only the latest activation may write its result.
func (s *State) Activate(ctx context.Context) error {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.snapshot.Status = StatusLoading
	s.snapshot.Err = nil
	s.mu.Unlock()

	profile, found, err := s.client.GetProfile(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.logger.Debug("discarding stale dashboard load", "generation", gen)
		return err
	}
	if err != nil {
		s.snapshot = Snapshot{Status: StatusLoadFailed, Err: err}
		s.logger.Error("dashboard load failed", "error", err)
		return err
	}
	s.snapshot = Snapshot{Status: StatusLoaded, HasProfile: found, Profile: profile}
	return nil
}

// Snapshot copies the current view state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}
