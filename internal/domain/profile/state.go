package profile

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/yanqian/ai-healthcoach/internal/domain/coach"
)

// ErrSaveInFlight is returned when a save is requested while another one runs.
var ErrSaveInFlight = errors.New("profile save already in progress")

// ErrBusy is returned for edits attempted while the profile is loading or saving.
var ErrBusy = errors.New("profile is loading or saving")

// Status is the lifecycle position of the profile view.
type Status string

const (
	StatusUninitialized Status = "uninitialized"
	StatusLoading       Status = "loading"
	StatusLoaded        Status = "loaded"
	StatusLoadFailed    Status = "load_failed"
	StatusSaving        Status = "saving"
	StatusSaveFailed    Status = "save_failed"
)

// Client is the slice of the backend the profile view needs.
type Client interface {
	GetProfile(ctx context.Context) (coach.Profile, bool, error)
	PutProfile(ctx context.Context, profile coach.Profile) (coach.SaveResult, error)
}

// Snapshot is a consistent copy of the view for rendering.
type Snapshot struct {
	Status Status
	Draft  coach.Profile
	// Exists is true once the backend is known to hold a profile.
	Exists bool
	// Dirty is true when the draft has edits not yet saved.
	Dirty  bool
	Err    error
	Notice string
}

// State owns the editable profile draft.
type State struct {
	mu     sync.Mutex
	client Client
	logger *slog.Logger

	status Status
	draft  coach.Profile
	exists bool
	dirty  bool
	err    error
	notice string
}

// NewState builds the profile view with the default form values.
func NewState(client Client, logger *slog.Logger) *State {
	return &State{
		client: client,
		logger: logger.With("component", "profile.state"),
		status: StatusUninitialized,
		draft:  coach.DefaultProfile(),
	}
}

// Activate loads the profile on first activation, or after a failed load that
// the user has not edited over since.
func (s *State) Activate(ctx context.Context) error {
	s.mu.Lock()
	needsLoad := s.status == StatusUninitialized || (s.status == StatusLoadFailed && !s.dirty)
	s.mu.Unlock()
	if !needsLoad {
		return nil
	}
	return s.Load(ctx)
}

// Load fetches the profile and overwrites the draft with server values when one exists.
func (s *State) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.status == StatusLoading || s.status == StatusSaving {
		s.mu.Unlock()
		return nil
	}
	s.status = StatusLoading
	s.err = nil
	s.notice = ""
	s.mu.Unlock()

	profile, found, err := s.client.GetProfile(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = StatusLoadFailed
		s.err = err
		s.logger.Error("profile load failed", "error", err)
		return err
	}
	s.status = StatusLoaded
	s.exists = found
	if found {
		s.draft = profile
		s.dirty = false
	}
	s.logger.Info("profile loaded", "exists", found)
	return nil
}

// Set marshals one form input into the draft.
func (s *State) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusLoading || s.status == StatusSaving {
		return ErrBusy
	}
	next := s.draft
	if err := apply(&next, key, value); err != nil {
		return err
	}
	if next != s.draft {
		s.draft = next
		s.dirty = true
		s.notice = ""
	}
	return nil
}

// Issues returns advisory validation findings for the current draft.
func (s *State) Issues() []Issue {
	s.mu.Lock()
	draft := s.draft
	s.mu.Unlock()
	return Validate(draft)
}

// Save persists the draft. It is always explicit; nothing auto-saves.
func (s *State) Save(ctx context.Context) error {
	s.mu.Lock()
	switch s.status {
	case StatusSaving:
		s.mu.Unlock()
		return ErrSaveInFlight
	case StatusLoading:
		s.mu.Unlock()
		return ErrBusy
	}
	s.status = StatusSaving
	s.err = nil
	s.notice = ""
	draft := s.draft
	s.mu.Unlock()

	if issues := Validate(draft); len(issues) > 0 {
		s.logger.Warn("saving profile with advisory issues", "issues", len(issues))
	}

	result, err := s.client.PutProfile(ctx, draft)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = StatusSaveFailed
		s.err = err
		s.logger.Error("profile save failed", "error", err)
		return err
	}
	s.status = StatusLoaded
	if result.Profile != nil {
		s.draft = *result.Profile
	}
	s.exists = s.draft.Present()
	s.dirty = false
	s.notice = result.Message
	if s.notice == "" {
		s.notice = "Profile saved."
	}
	s.logger.Info("profile saved", "status", result.Status)
	return nil
}

// Snapshot copies the current view state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Status: s.status,
		Draft:  s.draft,
		Exists: s.exists,
		Dirty:  s.dirty,
		Err:    s.err,
		Notice: s.notice,
	}
}
