package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/yanqian/ai-healthcoach/internal/domain/coach"
)

var (
	// ErrNoFileSelected is returned by Submit when no image has been chosen.
	ErrNoFileSelected = errors.New("no image selected")
	// ErrSubmitInFlight is returned while an upload is still running.
	ErrSubmitInFlight = errors.New("image analysis already in progress")
)

// NoFileWarning is shown when the user submits without choosing an image.
const NoFileWarning = "Choose an image first"

// Status is the lifecycle position of the analyzer view.
type Status string

const (
	StatusIdle         Status = "idle"
	StatusFileSelected Status = "file_selected"
	StatusSubmitting   Status = "submitting"
)

// Client is the slice of the backend the analyzer needs.
type Client interface {
	AnalyzeImage(ctx context.Context, file coach.ImageFile) (coach.AnalysisResult, error)
}

// Snapshot is a consistent copy of the view for rendering.
type Snapshot struct {
	Status   Status
	FileName string
	Result   coach.AnalysisResult
	Warning  string
	Err      error
}

// State tracks the pending file, the last result and the in-flight flag.
type State struct {
	mu     sync.Mutex
	client Client
	logger *slog.Logger

	file       *coach.ImageFile
	submitting bool
	result     coach.AnalysisResult
	warning    string
	err        error
}

// NewState builds an idle analyzer.
func NewState(client Client, logger *slog.Logger) *State {
	return &State{
		client: client,
		logger: logger.With("component", "analyzer.state"),
	}
}

// Select makes file the pending upload, replacing any earlier choice.
func (s *State) Select(file coach.ImageFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return ErrSubmitInFlight
	}
	s.file = &file
	s.warning = ""
	s.err = nil
	return nil
}

// SelectFile reads an image from disk and selects it.
func (s *State) SelectFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	return s.Select(coach.ImageFile{Name: filepath.Base(path), Data: data})
}

// Submit uploads the pending file. Without a file it only records a warning.
func (s *State) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return ErrSubmitInFlight
	}
	if s.file == nil {
		s.warning = NoFileWarning
		s.mu.Unlock()
		return ErrNoFileSelected
	}
	file := *s.file
	s.submitting = true
	s.warning = ""
	s.err = nil
	s.mu.Unlock()

	result, err := s.client.AnalyzeImage(ctx, file)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	if err != nil {
		s.err = err
		s.logger.Error("image analysis failed", "file", file.Name, "error", err)
		return err
	}
	s.result = result
	s.file = nil
	s.logger.Info("image analyzed", "file", file.Name, "bytes", len(file.Data), "fields", len(result))
	return nil
}

// Snapshot copies the current view state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Status:  StatusIdle,
		Result:  s.result,
		Warning: s.warning,
		Err:     s.err,
	}
	if s.file != nil {
		snap.Status = StatusFileSelected
		snap.FileName = s.file.Name
	}
	if s.submitting {
		snap.Status = StatusSubmitting
	}
	return snap
}

// ResultJSON renders the last result as indented JSON, or "" when there is none.
func (s *State) ResultJSON() (string, error) {
	s.mu.Lock()
	result := s.result
	s.mu.Unlock()
	if result == nil {
		return "", nil
	}
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("render analysis: %w", err)
	}
	return string(out), nil
}
