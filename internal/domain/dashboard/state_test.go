package dashboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/ai-healthcoach/internal/domain/coach"
)

func TestActivateShowsProfile(t *testing.T) {
	client := &stubClient{results: []result{{profile: coach.Profile{Name: "Ana", Age: 30}, found: true}}}
	state := NewState(client, newTestLogger())

	require.NoError(t, state.Activate(context.Background()))

	snap := state.Snapshot()
	require.Equal(t, StatusLoaded, snap.Status)
	require.True(t, snap.HasProfile)
	require.Equal(t, 30, snap.Profile.Age)
}

func TestEmptyNameMeansNoProfile(t *testing.T) {
	client := &stubClient{results: []result{{profile: coach.Profile{Age: 30, Goals: "run"}, found: false}}}
	state := NewState(client, newTestLogger())

	require.NoError(t, state.Activate(context.Background()))
	require.False(t, state.Snapshot().HasProfile)
}

func TestActivateRefetchesEveryTime(t *testing.T) {
	client := &stubClient{results: []result{
		{found: false},
		{profile: coach.Profile{Name: "Ana"}, found: true},
	}}
	state := NewState(client, newTestLogger())

	require.NoError(t, state.Activate(context.Background()))
	require.False(t, state.Snapshot().HasProfile)
	require.NoError(t, state.Activate(context.Background()))
	require.True(t, state.Snapshot().HasProfile)
}

func TestLoadFailureIsVisible(t *testing.T) {
	state := NewState(&stubClient{err: errors.New("connection refused")}, newTestLogger())

	require.Error(t, state.Activate(context.Background()))

	snap := state.Snapshot()
	require.Equal(t, StatusLoadFailed, snap.Status)
	require.EqualError(t, snap.Err, "connection refused")
}

func TestStaleLoadDoesNotOverwriteNewerOne(t *testing.T) {
	slow := make(chan struct{})
	client := &stubClient{
		results: []result{
			{profile: coach.Profile{Name: "Old"}, found: true, gate: slow},
			{profile: coach.Profile{Name: "New"}, found: true},
		},
	}
	state := NewState(client, newTestLogger())

	done := make(chan error, 1)
	go func() { done <- state.Activate(context.Background()) }()
	require.Eventually(t, func() bool { return client.calls() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, state.Activate(context.Background()))
	close(slow)
	require.NoError(t, <-done)

	require.Equal(t, "New", state.Snapshot().Profile.Name)
}

type result struct {
	profile coach.Profile
	found   bool
	gate    chan struct{}
}

type stubClient struct {
	mu      sync.Mutex
	results []result
	err     error
	count   int
}

func (s *stubClient) GetProfile(ctx context.Context) (coach.Profile, bool, error) {
	if s.err != nil {
		return coach.Profile{}, false, s.err
	}
	s.mu.Lock()
	r := s.results[s.count%len(s.results)]
	s.count++
	s.mu.Unlock()
	if r.gate != nil {
		<-r.gate
	}
	return r.profile, r.found, nil
}

func (s *stubClient) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
