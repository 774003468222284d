package analyzer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/ai-healthcoach/internal/domain/coach"
)

func TestSubmitWithoutFileNeverCallsService(t *testing.T) {
	client := &stubClient{}
	state := NewState(client, newTestLogger())

	require.ErrorIs(t, state.Submit(context.Background()), ErrNoFileSelected)

	snap := state.Snapshot()
	require.Equal(t, StatusIdle, snap.Status)
	require.Equal(t, NoFileWarning, snap.Warning)
	require.Zero(t, client.callCount())
}

func TestSubmitReplacesResultAndClearsFile(t *testing.T) {
	client := &stubClient{results: []coach.AnalysisResult{{"food": "rice"}, {"calories": 320.0}}}
	state := NewState(client, newTestLogger())

	require.NoError(t, state.Select(coach.ImageFile{Name: "a.png", Data: []byte("a")}))
	require.Equal(t, StatusFileSelected, state.Snapshot().Status)
	require.NoError(t, state.Submit(context.Background()))

	snap := state.Snapshot()
	require.Equal(t, StatusIdle, snap.Status)
	require.Empty(t, snap.FileName)
	require.Equal(t, coach.AnalysisResult{"food": "rice"}, snap.Result)

	require.NoError(t, state.Select(coach.ImageFile{Name: "b.png", Data: []byte("b")}))
	require.NoError(t, state.Submit(context.Background()))
	require.Equal(t, coach.AnalysisResult{"calories": 320.0}, state.Snapshot().Result)

	rendered, err := state.ResultJSON()
	require.NoError(t, err)
	require.Equal(t, "{\n  \"calories\": 320\n}", rendered)
}

func TestSubmitFailureKeepsFileAndResult(t *testing.T) {
	client := &stubClient{results: []coach.AnalysisResult{{"food": "rice"}}}
	state := NewState(client, newTestLogger())
	require.NoError(t, state.Select(coach.ImageFile{Name: "a.png", Data: []byte("a")}))
	require.NoError(t, state.Submit(context.Background()))

	client.setErr(errors.New("status=500"))
	require.NoError(t, state.Select(coach.ImageFile{Name: "b.png", Data: []byte("b")}))
	require.Error(t, state.Submit(context.Background()))

	snap := state.Snapshot()
	require.Equal(t, StatusFileSelected, snap.Status)
	require.Equal(t, "b.png", snap.FileName)
	require.Equal(t, coach.AnalysisResult{"food": "rice"}, snap.Result)
	require.Error(t, snap.Err)
}

func TestSubmitInFlightIsRejected(t *testing.T) {
	gate := make(chan struct{})
	client := &stubClient{results: []coach.AnalysisResult{{"ok": true}}, gate: gate}
	state := NewState(client, newTestLogger())
	require.NoError(t, state.Select(coach.ImageFile{Name: "a.png", Data: []byte("a")}))

	done := make(chan error, 1)
	go func() { done <- state.Submit(context.Background()) }()
	require.Eventually(t, func() bool { return state.Snapshot().Status == StatusSubmitting }, time.Second, 5*time.Millisecond)

	require.ErrorIs(t, state.Submit(context.Background()), ErrSubmitInFlight)
	require.ErrorIs(t, state.Select(coach.ImageFile{Name: "b.png"}), ErrSubmitInFlight)

	close(gate)
	require.NoError(t, <-done)
	require.Equal(t, 1, client.callCount())
}

func TestSelectFileReadsFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lunch.jpg")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xd8, 0xff}, 0o600))
	client := &stubClient{results: []coach.AnalysisResult{{}}}
	state := NewState(client, newTestLogger())

	require.NoError(t, state.SelectFile(path))
	require.Equal(t, "lunch.jpg", state.Snapshot().FileName)
	require.NoError(t, state.Submit(context.Background()))
	require.Equal(t, []byte{0xff, 0xd8, 0xff}, client.last.Data)

	require.Error(t, state.SelectFile(filepath.Join(t.TempDir(), "missing.jpg")))
}

type stubClient struct {
	mu      sync.Mutex
	results []coach.AnalysisResult
	err     error
	gate    chan struct{}
	calls   int
	last    coach.ImageFile
}

func (s *stubClient) AnalyzeImage(ctx context.Context, file coach.ImageFile) (coach.AnalysisResult, error) {
	if s.gate != nil {
		<-s.gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.last = file
	if s.err != nil {
		return nil, s.err
	}
	return s.results[(s.calls-1)%len(s.results)], nil
}

func (s *stubClient) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *stubClient) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
