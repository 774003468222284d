package conversation

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/ai-healthcoach/internal/domain/coach"
	apperrors "github.com/yanqian/ai-healthcoach/pkg/errors"
	"github.com/yanqian/ai-healthcoach/pkg/util"
)

// Speaker identifies who produced a transcript entry.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Entry is one immutable line of the transcript.
type Entry struct {
	ID      string
	Seq     uint64
	Speaker Speaker
	Text    string
	At      time.Time
	// Fallback marks assistant entries rendered from a malformed reply or a failed exchange.
	Fallback bool
}

// Client is the slice of the backend the conversation needs.
type Client interface {
	SendChatMessage(ctx context.Context, message string) (coach.ChatReply, error)
}

// Snapshot is a consistent copy of the view for rendering.
type Snapshot struct {
	Entries []Entry
	Input   string
	// Pending counts exchanges whose reply has not been appended yet.
	Pending int
}

// State is the append-only transcript of the session.
type State struct {
	mu     sync.Mutex
	client Client
	logger *slog.Logger

	entries   []Entry
	input     string
	nextSeq   uint64
	nextReply uint64
	held      map[uint64]Entry
}

// NewState builds an empty conversation.
func NewState(client Client, logger *slog.Logger) *State {
	return &State{
		client:    client,
		logger:    logger.With("component", "conversation.state"),
		nextSeq:   1,
		nextReply: 1,
		held:      make(map[uint64]Entry),
	}
}

// Exchange is one sent message awaiting its reply.
type Exchange struct {
	state   *State
	seq     uint64
	message string
}

// Seq is the position of the exchange in send order.
func (e *Exchange) Seq() uint64 {
	return e.seq
}

// SetInput stores the pending input text.
func (s *State) SetInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = text
}

// Input returns the pending input text.
func (s *State) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// Begin appends the user entry and clears the input. The bool is false for blank
// text, in which case nothing changes.
func (s *State) Begin(text string) (*Exchange, bool) {
	if strings.TrimSpace(text) == "" {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	seq := s.nextSeq
	s.nextSeq++
	s.entries = append(s.entries, Entry{
		ID:      uuid.NewString(),
		Seq:     seq,
		Speaker: SpeakerUser,
		Text:    text,
		At:      util.NowUTC(),
	})
	s.input = ""
	return &Exchange{state: s, seq: seq, message: text}, true
}

// Run performs the exchange and appends the assistant entry once every earlier
// exchange has been answered. A failed exchange yields a diagnostic entry.
func (e *Exchange) Run(ctx context.Context) error {
	s := e.state
	reply, err := s.client.SendChatMessage(ctx, e.message)

	entry := Entry{
		ID:      uuid.NewString(),
		Seq:     e.seq,
		Speaker: SpeakerAssistant,
		At:      util.NowUTC(),
	}
	var replyErr *coach.ReplyError
	switch {
	case errors.As(err, &replyErr):
		entry.Text = replyErr.Reply
		entry.Fallback = true
		s.logger.Warn("chat exchange failed with fallback reply", "seq", e.seq, "error", err)
	case err != nil:
		entry.Text = "⚠️ " + describe(err)
		entry.Fallback = true
		s.logger.Error("chat exchange failed", "seq", e.seq, "error", err)
	case !reply.HasReply:
		entry.Text = reply.Text()
		entry.Fallback = true
	default:
		entry.Text = reply.Reply
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.held[e.seq] = entry
	for {
		next, ok := s.held[s.nextReply]
		if !ok {
			break
		}
		delete(s.held, s.nextReply)
		s.entries = append(s.entries, next)
		s.nextReply++
	}
	return err
}

// Send runs a whole exchange. Blank text is ignored.
func (s *State) Send(ctx context.Context, text string) error {
	exchange, ok := s.Begin(text)
	if !ok {
		return nil
	}
	return exchange.Run(ctx)
}

// Snapshot copies the current transcript.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]Entry, len(s.entries))
	copy(entries, s.entries)
	return Snapshot{
		Entries: entries,
		Input:   s.input,
		Pending: int(s.nextSeq - s.nextReply),
	}
}

func describe(err error) string {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeNetwork:
		return "Could not reach the coach: " + err.Error()
	case apperrors.CodeServer:
		return "The coach returned an error: " + err.Error()
	default:
		return "Error: " + err.Error()
	}
}
