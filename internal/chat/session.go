// Package chat holds the assistant conversation state. A Session is a pure
// state machine: the caller performs the network round trip and feeds the
// outcome back in, which keeps the session testable and lets the TUI drive it
// from its own message loop.
package chat

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/runhub/runhub/internal/api"
)

const (
	// MaxMessages caps the transcript length, greeting included.
	MaxMessages = 25

	// WarnThreshold is the transcript length at which the UI starts nudging
	// the user that the conversation is close to its cap.
	WarnThreshold = 20
)

// Greeting seeds every new session so the panel never opens empty.
const Greeting = "Hi! I'm your running assistant. Ask me about your recent runs, weekly mileage, or badges."

var (
	ErrBusy         = errors.New("chat: reply still pending")
	ErrSessionFull  = errors.New("chat: conversation limit reached")
	ErrEmptyMessage = errors.New("chat: empty message")
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one transcript entry.
type Message struct {
	Role    Role
	Content string
	At      time.Time
}

// Session is a single conversation with the assistant. Not safe for
// concurrent use; the TUI owns it from one goroutine.
type Session struct {
	id       string
	log      zerolog.Logger
	messages []Message
	busy     bool
	now      func() time.Time
}

// NewSession returns a session seeded with the assistant greeting. The id is
// only for log correlation, the backend keeps no conversation state.
func NewSession(log zerolog.Logger) *Session {
	s := &Session{
		id:  uuid.NewString(),
		log: log.With().Str("component", "chat").Logger(),
		now: time.Now,
	}
	s.seed()
	return s
}

func (s *Session) seed() {
	s.messages = []Message{{Role: RoleAssistant, Content: Greeting, At: s.now()}}
}

// ID returns the session's correlation id.
func (s *Session) ID() string { return s.id }

// Messages returns a copy of the transcript, oldest first.
func (s *Session) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Busy reports whether a reply is still pending.
func (s *Session) Busy() bool { return s.busy }

// Full reports whether another user/assistant exchange would exceed the cap.
func (s *Session) Full() bool {
	return len(s.messages)+2 > MaxMessages
}

// NearLimit reports whether the transcript has reached the warning threshold.
func (s *Session) NearLimit() bool {
	return len(s.messages) >= WarnThreshold
}

// Remaining returns how many more messages the user can send.
func (s *Session) Remaining() int {
	left := (MaxMessages - len(s.messages)) / 2
	if left < 0 {
		return 0
	}
	return left
}

// Send appends the user's message optimistically and marks the session busy.
// The caller then performs the request and settles it with Resolve or Fail.
func (s *Session) Send(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyMessage
	}
	if s.busy {
		return ErrBusy
	}
	if s.Full() {
		return ErrSessionFull
	}

	s.messages = append(s.messages, Message{Role: RoleUser, Content: text, At: s.now()})
	s.busy = true
	s.log.Debug().Str("session", s.id).Int("len", len(s.messages)).Msg("chat message sent")
	return nil
}

// Resolve appends the assistant's reply and clears the busy flag.
func (s *Session) Resolve(reply string) {
	s.busy = false
	s.messages = append(s.messages, Message{Role: RoleAssistant, Content: reply, At: s.now()})
}

// Fail settles a pending send with an error. The error is rendered into the
// transcript as an assistant message so the user's message never dangles:
// rate limits get the backend's retry hint, anything else a generic apology.
func (s *Session) Fail(err error) {
	s.busy = false

	var rateErr *api.RateLimitError
	if errors.As(err, &rateErr) {
		s.messages = append(s.messages, Message{
			Role:    RoleAssistant,
			Content: rateLimitMessage(rateErr.RetryAfter),
			At:      s.now(),
		})
		return
	}

	s.log.Warn().Err(err).Str("session", s.id).Msg("chat request failed")
	s.messages = append(s.messages, Message{
		Role:    RoleAssistant,
		Content: "Sorry, I'm having trouble connecting right now. Please try again in a moment.",
		At:      s.now(),
	})
}

// Clear resets the transcript to the greeting. The session keeps its id.
func (s *Session) Clear() {
	s.busy = false
	s.seed()
}

func rateLimitMessage(retryAfter time.Duration) string {
	minutes := int(math.Ceil(retryAfter.Minutes()))
	if minutes < 1 {
		minutes = 1
	}
	if minutes == 1 {
		return "You're sending messages a little fast. Try again in about a minute."
	}
	return fmt.Sprintf("You're sending messages a little fast. Try again in about %d minutes.", minutes)
}
