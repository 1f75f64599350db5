package chat

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runhub/runhub/internal/api"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return NewSession(zerolog.Nop())
}

func TestNewSession_SeedsGreeting(t *testing.T) {
	s := newTestSession(t)

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, RoleAssistant, msgs[0].Role)
	assert.Equal(t, Greeting, msgs[0].Content)
	assert.NotEmpty(t, s.ID())
	assert.False(t, s.Busy())
}

func TestSend_OptimisticAppend(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.Send("how far did I run this week?"))

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, RoleUser, msgs[1].Role)
	assert.Equal(t, "how far did I run this week?", msgs[1].Content)
	assert.True(t, s.Busy(), "send leaves a reply pending")
}

func TestSend_TrimsWhitespace(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.Send("  hello  "))
	assert.Equal(t, "hello", s.Messages()[1].Content)
}

func TestSend_RejectsEmpty(t *testing.T) {
	s := newTestSession(t)

	assert.ErrorIs(t, s.Send("   "), ErrEmptyMessage)
	assert.Len(t, s.Messages(), 1)
	assert.False(t, s.Busy())
}

func TestSend_RejectsWhileBusy(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.Send("first"))
	assert.ErrorIs(t, s.Send("second"), ErrBusy)
	assert.Len(t, s.Messages(), 2, "second message must not be appended")
}

func TestResolve_AppendsReply(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Send("hi"))

	s.Resolve("You ran 12 miles this week.")

	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, RoleAssistant, msgs[2].Role)
	assert.Equal(t, "You ran 12 miles this week.", msgs[2].Content)
	assert.False(t, s.Busy())
}

func TestFail_RateLimitRoundsUpToMinutes(t *testing.T) {
	tests := []struct {
		name       string
		retryAfter time.Duration
		want       string
	}{
		{"90s rounds up to 2", 90 * time.Second, "Try again in about 2 minutes."},
		{"60s is one minute", 60 * time.Second, "Try again in about a minute."},
		{"30s still one minute", 30 * time.Second, "Try again in about a minute."},
		{"121s rounds up to 3", 121 * time.Second, "Try again in about 3 minutes."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t)
			require.NoError(t, s.Send("hi"))

			s.Fail(&api.RateLimitError{RetryAfter: tt.retryAfter})

			msgs := s.Messages()
			require.Len(t, msgs, 3)
			assert.Equal(t, RoleAssistant, msgs[2].Role)
			assert.Contains(t, msgs[2].Content, tt.want)
			assert.False(t, s.Busy())
		})
	}
}

func TestFail_GenericError(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.Send("hi"))

	s.Fail(errors.New("connection refused"))

	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, RoleAssistant, msgs[2].Role)
	assert.Contains(t, msgs[2].Content, "trouble connecting")
	assert.NotContains(t, msgs[2].Content, "connection refused", "raw errors stay out of the transcript")
	assert.False(t, s.Busy())
}

func TestSession_CapAndWarning(t *testing.T) {
	s := newTestSession(t)

	// Fill the transcript with exchanges until another one no longer fits.
	for !s.Full() {
		require.NoError(t, s.Send("ping"))
		s.Resolve("pong")
	}

	assert.Len(t, s.Messages(), MaxMessages)
	assert.True(t, s.NearLimit())
	assert.Equal(t, 0, s.Remaining())
	assert.ErrorIs(t, s.Send("one more"), ErrSessionFull)
}

func TestSession_NearLimitThreshold(t *testing.T) {
	s := newTestSession(t)

	for len(s.Messages()) < WarnThreshold-1 {
		require.NoError(t, s.Send("ping"))
		s.Resolve("pong")
	}
	assert.False(t, s.NearLimit())

	require.NoError(t, s.Send("ping"))
	s.Resolve("pong")
	assert.True(t, s.NearLimit())
}

func TestClear_ResetsToGreeting(t *testing.T) {
	s := newTestSession(t)
	id := s.ID()

	require.NoError(t, s.Send("hi"))
	s.Resolve("hello")
	s.Clear()

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, Greeting, msgs[0].Content)
	assert.False(t, s.Busy())
	assert.Equal(t, id, s.ID(), "clear keeps the correlation id")
}
