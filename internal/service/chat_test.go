package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutricoach/backend/internal/models"
	"github.com/nutricoach/backend/internal/store"
	"github.com/nutricoach/backend/internal/testhelpers"
)

type stubCompleter struct {
	reply string
	err   error
	calls int
}

func (s *stubCompleter) Complete(ctx context.Context, messages []Message) (string, error) {
	s.calls++
	return s.reply, s.err
}

func newChatFixture(t *testing.T, reply string) (*ChatService, *stubCompleter, *store.RecordStore) {
	records := store.NewRecordStore(testhelpers.SetupTestDB(t))
	llm := &stubCompleter{reply: reply}
	return NewChatService(records, llm, false), llm, records
}

func TestChatTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("normal turn appends and persists", func(t *testing.T) {
		chat, llm, _ := newChatFixture(t, "Try the salmon on day two.")

		result, err := chat.Turn(ctx, "eve@example.com", "what should I eat tomorrow?", nil)
		require.NoError(t, err)

		assert.Equal(t, 1, llm.calls)
		assert.False(t, result.Stopped)
		assert.Equal(t, "Try the salmon on day two.", result.Response)
		require.Len(t, result.History, 1)
		assert.Equal(t, "what should I eat tomorrow?", result.History[0].Message)

		stored, err := chat.History(ctx, "eve@example.com")
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, "Try the salmon on day two.", stored[0].Response)
	})

	t.Run("history accumulates across turns", func(t *testing.T) {
		chat, _, _ := newChatFixture(t, "Sure.")

		first, err := chat.Turn(ctx, "eve@example.com", "hello", nil)
		require.NoError(t, err)
		second, err := chat.Turn(ctx, "eve@example.com", "and lunch?", first.History)
		require.NoError(t, err)

		require.Len(t, second.History, 2)
		assert.Equal(t, "hello", second.History[0].Message)
		assert.Equal(t, "and lunch?", second.History[1].Message)
	})
}

func TestChatStopDetection(t *testing.T) {
	ctx := context.Background()

	for _, message := range []string{"stop", "Stop", "STOP", "please stop now"} {
		t.Run(message, func(t *testing.T) {
			chat, llm, _ := newChatFixture(t, "should never be asked")
			history := []models.ChatExchange{{Message: "hi", Response: "hello"}}

			result, err := chat.Turn(ctx, "eve@example.com", message, history)
			require.NoError(t, err)

			assert.Equal(t, 0, llm.calls, "stop requests must not reach the model")
			assert.True(t, result.Stopped)
			assert.Equal(t, StopResponse, result.Response)
			assert.Equal(t, history, result.History, "stop turn is not recorded as an exchange")
		})
	}

	t.Run("stop persists the prior history", func(t *testing.T) {
		chat, _, _ := newChatFixture(t, "unused")
		history := []models.ChatExchange{{Message: "hi", Response: "hello"}}

		_, err := chat.Turn(ctx, "eve@example.com", "ok stop", history)
		require.NoError(t, err)

		stored, err := chat.History(ctx, "eve@example.com")
		require.NoError(t, err)
		assert.Equal(t, history, stored)
	})

	t.Run("stop inside a word still triggers", func(t *testing.T) {
		// Substring matching is deliberate, "unstoppable" ends the chat too.
		chat, llm, _ := newChatFixture(t, "unused")

		result, err := chat.Turn(ctx, "eve@example.com", "I am unstoppable", nil)
		require.NoError(t, err)
		assert.True(t, result.Stopped)
		assert.Equal(t, 0, llm.calls)
	})
}

func TestChatStopOnModelReply(t *testing.T) {
	ctx := context.Background()

	t.Run("off by default", func(t *testing.T) {
		chat, _, _ := newChatFixture(t, "You should stop eating sugar.")

		result, err := chat.Turn(ctx, "eve@example.com", "any advice?", nil)
		require.NoError(t, err)
		assert.False(t, result.Stopped)
		require.Len(t, result.History, 1)
	})

	t.Run("when enabled a stop phrase in the reply ends the chat", func(t *testing.T) {
		records := store.NewRecordStore(testhelpers.SetupTestDB(t))
		llm := &stubCompleter{reply: "You should stop eating sugar."}
		chat := NewChatService(records, llm, true)

		result, err := chat.Turn(ctx, "eve@example.com", "any advice?", nil)
		require.NoError(t, err)
		assert.True(t, result.Stopped)
		assert.Equal(t, StopResponse, result.Response)
		assert.Empty(t, result.History)
	})
}

func TestChatHistoryTolerance(t *testing.T) {
	ctx := context.Background()
	records := store.NewRecordStore(testhelpers.SetupTestDB(t))
	chat := NewChatService(records, &stubCompleter{}, false)

	t.Run("no stored history reads as empty", func(t *testing.T) {
		history, err := chat.History(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("corrupt stored history reads as empty", func(t *testing.T) {
		require.NoError(t, records.UpsertChatHistory(ctx, "eve@example.com", "not json at all"))

		history, err := chat.History(ctx, "eve@example.com")
		require.NoError(t, err)
		assert.Empty(t, history)
	})
}
