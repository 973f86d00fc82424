package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutricoach/backend/internal/service"
	"github.com/nutricoach/backend/internal/store"
)

func chatRouter(t *testing.T, reply string) (*gin.Engine, *stubCompleter) {
	llm := &stubCompleter{reply: reply}
	router, _ := newTestRouter(t, func(v1 *gin.RouterGroup, records *store.RecordStore) {
		chat := service.NewChatService(records, llm, false)
		NewChatHandler(chat, testLimiter()).RegisterRoutes(v1)
	})
	return router, llm
}

func TestChatEndpoints(t *testing.T) {
	t.Run("message is required", func(t *testing.T) {
		router, _ := chatRouter(t, "hi there")

		w := doJSON(t, router, http.MethodPost, "/api/v1/chat", map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("turn returns reply and updated history", func(t *testing.T) {
		router, _ := chatRouter(t, "The pasta has about 400 calories.")

		w := doJSON(t, router, http.MethodPost, "/api/v1/chat", map[string]interface{}{
			"message": "how many calories in the pasta?",
		})
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, "The pasta has about 400 calories.", body["response"])
		assert.Equal(t, false, body["stop"])
		history, ok := body["history"].([]interface{})
		require.True(t, ok)
		assert.Len(t, history, 1)
	})

	t.Run("stop message short-circuits", func(t *testing.T) {
		router, llm := chatRouter(t, "should not be called")

		w := doJSON(t, router, http.MethodPost, "/api/v1/chat", map[string]interface{}{
			"message": "ok STOP now",
			"history": []map[string]string{{"message": "hi", "response": "hello"}},
		})
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, service.StopResponse, body["response"])
		assert.Equal(t, true, body["stop"])
		assert.Equal(t, 0, llm.calls)
	})

	t.Run("history round-trips through the server", func(t *testing.T) {
		router, _ := chatRouter(t, "Sure thing.")

		w := doJSON(t, router, http.MethodPost, "/api/v1/chat", map[string]interface{}{
			"message": "remember I hate cilantro",
		})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, router, http.MethodGet, "/api/v1/chat/history", nil)
		require.Equal(t, http.StatusOK, w.Code)

		history, ok := decodeBody(t, w)["history"].([]interface{})
		require.True(t, ok)
		require.Len(t, history, 1)
		exchange := history[0].(map[string]interface{})
		assert.Equal(t, "remember I hate cilantro", exchange["message"])
	})
}
