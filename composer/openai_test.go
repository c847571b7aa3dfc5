package composer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOpenAIChatComplete(t *testing.T) {
	assert := assert.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "Try Gone Dark."}},
			},
		})
	}))
	defer srv.Close()

	c := NewOpenAIChat(srv.URL, "test-key", "gpt-4o-mini", 0.7, 500, time.Second)

	text, err := c.Complete(context.Background(), "you are a librarian", "suggest a thriller")
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal("Try Gone Dark.", text)
}

func TestOpenAIChatMalformedResponse(t *testing.T) {
	assert := assert.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	c := NewOpenAIChat(srv.URL, "test-key", "gpt-4o-mini", 0.7, 500, time.Second)

	_, err := c.Complete(context.Background(), "system", "user")
	assert.ErrorIs(err, ErrChatService)
}

func TestOpenAIChatUnreachable(t *testing.T) {
	assert := assert.New(t)

	c := NewOpenAIChat("http://127.0.0.1:1", "test-key", "gpt-4o-mini", 0.7, 500, time.Second)

	_, err := c.Complete(context.Background(), "system", "user")
	assert.ErrorIs(err, ErrChatService)
}
