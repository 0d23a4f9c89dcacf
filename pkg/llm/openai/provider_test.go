package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"careerpilot-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatStreamForwardsDeltasInOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openaiChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"Hel\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"lo\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{},\"finish_reason\":\"stop\"}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	provider := NewOpenAIProvider(srv.URL, "test-key", "gpt-test")

	var out string
	err := provider.ChatStream(context.Background(), []llm.Message{{Role: "user", Content: "Hi"}}, func(chunk string) error {
		out += chunk
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "Hello", out)
}

func TestChatStreamHandlerErrorAbortsStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"a\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"b\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	provider := NewOpenAIProvider(srv.URL, "test-key", "gpt-test")

	calls := 0
	err := provider.ChatStream(context.Background(), []llm.Message{{Role: "user", Content: "Hi"}}, func(chunk string) error {
		calls++
		return assert.AnError
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestChatReturnsFirstChoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openaiChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.False(t, req.Stream)
		assert.Equal(t, "gpt-test", req.Model)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"42"}}]}`)
	}))
	defer srv.Close()

	provider := NewOpenAIProvider(srv.URL, "test-key", "gpt-test")

	out, err := provider.Chat(context.Background(), []llm.Message{{Role: "user", Content: "Meaning of life?"}})
	require.NoError(t, err)
	assert.Equal(t, "42", out)
}

func TestChatNonOKStatusIsTypedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"bad key"}}`)
	}))
	defer srv.Close()

	provider := NewOpenAIProvider(srv.URL, "wrong", "gpt-test")

	_, err := provider.Chat(context.Background(), []llm.Message{{Role: "user", Content: "Hi"}})
	require.Error(t, err)

	var statusErr *llm.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.False(t, llm.IsRateLimited(err))
}

func TestChatUpstream429IsRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"rate limit reached"}}`)
	}))
	defer srv.Close()

	provider := NewOpenAIProvider(srv.URL, "test-key", "gpt-test")

	_, err := provider.Chat(context.Background(), []llm.Message{{Role: "user", Content: "Hi"}})
	require.Error(t, err)
	assert.True(t, llm.IsRateLimited(err))
}
