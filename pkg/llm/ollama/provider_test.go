package ollama

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

func TestChatStreamForwardsNDJSONChunks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		var req ollamaChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)
		assert.Equal(t, "llama3", req.Model)

		w.Header().Set("Content-Type", "application/x-ndjson")
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":"Hel"},"done":false}`)
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":"lo"},"done":false}`)
		fmt.Fprintln(w, `{"message":{"role":"assistant","content":""},"done":true}`)
	}))
	defer srv.Close()

	provider := NewOllamaProvider(srv.URL, "llama3")

	var out string
	err := provider.ChatStream(context.Background(), []llm.Message{{Role: "user", Content: "Hi"}}, func(chunk string) error {
		out += chunk
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "Hello", out)
}

func TestChatMapsModelRoleToAssistant(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "assistant", req.Messages[0].Role)

		fmt.Fprint(w, `{"message":{"role":"assistant","content":"ok"},"done":true}`)
	}))
	defer srv.Close()

	provider := NewOllamaProvider(srv.URL, "llama3")

	out, err := provider.Chat(context.Background(), []llm.Message{{Role: "model", Content: "prior turn"}})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}

func TestChatUpstream429IsRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":"server busy"}`)
	}))
	defer srv.Close()

	provider := NewOllamaProvider(srv.URL, "llama3")

	_, err := provider.Chat(context.Background(), []llm.Message{{Role: "user", Content: "Hi"}})
	require.Error(t, err)
	assert.True(t, llm.IsRateLimited(err))
}

func TestGenerateWrapsPromptAsUserTurn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "say hi", req.Messages[0].Content)

		fmt.Fprint(w, `{"message":{"role":"assistant","content":"hi"},"done":true}`)
	}))
	defer srv.Close()

	provider := NewOllamaProvider(srv.URL, "llama3")

	out, err := provider.Generate(context.Background(), "say hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", out)
}
