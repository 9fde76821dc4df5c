// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package assist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/oliverandrich/cms/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStub(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.AIConfig{
		APIKey:  "test-key",
		Model:   "claude-sonnet-4-6",
		BaseURL: srv.URL,
	})
}

func textResponse(t *testing.T, w http.ResponseWriter, text string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(map[string]any{
		"content": []map[string]any{{"type": "text", "text": text}},
	})
	require.NoError(t, err)
}

func TestClientDisabled(t *testing.T) {
	c := NewClient(config.AIConfig{})
	assert.False(t, c.Enabled())

	_, err := c.GenerateContent(context.Background(), "a prompt", "page")
	assert.ErrorIs(t, err, ErrDisabled)

	_, err = c.SuggestSEO(context.Background(), "content", "post")
	assert.ErrorIs(t, err, ErrDisabled)

	_, err = c.Chat(context.Background(), "hello", nil, SiteCounts{})
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestKnownTarget(t *testing.T) {
	assert.True(t, KnownTarget("page"))
	assert.True(t, KnownTarget("post"))
	assert.True(t, KnownTarget("product"))
	assert.False(t, KnownTarget("banana"))
	assert.False(t, KnownTarget(""))
}

func TestGenerateContent(t *testing.T) {
	t.Run("sends the drafting prompt", func(t *testing.T) {
		var got messageRequest
		c := newStub(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/messages", r.URL.Path)
			assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
			assert.Equal(t, apiVersion, r.Header.Get("Anthropic-Version"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			textResponse(t, w, "A compelling description.")
		})

		text, err := c.GenerateContent(context.Background(), "describe the widget", "product")
		require.NoError(t, err)
		assert.Equal(t, "A compelling description.", text)

		assert.Equal(t, "claude-sonnet-4-6", got.Model)
		assert.Equal(t, contentMaxTokens, got.MaxTokens)
		assert.Contains(t, got.System, "e-commerce copywriter")
		require.Len(t, got.Messages, 1)
		assert.Equal(t, ChatMessage{Role: "user", Content: "describe the widget"}, got.Messages[0])
	})

	t.Run("rejects an unknown target without calling the API", func(t *testing.T) {
		c := newStub(t, func(_ http.ResponseWriter, _ *http.Request) {
			t.Error("unexpected API call")
		})
		_, err := c.GenerateContent(context.Background(), "prompt", "banana")
		assert.Error(t, err)
	})
}

func TestSuggestSEO(t *testing.T) {
	t.Run("parses fenced JSON", func(t *testing.T) {
		c := newStub(t, func(w http.ResponseWriter, _ *http.Request) {
			textResponse(t, w, "```json\n{\"metaTitle\":\"T\",\"metaDescription\":\"D\",\"keywords\":\"a, b\"}\n```")
		})

		suggestion, err := c.SuggestSEO(context.Background(), "some content", "page")
		require.NoError(t, err)
		assert.Equal(t, &SEOSuggestion{MetaTitle: "T", MetaDescription: "D", Keywords: "a, b"}, suggestion)
	})

	t.Run("parses bare JSON", func(t *testing.T) {
		c := newStub(t, func(w http.ResponseWriter, _ *http.Request) {
			textResponse(t, w, `{"metaTitle":"T","metaDescription":"D","keywords":"a"}`)
		})

		suggestion, err := c.SuggestSEO(context.Background(), "some content", "post")
		require.NoError(t, err)
		assert.Equal(t, "T", suggestion.MetaTitle)
	})

	t.Run("fails on non-JSON replies", func(t *testing.T) {
		c := newStub(t, func(w http.ResponseWriter, _ *http.Request) {
			textResponse(t, w, "Sorry, I cannot do that.")
		})

		_, err := c.SuggestSEO(context.Background(), "some content", "page")
		assert.ErrorContains(t, err, "invalid SEO JSON")
	})
}

func TestChat(t *testing.T) {
	var got messageRequest
	c := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		textResponse(t, w, "There are 3 pages.")
	})

	history := []ChatMessage{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
	}
	reply, err := c.Chat(context.Background(), "how many pages?", history, SiteCounts{Pages: 3, Media: 7})
	require.NoError(t, err)
	assert.Equal(t, "There are 3 pages.", reply)

	assert.Contains(t, got.System, "Pages: 3")
	assert.Contains(t, got.System, "Media files: 7")
	require.Len(t, got.Messages, 3)
	assert.Equal(t, ChatMessage{Role: "user", Content: "how many pages?"}, got.Messages[2])
}

func TestCompleteErrors(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		c := newStub(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"overloaded"}`))
		})
		_, err := c.GenerateContent(context.Background(), "prompt", "page")
		assert.ErrorContains(t, err, "429")
	})

	t.Run("empty content", func(t *testing.T) {
		c := newStub(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"content":[]}`))
		})
		_, err := c.GenerateContent(context.Background(), "prompt", "page")
		assert.ErrorContains(t, err, "no text block")
	})
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(`{"a":1}`))
}
