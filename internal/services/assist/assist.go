// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package assist drafts content, SEO metadata, and chat replies with
// the Anthropic Messages API.
//
// The feature is opt-in: without an API key every call returns
// ErrDisabled and the HTTP layer answers 503. The wire protocol is a
// single JSON POST, so the client speaks it directly instead of
// pulling in an SDK.
package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"codeberg.org/oliverandrich/cms/internal/config"
)

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("content assistance is not configured")

const (
	messagesPath = "/v1/messages"
	apiVersion   = "2023-06-01"

	contentMaxTokens = 1024
	seoMaxTokens     = 512
	chatMaxTokens    = 1024
)

// generateSystems maps a content target to its drafting instructions.
var generateSystems = map[string]string{
	"product": "You are an expert e-commerce copywriter. Write compelling, conversion-focused product descriptions in Markdown. Return only the description text.",
	"post":    "You are an expert blog writer. Write engaging, informative blog post content in Markdown. Return only the post body.",
	"page":    "You are an expert marketing copywriter. Write engaging, SEO-friendly page copy in Markdown. Return only the copy.",
}

// KnownTarget reports whether target names a content type the drafting
// prompts cover.
func KnownTarget(target string) bool {
	_, ok := generateSystems[target]
	return ok
}

// ChatMessage is one turn of an assistant conversation. Role is "user"
// or "assistant".
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SEOSuggestion is the structured metadata the model proposes.
type SEOSuggestion struct {
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	Keywords        string `json:"keywords"`
}

// SiteCounts summarizes the live content inventory for the chat system
// prompt.
type SiteCounts struct {
	Pages    int64
	Posts    int64
	Products int64
	Media    int64
}

// Client calls the Messages API.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

// NewClient builds a client from the AI configuration. A client built
// without an API key is valid but disabled.
func NewClient(cfg config.AIConfig) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}
	return &Client{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// GenerateContent drafts body copy for a page, post, or product from a
// free-form prompt.
func (c *Client) GenerateContent(ctx context.Context, prompt, target string) (string, error) {
	system, ok := generateSystems[target]
	if !ok {
		return "", fmt.Errorf("unknown content target: %s", target)
	}
	return c.complete(ctx, system, []ChatMessage{{Role: "user", Content: prompt}}, contentMaxTokens)
}

// SuggestSEO asks the model for meta title, meta description, and
// keywords for the given content.
func (c *Client) SuggestSEO(ctx context.Context, content, target string) (*SEOSuggestion, error) {
	if !KnownTarget(target) {
		return nil, fmt.Errorf("unknown content target: %s", target)
	}

	system := fmt.Sprintf(`You are an SEO specialist. Given %s content, generate:
- metaTitle: max 60 characters, keyword-rich
- metaDescription: max 155 characters, compelling with primary keyword
- keywords: comma-separated list of 5-8 target keywords

Respond ONLY with valid JSON in exactly this shape:
{
  "metaTitle": "...",
  "metaDescription": "...",
  "keywords": "..."
}`, target)

	text, err := c.complete(ctx, system,
		[]ChatMessage{{Role: "user", Content: "Generate SEO metadata for:\n\n" + content}},
		seoMaxTokens)
	if err != nil {
		return nil, err
	}

	var suggestion SEOSuggestion
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &suggestion); err != nil {
		return nil, fmt.Errorf("model returned invalid SEO JSON: %w", err)
	}
	return &suggestion, nil
}

// Chat answers a free-form question about the CMS, grounded on the
// current content counts.
func (c *Client) Chat(ctx context.Context, message string, history []ChatMessage, counts SiteCounts) (string, error) {
	system := fmt.Sprintf(`You are a helpful CMS assistant. You have access to real-time CMS data:

CMS live data:
- Pages: %d
- Blog posts: %d
- Products: %d
- Media files: %d

Answer questions concisely and accurately.`,
		counts.Pages, counts.Posts, counts.Products, counts.Media)

	messages := make([]ChatMessage, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, ChatMessage{Role: "user", Content: message})

	return c.complete(ctx, system, messages, chatMaxTokens)
}

type messageRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	System    string        `json:"system,omitempty"`
	Messages  []ChatMessage `json:"messages"`
}

type messageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// complete sends one Messages API call and returns the first text
// block of the reply.
func (c *Client) complete(ctx context.Context, system string, messages []ChatMessage, maxTokens int) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}

	body, err := json.Marshal(messageRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  messages,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+messagesPath, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Anthropic-Version", apiVersion)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("model API request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("model API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var decoded messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("model API returned invalid JSON: %w", err)
	}
	if len(decoded.Content) == 0 || decoded.Content[0].Type != "text" {
		return "", errors.New("model API returned no text block")
	}
	return decoded.Content[0].Text, nil
}

// stripCodeFence removes a surrounding markdown code fence, which the
// model sometimes adds despite being told not to.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
