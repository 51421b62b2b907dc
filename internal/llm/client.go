package llm

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

// Client defines the interface for LLM providers.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Request is a single-turn completion request.
type Request struct {
	System     string
	Prompt     string
	SchemaName string
	// Schema is an optional JSON schema the completion should conform to.
	// Providers with native structured output enforce it, the rest receive it
	// as a hint appended to the system prompt.
	Schema json.RawMessage
}

// Config holds configuration for an LLM client.
type Config struct {
	Provider       string
	APIKey         string
	Model          string
	BaseURL        string
	ClaudeCodePath string
	Timeout        time.Duration
	// Temperature is nil when unset; a zero value is honored.
	Temperature    *float64
	MaxTokens      int
}

const (
	defaultTemperature = 0.3
	defaultMaxTokens   = 1024
	defaultTimeout     = 60 * time.Second
)

func (c Config) temperature() float64 {
	if c.Temperature == nil {
		return defaultTemperature
	}
	return *c.Temperature
}

func (c Config) maxTokens() int {
	if c.MaxTokens == 0 {
		return defaultMaxTokens
	}
	return c.MaxTokens
}

func (c Config) timeout() time.Duration {
	if c.Timeout == 0 {
		return defaultTimeout
	}
	return c.Timeout
}

func (c Config) baseURL(fallback string) string {
	if c.BaseURL == "" {
		return fallback
	}
	return strings.TrimRight(c.BaseURL, "/")
}

// systemWithSchema appends a schema hint to a system prompt.
func systemWithSchema(req Request) string {
	if len(req.Schema) == 0 {
		return req.System
	}
	return req.System + "\n\nYour response MUST be a single JSON value conforming to this JSON schema:\n" + string(req.Schema)
}

// CleanMarkdownWrapper strips a surrounding markdown code fence, if any.
func CleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```")
	if idx := strings.Index(content, "\n"); idx >= 0 {
		// Drop the language tag line (```json).
		content = content[idx+1:]
	} else {
		content = strings.TrimPrefix(content, "json")
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")

	return strings.TrimSpace(content)
}
