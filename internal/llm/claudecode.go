package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// claudeCodeClient implements the Client interface using Claude Code CLI.
type claudeCodeClient struct {
	model   string
	cliPath string
}

// newClaudeCodeClient creates a new Claude Code CLI client.
func newClaudeCodeClient(cfg Config) (Client, error) {
	cliPath := cfg.ClaudeCodePath
	if cliPath == "" {
		cliPath = "claude"
	}

	if _, err := exec.LookPath(cliPath); err != nil {
		return nil, fmt.Errorf("claude CLI not found at %s: ensure @anthropic-ai/claude-code is installed", cliPath)
	}

	model := cfg.Model
	if model == "" {
		model = "sonnet"
	}

	return &claudeCodeClient{
		model:   model,
		cliPath: cliPath,
	}, nil
}

// Complete runs a single-turn prompt through the Claude Code CLI.
func (c *claudeCodeClient) Complete(ctx context.Context, req Request) (string, error) {
	fullPrompt := fmt.Sprintf("%s\n\n%s", systemWithSchema(req), req.Prompt)

	args := []string{
		"-p", fullPrompt,
		"--output-format", "json",
		"--model", c.model,
		"--max-turns", "1",
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.cliPath, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return "", fmt.Errorf("claude code error: %s: %w", strings.TrimSpace(stderr.String()), err)
		}
		return "", fmt.Errorf("failed to execute claude: %w", err)
	}

	return parseClaudeCodeOutput(stdout.Bytes())
}

// parseClaudeCodeOutput unwraps the CLI's JSON envelope. Output that is not
// an envelope is returned as-is.
func parseClaudeCodeOutput(out []byte) (string, error) {
	var response claudeCodeResponse
	if err := json.Unmarshal(out, &response); err != nil || response.Type == "" {
		return strings.TrimSpace(string(out)), nil
	}

	if response.IsError {
		return "", fmt.Errorf("claude code error in response: %s", response.Result)
	}

	if response.Result == "" {
		return "", fmt.Errorf("empty response from claude code")
	}

	return response.Result, nil
}

// claudeCodeResponse represents the JSON response from Claude Code CLI.
type claudeCodeResponse struct {
	Result    string  `json:"result"`
	Type      string  `json:"type"`
	SessionID string  `json:"session_id"`
	IsError   bool    `json:"is_error"`
	TotalCost float64 `json:"total_cost_usd"`
}
