package llm

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClaudeCodeClient_MissingCLI(t *testing.T) {
	_, err := newClaudeCodeClient(Config{ClaudeCodePath: "/nonexistent/claude-binary"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "claude CLI not found")
}

func TestNewClaudeCodeClient_Defaults(t *testing.T) {
	if _, err := exec.LookPath("claude"); err != nil {
		t.Skip("claude CLI not available, skipping tests")
	}

	client, err := newClaudeCodeClient(Config{})
	require.NoError(t, err)
	assert.Equal(t, "sonnet", client.(*claudeCodeClient).model)
}

func TestParseClaudeCodeOutput(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    string
		wantErr bool
	}{
		{
			name:   "envelope with result",
			output: `{"type":"result","result":"{\"Groceries\": 250}","is_error":false,"session_id":"abc"}`,
			want:   `{"Groceries": 250}`,
		},
		{
			name:    "envelope with error",
			output:  `{"type":"result","result":"quota exhausted","is_error":true}`,
			wantErr: true,
		},
		{
			name:    "envelope with empty result",
			output:  `{"type":"result","result":"","is_error":false}`,
			wantErr: true,
		},
		{
			name:   "plain text output",
			output: "  {\"Rent\": 1000}\n",
			want:   `{"Rent": 1000}`,
		},
		{
			name:   "bare json object without envelope",
			output: `{"Rent": 1000}`,
			want:   `{"Rent": 1000}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseClaudeCodeOutput([]byte(tt.output))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
