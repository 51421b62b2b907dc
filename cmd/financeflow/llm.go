package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/financeflow/internal/common"
	"github.com/Veraticus/financeflow/internal/llm"
)

// llmConfig reads the provider settings from configuration. API keys fall
// back to the provider's conventional environment variable.
func llmConfig() (llm.Config, error) {
	provider := strings.ToLower(viper.GetString("llm.provider"))
	if provider == "" {
		provider = "openai"
	}

	cfg := llm.Config{
		Provider:       provider,
		Model:          viper.GetString("llm.model"),
		BaseURL:        viper.GetString("llm.base_url"),
		ClaudeCodePath: viper.GetString("llm.claude_code_path"),
		Timeout:        viper.GetDuration("llm.timeout"),
		MaxTokens:      viper.GetInt("llm.max_tokens"),
	}
	if viper.IsSet("llm.temperature") {
		temperature := viper.GetFloat64("llm.temperature")
		cfg.Temperature = &temperature
	}

	switch provider {
	case "openai":
		cfg.APIKey = firstNonEmpty(viper.GetString("llm.openai_api_key"), os.Getenv("OPENAI_API_KEY"))
		if cfg.APIKey == "" {
			return cfg, common.NewUserError("OpenAI API key not found in config or OPENAI_API_KEY environment variable", common.ErrMissingConfig)
		}
	case "anthropic":
		cfg.APIKey = firstNonEmpty(viper.GetString("llm.anthropic_api_key"), os.Getenv("ANTHROPIC_API_KEY"))
		if cfg.APIKey == "" {
			return cfg, common.NewUserError("anthropic API key not found in config or ANTHROPIC_API_KEY environment variable", common.ErrMissingConfig)
		}
	case "claudecode":
		// The claude CLI carries its own credentials.
	default:
		return cfg, fmt.Errorf("%w: unsupported LLM provider %q", common.ErrInvalidConfig, provider)
	}

	return cfg, nil
}

// createLLMClient builds the model client shared by optimize, serve and
// export-sheets.
func createLLMClient() (llm.Client, error) {
	cfg, err := llmConfig()
	if err != nil {
		return nil, err
	}

	client, err := llm.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
