package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/financeflow/internal/common"
	"github.com/Veraticus/financeflow/internal/model"
)

func TestParseDate(t *testing.T) {
	fallback := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	got, err := parseDate("", fallback)
	require.NoError(t, err)
	assert.Equal(t, fallback, got)

	got, err = parseDate(" 2026-03-14 ", fallback)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), got)

	_, err = parseDate("14/03/2026", fallback)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidInput))
}

func TestDateFilter(t *testing.T) {
	filter, err := dateFilter("", "")
	require.NoError(t, err)
	assert.Nil(t, filter.Start)
	assert.Nil(t, filter.End)

	filter, err = dateFilter("2026-01-01", "2026-01-31")
	require.NoError(t, err)
	require.NotNil(t, filter.Start)
	require.NotNil(t, filter.End)
	assert.True(t, filter.Contains(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)))

	_, err = dateFilter("2026-02-01", "2026-01-01")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestResolveCategory(t *testing.T) {
	categories := model.DefaultCategories

	cat, err := resolveCategory(categories, "dining")
	require.NoError(t, err)
	assert.Equal(t, "Dining Out", cat.Name)

	cat, err = resolveCategory(categories, "dining out")
	require.NoError(t, err)
	assert.Equal(t, "dining", cat.ID)

	_, err = resolveCategory(categories, "yachts")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Yes\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		assert.Equal(t, tt.want, confirm(strings.NewReader(tt.input), &out, "Really?"), "input %q", tt.input)
		assert.Equal(t, "Really? (y/N) ", out.String())
	}
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "512 B", formatFileSize(512))
	assert.Equal(t, "1.5 KB", formatFileSize(1536))
	assert.Equal(t, "2.0 MB", formatFileSize(2*1024*1024))
}

func TestFormatRelativeTime(t *testing.T) {
	assert.Equal(t, "just now", formatRelativeTime(time.Now()))
	assert.Equal(t, "5 minutes ago", formatRelativeTime(time.Now().Add(-5*time.Minute-time.Second)))
	old := time.Date(2020, 2, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Feb 3, 2020", formatRelativeTime(old))
}

func TestGauge(t *testing.T) {
	assert.Equal(t, 10, strings.Count(gauge(50, false), "█"))
	assert.Equal(t, gaugeWidth, strings.Count(gauge(250, true), "█"))
	assert.Equal(t, gaugeWidth, strings.Count(gauge(0, false), "░"))
}

func TestExportRange(t *testing.T) {
	jan := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	expenses := []model.Expense{{Date: mar}}
	incomes := []model.Income{{Date: jan}}

	r := exportRange(nil, nil, expenses, incomes)
	assert.Equal(t, jan, r.Start)
	assert.Equal(t, mar, r.End)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r = exportRange(&start, nil, expenses, incomes)
	assert.Equal(t, start, r.Start)
	assert.Equal(t, mar, r.End)
}

func TestExpandFiles(t *testing.T) {
	_, err := expandFiles([]string{"/nonexistent/*.qfx"})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestLLMConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "env-key")

	_, err := llmConfig()
	assert.ErrorIs(t, err, common.ErrMissingConfig, "openai is the default provider")

	viper.Set("llm.provider", "Anthropic")
	cfg, err := llmConfig()
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "env-key", cfg.APIKey)

	assert.Nil(t, cfg.Temperature)

	viper.Set("llm.provider", "claudecode")
	viper.Set("llm.temperature", 0)
	cfg, err = llmConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.APIKey)
	require.NotNil(t, cfg.Temperature)
	assert.Zero(t, *cfg.Temperature)

	viper.Set("llm.provider", "gemini")
	_, err = llmConfig()
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}
