package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		config  Config
		wantErr bool
	}{
		{
			name: "valid oauth config",
			config: Config{
				ClientID:      "test-client",
				ClientSecret:  "test-secret",
				RefreshToken:  "test-token",
				BatchSize:     100,
				RetryAttempts: 3,
				RetryDelay:    time.Second,
			},
		},
		{
			name: "valid service account config",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
				RetryAttempts:      3,
				RetryDelay:         time.Second,
			},
		},
		{
			name: "partial oauth credentials",
			config: Config{
				ClientID:      "test-client",
				RefreshToken:  "test-token",
				BatchSize:     100,
				RetryAttempts: 3,
			},
			wantErr: true,
			errMsg:  "no authentication method configured",
		},
		{
			name: "multiple auth methods",
			config: Config{
				ClientID:           "test-client",
				ClientSecret:       "test-secret",
				RefreshToken:       "test-token",
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
			},
			wantErr: true,
			errMsg:  "multiple authentication methods configured",
		},
		{
			name:    "invalid batch size",
			config:  Config{ServiceAccountPath: "/path/to/key.json"},
			wantErr: true,
			errMsg:  "batch size must be positive",
		},
		{
			name: "zero retry delay is valid",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
			},
		},
		{
			name: "negative retry attempts",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
				RetryAttempts:      -1,
			},
			wantErr: true,
			errMsg:  "retry attempts cannot be negative",
		},
		{
			name: "negative retry delay",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
				RetryAttempts:      3,
				RetryDelay:         -1 * time.Second,
			},
			wantErr: true,
			errMsg:  "retry delay cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigLoadFromEnv(t *testing.T) {
	t.Run("fills unset fields", func(t *testing.T) {
		t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "test-client")
		t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "test-secret")
		t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "test-token")
		t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "test-id")
		t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "")
		t.Setenv("GOOGLE_SHEETS_SPREADSHEET_NAME", "")

		c := Config{}
		c.LoadFromEnv()

		assert.Equal(t, "test-client", c.ClientID)
		assert.Equal(t, "test-secret", c.ClientSecret)
		assert.Equal(t, "test-token", c.RefreshToken)
		assert.Equal(t, "test-id", c.SpreadsheetID)
		assert.Equal(t, DefaultSpreadsheetName, c.SpreadsheetName)
	})

	t.Run("keeps configured values", func(t *testing.T) {
		t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "from-env")

		c := DefaultConfig()
		c.SpreadsheetID = "from-config"
		c.LoadFromEnv()

		assert.Equal(t, "from-config", c.SpreadsheetID)
	})
}
