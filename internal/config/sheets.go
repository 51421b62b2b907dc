package config

import (
	"github.com/spf13/viper"

	"github.com/Veraticus/financeflow/internal/sheets"
)

// LoadSheetsConfig loads Google Sheets configuration. Values come from the
// sheets.* config keys (or FINANCEFLOW_SHEETS_* env vars), then from
// GOOGLE_SHEETS_* env vars, then defaults.
func LoadSheetsConfig() (*sheets.Config, error) {
	config := sheets.DefaultConfig()
	config.SpreadsheetName = ""

	config.ServiceAccountPath = ExpandPath(viper.GetString("sheets.service_account_path"))
	config.ClientID = viper.GetString("sheets.client_id")
	config.ClientSecret = viper.GetString("sheets.client_secret")
	config.RefreshToken = viper.GetString("sheets.refresh_token")
	config.SpreadsheetID = viper.GetString("sheets.spreadsheet_id")
	config.SpreadsheetName = viper.GetString("sheets.spreadsheet_name")

	config.LoadFromEnv()
	config.ServiceAccountPath = ExpandPath(config.ServiceAccountPath)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}
