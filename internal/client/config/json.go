package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/locator/internal/flagx"
	"github.com/dmitrijs2005/locator/internal/timex"
)

// JsonConfig mirrors Config for unmarshalling. Absent keys leave the
// current value alone, hence the pointers.
type JsonConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	DBPath         *string         `json:"db_path"`
	LogLevel       *string         `json:"log_level"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	PageLimit      *int            `json:"page_limit"`
}

// parseJson overlays cfg with the file named by -c/-config. Without the
// flag it does nothing. Read and decode errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.DBPath != nil {
		cfg.DBPath = *jc.DBPath
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.PageLimit != nil {
		cfg.PageLimit = *jc.PageLimit
	}
}
