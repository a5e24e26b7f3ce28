package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/loandesk/internal/flagx"
	"github.com/dmitrijs2005/loandesk/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// Durations use timex.Duration so they can be written either as strings
// like "15s" or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	DatabasePath   string         `json:"database_path"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	ResendCooldown int            `json:"resend_cooldown"`
	CooldownTick   timex.Duration `json:"cooldown_tick"`
	LogLevel       string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without that flag nothing happens. Keys missing from the
// file leave the current values alone.
//
// Panics on read or unmarshal errors.
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

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.ResendCooldown > 0 {
		cfg.ResendCooldown = jc.ResendCooldown
	}
	if jc.CooldownTick.Duration > 0 {
		cfg.CooldownTick = time.Duration(jc.CooldownTick.Duration)
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
