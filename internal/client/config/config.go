package config

import (
	"time"

	"github.com/dmitrijs2005/loandesk/internal/filex"
)

// Config holds runtime settings for the LoanDesk CLI.
//
// Fields:
//   - APIBaseURL: scheme://host[:port] of the loan backend, no trailing slash needed.
//   - DatabasePath: SQLite file holding the local session.
//   - RequestTimeout: per-request HTTP timeout.
//   - ResendCooldown: ticks to wait before an OTP may be resent.
//   - CooldownTick: length of one cooldown tick.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL     string
	DatabasePath   string
	RequestTimeout time.Duration
	ResendCooldown int
	CooldownTick   time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000"
	c.DatabasePath = filex.DefaultDataPath("loandesk", "session.db")
	c.RequestTimeout = 15 * time.Second
	c.ResendCooldown = 60
	c.CooldownTick = time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
