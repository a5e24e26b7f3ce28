package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/loandesk/internal/flagx"
	"github.com/joho/godotenv"
)

const (
	EnvAPIURL   = "LOANDESK_API_URL"
	EnvDatabase = "LOANDESK_DB"
	EnvTimeout  = "LOANDESK_TIMEOUT"
	EnvLogLevel = "LOANDESK_LOG_LEVEL"
)

// parseEnv overlays Config with values from a dotenv file and the process
// environment. The file is chosen with -env (default ".env") and may be
// absent. Variables already set in the process environment win over the file.
//
// LOANDESK_TIMEOUT accepts a Go duration ("20s") or whole seconds ("20").
// Panics on an unreadable file or a malformed timeout.
func parseEnv(cfg *Config) {
	vars, err := godotenv.Read(flagx.EnvFileFlag())
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
		vars = map[string]string{}
	}

	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return vars[key]
	}

	if v := lookup(EnvAPIURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := lookup(EnvDatabase); v != "" {
		cfg.DatabasePath = v
	}
	if v := lookup(EnvTimeout); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if v := lookup(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
}

func parseTimeout(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}
