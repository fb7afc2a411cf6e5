// Package config loads server settings from the environment.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"quacker/pkg/log"
)

// Config holds the server settings.
type Config struct {
	Port        string
	LogLevel    log.Level
	LexiconPath string // Empty selects the embedded lexicon
	SeedPath    string // Empty selects the built-in demo feed
	SeedDemo    bool
	CurrentUser string // Handle of the session user
	AdminReset  bool
	// Quack posts allowed per IP per minute; 0 disables the limit.
	PostRateLimit int
}

// Default returns the settings used when no variables are set.
func Default() Config {
	return Config{
		Port:        "3000",
		LogLevel:    log.Info,
		SeedDemo:    true,
		CurrentUser: "robot",

		PostRateLimit: 30,
	}
}

// Load reads .env files (if present) and then the process environment.
// Invalid values keep their defaults and are reported as warnings.
func Load(envFiles ...string) (Config, []string, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil, err
	}
	cfg, warnings := FromLookup(os.LookupEnv)
	return cfg, warnings, nil
}

// FromLookup builds a Config from a lookup function such as os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (Config, []string) {
	cfg := Default()
	var warnings []string

	if v, ok := lookup("PORT"); ok && v != "" {
		if _, err := strconv.Atoi(v); err != nil {
			warnings = append(warnings, "invalid PORT, using default "+cfg.Port)
		} else {
			cfg.Port = v
		}
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		level, err := log.ParseLevel(v)
		if err != nil {
			warnings = append(warnings, "invalid LOG_LEVEL, using INFO")
		}
		cfg.LogLevel = level
	}
	if v, ok := lookup("LEXICON_PATH"); ok {
		cfg.LexiconPath = v
	}
	if v, ok := lookup("SEED_PATH"); ok {
		cfg.SeedPath = v
	}
	if v, ok := lookup("CURRENT_USER"); ok {
		cfg.CurrentUser = v
	}

	if v, ok := lookup("POST_RATE_LIMIT"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			warnings = append(warnings, "invalid POST_RATE_LIMIT, using default "+strconv.Itoa(cfg.PostRateLimit))
		} else {
			cfg.PostRateLimit = n
		}
	}

	boolVar := func(name string, dst *bool) {
		v, ok := lookup(name)
		if !ok || v == "" {
			return
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			warnings = append(warnings, "invalid "+name+", using default "+strconv.FormatBool(*dst))
			return
		}
		*dst = b
	}
	boolVar("SEED_DEMO", &cfg.SeedDemo)
	boolVar("ADMIN_RESET", &cfg.AdminReset)

	return cfg, warnings
}
