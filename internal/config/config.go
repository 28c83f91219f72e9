package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// DefaultFileName is searched for from the working directory upwards when no path is given.
	DefaultFileName = "apis.yml"

	defaultLogLevel    = "info"
	defaultLookupRPS   = 5.0
	defaultLookupBurst = 5
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > Environment variables > Config file > Defaults
type Config struct {
	ConfigFile  string
	Token       string
	Org         string
	LookupRPS   float64
	LookupBurst int
	LogLevel    string

	// Settings is nil when no configuration file was given or found.
	Settings *Settings
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile  string
	Token       *string
	Org         *string
	LookupRPS   *float64
	LookupBurst *int
	LogLevel    *string

	// SkipFile leaves the configuration file unread, for commands that only
	// need flags and environment.
	SkipFile bool
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > Environment variables > Config file > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	path, explicit := configPath(overrides)
	if overrides != nil && overrides.SkipFile {
		path, explicit = "", true
	}
	if path == "" && !explicit {
		found, err := resolveConfigPath(DefaultFileName)
		if err == nil {
			path = found
		}
	}

	if path != "" {
		settings, err := LoadSettings(path)
		if err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
		cfg.ConfigFile = path
		cfg.Settings = settings
		if err := applyFileConfig(&cfg, settings); err != nil {
			return Config{}, err
		}
	}

	applyEnvConfig(&cfg)

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// GitHubToken returns the explicitly provided token or reads it from the
// credentials file named in the configuration.
func (c Config) GitHubToken() (string, error) {
	if c.Token != "" {
		return c.Token, nil
	}
	if c.Settings == nil {
		return "", ErrNoConfigFile
	}
	return c.Settings.Token()
}

// RequireSettings returns the loaded settings or ErrNoConfigFile.
func (c Config) RequireSettings() (*Settings, error) {
	if c.Settings == nil {
		return nil, ErrNoConfigFile
	}
	return c.Settings, nil
}

func defaultConfig() Config {
	return Config{
		LookupRPS:   defaultLookupRPS,
		LookupBurst: defaultLookupBurst,
		LogLevel:    defaultLogLevel,
	}
}

// configPath reports the configured path and whether it was set explicitly.
func configPath(overrides *CLIOverrides) (string, bool) {
	if overrides != nil && overrides.ConfigFile != "" {
		return overrides.ConfigFile, true
	}
	if path := strings.TrimSpace(os.Getenv("GHREPORT_CONFIG")); path != "" {
		return path, true
	}
	return "", false
}

// applyFileConfig pulls optional values out of the configuration file. Only
// malformed values are errors; missing ones keep the defaults.
func applyFileConfig(cfg *Config, settings *Settings) error {
	org, err := settings.MetricValue(MetricsOrg)
	switch {
	case err == nil:
		cfg.Org = org.(string)
	case !isNotFound(err):
		return err
	}

	throttle, ok, err := settings.Throttle()
	if err != nil {
		return err
	}
	if ok {
		cfg.LookupRPS = throttle.RPS
		if throttle.Burst > 0 {
			cfg.LookupBurst = throttle.Burst
		}
	}
	return nil
}

func applyEnvConfig(cfg *Config) {
	if token := strings.TrimSpace(os.Getenv("GITHUB_TOKEN")); token != "" {
		cfg.Token = token
	}

	if org := strings.TrimSpace(os.Getenv("GHREPORT_ORG")); org != "" {
		cfg.Org = org
	}

	if rps := strings.TrimSpace(os.Getenv("GHREPORT_LOOKUP_RPS")); rps != "" {
		if value, err := strconv.ParseFloat(rps, 64); err == nil && value >= 0 {
			cfg.LookupRPS = value
		}
	}

	if burst := strings.TrimSpace(os.Getenv("GHREPORT_LOOKUP_BURST")); burst != "" {
		if value, err := strconv.Atoi(burst); err == nil && value > 0 {
			cfg.LookupBurst = value
		}
	}

	if level := strings.TrimSpace(os.Getenv("GHREPORT_LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}
}

func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.Token != nil && *overrides.Token != "" {
		cfg.Token = *overrides.Token
	}

	if overrides.Org != nil && *overrides.Org != "" {
		cfg.Org = *overrides.Org
	}

	if overrides.LookupRPS != nil && *overrides.LookupRPS >= 0 {
		cfg.LookupRPS = *overrides.LookupRPS
	}

	if overrides.LookupBurst != nil && *overrides.LookupBurst > 0 {
		cfg.LookupBurst = *overrides.LookupBurst
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}
}

func validateConfig(cfg Config) error {
	if cfg.LookupRPS < 0 {
		return errors.New("lookup rps must be >= 0")
	}
	if cfg.LookupBurst <= 0 {
		return errors.New("lookup burst must be > 0")
	}
	return nil
}

// resolveConfigPath locates a file relative to the working directory by walking up the directory tree.
func resolveConfigPath(name string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("unable to locate %s", name)
}
