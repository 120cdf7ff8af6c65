package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the client settings.
type Config struct {
	APIBase        string
	UploadBase     string
	HealthInterval time.Duration
	ErrorHold      time.Duration
	RequestTimeout time.Duration
	LogDir         string
	LogLevel       string
	Theme          string
}

const (
	defaultConfigPath     = "~/.config/tubeclone/config.toml"
	defaultLogDir         = "~/.local/state/tubeclone"
	defaultAPIBase        = "http://127.0.0.1:5328"
	defaultHealthInterval = 30 * time.Second
	defaultErrorHold      = 3 * time.Second
	defaultRequestTimeout = 5 * time.Second
	defaultLogLevel       = "info"
	logFileName           = "tubeclone.log"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBase:        defaultAPIBase,
		UploadBase:     defaultAPIBase,
		HealthInterval: defaultHealthInterval,
		ErrorHold:      defaultErrorHold,
		RequestTimeout: defaultRequestTimeout,
		LogDir:         mustExpand(defaultLogDir),
		LogLevel:       defaultLogLevel,
	}
}

type fileConfig struct {
	APIBase               string `toml:"api_base"`
	UploadBase            string `toml:"upload_base"`
	HealthIntervalSeconds int    `toml:"health_interval_seconds"`
	ErrorHoldSeconds      int    `toml:"error_hold_seconds"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
	LogDir                string `toml:"log_dir"`
	LogLevel              string `toml:"log_level"`
	Theme                 string `toml:"theme"`
}

// Load reads the config file at path (or the default location), falling back
// to defaults when the file or individual keys are missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBase); v != "" {
		cfg.APIBase = v
		cfg.UploadBase = v
	}
	if v := strings.TrimSpace(raw.UploadBase); v != "" {
		cfg.UploadBase = v
	}
	if raw.HealthIntervalSeconds != 0 {
		cfg.HealthInterval = time.Duration(raw.HealthIntervalSeconds) * time.Second
	}
	if raw.ErrorHoldSeconds != 0 {
		cfg.ErrorHold = time.Duration(raw.ErrorHoldSeconds) * time.Second
	}
	if raw.RequestTimeoutSeconds != 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutSeconds) * time.Second
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	cfg.Theme = strings.TrimSpace(raw.Theme)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", resolved, err)
	}
	return cfg, nil
}

// Validate checks the base URLs and durations.
func (c Config) Validate() error {
	var errs []error
	if err := validateBase("api_base", c.APIBase); err != nil {
		errs = append(errs, err)
	}
	if err := validateBase("upload_base", c.UploadBase); err != nil {
		errs = append(errs, err)
	}
	if c.HealthInterval <= 0 {
		errs = append(errs, fmt.Errorf("health_interval_seconds must be positive"))
	}
	if c.ErrorHold <= 0 {
		errs = append(errs, fmt.Errorf("error_hold_seconds must be positive"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request_timeout_seconds must be positive"))
	}
	return errors.Join(errs...)
}

func validateBase(key, raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s %q: scheme must be http or https", key, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s %q: missing host", key, raw)
	}
	return nil
}

// LogPath returns the client log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return filepath.Join(mustExpand(defaultLogDir), logFileName)
	}
	return filepath.Join(c.LogDir, logFileName)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
