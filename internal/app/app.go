package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/five82/tubeclone/internal/backend"
	"github.com/five82/tubeclone/internal/config"
	"github.com/five82/tubeclone/internal/logging"
	"github.com/five82/tubeclone/internal/prefs"
	"github.com/five82/tubeclone/internal/probe"
	"github.com/five82/tubeclone/internal/state"
	"github.com/five82/tubeclone/internal/ui"
)

// Options configure the tubeclone client.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/tubeclone/prefs.toml
	APIBase    string // overrides api_base and, unless UploadBase is set, upload_base
	UploadBase string
	Theme      string
}

// Run boots the TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logFile, err := logging.OpenFile(cfg.LogPath())
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := logging.New(logFile, cfg.LogLevel, "tubeclone")

	userPrefs := prefs.Load(opts.PrefsPath)

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	api, err := backend.NewClient(cfg.APIBase, backend.WithHTTPClient(httpClient))
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}
	uploads := api
	if cfg.UploadBase != cfg.APIBase {
		uploads, err = backend.NewClient(cfg.UploadBase, backend.WithHTTPClient(httpClient))
		if err != nil {
			return fmt.Errorf("init upload client: %w", err)
		}
	}

	prober := probe.New(api, probe.WithTimeout(cfg.RequestTimeout), probe.WithLogger(logger))
	store := &state.Store{}

	// Passive health checks feed the status banner only; they never change
	// which data a view shows.
	monitor := probe.StartMonitor(ctx, prober, cfg.HealthInterval, store)
	defer monitor.Stop()

	logger.Info().
		Str("api_base", api.BaseURL()).
		Str("upload_base", uploads.BaseURL()).
		Dur("health_interval", cfg.HealthInterval).
		Msg("starting tubeclone")

	return ui.Run(ui.Options{
		Context:     ctx,
		API:         api,
		Uploads:     uploads,
		Prober:      prober,
		Store:       store,
		Monitor:     monitor,
		Config:      &cfg,
		Logger:      &logger,
		ThemeName:   resolveTheme(opts.Theme, cfg.Theme, userPrefs.Theme),
		PrefsPath:   opts.PrefsPath,
		AutoConnect: userPrefs.AutoConnect,
	})
}

// loadConfig reads the config file and applies command line overrides.
func loadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.APIBase); v != "" {
		cfg.APIBase = v
		cfg.UploadBase = v
	}
	if v := strings.TrimSpace(opts.UploadBase); v != "" {
		cfg.UploadBase = v
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

// resolveTheme picks the first non-empty name: flag, config file, saved
// preference.
func resolveTheme(names ...string) string {
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			return n
		}
	}
	return prefs.Default().Theme
}
