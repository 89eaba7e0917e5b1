package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/five82/shelf/internal/config"
	"github.com/five82/shelf/internal/export"
	"github.com/five82/shelf/internal/logging"
	"github.com/five82/shelf/internal/metrics"
	"github.com/five82/shelf/internal/mirror"
	"github.com/five82/shelf/internal/platzi"
	"github.com/five82/shelf/internal/prefs"
	"github.com/five82/shelf/internal/state"
	"github.com/five82/shelf/internal/ui"
)

// Options configure the shelf application.
type Options struct {
	ConfigPath  string
	PrefsPath   string // empty uses default ~/.config/shelf/prefs.toml
	Reset       bool   // discard the local mirror before loading
	ExportPath  string // when set, write the first page as CSV and exit
	MetricsAddr string // overrides metrics_addr from config
}

// Run boots shelf until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.MetricsAddr != "" {
		cfg.MetricsAddr = opts.MetricsAddr
	}

	logCloser, err := logging.Setup(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logCloser.Close() }()

	userPrefs := prefs.Load(opts.PrefsPath)
	pageSize := cfg.PageSize
	if userPrefs.PageSize > 0 {
		pageSize = userPrefs.PageSize
	}

	m := metrics.New()
	if cfg.MetricsAddr != "" {
		if _, err := StartMetricsServer(ctx, cfg.MetricsAddr, m.Handler()); err != nil {
			return fmt.Errorf("start metrics server: %w", err)
		}
	}

	client, err := platzi.NewClient(cfg.APIBaseURL,
		platzi.WithTimeout(cfg.RequestTimeout),
		platzi.WithMetrics(m),
	)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	local, closeMirror, err := openMirror(ctx, cfg.Mirror)
	if err != nil {
		return fmt.Errorf("open mirror: %w", err)
	}
	defer closeMirror()

	store := state.New(state.Options{
		Remote:   client,
		Mirror:   local,
		Metrics:  m,
		PageSize: pageSize,
	})

	if opts.Reset {
		err = store.Reset(ctx)
	} else {
		err = store.Initialize(ctx)
	}

	if opts.ExportPath != "" {
		if err != nil {
			return err
		}
		rows := store.ExportRows()
		if err := export.WriteFile(opts.ExportPath, rows); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		log.Info().Str("path", opts.ExportPath).Int("rows", len(rows)).Msg("exported first page")
		return nil
	}
	// The UI shows load failures itself and offers a retry.
	if err != nil {
		log.Warn().Err(err).Msg("starting without products")
	}

	return ui.Run(ui.Options{
		Context:     ctx,
		Store:       store,
		SettleDelay: cfg.SettleDelay,
		ThemeName:   userPrefs.Theme,
		PrefsPath:   opts.PrefsPath,
		LogFile:     cfg.LogFile,
	})
}

// openMirror builds the configured mirror backend and its cleanup.
func openMirror(ctx context.Context, cfg config.MirrorConfig) (mirror.Mirror, func(), error) {
	switch cfg.Backend {
	case config.BackendRedis:
		client, err := mirror.DialRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("addr", cfg.RedisAddr).Str("key", cfg.Key).Msg("using redis mirror")
		return mirror.NewRedis(client, cfg.Key), func() { _ = client.Close() }, nil
	default:
		f, err := mirror.NewFile(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		log.Debug().Str("path", f.Path()).Msg("using file mirror")
		return f, func() {}, nil
	}
}
