// Package app wires configuration, the mode store, theming and tracing into
// the services the commands share.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/zjrosen/retrolex/internal/config"
	"github.com/zjrosen/retrolex/internal/dialect"
	"github.com/zjrosen/retrolex/internal/filemode"
	"github.com/zjrosen/retrolex/internal/highlight"
	"github.com/zjrosen/retrolex/internal/infrastructure/sqlite"
	"github.com/zjrosen/retrolex/internal/log"
	"github.com/zjrosen/retrolex/internal/session"
	"github.com/zjrosen/retrolex/internal/tracing"
)

// ErrNoStore is returned by operations that need the mode store when it could
// not be opened.
var ErrNoStore = errors.New("mode store unavailable")

// Options controls how an App is assembled.
type Options struct {
	// ConfigPath is the file mode and platform changes are written back to.
	ConfigPath string
	// StorePath overrides cfg.Store.Path. sqlite.MemoryPath keeps the store
	// in memory.
	StorePath string
	// DisableStore skips the sqlite store entirely.
	DisableStore bool
}

// App holds the services for one command invocation.
type App struct {
	Config     config.Config
	ConfigPath string
	Theme      *highlight.Theme
	Selector   *filemode.Selector

	db     *sqlite.DB
	tracer *tracing.Provider
}

// New validates cfg and assembles the services. A store that fails to open
// is logged and the app runs without stored choices.
func New(cfg config.Config, opts Options) (*App, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	theme, err := highlight.NewTheme(cfg.Theme)
	if err != nil {
		return nil, fmt.Errorf("loading theme: %w", err)
	}

	provider, err := tracing.NewProvider(TracingConfig(cfg.Tracing))
	if err != nil {
		return nil, fmt.Errorf("starting tracing: %w", err)
	}

	a := &App{
		Config:     cfg,
		ConfigPath: opts.ConfigPath,
		Theme:      theme,
		tracer:     provider,
	}

	selectorOpts := []filemode.Option{filemode.WithTracer(tracing.Tracer("retrolex/filemode"))}
	if !opts.DisableStore {
		storePath := opts.StorePath
		if storePath == "" {
			storePath = cfg.Store.Path
		}
		if storePath == "" {
			storePath = config.DefaultStorePath()
		}
		db, err := sqlite.NewDB(storePath)
		if err != nil {
			log.ErrorErr(log.CatStore, "Opening mode store failed", err, "path", storePath)
		} else {
			a.db = db
			selectorOpts = append(selectorOpts,
				filemode.WithRepository(db.FileModeRepository()),
				filemode.WithSettings(db.SettingsRepository()),
			)
		}
	}
	a.Selector = filemode.NewSelector(cfg, selectorOpts...)

	log.Debug(log.CatConfig, "App ready",
		"platform", cfg.Platform,
		"store", a.db != nil,
		"tracing", provider.Enabled())
	return a, nil
}

// TracingConfig converts the config section into provider settings.
func TracingConfig(c config.TracingConfig) tracing.Config {
	tc := tracing.DefaultConfig()
	tc.Enabled = c.Enabled
	if c.Exporter != "" {
		tc.Exporter = c.Exporter
	}
	tc.FilePath = c.FilePath
	if c.OTLPEndpoint != "" {
		tc.OTLPEndpoint = c.OTLPEndpoint
	}
	tc.SampleRate = c.SampleRate
	return tc
}

// HasStore reports whether stored per-file choices are available.
func (a *App) HasStore() bool {
	return a.db != nil
}

// Close flushes traces and closes the store.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutting down tracing: %w", err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing store: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Document is a file opened for scanning.
type Document struct {
	Selection filemode.Selection
	Buffer    *session.Buffer
}

// Open reads path and creates a buffer under its selected mode. A non-empty
// mode overrides selection for this call only.
func (a *App) Open(ctx context.Context, path, mode string) (Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the command line
	if err != nil {
		return Document{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return a.OpenText(ctx, path, string(data), mode), nil
}

// OpenText is Open for text already in memory. path only drives selection
// and may be empty.
func (a *App) OpenText(ctx context.Context, path, text, mode string) Document {
	sel := a.Resolve(ctx, path, mode)
	buf := session.New(text, sel.Dialect(),
		session.WithCacheTTL(a.Config.Cache.TTL),
		session.WithTracer(tracing.Tracer("retrolex/session")),
	)
	return Document{Selection: sel, Buffer: buf}
}

// Resolve picks the mode for path. An explicit mode wins; an unknown one
// falls back to plain text with a warning. Without a path the configured
// default mode applies.
func (a *App) Resolve(ctx context.Context, path, mode string) filemode.Selection {
	switch {
	case mode != "":
		if _, err := dialect.Resolve(mode); err != nil {
			log.Warn(log.CatDialect, "Unknown mode, using plain text", "mode", mode, "path", path)
			return filemode.Selection{Path: path, Mode: dialect.IDPlain, Source: filemode.SourcePlain, Unknown: mode}
		}
		return filemode.Selection{Path: path, Mode: mode, Source: filemode.SourceOverride}
	case path != "":
		return a.Selector.Select(ctx, path)
	default:
		return filemode.Selection{Mode: a.fallbackMode(), Source: filemode.SourceDefault}
	}
}

func (a *App) fallbackMode() string {
	if a.Config.DefaultMode != "" {
		return a.Config.DefaultMode
	}
	return dialect.IDPlain
}

// RememberMode stores mode for path.
func (a *App) RememberMode(path, mode string) error {
	if a.db == nil {
		return ErrNoStore
	}
	return a.Selector.Remember(path, mode)
}

// ForgetMode removes the stored mode for path.
func (a *App) ForgetMode(path string) error {
	if a.db == nil {
		return ErrNoStore
	}
	return a.Selector.Forget(path)
}

// RememberedModes lists every stored per-file mode.
func (a *App) RememberedModes() ([]filemode.Choice, error) {
	if a.db == nil {
		return nil, ErrNoStore
	}
	return a.Selector.Remembered()
}

// SetExtension maps ext to mode in the config file and in the running
// selector's configuration.
func (a *App) SetExtension(ext, mode string) error {
	if a.ConfigPath == "" {
		return errors.New("no config file to update")
	}
	if err := config.SetExtension(a.ConfigPath, a.Config.Extensions, ext, mode); err != nil {
		return err
	}
	if a.Config.Extensions == nil {
		a.Config.Extensions = make(map[string]string)
	}
	a.Config.Extensions[config.NormalizeExtension(ext)] = mode
	a.rebuildSelector()
	return nil
}

// SetPlatform records the platform in the store, when there is one, and in
// the config file.
func (a *App) SetPlatform(id string) error {
	if _, err := dialect.PlatformByID(id); err != nil {
		return err
	}
	if a.db != nil {
		if err := a.Selector.SetPlatform(id); err != nil {
			return err
		}
	}
	if a.ConfigPath != "" {
		if err := config.SavePlatform(a.ConfigPath, id); err != nil {
			return err
		}
	}
	a.Config.Platform = id
	a.rebuildSelector()
	return nil
}

func (a *App) rebuildSelector() {
	opts := []filemode.Option{filemode.WithTracer(tracing.Tracer("retrolex/filemode"))}
	if a.db != nil {
		opts = append(opts,
			filemode.WithRepository(a.db.FileModeRepository()),
			filemode.WithSettings(a.db.SettingsRepository()),
		)
	}
	a.Selector = filemode.NewSelector(a.Config, opts...)
}
