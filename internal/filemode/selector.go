// Package filemode decides which dialect a file is highlighted with.
package filemode

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/retrolex/internal/config"
	"github.com/zjrosen/retrolex/internal/dialect"
	"github.com/zjrosen/retrolex/internal/log"
	"github.com/zjrosen/retrolex/internal/tracing"
)

// Source tells which rule picked a mode.
type Source string

const (
	SourceStored    Source = "stored"
	SourceExtension Source = "extension"
	SourcePlatform  Source = "platform"
	SourceDefault   Source = "default"
	SourcePlain     Source = "plain"
	// SourceOverride marks a mode given explicitly by the caller.
	SourceOverride Source = "override"
)

// Selection is the result of Select.
type Selection struct {
	Path   string `json:"path" yaml:"path"`
	Mode   string `json:"mode" yaml:"mode"`
	Source Source `json:"source" yaml:"source"`
	// Unknown holds a requested mode that no dialect matched; Mode is then
	// plain text.
	Unknown string `json:"unknown,omitempty" yaml:"unknown,omitempty"`
}

// Dialect resolves the selected mode.
func (s Selection) Dialect() *dialect.Dialect {
	return dialect.ResolveOrPlain(s.Mode)
}

// fixedExtensions name a single CPU whatever the platform.
var fixedExtensions = map[string]string{
	".a65": dialect.IDAsm6502,
	".a09": dialect.IDAsm6809,
}

// Selector resolves a file's mode: stored choice, configured extension,
// platform default, configured default mode, plain.
type Selector struct {
	modes       Repository
	settings    SettingsRepository
	platform    string
	defaultMode string
	extensions  map[string]string
	tracer      trace.Tracer
}

// Option configures a Selector.
type Option func(*Selector)

// WithRepository enables stored per-file choices.
func WithRepository(r Repository) Option {
	return func(s *Selector) { s.modes = r }
}

// WithSettings lets a stored platform override the configured one.
func WithSettings(r SettingsRepository) Option {
	return func(s *Selector) { s.settings = r }
}

// WithTracer sets the tracer used for Select spans.
func WithTracer(t trace.Tracer) Option {
	return func(s *Selector) { s.tracer = t }
}

// NewSelector builds a selector from the loaded configuration.
func NewSelector(cfg config.Config, opts ...Option) *Selector {
	s := &Selector{
		platform:    cfg.Platform,
		defaultMode: cfg.DefaultMode,
		extensions:  config.NormalizeExtensions(cfg.Extensions),
		tracer:      tracing.Tracer("retrolex/filemode"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select picks the mode for path. Store failures are logged and the next
// rule applies, so a file is always displayable.
func (s *Selector) Select(ctx context.Context, path string) Selection {
	abs := absPath(path)
	_, span := s.tracer.Start(ctx, tracing.SpanModeSelect,
		trace.WithAttributes(attribute.String(tracing.AttrFilePath, abs)))
	defer span.End()

	sel := s.selectMode(abs)
	span.SetAttributes(
		attribute.String(tracing.AttrDialect, sel.Mode),
		attribute.String("filemode.source", string(sel.Source)),
	)
	log.Debug(log.CatDialect, "Selected mode", "path", abs, "mode", sel.Mode, "source", sel.Source)
	return sel
}

func (s *Selector) selectMode(abs string) Selection {
	sel := Selection{Path: abs}

	if s.modes != nil {
		c, err := s.modes.Find(abs)
		switch {
		case err == nil && valid(c.Mode):
			sel.Mode, sel.Source = c.Mode, SourceStored
			return sel
		case err == nil:
			log.Warn(log.CatStore, "Ignoring stored mode", "path", abs, "mode", c.Mode)
		case !errors.Is(err, ErrFileModeNotFound):
			log.ErrorErr(log.CatStore, "Failed to read stored mode", err, "path", abs)
		}
	}

	ext := strings.ToLower(filepath.Ext(abs))

	if mode, ok := s.extensions[ext]; ok && valid(mode) {
		sel.Mode, sel.Source = mode, SourceExtension
		return sel
	}

	if mode := s.platformMode(ext); mode != "" {
		sel.Mode, sel.Source = mode, SourcePlatform
		return sel
	}

	if s.defaultMode != "" && valid(s.defaultMode) {
		sel.Mode, sel.Source = s.defaultMode, SourceDefault
		if s.defaultMode == dialect.IDPlain {
			sel.Source = SourcePlain
		}
		return sel
	}

	sel.Mode, sel.Source = dialect.IDPlain, SourcePlain
	return sel
}

func (s *Selector) platformMode(ext string) string {
	if mode, ok := fixedExtensions[ext]; ok {
		return mode
	}
	p := s.Platform()
	switch ext {
	case ".s", ".asm":
		return p.Assembly
	case ".bas":
		return p.Basic
	}
	return ""
}

// Platform returns the stored platform if any, else the configured one,
// else Apple II.
func (s *Selector) Platform() dialect.Platform {
	if s.settings != nil {
		id, err := s.settings.Get(SettingPlatform)
		if err == nil {
			if p, perr := dialect.PlatformByID(id); perr == nil {
				return p
			}
			log.Warn(log.CatStore, "Ignoring stored platform", "platform", id)
		} else if !errors.Is(err, ErrSettingNotFound) {
			log.ErrorErr(log.CatStore, "Failed to read stored platform", err)
		}
	}
	if p, err := dialect.PlatformByID(s.platform); err == nil {
		return p
	}
	p, _ := dialect.PlatformByID("apple2")
	return p
}

// SetPlatform stores the platform used for generic extensions.
func (s *Selector) SetPlatform(id string) error {
	if _, err := dialect.PlatformByID(id); err != nil {
		return err
	}
	if s.settings == nil {
		return errors.New("no settings store configured")
	}
	return s.settings.Set(SettingPlatform, id)
}

// Remember stores mode for path.
func (s *Selector) Remember(path, mode string) error {
	if _, err := dialect.Resolve(mode); err != nil {
		return err
	}
	if s.modes == nil {
		return errors.New("no mode store configured")
	}
	abs := absPath(path)
	if err := s.modes.Save(Choice{Path: abs, Mode: mode, UpdatedAt: time.Now()}); err != nil {
		return fmt.Errorf("remembering mode for %s: %w", abs, err)
	}
	log.Info(log.CatStore, "Remembered mode", "path", abs, "mode", mode)
	return nil
}

// Forget removes the stored mode for path.
func (s *Selector) Forget(path string) error {
	if s.modes == nil {
		return errors.New("no mode store configured")
	}
	return s.modes.Delete(absPath(path))
}

// Remembered lists every stored choice.
func (s *Selector) Remembered() ([]Choice, error) {
	if s.modes == nil {
		return nil, nil
	}
	return s.modes.List()
}

func valid(mode string) bool {
	_, err := dialect.Resolve(mode)
	return err == nil
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
