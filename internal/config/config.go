// Package config provides configuration types and defaults for retrolex.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/zjrosen/retrolex/internal/dialect"
	"github.com/zjrosen/retrolex/internal/log"
)

// Config holds all configuration options for retrolex.
type Config struct {
	// Platform selects the default assembly and BASIC dialects for the
	// generic extensions (.s, .asm, .bas).
	Platform string `mapstructure:"platform"`

	// DefaultMode is used for files no other rule matches. Empty means plain.
	DefaultMode string `mapstructure:"default_mode"`

	// Extensions maps a file extension (with its dot) to a mode id and
	// overrides the platform defaults.
	Extensions map[string]string `mapstructure:"extensions"`

	Theme   ThemeConfig   `mapstructure:"theme"`
	Viewer  ViewerConfig  `mapstructure:"viewer"`
	Watch   WatchConfig   `mapstructure:"watch"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Store   StoreConfig   `mapstructure:"store"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base.
	// Valid values: "default", "catppuccin-mocha", "dracula", "nord",
	// "high-contrast"
	Preset string `mapstructure:"preset"`

	// Colors overrides individual color tokens. Both nested YAML and quoted
	// dot notation work:
	//   colors:
	//     syntax:
	//       keyword: "#FF0000"
	//   colors:
	//     "syntax.keyword": "#FF0000"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// yaml decoders sometimes hand back map[any]any
			converted := make(map[string]any, len(val))
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// ViewerConfig holds options for the interactive viewer.
type ViewerConfig struct {
	// Margin is how many lines above and below the visible window are
	// scanned ahead of scrolling.
	Margin        int  `mapstructure:"margin"`
	TabWidth      int  `mapstructure:"tab_width"`
	LineNumbers   bool `mapstructure:"line_numbers"`
	ShowStatusBar bool `mapstructure:"show_status_bar"`
	// MarkdownStyle is the glamour style for rendered help: "dark", "light"
	// or "notty".
	MarkdownStyle string `mapstructure:"markdown_style"`
}

// WatchConfig controls file reloads.
type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// CacheConfig controls the per-buffer line cache.
type CacheConfig struct {
	// TTL is how long an unused line result is kept. Zero disables caching.
	TTL time.Duration `mapstructure:"ttl"`
}

// StoreConfig locates the sqlite database that remembers per-file modes.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// TracingConfig holds OpenTelemetry tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/retrolex/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// Dir returns ~/.config/retrolex, or "" when the home directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "retrolex")
}

// DefaultStorePath returns the default sqlite path.
func DefaultStorePath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "retrolex.db")
}

// DefaultTracesFilePath returns the default path for trace file export.
func DefaultTracesFilePath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Platform:    "apple2",
		DefaultMode: dialect.IDPlain,
		Extensions:  map[string]string{},
		Theme: ThemeConfig{
			Preset: "default",
		},
		Viewer: ViewerConfig{
			Margin:        50,
			TabWidth:      8,
			LineNumbers:   true,
			ShowStatusBar: true,
			MarkdownStyle: "dark",
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: 100 * time.Millisecond,
		},
		Cache: CacheConfig{
			TTL: 5 * time.Minute,
		},
		Store: StoreConfig{
			Path: DefaultStorePath(),
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     DefaultTracesFilePath(),
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// KeyDelimiter separates nested viper keys. Extension keys such as ".s" and
// dotted color tokens contain '.', so the viper default cannot be used.
const KeyDelimiter = "::"

// NewViper returns a viper instance using KeyDelimiter with defaults set.
func NewViper() *viper.Viper {
	v := viper.NewWithOptions(viper.KeyDelimiter(KeyDelimiter))
	SetDefaults(v)
	return v
}

func key(parts ...string) string {
	return strings.Join(parts, KeyDelimiter)
}

// SetDefaults registers Defaults() with v so unset keys decode to them.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("platform", d.Platform)
	v.SetDefault("default_mode", d.DefaultMode)
	v.SetDefault(key("theme", "preset"), d.Theme.Preset)
	v.SetDefault(key("viewer", "margin"), d.Viewer.Margin)
	v.SetDefault(key("viewer", "tab_width"), d.Viewer.TabWidth)
	v.SetDefault(key("viewer", "line_numbers"), d.Viewer.LineNumbers)
	v.SetDefault(key("viewer", "show_status_bar"), d.Viewer.ShowStatusBar)
	v.SetDefault(key("viewer", "markdown_style"), d.Viewer.MarkdownStyle)
	v.SetDefault(key("watch", "enabled"), d.Watch.Enabled)
	v.SetDefault(key("watch", "debounce"), d.Watch.Debounce)
	v.SetDefault(key("cache", "ttl"), d.Cache.TTL)
	v.SetDefault(key("store", "path"), d.Store.Path)
	v.SetDefault(key("tracing", "enabled"), d.Tracing.Enabled)
	v.SetDefault(key("tracing", "exporter"), d.Tracing.Exporter)
	v.SetDefault(key("tracing", "file_path"), d.Tracing.FilePath)
	v.SetDefault(key("tracing", "otlp_endpoint"), d.Tracing.OTLPEndpoint)
	v.SetDefault(key("tracing", "sample_rate"), d.Tracing.SampleRate)
}

// Load decodes v into a Config.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Extensions = NormalizeExtensions(cfg.Extensions)
	return cfg, nil
}

// NormalizeExtensions lower-cases keys and adds a missing leading dot.
func NormalizeExtensions(exts map[string]string) map[string]string {
	out := make(map[string]string, len(exts))
	for ext, mode := range exts {
		out[NormalizeExtension(ext)] = mode
	}
	return out
}

// NormalizeExtension turns "ASM" or ".ASM" into ".asm".
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Validate checks the whole configuration.
func Validate(cfg Config) error {
	if err := ValidatePlatform(cfg.Platform); err != nil {
		return err
	}
	if cfg.DefaultMode != "" {
		if _, err := dialect.Resolve(cfg.DefaultMode); err != nil {
			return fmt.Errorf("default_mode: %w", err)
		}
	}
	if err := ValidateExtensions(cfg.Extensions); err != nil {
		return err
	}
	if err := ValidateViewer(cfg.Viewer); err != nil {
		return err
	}
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %v", cfg.Watch.Debounce)
	}
	if cfg.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %v", cfg.Cache.TTL)
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidatePlatform checks the platform id. Empty is allowed and means the
// default platform.
func ValidatePlatform(platform string) error {
	if platform == "" {
		return nil
	}
	if _, err := dialect.PlatformByID(platform); err != nil {
		return fmt.Errorf("platform: %w", err)
	}
	return nil
}

// ValidateExtensions checks that every mapped mode exists.
func ValidateExtensions(exts map[string]string) error {
	keys := make([]string, 0, len(exts))
	for k := range exts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, ext := range keys {
		if NormalizeExtension(ext) == "" || NormalizeExtension(ext) == "." {
			return fmt.Errorf("extensions: empty extension")
		}
		if _, err := dialect.Resolve(exts[ext]); err != nil {
			return fmt.Errorf("extensions.%s: %w", ext, err)
		}
	}
	return nil
}

// ValidateViewer checks viewer options.
func ValidateViewer(v ViewerConfig) error {
	if v.Margin < 0 {
		return fmt.Errorf("viewer.margin must not be negative, got %d", v.Margin)
	}
	if v.TabWidth < 1 || v.TabWidth > 16 {
		return fmt.Errorf("viewer.tab_width must be between 1 and 16, got %d", v.TabWidth)
	}
	switch v.MarkdownStyle {
	case "", "dark", "light", "notty":
	default:
		return fmt.Errorf("viewer.markdown_style must be \"dark\", \"light\", or \"notty\", got %q", v.MarkdownStyle)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# retrolex configuration

# Target machine. Decides which dialect .s, .asm and .bas files get.
#   apple2 - 65C02 assembly, Applesoft BASIC
#   coco   - 6809 assembly, Extended Color BASIC
#   c64    - 6502 assembly, Commodore BASIC (Microsoft core)
platform: apple2

# Mode for files no rule matches: asm6502, asm65c02, asm6809, basic,
# colorbasic, ecb, applesoft or plain
default_mode: plain

# Per-extension overrides (take precedence over the platform)
# extensions:
#   .src: asm6809
#   .bas: colorbasic

# Theme configuration
theme:
  preset: default
  # Available presets: default, catppuccin-mocha, dracula, nord, high-contrast
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   syntax.keyword: "#FF79C6"
  #   syntax.comment: "#6272A4"

# Interactive viewer
viewer:
  margin: 50            # Lines scanned beyond the visible window
  tab_width: 8
  line_numbers: true
  show_status_bar: true
  markdown_style: dark  # dark, light or notty

# Reload files when they change on disk
watch:
  enabled: true
  debounce: 100ms

# Line result cache (0 disables)
cache:
  ttl: 5m

# Where per-file mode choices are remembered
# store:
#   path: ~/.config/retrolex/retrolex.db

# OpenTelemetry tracing of scan work
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/retrolex/traces/traces.jsonl
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
