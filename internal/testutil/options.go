package testutil

// ConfigOption sets one key of the generated config file.
type ConfigOption func(map[string]any)

func section(cfg map[string]any, name string) map[string]any {
	s, ok := cfg[name].(map[string]any)
	if !ok {
		s = map[string]any{}
		cfg[name] = s
	}
	return s
}

// Platform sets platform.
func Platform(id string) ConfigOption {
	return func(cfg map[string]any) { cfg["platform"] = id }
}

// DefaultMode sets default_mode.
func DefaultMode(mode string) ConfigOption {
	return func(cfg map[string]any) { cfg["default_mode"] = mode }
}

// Extension maps ext to mode under extensions.
func Extension(ext, mode string) ConfigOption {
	return func(cfg map[string]any) { section(cfg, "extensions")[ext] = mode }
}

// LineNumbers sets viewer.line_numbers.
func LineNumbers(on bool) ConfigOption {
	return func(cfg map[string]any) { section(cfg, "viewer")["line_numbers"] = on }
}

// TabWidth sets viewer.tab_width.
func TabWidth(n int) ConfigOption {
	return func(cfg map[string]any) { section(cfg, "viewer")["tab_width"] = n }
}

// MarkdownStyle sets viewer.markdown_style.
func MarkdownStyle(style string) ConfigOption {
	return func(cfg map[string]any) { section(cfg, "viewer")["markdown_style"] = style }
}

// Watch sets watch.enabled.
func Watch(on bool) ConfigOption {
	return func(cfg map[string]any) { section(cfg, "watch")["enabled"] = on }
}

// Preset sets theme.preset.
func Preset(name string) ConfigOption {
	return func(cfg map[string]any) { section(cfg, "theme")["preset"] = name }
}

// Set writes an arbitrary top-level key, for values the other options do not
// cover or deliberately invalid ones.
func Set(key string, value any) ConfigOption {
	return func(cfg map[string]any) { cfg[key] = value }
}
