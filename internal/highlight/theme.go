// Package highlight turns scanned spans into styled terminal text.
package highlight

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/retrolex/internal/config"
	"github.com/zjrosen/retrolex/internal/dialect"
)

// Theme maps categories and chrome elements to lipgloss styles.
type Theme struct {
	Name   string
	colors map[ColorToken]string
	styles map[ColorToken]lipgloss.Style
}

// NewTheme builds a theme from the default colors, then the preset, then the
// per-token overrides.
func NewTheme(cfg config.ThemeConfig) (*Theme, error) {
	colors := maps.Clone(DefaultPreset.Colors)
	name := DefaultPreset.Name

	if cfg.Preset != "" && cfg.Preset != DefaultPreset.Name {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return nil, fmt.Errorf("unknown theme preset: %s (available: %s)",
				cfg.Preset, strings.Join(PresetNames(), ", "))
		}
		maps.Copy(colors, preset.Colors)
		name = preset.Name
	}

	for key, value := range cfg.FlattenedColors() {
		token := ColorToken(key)
		if !isValidToken(token) {
			return nil, fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return nil, fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}

	return newTheme(name, colors), nil
}

// DefaultTheme returns the default preset.
func DefaultTheme() *Theme {
	return newTheme(DefaultPreset.Name, maps.Clone(DefaultPreset.Colors))
}

func newTheme(name string, colors map[ColorToken]string) *Theme {
	t := &Theme{Name: name, colors: colors, styles: make(map[ColorToken]lipgloss.Style, len(colors))}
	for token, hex := range colors {
		t.styles[token] = lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	}

	t.styles[TokenKeyword] = t.styles[TokenKeyword].Bold(true)
	t.styles[TokenComment] = t.styles[TokenComment].Italic(true)
	t.styles[TokenCursorLine] = lipgloss.NewStyle().Background(lipgloss.Color(colors[TokenCursorLine]))
	t.styles[TokenStatusText] = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors[TokenStatusText])).
		Background(lipgloss.Color(colors[TokenStatusBg]))
	t.styles[TokenStatusAccent] = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors[TokenStatusAccent])).
		Background(lipgloss.Color(colors[TokenStatusBg])).
		Bold(true)
	return t
}

// Style returns the style for a category.
func (t *Theme) Style(cat dialect.Category) lipgloss.Style {
	return t.styles[TokenFor(cat)]
}

// TokenStyle returns the style for a token.
func (t *Theme) TokenStyle(token ColorToken) lipgloss.Style {
	return t.styles[token]
}

// Color returns the hex color for a token.
func (t *Theme) Color(token ColorToken) string {
	return t.colors[token]
}

func isValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
