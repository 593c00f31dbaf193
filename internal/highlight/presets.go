package highlight

import (
	"maps"
	"slices"
)

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"dracula":          DraculaPreset,
	"nord":             NordPreset,
	"high-contrast":    HighContrastPreset,
}

// PresetNames returns the preset names sorted.
func PresetNames() []string {
	return slices.Sorted(maps.Keys(Presets))
}

// DefaultPreset is loosely modeled on a green-screen monitor with amber
// accents.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default retrolex theme",
	Colors: map[ColorToken]string{
		TokenText:       "#CCCCCC",
		TokenKeyword:    "#54A0FF",
		TokenDirective:  "#C56CF0",
		TokenLabel:      "#FECA57",
		TokenNumber:     "#FF9F43",
		TokenString:     "#73F59F",
		TokenComment:    "#696969",
		TokenOperator:   "#BBBBBB",
		TokenIdentifier: "#CCCCCC",
		TokenRegister:   "#48DBFB",

		TokenLineNumber:   "#555555",
		TokenCursorLine:   "#2D3436",
		TokenStatusText:   "#FFFFFF",
		TokenStatusBg:     "#1A5276",
		TokenStatusAccent: "#FECA57",
	},
}

// CatppuccinMochaPreset is based on Catppuccin Mocha.
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Soothing pastel theme (dark)",
	Colors: map[ColorToken]string{
		TokenText:       "#CDD6F4",
		TokenKeyword:    "#CBA6F7",
		TokenDirective:  "#F5C2E7",
		TokenLabel:      "#F9E2AF",
		TokenNumber:     "#FAB387",
		TokenString:     "#A6E3A1",
		TokenComment:    "#6C7086",
		TokenOperator:   "#89DCEB",
		TokenIdentifier: "#CDD6F4",
		TokenRegister:   "#89B4FA",

		TokenLineNumber:   "#585B70",
		TokenCursorLine:   "#313244",
		TokenStatusText:   "#CDD6F4",
		TokenStatusBg:     "#45475A",
		TokenStatusAccent: "#F38BA8",
	},
}

// DraculaPreset is based on the Dracula palette.
var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dark theme with vibrant colors",
	Colors: map[ColorToken]string{
		TokenText:       "#F8F8F2",
		TokenKeyword:    "#FF79C6",
		TokenDirective:  "#BD93F9",
		TokenLabel:      "#50FA7B",
		TokenNumber:     "#BD93F9",
		TokenString:     "#F1FA8C",
		TokenComment:    "#6272A4",
		TokenOperator:   "#FF79C6",
		TokenIdentifier: "#F8F8F2",
		TokenRegister:   "#8BE9FD",

		TokenLineNumber:   "#6272A4",
		TokenCursorLine:   "#44475A",
		TokenStatusText:   "#F8F8F2",
		TokenStatusBg:     "#44475A",
		TokenStatusAccent: "#FFB86C",
	},
}

// NordPreset is based on the Nord palette.
var NordPreset = Preset{
	Name:        "nord",
	Description: "Arctic, north-bluish color palette",
	Colors: map[ColorToken]string{
		TokenText:       "#D8DEE9",
		TokenKeyword:    "#81A1C1",
		TokenDirective:  "#B48EAD",
		TokenLabel:      "#8FBCBB",
		TokenNumber:     "#B48EAD",
		TokenString:     "#A3BE8C",
		TokenComment:    "#616E88",
		TokenOperator:   "#81A1C1",
		TokenIdentifier: "#D8DEE9",
		TokenRegister:   "#88C0D0",

		TokenLineNumber:   "#4C566A",
		TokenCursorLine:   "#3B4252",
		TokenStatusText:   "#ECEFF4",
		TokenStatusBg:     "#434C5E",
		TokenStatusAccent: "#EBCB8B",
	},
}

// HighContrastPreset maximizes contrast for accessibility.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "Maximum contrast for accessibility",
	Colors: map[ColorToken]string{
		TokenText:       "#FFFFFF",
		TokenKeyword:    "#00FFFF",
		TokenDirective:  "#FF00FF",
		TokenLabel:      "#FFFF00",
		TokenNumber:     "#FF8000",
		TokenString:     "#00FF00",
		TokenComment:    "#A0A0A0",
		TokenOperator:   "#FFFFFF",
		TokenIdentifier: "#FFFFFF",
		TokenRegister:   "#80C0FF",

		TokenLineNumber:   "#A0A0A0",
		TokenCursorLine:   "#303030",
		TokenStatusText:   "#000000",
		TokenStatusBg:     "#FFFFFF",
		TokenStatusAccent: "#FF0000",
	},
}
