package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/require"
)

func TestViewer_KeyAssignments(t *testing.T) {
	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{"Up uses k and up", Viewer.Up, []string{"k", "up"}},
		{"Down uses j and down", Viewer.Down, []string{"j", "down"}},
		{"CycleMode uses m", Viewer.CycleMode, []string{"m"}},
		{"Inspect uses enter", Viewer.Inspect, []string{"enter"}},
		{"Quit uses q, ctrl+c and esc", Viewer.Quit, []string{"q", "ctrl+c", "esc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
		})
	}
}

func TestViewer_HelpText(t *testing.T) {
	help := Viewer.CycleMode.Help()
	require.Equal(t, "m", help.Key)
	require.Equal(t, "next dialect", help.Desc)
}

func TestViewer_NoDuplicateKeys(t *testing.T) {
	seen := map[string]string{}
	for _, group := range Viewer.FullHelp() {
		for _, b := range group {
			for _, k := range b.Keys() {
				prev, dup := seen[k]
				require.False(t, dup, "key %q bound to both %q and %q", k, prev, b.Help().Desc)
				seen[k] = b.Help().Desc
			}
		}
	}
}

func TestViewer_ShortHelpSubsetOfFull(t *testing.T) {
	full := map[string]bool{}
	for _, group := range Viewer.FullHelp() {
		for _, b := range group {
			full[b.Help().Desc] = true
		}
	}
	for _, b := range Viewer.ShortHelp() {
		require.True(t, full[b.Help().Desc], b.Help().Desc)
	}
}
