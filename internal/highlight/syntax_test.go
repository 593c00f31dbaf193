package highlight

import (
	"context"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/retrolex/internal/dialect"
	"github.com/zjrosen/retrolex/internal/scan"
)

func TestSyntaxLexer_SkipsUnstyled(t *testing.T) {
	theme := DefaultTheme()
	l := NewSyntaxLexer(dialect.Asm6502, theme)

	tokens := l.Tokenize("  LDA #$01")
	require.Len(t, tokens, 3)
	require.Equal(t, 2, tokens[0].Start)
	require.Equal(t, 5, tokens[0].End)
	require.Equal(t, theme.Style(dialect.Keyword), tokens[0].Style)
	require.Equal(t, theme.Style(dialect.Operator), tokens[1].Style)
	require.Equal(t, theme.Style(dialect.Number), tokens[2].Style)
}

func TestSyntaxLexer_ThreadsState(t *testing.T) {
	theme := DefaultTheme()
	l := NewSyntaxLexer(dialect.Asm6502, theme)

	l.Tokenize(`  .byte "open`)
	require.True(t, l.State().InString)

	tokens := l.Tokenize(`still" LDA`)
	require.Equal(t, theme.Style(dialect.String), tokens[0].Style)
	require.Equal(t, 0, tokens[0].Start)
	require.Equal(t, 6, tokens[0].End)

	l.Reset(dialect.Basic)
	require.Equal(t, scan.InitialState(), l.State())
	tokens = l.Tokenize("10 END")
	require.Equal(t, theme.Style(dialect.Number), tokens[0].Style)
	require.Equal(t, theme.Style(dialect.Keyword), tokens[1].Style)
}

func TestSyntaxLexer_EmptyLine(t *testing.T) {
	l := NewSyntaxLexer(dialect.Basic, DefaultTheme())
	require.Empty(t, l.Tokenize(""))
}

func TestSyntaxLexer_RenderMatchesRenderLine(t *testing.T) {
	withProfile(t, termenv.TrueColor)
	theme := DefaultTheme()
	lines := []string{"START\tLDX #$0400", `  FCC "OPEN`, `STILL" ; done`, "\tRTS"}

	spans, _ := scan.TokenizeLines(lines, scan.InitialState(), dialect.Asm6809)
	l := NewSyntaxLexer(dialect.Asm6809, theme)
	for i, line := range lines {
		require.Equal(t, RenderLine(line, spans[i], theme, 4), l.Render(line, 4), "line %d", i)
	}
	require.Equal(t, scan.InitialState(), l.State())
}

func TestRenderDocument_ThreadsStateThroughLexer(t *testing.T) {
	withProfile(t, termenv.TrueColor)
	theme := DefaultTheme()
	text := "10 PRINT \"A\n20 END\""

	out := RenderDocument(context.Background(), text, dialect.Basic, theme, Options{TabWidth: 8})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	require.Equal(t, theme.Style(dialect.String).Render(`20 END"`), lines[1], "second line is still inside the string")
}
