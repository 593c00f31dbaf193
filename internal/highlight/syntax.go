package highlight

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/retrolex/internal/dialect"
	"github.com/zjrosen/retrolex/internal/scan"
)

// SyntaxToken represents a styled region within a line of text.
type SyntaxToken struct {
	// Start is the starting byte offset within the line (0-indexed).
	Start int
	// End is the ending byte offset within the line (exclusive).
	End   int
	Style lipgloss.Style
}

// SyntaxLexer adapts the scanner to editor widgets that ask for styled
// tokens one line at a time, top to bottom. State carries between calls.
type SyntaxLexer struct {
	d     *dialect.Dialect
	theme *Theme
	state scan.State
}

// NewSyntaxLexer creates a lexer positioned at the start of a buffer.
func NewSyntaxLexer(d *dialect.Dialect, theme *Theme) *SyntaxLexer {
	return &SyntaxLexer{d: d, theme: theme, state: scan.InitialState()}
}

// Tokenize returns styled tokens for the next line. Unclassified text is
// omitted so widgets draw it in their own default style.
func (l *SyntaxLexer) Tokenize(line string) []SyntaxToken {
	spans, next := scan.TokenizeLine(line, l.state, l.d)
	l.state = next
	return syntaxTokens(spans, l.theme)
}

// Render tokenizes the next line and returns it styled, with tabs expanded.
func (l *SyntaxLexer) Render(line string, tabWidth int) string {
	return renderTokens(line, l.Tokenize(line), l.theme.Style(dialect.None), tabWidth)
}

func syntaxTokens(spans []scan.Span, theme *Theme) []SyntaxToken {
	var tokens []SyntaxToken
	for _, s := range spans {
		if s.Category == dialect.None {
			continue
		}
		tokens = append(tokens, SyntaxToken{Start: s.Start, End: s.End, Style: theme.Style(s.Category)})
	}
	return tokens
}

// State returns the state the next Tokenize call starts from.
func (l *SyntaxLexer) State() scan.State {
	return l.state
}

// Reset positions the lexer at the start of a buffer again, optionally with
// another dialect.
func (l *SyntaxLexer) Reset(d *dialect.Dialect) {
	if d != nil {
		l.d = d
	}
	l.state = scan.InitialState()
}
