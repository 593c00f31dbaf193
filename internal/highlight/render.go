package highlight

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/retrolex/internal/dialect"
	"github.com/zjrosen/retrolex/internal/scan"
	"github.com/zjrosen/retrolex/internal/tracing"
)

// DefaultTabWidth is used when Options.TabWidth is not positive.
const DefaultTabWidth = 8

// Options controls document rendering.
type Options struct {
	TabWidth    int
	LineNumbers bool
}

// ExpandTabs replaces tabs with spaces up to the next tab stop, measuring
// columns in grapheme display widths, and moves spans to match.
func ExpandTabs(line string, spans []scan.Span, tabWidth int) (string, []scan.Span) {
	out, offsets := expandTabs(line, tabWidth)
	if offsets == nil {
		return line, spans
	}
	moved := make([]scan.Span, len(spans))
	for i, s := range spans {
		moved[i] = scan.Span{Start: offsets[s.Start], End: offsets[s.End], Category: s.Category}
	}
	return out, moved
}

// expandTabs returns the expanded line and, when it contained a tab, where
// each byte offset of line (and len(line)) lands in it.
func expandTabs(line string, tabWidth int) (string, []int) {
	if !strings.Contains(line, "\t") {
		return line, nil
	}
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}

	var b strings.Builder
	offsets := make([]int, len(line)+1)
	col, pos := 0, 0
	state := -1
	rest := line
	for len(rest) > 0 {
		var cluster string
		var boundaries int
		cluster, rest, boundaries, state = uniseg.StepString(rest, state)

		shift := b.Len() - pos
		for i := range len(cluster) {
			offsets[pos+i] = pos + i + shift
		}

		if cluster == "\t" {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
		} else {
			b.WriteString(cluster)
			col += boundaries >> uniseg.ShiftWidth
		}
		pos += len(cluster)
	}
	offsets[len(line)] = b.Len()
	return b.String(), offsets
}

// RenderLine styles each span of line. Text not covered by a classified
// span is drawn in the plain text style.
func RenderLine(line string, spans []scan.Span, theme *Theme, tabWidth int) string {
	return renderTokens(line, syntaxTokens(spans, theme), theme.Style(dialect.None), tabWidth)
}

// renderTokens draws tokens over line, filling the gaps with plain. Token
// offsets refer to line before tab expansion.
func renderTokens(line string, tokens []SyntaxToken, plain lipgloss.Style, tabWidth int) string {
	expanded, offsets := expandTabs(line, tabWidth)
	at := func(i int) int {
		if offsets == nil {
			return i
		}
		return offsets[i]
	}

	var b strings.Builder
	pos := 0
	for _, t := range tokens {
		start, end := at(t.Start), at(t.End)
		if start > pos {
			b.WriteString(plain.Render(expanded[pos:start]))
		}
		b.WriteString(t.Style.Render(expanded[start:end]))
		pos = end
	}
	if pos < len(expanded) {
		b.WriteString(plain.Render(expanded[pos:]))
	}
	return b.String()
}

// RenderDocument tokenizes and styles a whole document. Lines are separated
// by "\n"; a trailing newline is preserved.
func RenderDocument(ctx context.Context, text string, d *dialect.Dialect, theme *Theme, opts Options) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	trailing := len(lines) > 1 && lines[len(lines)-1] == ""
	if trailing {
		lines = lines[:len(lines)-1]
	}

	_, span := tracing.Tracer("retrolex/highlight").Start(ctx, tracing.SpanHighlightDoc,
		trace.WithAttributes(
			attribute.String(tracing.AttrDialect, d.ID),
			attribute.Int(tracing.AttrLines, len(lines)),
		))
	defer span.End()

	lexer := NewSyntaxLexer(d, theme)
	gutter := len(fmt.Sprint(len(lines)))
	var b strings.Builder
	for i, line := range lines {
		if opts.LineNumbers {
			b.WriteString(theme.TokenStyle(TokenLineNumber).Render(fmt.Sprintf("%*d ", gutter, i+1)))
		}
		b.WriteString(lexer.Render(line, opts.TabWidth))
		if i < len(lines)-1 || trailing {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
