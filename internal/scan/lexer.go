package scan

import (
	"strings"
	"unicode/utf8"

	"github.com/zjrosen/retrolex/internal/dialect"
)

// TokenizeLine classifies one line of text. It never fails: every byte of the
// line ends up in exactly one span, and the returned state must be passed in
// for the next line of the same buffer.
func TokenizeLine(line string, state State, d *dialect.Dialect) ([]Span, State) {
	state = state.sanitize(d)
	if d.Plain {
		if line == "" {
			return nil, InitialState()
		}
		return []Span{{Start: 0, End: len(line), Category: dialect.None}}, InitialState()
	}

	l := &lexer{line: line, d: d, state: state}
	for l.pos < len(l.line) {
		l.step()
	}
	return l.spans, l.state.next()
}

// TokenizeLines runs TokenizeLine over consecutive lines, threading state.
func TokenizeLines(lines []string, state State, d *dialect.Dialect) ([][]Span, State) {
	out := make([][]Span, len(lines))
	for i, line := range lines {
		out[i], state = TokenizeLine(line, state, d)
	}
	return out, state
}

// lexer scans a single line.
type lexer struct {
	line  string
	pos   int // start of the next token
	d     *dialect.Dialect
	state State
	spans []Span
}

// emit appends the span [l.pos, end) and advances past it. Anything other
// than whitespace ends the logical line start.
func (l *lexer) emit(end int, cat dialect.Category) {
	l.spans = append(l.spans, Span{Start: l.pos, End: end, Category: cat})
	l.pos = end
	if cat != dialect.None || !isSpace(l.line[end-1]) {
		l.state.AtLineStart = false
	}
}

// step consumes exactly one token. The order of the checks is the
// tokenizer's contract: the first production that matches wins.
func (l *lexer) step() {
	ch := l.line[l.pos]

	if l.state.InString {
		l.readString(l.pos, l.state.Delimiter)
		return
	}

	if isSpace(ch) {
		end := l.pos
		for end < len(l.line) && isSpace(l.line[end]) {
			end++
		}
		l.emit(end, dialect.None)
		return
	}

	if l.state.AtLineStart && l.readLinePrefix() {
		return
	}

	if l.d.MatchComment(l.line, l.pos, l.state.AtLineStart) {
		l.emit(len(l.line), dialect.Comment)
		return
	}

	if end := l.d.MatchCharConstant(l.line, l.pos); end > l.pos {
		l.emit(end, dialect.Number)
		return
	}

	if l.d.IsStringDelimiter(ch) {
		l.state.InString = true
		l.state.Delimiter = ch
		l.readString(l.pos+1, ch)
		return
	}

	if end := l.d.MatchNumber(l.line, l.pos); end > l.pos {
		l.emit(end, dialect.Number)
		return
	}

	if l.d.IsWordStart(ch) {
		l.readWord()
		return
	}

	if end := l.d.MatchOperator(l.line, l.pos); end > l.pos {
		l.emit(end, dialect.Operator)
		return
	}

	_, size := utf8.DecodeRuneInString(l.line[l.pos:])
	l.emit(l.pos+size, dialect.None)
}

// readString consumes string text from `from` through the closing delimiter,
// or to the end of the line when there is none, leaving the string open.
func (l *lexer) readString(from int, delim byte) {
	if i := strings.IndexByte(l.line[from:], delim); i >= 0 {
		l.state.InString = false
		l.state.Delimiter = 0
		l.emit(from+i+1, dialect.String)
		return
	}
	l.emit(len(l.line), dialect.String)
}

// readLinePrefix handles the productions only legal at the logical line
// start: BASIC line numbers and column-0 assembly labels.
func (l *lexer) readLinePrefix() bool {
	ch := l.line[l.pos]

	if l.d.LineNumbers && isDigit(ch) {
		end := l.pos
		for end < len(l.line) && isDigit(l.line[end]) {
			end++
		}
		l.emit(end, dialect.Number)
		return true
	}

	if l.d.Labels.ColumnZero && l.pos == 0 && l.d.IsWordStart(ch) {
		end := l.wordEnd(l.pos)
		if end < len(l.line) && l.line[end] == ':' {
			l.emit(end+1, dialect.Label)
			return true
		}
		if _, reserved := l.d.Lookup(l.line[l.pos:end]); !reserved {
			l.emit(end, dialect.Label)
			return true
		}
	}
	return false
}

// readWord consumes a word and classifies it against the dialect tables.
func (l *lexer) readWord() {
	end := l.wordEnd(l.pos)

	// One character of lookahead for composite names such as LEFT$. When the
	// extended word is not reserved the sigil is left for the next step.
	if end < len(l.line) && l.d.IsSigil(l.line[end]) {
		if cat, ok := l.d.Lookup(l.line[l.pos : end+1]); ok {
			l.emit(end+1, cat)
			return
		}
	}

	if cat, ok := l.d.Lookup(l.line[l.pos:end]); ok {
		l.emit(end, cat)
		return
	}

	if l.state.AtLineStart && l.d.Labels.LineStart {
		if end < len(l.line) && l.line[end] == ':' {
			end++
		}
		l.emit(end, dialect.Label)
		return
	}

	l.emit(end, dialect.Identifier)
}

func (l *lexer) wordEnd(pos int) int {
	end := pos + 1
	for end < len(l.line) && l.d.IsWordPart(l.line[end]) {
		end++
	}
	return end
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
