package dialect

import (
	"sort"
	"strings"
)

// Family groups dialects that share start-of-line and label behaviour.
type Family int

const (
	FamilyPlain Family = iota
	FamilyAssembly
	FamilyBasic
)

func (f Family) String() string {
	switch f {
	case FamilyAssembly:
		return "assembly"
	case FamilyBasic:
		return "basic"
	default:
		return "plain"
	}
}

// CommentRule describes one comment introducer. A comment runs to the end of
// the line.
type CommentRule struct {
	Introducer string
	// LineStartOnly restricts the rule to the logical line start (the
	// assembler "*" comment).
	LineStartOnly bool
}

// LabelRule describes where an assembly dialect accepts label definitions.
type LabelRule struct {
	// ColumnZero treats a word at offset 0 as a label when it is followed by
	// a colon or is not reserved.
	ColumnZero bool
	// LineStart treats any unreserved word at the logical line start as a
	// label, even when indented.
	LineStart bool
}

// Dialect is the immutable descriptor of one language variant. Values are
// built once at package init; callers must treat them as read-only.
type Dialect struct {
	ID     string
	Name   string
	Family Family

	// Tables are consulted in order; the first table that contains a word
	// decides its category. Keyword tables come before directive tables,
	// which come before register tables.
	Tables []*SymbolTable

	Comments         []CommentRule
	StringDelimiters string
	Numbers          []NumericGrammar

	// CharConstants are tried before a string opens, for assemblers whose
	// character constants use a string quote ('A).
	CharConstants []NumericGrammar

	// LineNumbers enables the BASIC line number prefix.
	LineNumbers bool
	Labels      LabelRule

	// WordStart and WordPart list the characters beyond ASCII letters (and
	// digits, for WordPart) that may begin or continue a word.
	WordStart string
	WordPart  string

	// Sigils are the type-suffix characters that may extend a reserved word
	// by exactly one character (LEFT$, PR#).
	Sigils string

	// Operators is sorted longest first by build.
	Operators []string

	CaseFold bool

	// Plain disables classification: every line is a single None span.
	Plain bool
}

// build finalises a descriptor literal.
func build(d Dialect) *Dialect {
	ops := append([]string(nil), d.Operators...)
	sort.SliceStable(ops, func(i, j int) bool { return len(ops[i]) > len(ops[j]) })
	d.Operators = ops
	return &d
}

// Lookup classifies a word against the dialect's tables in priority order.
// The boolean is false when the word is not reserved.
func (d *Dialect) Lookup(word string) (Category, bool) {
	if d.CaseFold {
		word = strings.ToUpper(word)
	}
	for _, t := range d.Tables {
		if t.Contains(word) {
			return t.Category(), true
		}
	}
	return None, false
}

// IsWordStart reports whether c may begin a word.
func (d *Dialect) IsWordStart(c byte) bool {
	return isLetter(c) || strings.IndexByte(d.WordStart, c) >= 0
}

// IsWordPart reports whether c may continue a word.
func (d *Dialect) IsWordPart(c byte) bool {
	return isLetter(c) || isDecDigit(c) || strings.IndexByte(d.WordPart, c) >= 0
}

// IsSigil reports whether c is a type-suffix sigil.
func (d *Dialect) IsSigil(c byte) bool {
	return strings.IndexByte(d.Sigils, c) >= 0
}

// IsStringDelimiter reports whether c opens a string.
func (d *Dialect) IsStringDelimiter(c byte) bool {
	return strings.IndexByte(d.StringDelimiters, c) >= 0
}

// MatchComment reports whether a comment starts at pos. Introducers made of
// letters (REM) compare case-insensitively.
func (d *Dialect) MatchComment(line string, pos int, atLineStart bool) bool {
	for _, r := range d.Comments {
		if r.LineStartOnly && !atLineStart {
			continue
		}
		n := len(r.Introducer)
		if len(line)-pos < n {
			continue
		}
		if strings.EqualFold(line[pos:pos+n], r.Introducer) {
			return true
		}
	}
	return false
}

// MatchOperator returns the end of the longest operator at pos, or pos.
func (d *Dialect) MatchOperator(line string, pos int) int {
	for _, op := range d.Operators {
		if strings.HasPrefix(line[pos:], op) {
			return pos + len(op)
		}
	}
	return pos
}

// MatchCharConstant returns the end of a character constant at pos, or pos
// when there is none.
func (d *Dialect) MatchCharConstant(line string, pos int) int {
	best := pos
	for _, g := range d.CharConstants {
		if end := g.Match(line, pos); end > best {
			best = end
		}
	}
	return best
}

// MatchNumber returns the end of the longest numeric literal at pos, or pos.
// Radix grammars are tried first; the remaining grammars are only consulted
// when no radix form matched.
func (d *Dialect) MatchNumber(line string, pos int) int {
	best := pos
	for _, g := range d.Numbers {
		if !g.Radix {
			continue
		}
		if end := g.Match(line, pos); end > best {
			best = end
		}
	}
	if best > pos {
		return best
	}
	for _, g := range d.Numbers {
		if g.Radix {
			continue
		}
		if end := g.Match(line, pos); end > best {
			best = end
		}
	}
	return best
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
