package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/retrolex/internal/dialect"
)

type tok struct {
	Text string
	Cat  dialect.Category
}

func toks(line string, spans []Span) []tok {
	out := make([]tok, len(spans))
	for i, s := range spans {
		out[i] = tok{Text: s.Text(line), Cat: s.Category}
	}
	return out
}

func scanOne(line string, d *dialect.Dialect) []tok {
	spans, _ := TokenizeLine(line, InitialState(), d)
	return toks(line, spans)
}

const (
	none  = dialect.None
	kw    = dialect.Keyword
	dir   = dialect.Directive
	label = dialect.Label
	num   = dialect.Number
	str   = dialect.String
	cmt   = dialect.Comment
	op    = dialect.Operator
	ident = dialect.Identifier
	reg   = dialect.Register
)

func TestTokenizeLine_Assembly6502(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tok
	}{
		{
			name:  "label opcode immediate comment",
			input: "start LDA #$FF ; load",
			expected: []tok{
				{"start", label}, {" ", none}, {"LDA", kw}, {" ", none},
				{"#", op}, {"$FF", num}, {" ", none}, {"; load", cmt},
			},
		},
		{
			name:  "colon label",
			input: "loop: DEX",
			expected: []tok{
				{"loop:", label}, {" ", none}, {"DEX", kw},
			},
		},
		{
			name:  "branch target is an identifier",
			input: "  BNE loop",
			expected: []tok{
				{"  ", none}, {"BNE", kw}, {" ", none}, {"loop", ident},
			},
		},
		{
			name:  "indexed operand register",
			input: "\tSTA $0400,X",
			expected: []tok{
				{"\t", none}, {"STA", kw}, {" ", none}, {"$0400", num}, {",", op}, {"X", reg},
			},
		},
		{
			name:     "star comment at line start",
			input:    "* = $C000",
			expected: []tok{{"* = $C000", cmt}},
		},
		{
			name:  "star after line start is an operator",
			input: " LDA #*",
			expected: []tok{
				{" ", none}, {"LDA", kw}, {" ", none}, {"#", op}, {"*", op},
			},
		},
		{
			name:  "indented unreserved word at line start",
			input: "  screen EQU $0400",
			expected: []tok{
				{"  ", none}, {"screen", label}, {" ", none}, {"EQU", dir}, {" ", none}, {"$0400", num},
			},
		},
		{
			name:  "dotted directive and strings",
			input: ` .byte "HI",'A',0`,
			expected: []tok{
				{" ", none}, {".byte", dir}, {" ", none}, {`"HI"`, str}, {",", op},
				{"'A'", num}, {",", op}, {"0", num},
			},
		},
		{
			name:  "binary and c hex",
			input: " AND #%1010 + 0x1F",
			expected: []tok{
				{" ", none}, {"AND", kw}, {" ", none}, {"#", op}, {"%1010", num},
				{" ", none}, {"+", op}, {" ", none}, {"0x1F", num},
			},
		},
		{
			name:  "65C02 opcode is an unreserved label in 6502",
			input: "BRA done",
			expected: []tok{
				{"BRA", label}, {" ", none}, {"done", ident},
			},
		},
		{
			name:  "reserved word at column zero is not a label",
			input: "RTS",
			expected: []tok{
				{"RTS", kw},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scanOne(tt.input, dialect.Asm6502))
		})
	}
}

func TestTokenizeLine_Assembly65C02(t *testing.T) {
	assert.Equal(t, []tok{
		{" ", none}, {"BRA", kw}, {" ", none}, {"done", ident},
	}, scanOne(" BRA done", dialect.Asm65C02))

	assert.Equal(t, []tok{
		{" ", none}, {"smb3", kw}, {" ", none}, {"$12", num},
	}, scanOne(" smb3 $12", dialect.Asm65C02))
}

func TestTokenizeLine_Assembly6809(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tok
	}{
		{
			name:  "pc relative",
			input: "  LEAX msg,PCR",
			expected: []tok{
				{"  ", none}, {"LEAX", kw}, {" ", none}, {"msg", ident}, {",", op}, {"PCR", reg},
			},
		},
		{
			name:  "octal and char constants",
			input: " LDD #@17+'A",
			expected: []tok{
				{" ", none}, {"LDD", kw}, {" ", none}, {"#", op}, {"@17", num}, {"+", op}, {"'A", num},
			},
		},
		{
			name:  "suffix literals",
			input: " FCB 0FFH,1010B,17Q",
			expected: []tok{
				{" ", none}, {"FCB", dir}, {" ", none}, {"0FFH", num}, {",", op},
				{"1010B", num}, {",", op}, {"17Q", num},
			},
		},
		{
			name:  "fcc string",
			input: `msg FCC "HELLO"`,
			expected: []tok{
				{"msg", label}, {" ", none}, {"FCC", dir}, {" ", none}, {`"HELLO"`, str},
			},
		},
		{
			name:  "register list",
			input: " PSHS A,B,X",
			expected: []tok{
				{" ", none}, {"PSHS", kw}, {" ", none}, {"A", reg}, {",", op},
				{"B", reg}, {",", op}, {"X", reg},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scanOne(tt.input, dialect.Asm6809))
		})
	}
}

func TestTokenizeLine_Basic(t *testing.T) {
	tests := []struct {
		name     string
		dialect  *dialect.Dialect
		input    string
		expected []tok
	}{
		{
			name:    "line number and print",
			dialect: dialect.Basic,
			input:   `10 PRINT "HI";X`,
			expected: []tok{
				{"10", num}, {" ", none}, {"PRINT", kw}, {" ", none}, {`"HI"`, str}, {";", op}, {"X", ident},
			},
		},
		{
			name:    "number after line start is not a line number",
			dialect: dialect.Basic,
			input:   "20 GOTO 10",
			expected: []tok{
				{"20", num}, {" ", none}, {"GOTO", kw}, {" ", none}, {"10", num},
			},
		},
		{
			name:    "rem swallows the rest of the line",
			dialect: dialect.Basic,
			input:   `30 REM PRINT "X`,
			expected: []tok{
				{"30", num}, {" ", none}, {`REM PRINT "X`, cmt},
			},
		},
		{
			name:    "apostrophe comment in color basic",
			dialect: dialect.ColorBasicDialect,
			input:   "40 CLS ' clear",
			expected: []tok{
				{"40", num}, {" ", none}, {"CLS", kw}, {" ", none}, {"' clear", cmt},
			},
		},
		{
			name:    "relational digraph",
			dialect: dialect.Basic,
			input:   "IF A<>B THEN 5",
			expected: []tok{
				{"IF", kw}, {" ", none}, {"A", ident}, {"<>", op}, {"B", ident},
				{" ", none}, {"THEN", kw}, {" ", none}, {"5", num},
			},
		},
		{
			name:    "sigil word",
			dialect: dialect.Basic,
			input:   "PRINT LEFT$(A$,1)",
			expected: []tok{
				{"PRINT", kw}, {" ", none}, {"LEFT$", kw}, {"(", op}, {"A", ident}, {"$", none},
				{",", op}, {"1", num}, {")", op},
			},
		},
		{
			name:    "scientific constant",
			dialect: dialect.Basic,
			input:   "X=1.5E-3*.5",
			expected: []tok{
				{"X", ident}, {"=", op}, {"1.5E-3", num}, {"*", op}, {".5", num},
			},
		},
		{
			name:    "ampersand literals",
			dialect: dialect.Ecb,
			input:   "POKE &HFF40,&O17",
			expected: []tok{
				{"POKE", kw}, {" ", none}, {"&HFF40", num}, {",", op}, {"&O17", num},
			},
		},
		{
			name:    "pmode under extended color basic",
			dialect: dialect.Ecb,
			input:   "10 PMODE 4,1:PCLS",
			expected: []tok{
				{"10", num}, {" ", none}, {"PMODE", kw}, {" ", none}, {"4", num}, {",", op},
				{"1", num}, {":", op}, {"PCLS", kw},
			},
		},
		{
			name:    "applesoft pr#",
			dialect: dialect.ApplesoftDialect,
			input:   "PR#6",
			expected: []tok{
				{"PR#", kw}, {"6", num},
			},
		},
		{
			name:    "applesoft hgr2",
			dialect: dialect.ApplesoftDialect,
			input:   "100 HGR2 : HPLOT 0,0",
			expected: []tok{
				{"100", num}, {" ", none}, {"HGR2", kw}, {" ", none}, {":", op}, {" ", none},
				{"HPLOT", kw}, {" ", none}, {"0", num}, {",", op}, {"0", num},
			},
		},
		{
			name:    "unreserved word at line start stays an identifier",
			dialect: dialect.Basic,
			input:   "COUNT=1",
			expected: []tok{
				{"COUNT", ident}, {"=", op}, {"1", num},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, scanOne(tt.input, tt.dialect))
		})
	}
}

func TestTokenizeLine_Plain(t *testing.T) {
	spans, next := TokenizeLine(`LDA "open`, InitialState(), dialect.Plain)
	require.Len(t, spans, 1)
	assert.Equal(t, Span{Start: 0, End: 9, Category: dialect.None}, spans[0])
	assert.Equal(t, InitialState(), next)

	spans, _ = TokenizeLine("", InitialState(), dialect.Plain)
	assert.Empty(t, spans)
}

func TestTokenizeLine_EmptyLine(t *testing.T) {
	for _, d := range dialect.All() {
		spans, next := TokenizeLine("", InitialState(), d)
		assert.Empty(t, spans, d.ID)
		assert.Equal(t, InitialState(), next, d.ID)
	}
}

func TestTokenizeLine_StringContinuation(t *testing.T) {
	d := dialect.Basic

	spans, st := TokenizeLine(`10 PRINT "HELLO`, InitialState(), d)
	assert.Equal(t, []tok{
		{"10", num}, {" ", none}, {"PRINT", kw}, {" ", none}, {`"HELLO`, str},
	}, toks(`10 PRINT "HELLO`, spans))
	assert.Equal(t, State{InString: true, Delimiter: '"'}, st)

	spans, st = TokenizeLine("STILL OPEN", st, d)
	assert.Equal(t, []tok{{"STILL OPEN", str}}, toks("STILL OPEN", spans))
	assert.True(t, st.InString)

	spans, st = TokenizeLine(`WORLD" : END`, st, d)
	assert.Equal(t, []tok{
		{`WORLD"`, str}, {" ", none}, {":", op}, {" ", none}, {"END", kw},
	}, toks(`WORLD" : END`, spans))
	assert.Equal(t, InitialState(), st)

	// An empty line inside a string keeps it open.
	_, st = TokenizeLine(`"`, InitialState(), d)
	spans, st = TokenizeLine("", st, d)
	assert.Empty(t, spans)
	assert.True(t, st.InString)
}

func TestTokenizeLine_6502CharConstants(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tok
		open     bool
	}{
		{
			name:     "bare char constant",
			input:    "  LDA #'A",
			expected: []tok{{"  ", none}, {"LDA", kw}, {" ", none}, {"#", op}, {"'A", num}},
		},
		{
			name:     "closed char constant",
			input:    "  CMP #' '",
			expected: []tok{{"  ", none}, {"CMP", kw}, {" ", none}, {"#", op}, {"' '", num}},
		},
		{
			name:     "char constant in expression",
			input:    "  LDA #'A+1,X",
			expected: []tok{{"  ", none}, {"LDA", kw}, {" ", none}, {"#", op}, {"'A", num}, {"+", op}, {"1", num}, {",", op}, {"X", reg}},
		},
		{
			name:     "apostrophe string",
			input:    "  ASC 'HELLO'",
			expected: []tok{{"  ", none}, {"ASC", dir}, {" ", none}, {"'HELLO'", str}},
		},
		{
			name:     "open apostrophe string",
			input:    "  ASC 'HELLO",
			expected: []tok{{"  ", none}, {"ASC", dir}, {" ", none}, {"'HELLO", str}},
			open:     true,
		},
	}
	for _, d := range []*dialect.Dialect{dialect.Asm6502, dialect.Asm65C02} {
		for _, tt := range tests {
			t.Run(d.ID+"/"+tt.name, func(t *testing.T) {
				spans, next := TokenizeLine(tt.input, InitialState(), d)
				assert.Equal(t, tt.expected, toks(tt.input, spans))
				assert.Equal(t, tt.open, next.InString)
			})
		}
	}

	// The line after a char constant scans normally.
	_, st := TokenizeLine("  LDA #'A", InitialState(), dialect.Asm6502)
	assert.Equal(t, []tok{{"  ", none}, {"RTS", kw}}, toks("  RTS", spansOf(TokenizeLine("  RTS", st, dialect.Asm6502))))
}

func spansOf(spans []Span, _ State) []Span { return spans }

func TestTokenizeLine_ContinuationHasNoLinePrefix(t *testing.T) {
	// After a string closes mid-line, digits are ordinary numbers rather than
	// a line number and words are not labels.
	d := dialect.Asm6502
	st := State{InString: true, Delimiter: '"'}
	spans, _ := TokenizeLine(`x" foo`, st, d)
	assert.Equal(t, []tok{{`x"`, str}, {" ", none}, {"foo", ident}}, toks(`x" foo`, spans))
}

func TestTokenizeLine_CommentTerminality(t *testing.T) {
	line := "LDA #1 ; load"
	spans, next := TokenizeLine(line, InitialState(), dialect.Asm6502)
	require.NotEmpty(t, spans)

	last := spans[len(spans)-1]
	assert.Equal(t, dialect.Comment, last.Category)
	assert.Equal(t, "; load", last.Text(line))
	for _, s := range spans[:len(spans)-1] {
		assert.NotEqual(t, dialect.Comment, s.Category)
	}
	assert.Equal(t, InitialState(), next)

	// A quote inside a comment never opens a string.
	_, next = TokenizeLine(`LDA #1 ; "`, InitialState(), dialect.Asm6502)
	assert.False(t, next.InString)
}

func TestTokenizeLine_SigilBackOff(t *testing.T) {
	line := "X=LEN$"
	spans, _ := TokenizeLine(line, InitialState(), dialect.Basic)
	assert.Equal(t, []tok{
		{"X", ident}, {"=", op}, {"LEN", kw}, {"$", none},
	}, toks(line, spans))

	// Only one character of lookahead: "CHR$$" is CHR$ followed by "$".
	line = "CHR$$"
	spans, _ = TokenizeLine(line, InitialState(), dialect.Basic)
	assert.Equal(t, []tok{{"CHR$", kw}, {"$", none}}, toks(line, spans))
}

func TestTokenizeLine_DialectIsolation(t *testing.T) {
	line := "PMODE 4"
	cat := func(d *dialect.Dialect) dialect.Category {
		spans, _ := TokenizeLine(line, InitialState(), d)
		return spans[0].Category
	}

	assert.Equal(t, dialect.Keyword, cat(dialect.Ecb))
	assert.Equal(t, dialect.Identifier, cat(dialect.Basic))
	assert.Equal(t, dialect.Identifier, cat(dialect.ColorBasicDialect))
	assert.Equal(t, dialect.Label, cat(dialect.Asm6502))
	assert.Equal(t, dialect.Label, cat(dialect.Asm6809))
}

func TestTokenizeLine_CaseInsensitive(t *testing.T) {
	pairs := []struct {
		d           *dialect.Dialect
		upper, mixd string
	}{
		{dialect.Asm6502, " LDA #$FF ; X", " lda #$ff ; x"},
		{dialect.Asm6809, " LEAX 2,PCR", " leax 2,pcr"},
		{dialect.Ecb, `10 PMODE 4:PRINT LEFT$(A$,1)`, `10 pmode 4:Print left$(a$,1)`},
		{dialect.ApplesoftDialect, "PR#6:HOME", "pr#6:home"},
	}

	for _, p := range pairs {
		t.Run(p.d.ID, func(t *testing.T) {
			a, sa := TokenizeLine(p.upper, InitialState(), p.d)
			b, sb := TokenizeLine(p.mixd, InitialState(), p.d)
			assert.Equal(t, a, b)
			assert.Equal(t, sa, sb)
		})
	}
}

func TestTokenizeLine_NonASCII(t *testing.T) {
	line := "é€ LDA"
	spans, _ := TokenizeLine(line, InitialState(), dialect.Asm6502)
	assert.Equal(t, []tok{{"é", none}, {"€", none}, {" ", none}, {"LDA", kw}}, toks(line, spans))
}

func TestTokenizeLines(t *testing.T) {
	lines := []string{`10 PRINT "A`, `B"`, "20 END"}
	all, end := TokenizeLines(lines, InitialState(), dialect.Basic)
	require.Len(t, all, 3)

	st := InitialState()
	for i, line := range lines {
		var spans []Span
		spans, st = TokenizeLine(line, st, dialect.Basic)
		assert.Equal(t, spans, all[i])
	}
	assert.Equal(t, st, end)
}
