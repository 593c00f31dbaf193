package dialect

import (
	"errors"
	"fmt"

	"github.com/zjrosen/retrolex/internal/log"
)

// Mode identifiers accepted by Resolve.
const (
	IDAsm6502    = "asm6502"
	IDAsm65C02   = "asm65c02"
	IDAsm6809    = "asm6809"
	IDBasic      = "basic"
	IDColorBasic = "colorbasic"
	IDEcb        = "ecb"
	IDApplesoft  = "applesoft"
	IDPlain      = "plain"
)

// ErrUnknownDialect is returned by Resolve for identifiers outside the
// supported set.
var ErrUnknownDialect = errors.New("unknown dialect")

var (
	asmOperators   = []string{"<<", ">>", "<=", ">=", "<>", "!=", "==", "&&", "||", "#", ",", "(", ")", "[", "]", "+", "-", "*", "/", "<", ">", "=", "!", "&", "|", "^", "~", ":", "%"}
	basicOperators = []string{"<>", "<=", ">=", "=<", "=>", "><", "+", "-", "*", "/", "^", "=", "<", ">", "(", ")", ",", ";", ":"}

	asmComments = []CommentRule{{Introducer: ";"}, {Introducer: "*", LineStartOnly: true}}
	asmLabels   = LabelRule{ColumnZero: true, LineStart: true}
)

// Asm6502 is NMOS 6502 assembly in the Merlin/ca65 tradition.
var Asm6502 = build(Dialect{
	ID:               IDAsm6502,
	Name:             "6502 assembly",
	Family:           FamilyAssembly,
	Tables:           []*SymbolTable{Mos6502Opcodes, Asm6502Directives, Mos6502Registers},
	Comments:         asmComments,
	StringDelimiters: `"'`,
	CharConstants:    []NumericGrammar{QuotedChar('\'')},
	Numbers:          []NumericGrammar{HexDollar(), BinPercent(), HexC(), Decimal()},
	Labels:           asmLabels,
	WordStart:        "_.@",
	WordPart:         "_.@",
	Operators:        asmOperators,
	CaseFold:         true,
})

// Asm65C02 extends Asm6502 with the CMOS instructions.
var Asm65C02 = build(Dialect{
	ID:               IDAsm65C02,
	Name:             "65C02 assembly",
	Family:           FamilyAssembly,
	Tables:           []*SymbolTable{Mos6502Opcodes, Wdc65C02Opcodes, Asm6502Directives, Mos6502Registers},
	Comments:         asmComments,
	StringDelimiters: `"'`,
	CharConstants:    []NumericGrammar{QuotedChar('\'')},
	Numbers:          []NumericGrammar{HexDollar(), BinPercent(), HexC(), Decimal()},
	Labels:           asmLabels,
	WordStart:        "_.@",
	WordPart:         "_.@",
	Operators:        asmOperators,
	CaseFold:         true,
})

// Asm6809 is Motorola 6809 assembly (EDTASM, lwasm).
var Asm6809 = build(Dialect{
	ID:               IDAsm6809,
	Name:             "6809 assembly",
	Family:           FamilyAssembly,
	Tables:           []*SymbolTable{Mc6809Opcodes, Asm6809Directives, Mc6809Registers},
	Comments:         asmComments,
	StringDelimiters: `"`,
	Numbers:          []NumericGrammar{HexDollar(), BinPercent(), OctAt(), HexC(), CharLiteral('\''), Suffixed(), Decimal()},
	Labels:           asmLabels,
	WordStart:        "_.@",
	WordPart:         "_.@$?",
	Operators:        asmOperators,
	CaseFold:         true,
})

// Basic is the Microsoft BASIC core shared by every variant.
var Basic = build(Dialect{
	ID:               IDBasic,
	Name:             "BASIC",
	Family:           FamilyBasic,
	Tables:           []*SymbolTable{BasicCore},
	Comments:         []CommentRule{{Introducer: "REM"}},
	StringDelimiters: `"`,
	Numbers:          []NumericGrammar{Scientific()},
	LineNumbers:      true,
	Sigils:           "$%",
	Operators:        basicOperators,
	CaseFold:         true,
})

// ColorBasicDialect is Tandy Color BASIC.
var ColorBasicDialect = build(Dialect{
	ID:               IDColorBasic,
	Name:             "Color BASIC",
	Family:           FamilyBasic,
	Tables:           []*SymbolTable{BasicCore, ColorBasic},
	Comments:         []CommentRule{{Introducer: "REM"}, {Introducer: "'"}},
	StringDelimiters: `"`,
	Numbers:          []NumericGrammar{Scientific()},
	LineNumbers:      true,
	Sigils:           "$%",
	Operators:        basicOperators,
	CaseFold:         true,
})

// Ecb is Tandy Extended Color BASIC.
var Ecb = build(Dialect{
	ID:               IDEcb,
	Name:             "Extended Color BASIC",
	Family:           FamilyBasic,
	Tables:           []*SymbolTable{BasicCore, ColorBasic, EcbExtended, EcbGraphics},
	Comments:         []CommentRule{{Introducer: "REM"}, {Introducer: "'"}},
	StringDelimiters: `"`,
	Numbers:          []NumericGrammar{HexAmpersand(), OctAmpersand(), Scientific()},
	LineNumbers:      true,
	Sigils:           "$%",
	Operators:        basicOperators,
	CaseFold:         true,
})

// ApplesoftDialect is Apple II Applesoft BASIC.
var ApplesoftDialect = build(Dialect{
	ID:               IDApplesoft,
	Name:             "Applesoft BASIC",
	Family:           FamilyBasic,
	Tables:           []*SymbolTable{BasicCore, Applesoft},
	Comments:         []CommentRule{{Introducer: "REM"}},
	StringDelimiters: `"`,
	Numbers:          []NumericGrammar{Scientific()},
	LineNumbers:      true,
	Sigils:           "$%#",
	Operators:        basicOperators,
	CaseFold:         true,
})

// Plain performs no classification.
var Plain = build(Dialect{
	ID:    IDPlain,
	Name:  "No highlighting",
	Plain: true,
})

var registry = []*Dialect{Asm6502, Asm65C02, Asm6809, Basic, ColorBasicDialect, Ecb, ApplesoftDialect, Plain}

// Resolve maps a mode identifier to its dialect.
func Resolve(modeID string) (*Dialect, error) {
	for _, d := range registry {
		if d.ID == modeID {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, modeID)
}

// ResolveOrPlain resolves modeID, falling back to Plain so an unsupported
// mode never stops a buffer from being displayed.
func ResolveOrPlain(modeID string) *Dialect {
	d, err := Resolve(modeID)
	if err != nil {
		log.Warn(log.CatDialect, "Falling back to plain dialect", "mode", modeID, "error", err)
		return Plain
	}
	return d
}

// IDs returns the supported mode identifiers in registry order.
func IDs() []string {
	ids := make([]string, len(registry))
	for i, d := range registry {
		ids[i] = d.ID
	}
	return ids
}

// All returns every registered dialect in registry order.
func All() []*Dialect {
	return append([]*Dialect(nil), registry...)
}
