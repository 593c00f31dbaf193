package dialect

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_FirstTableWins(t *testing.T) {
	mnemonics := NewSymbolTable("m", Keyword, "ORA", "X")
	regs := NewSymbolTable("r", Register, "X", "Y")

	keywordFirst := build(Dialect{Tables: []*SymbolTable{mnemonics, regs}, CaseFold: true})
	registerFirst := build(Dialect{Tables: []*SymbolTable{regs, mnemonics}, CaseFold: true})

	cat, ok := keywordFirst.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, Keyword, cat)

	cat, ok = registerFirst.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, Register, cat)

	cat, ok = registerFirst.Lookup("Y")
	require.True(t, ok)
	assert.Equal(t, Register, cat)
}

func TestLookup_NotReserved(t *testing.T) {
	cat, ok := Asm6502.Lookup("loop")
	assert.False(t, ok)
	assert.Equal(t, None, cat)
}

func TestLookup_CaseFold(t *testing.T) {
	for _, word := range []string{"lda", "LDA", "Lda", "lDa"} {
		cat, ok := Asm6502.Lookup(word)
		require.True(t, ok, word)
		assert.Equal(t, Keyword, cat, word)
	}

	exact := build(Dialect{Tables: []*SymbolTable{Mos6502Opcodes}})
	_, ok := exact.Lookup("lda")
	assert.False(t, ok, "a dialect without case folding only matches upper-case words")
}

func TestLookup_DialectTables(t *testing.T) {
	tests := []struct {
		dialect *Dialect
		word    string
		want    Category
		ok      bool
	}{
		{Asm6502, "BRA", None, false},
		{Asm65C02, "BRA", Keyword, true},
		{Asm65C02, "smb7", Keyword, true},
		{Asm65C02, "SMB8", None, false},
		{Asm6502, ".byte", Directive, true},
		{Asm6502, "X", Register, true},
		{Asm6809, "LBNE", Keyword, true},
		{Asm6809, "FCB", Directive, true},
		{Asm6809, "PCR", Register, true},
		{Asm6809, "LDA", Keyword, true},
		{Basic, "PRINT", Keyword, true},
		{Basic, "LEFT$", Keyword, true},
		{Basic, "PMODE", None, false},
		{Basic, "SOUND", None, false},
		{ColorBasicDialect, "SOUND", Keyword, true},
		{ColorBasicDialect, "PMODE", None, false},
		{Ecb, "PMODE", Keyword, true},
		{Ecb, "HEX$", Keyword, true},
		{ApplesoftDialect, "HGR2", Keyword, true},
		{ApplesoftDialect, "PR#", Keyword, true},
		{ApplesoftDialect, "PMODE", None, false},
	}

	for _, tt := range tests {
		t.Run(tt.dialect.ID+"/"+tt.word, func(t *testing.T) {
			cat, ok := tt.dialect.Lookup(tt.word)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, cat)
		})
	}
}

func TestSharedTables(t *testing.T) {
	assert.Same(t, Asm6502.Tables[0], Asm65C02.Tables[0], "65C02 extends the 6502 opcode table")
	for _, d := range []*Dialect{Basic, ColorBasicDialect, Ecb, ApplesoftDialect} {
		assert.Same(t, BasicCore, d.Tables[0], d.ID)
	}
	assert.Equal(t, 56, Mos6502Opcodes.Len())
	assert.Equal(t, 42, Wdc65C02Opcodes.Len())
}

func TestMatchComment(t *testing.T) {
	assert.True(t, Asm6502.MatchComment("; hi", 0, true))
	assert.True(t, Asm6502.MatchComment("LDA ; hi", 4, false))
	assert.True(t, Asm6502.MatchComment("* = $C000", 0, true))
	assert.False(t, Asm6502.MatchComment("LDA *", 4, false), "star is multiplication after the line start")

	assert.True(t, Basic.MatchComment("rem lower case", 0, false))
	assert.False(t, Basic.MatchComment("'note", 0, false))
	assert.True(t, Ecb.MatchComment("'note", 0, false))
	assert.False(t, Basic.MatchComment("RE", 0, false))
}

func TestMatchOperator_Longest(t *testing.T) {
	assert.Equal(t, 2, Basic.MatchOperator("<>1", 0))
	assert.Equal(t, 2, Basic.MatchOperator("<=1", 0))
	assert.Equal(t, 1, Basic.MatchOperator("<1", 0))
	assert.Equal(t, 2, Asm6502.MatchOperator("<<2", 0))
	assert.Equal(t, 0, Basic.MatchOperator("@", 0))
}

func TestResolve(t *testing.T) {
	for _, id := range IDs() {
		d, err := Resolve(id)
		require.NoError(t, err, id)
		assert.Equal(t, id, d.ID)
	}

	_, err := Resolve("z80")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownDialect))
	assert.Contains(t, err.Error(), `"z80"`)

	_, err = Resolve("")
	assert.ErrorIs(t, err, ErrUnknownDialect)
}

func TestResolveOrPlain(t *testing.T) {
	assert.Same(t, Ecb, ResolveOrPlain(IDEcb))
	assert.Same(t, Plain, ResolveOrPlain("pascal"))
}

func TestIDs_StableOrder(t *testing.T) {
	assert.Equal(t, []string{
		"asm6502", "asm65c02", "asm6809", "basic", "colorbasic", "ecb", "applesoft", "plain",
	}, IDs())
	assert.Len(t, All(), len(IDs()))
}

func TestPlatforms(t *testing.T) {
	for _, p := range Platforms() {
		_, err := Resolve(p.Assembly)
		require.NoError(t, err, p.ID)
		_, err = Resolve(p.Basic)
		require.NoError(t, err, p.ID)
	}

	coco, err := PlatformByID("coco")
	require.NoError(t, err)
	assert.Equal(t, IDAsm6809, coco.Assembly)
	assert.Equal(t, IDEcb, coco.Basic)

	_, err = PlatformByID("amiga")
	assert.Error(t, err)
}

func TestCategory_String(t *testing.T) {
	names := make([]string, 0, len(Categories()))
	for _, c := range Categories() {
		names = append(names, c.String())
	}
	assert.Equal(t, []string{
		"none", "keyword", "directive", "label", "number",
		"string", "comment", "operator", "identifier", "register",
	}, names)
	assert.Equal(t, "unknown", Category(99).String())

	text, err := Register.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "register", string(text))
}
