package testutil

// Sample programs, one per dialect family member, keyed by mode id.
const (
	Applesoft = "10 HOME\n20 PRINT \"HELLO, WORLD\"\n30 GOTO 20\n"
	ECB       = "10 CLS\n20 PRINT \"HELLO\"\n30 PMODE 4,1\n40 GOTO 20\n"
	Basic     = "10 PRINT \"HELLO\"\n20 GOTO 10\n"
	Asm6502   = "        LDA #$00\n        STA $D020 ; border\nLOOP    JMP LOOP\n"
	Asm65C02  = "START   STZ $10\n        BRA START\n"
	Asm6809   = "START   LDX #$0400\n        LDA #$60\n        STA ,X+\n        RTS\n"
)

// Programs maps mode ids to their sample program.
var Programs = map[string]string{
	"applesoft": Applesoft,
	"ecb":       ECB,
	"basic":     Basic,
	"asm6502":   Asm6502,
	"asm65c02":  Asm65C02,
	"asm6809":   Asm6809,
}

// WithSamplePrograms adds every sample program under a file name whose
// extension needs no configuration to select its dialect on the Apple II
// platform (hello.bas, boot.s, rom.a65, rom.a09) plus the remaining samples
// as .txt files.
func (b *Builder) WithSamplePrograms() *Builder {
	return b.
		WithSource("hello.bas", Applesoft).
		WithSource("boot.s", Asm65C02).
		WithSource("rom.a65", Asm6502).
		WithSource("rom.a09", Asm6809).
		WithSource("coco.txt", ECB).
		WithSource("c64.txt", Basic)
}
