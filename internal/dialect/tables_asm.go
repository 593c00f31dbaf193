package dialect

// 6502 family.
var (
	// Mos6502Opcodes is the documented NMOS 6502 instruction set.
	Mos6502Opcodes = NewSymbolTable("mos6502-opcodes", Keyword,
		"ADC", "AND", "ASL", "BCC", "BCS", "BEQ", "BIT", "BMI",
		"BNE", "BPL", "BRK", "BVC", "BVS", "CLC", "CLD", "CLI",
		"CLV", "CMP", "CPX", "CPY", "DEC", "DEX", "DEY", "EOR",
		"INC", "INX", "INY", "JMP", "JSR", "LDA", "LDX", "LDY",
		"LSR", "NOP", "ORA", "PHA", "PHP", "PLA", "PLP", "ROL",
		"ROR", "RTI", "RTS", "SBC", "SEC", "SED", "SEI", "STA",
		"STX", "STY", "TAX", "TAY", "TSX", "TXA", "TXS", "TYA",
	)

	// Wdc65C02Opcodes holds the CMOS additions, including the Rockwell and
	// WDC bit manipulation instructions.
	Wdc65C02Opcodes = NewSymbolTable("wdc65c02-opcodes", Keyword,
		concat(
			[]string{"BRA", "PHX", "PHY", "PLX", "PLY", "STZ", "TRB", "TSB", "WAI", "STP"},
			numbered(8, "BBR", "BBS", "RMB", "SMB"),
		)...,
	)

	// Asm6502Directives covers Merlin pseudo-ops and the dotted ca65 forms.
	Asm6502Directives = NewSymbolTable("asm6502-directives", Directive,
		// Merlin
		"ORG", "EQU", "DS", "DFB", "DB", "DW", "DDB", "DA", "ASC", "DCI",
		"HEX", "PUT", "USE", "OBJ", "LST", "DO", "ELSE", "FIN", "END",
		"MAC", "EOM", "DSK", "TYP", "XC", "SAV", "DUM", "DEND",
		"REV", "STR", "INV", "FLS", "CHK", "ERR", "LUP",
		// ca65 and friends
		".ORG", ".BYTE", ".BYT", ".WORD", ".DBYT", ".ADDR", ".RES",
		".ASCIIZ", ".INCLUDE", ".INCBIN", ".SEGMENT", ".PROC", ".ENDPROC",
		".SCOPE", ".ENDSCOPE", ".MACRO", ".MAC", ".ENDMACRO", ".ENDMAC",
		".IF", ".IFDEF", ".IFNDEF", ".ELSE", ".ELSEIF", ".ENDIF",
		".DEFINE", ".EXPORT", ".IMPORT", ".EXPORTZP", ".IMPORTZP",
		".GLOBAL", ".SETCPU", ".P02", ".PC02", ".REPEAT", ".ENDREP",
		".ALIGN", ".ASSERT", ".ERROR", ".WARNING", ".LOCAL",
		".EQ", ".EQU", ".OR", ".DB", ".DW", ".DS", ".AT",
	)

	// Mos6502Registers are the register names that appear in operands.
	Mos6502Registers = NewSymbolTable("mos6502-registers", Register,
		"A", "X", "Y", "S", "P",
	)
)

// 6809.
var (
	// Mc6809Opcodes is the Motorola 6809 instruction set, including the
	// accumulator-suffixed forms and long branches.
	Mc6809Opcodes = NewSymbolTable("mc6809-opcodes", Keyword,
		"ABX", "ADCA", "ADCB", "ADDA", "ADDB", "ADDD", "ANDA", "ANDB",
		"ANDCC", "ASL", "ASLA", "ASLB", "ASR", "ASRA", "ASRB", "BITA",
		"BITB", "CLR", "CLRA", "CLRB", "CMPA", "CMPB", "CMPD", "CMPS",
		"CMPU", "CMPX", "CMPY", "COM", "COMA", "COMB", "CWAI", "DAA",
		"DEC", "DECA", "DECB", "EORA", "EORB", "EXG", "INC", "INCA",
		"INCB", "JMP", "JSR", "LDA", "LDB", "LDD", "LDS", "LDU",
		"LDX", "LDY", "LEAS", "LEAU", "LEAX", "LEAY", "LSL", "LSLA",
		"LSLB", "LSR", "LSRA", "LSRB", "MUL", "NEG", "NEGA", "NEGB",
		"NOP", "ORA", "ORB", "ORCC", "PSHS", "PSHU", "PULS", "PULU",
		"ROL", "ROLA", "ROLB", "ROR", "RORA", "RORB", "RTI", "RTS",
		"SBCA", "SBCB", "SEX", "STA", "STB", "STD", "STS", "STU",
		"STX", "STY", "SUBA", "SUBB", "SUBD", "SWI", "SWI2", "SWI3",
		"SYNC", "TFR", "TST", "TSTA", "TSTB",
		// branches
		"BRA", "BRN", "BHI", "BLS", "BCC", "BHS", "BCS", "BLO",
		"BNE", "BEQ", "BVC", "BVS", "BPL", "BMI", "BGE", "BLT",
		"BGT", "BLE", "BSR",
		"LBRA", "LBRN", "LBHI", "LBLS", "LBCC", "LBHS", "LBCS", "LBLO",
		"LBNE", "LBEQ", "LBVC", "LBVS", "LBPL", "LBMI", "LBGE", "LBLT",
		"LBGT", "LBLE", "LBSR",
	)

	// Asm6809Directives covers EDTASM and lwasm pseudo-ops.
	Asm6809Directives = NewSymbolTable("asm6809-directives", Directive,
		"ORG", "EQU", "SET", "FCB", "FDB", "FQB", "FCC", "FCS", "FCN",
		"RMB", "RMD", "RMQ", "ZMB", "ZMD", "ZMQ", "FILL", "END", "SETDP",
		"INCLUDE", "INCLUDEBIN", "USE", "MACRO", "ENDM", "STRUCT", "ENDSTRUCT",
		"IF", "IFEQ", "IFNE", "IFGT", "IFLT", "IFGE", "IFLE", "IFDEF",
		"IFNDEF", "IFP1", "IFP2", "ELSE", "ENDC", "ENDIF", "COND", "PRAGMA",
		"NAM", "TTL", "OPT", "PAGE", "SPC", "EXPORT", "IMPORT", "SECTION",
		"ENDSECTION", "ALIGN", "ERROR", "WARNING",
	)

	// Mc6809Registers lists the register names legal in TFR/EXG, PSH/PUL and
	// indexed operands.
	Mc6809Registers = NewSymbolTable("mc6809-registers", Register,
		"A", "B", "D", "X", "Y", "U", "S", "PC", "PCR", "CC", "DP",
	)
)
