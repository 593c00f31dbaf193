package dialect

// Microsoft BASIC family. Names with a trailing sigil ("CHR$") are reserved
// as a unit; the scanner only matches them through the one-character sigil
// lookahead.
var (
	// BasicCore is shared by every BASIC dialect.
	BasicCore = NewSymbolTable("basic-core", Keyword,
		// statements
		"CLEAR", "CLOSE", "CONT", "DATA", "DEF", "DIM", "END", "FN", "FOR",
		"GO", "GOSUB", "GOTO", "IF", "INPUT", "LET", "LIST", "LOAD", "NEW",
		"NEXT", "ON", "POKE", "PRINT", "READ", "REM", "RESTORE", "RETURN",
		"RUN", "SAVE", "STEP", "STOP", "THEN", "TO", "WAIT", "CLS",
		// operators spelled as words
		"AND", "OR", "NOT",
		// functions
		"ABS", "ASC", "ATN", "CHR$", "COS", "EXP", "FRE", "INT", "LEFT$",
		"LEN", "LOG", "MID$", "PEEK", "POS", "RIGHT$", "RND", "SGN", "SIN",
		"SPC", "SQR", "STR$", "TAB", "TAN", "USR", "VAL",
	)

	// ColorBasic holds the Tandy Color Computer Color BASIC additions.
	ColorBasic = NewSymbolTable("colorbasic", Keyword,
		"AUDIO", "CLOAD", "CLOADM", "CSAVE", "CSAVEM", "EOF", "EXEC",
		"INKEY$", "JOYSTK", "LLIST", "MEM", "MOTOR", "OFF", "OPEN",
		"POINT", "RESET", "SET", "SKIPF", "SOUND",
	)

	// EcbExtended holds the Extended Color BASIC statements and functions.
	EcbExtended = NewSymbolTable("ecb-extended", Keyword,
		"DEL", "DLOAD", "EDIT", "ELSE", "HEX$", "INSTR", "LINE", "RENUM",
		"STRING$", "TIMER", "TROFF", "TRON", "USING", "VARPTR", "FIX",
	)

	// EcbGraphics holds the Extended Color BASIC graphics and sound
	// statements.
	EcbGraphics = NewSymbolTable("ecb-graphics", Keyword,
		"CIRCLE", "COLOR", "DRAW", "GET", "LINE", "PAINT", "PCLEAR",
		"PCLS", "PCOPY", "PLAY", "PMODE", "PPOINT", "PRESET", "PSET",
		"PUT", "SCREEN",
	)

	// Applesoft holds the Applesoft II additions.
	Applesoft = NewSymbolTable("applesoft", Keyword,
		"CALL", "COLOR", "DEL", "DRAW", "FLASH", "GET", "GR", "HCOLOR",
		"HGR", "HGR2", "HIMEM", "HLIN", "HOME", "HPLOT", "HTAB", "IN#",
		"INVERSE", "LOMEM", "NORMAL", "NOTRACE", "ONERR", "PDL", "PLOT",
		"POP", "PR#", "RECALL", "RESUME", "ROT", "SCALE", "SCRN", "SHLOAD",
		"SPEED", "STORE", "TEXT", "TRACE", "VLIN", "VTAB", "XDRAW",
	)
)
