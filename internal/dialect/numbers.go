package dialect

import (
	"strings"
	"unicode/utf8"
)

// NumericGrammar recognises one literal form. Match returns the end offset of
// the literal starting at pos, or pos when the grammar does not apply.
type NumericGrammar struct {
	Name string
	// Radix marks prefix forms ($FF, %1010, &H1F). The scanner tries every
	// radix grammar before any other grammar.
	Radix bool
	Match func(line string, pos int) int
}

func isDecDigit(c byte) bool { return c >= '0' && c <= '9' }
func isBinDigit(c byte) bool { return c == '0' || c == '1' }
func isOctDigit(c byte) bool { return c >= '0' && c <= '7' }

func isHexDigit(c byte) bool {
	return isDecDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// scanDigits returns the end of the run of digits starting at pos.
func scanDigits(line string, pos int, digit func(byte) bool) int {
	for pos < len(line) && digit(line[pos]) {
		pos++
	}
	return pos
}

// Prefixed matches prefix followed by at least one digit. The prefix is
// compared case-insensitively so "&h1f" and "0X1F" both match.
func Prefixed(name, prefix string, digit func(byte) bool) NumericGrammar {
	return NumericGrammar{
		Name:  name,
		Radix: true,
		Match: func(line string, pos int) int {
			if len(line)-pos <= len(prefix) || !strings.EqualFold(line[pos:pos+len(prefix)], prefix) {
				return pos
			}
			end := scanDigits(line, pos+len(prefix), digit)
			if end == pos+len(prefix) {
				return pos
			}
			return end
		},
	}
}

// HexDollar is the Motorola/MOS "$FF" form.
func HexDollar() NumericGrammar { return Prefixed("hex-dollar", "$", isHexDigit) }

// HexC is the C-style "0x1F" form.
func HexC() NumericGrammar { return Prefixed("hex-0x", "0x", isHexDigit) }

// BinPercent is the "%1010" form.
func BinPercent() NumericGrammar { return Prefixed("bin-percent", "%", isBinDigit) }

// OctAt is the Motorola "@17" form.
func OctAt() NumericGrammar { return Prefixed("oct-at", "@", isOctDigit) }

// HexAmpersand is the Extended Color BASIC "&H1F" form.
func HexAmpersand() NumericGrammar { return Prefixed("hex-amp", "&H", isHexDigit) }

// OctAmpersand is the Extended Color BASIC "&O17" form.
func OctAmpersand() NumericGrammar { return Prefixed("oct-amp", "&O", isOctDigit) }

// Decimal matches a plain run of decimal digits.
func Decimal() NumericGrammar {
	return NumericGrammar{
		Name: "decimal",
		Match: func(line string, pos int) int {
			return scanDigits(line, pos, isDecDigit)
		},
	}
}

// Scientific matches BASIC numeric constants: 12, 1.5, .5, 3E10, 1.2E-3.
// An exponent marker that is not followed by digits is left unconsumed.
func Scientific() NumericGrammar {
	return NumericGrammar{
		Name: "scientific",
		Match: func(line string, pos int) int {
			end := scanDigits(line, pos, isDecDigit)
			intDigits := end - pos
			fracDigits := 0
			if end < len(line) && line[end] == '.' {
				fracEnd := scanDigits(line, end+1, isDecDigit)
				fracDigits = fracEnd - end - 1
				if intDigits > 0 || fracDigits > 0 {
					end = fracEnd
				}
			}
			if intDigits == 0 && fracDigits == 0 {
				return pos
			}
			if end < len(line) && (line[end] == 'E' || line[end] == 'e') {
				exp := end + 1
				if exp < len(line) && (line[exp] == '+' || line[exp] == '-') {
					exp++
				}
				if expEnd := scanDigits(line, exp, isDecDigit); expEnd > exp {
					end = expEnd
				}
			}
			return end
		},
	}
}

// Suffixed matches the assembler suffix forms: 0FFH, 1010B, 17O, 17Q. The
// literal must start with a decimal digit so that "FFH" stays a word.
func Suffixed() NumericGrammar {
	return NumericGrammar{
		Name: "suffixed",
		Match: func(line string, pos int) int {
			if pos >= len(line) || !isDecDigit(line[pos]) {
				return pos
			}
			end := scanDigits(line, pos, isHexDigit)
			digits := line[pos:end]
			if end < len(line) {
				switch line[end] {
				case 'H', 'h':
					return end + 1
				case 'O', 'o', 'Q', 'q':
					if allDigits(digits, isOctDigit) {
						return end + 1
					}
					return pos
				}
			}
			// a trailing B is already eaten as a hex digit
			last := len(digits) - 1
			if last > 0 && (digits[last] == 'B' || digits[last] == 'b') && allDigits(digits[:last], isBinDigit) {
				return end
			}
			return pos
		},
	}
}

// CharLiteral matches the Motorola single-quote character constant ('A),
// which has no closing quote.
func CharLiteral(quote byte) NumericGrammar {
	return NumericGrammar{
		Name: "char",
		Match: func(line string, pos int) int {
			if pos+1 >= len(line) || line[pos] != quote || line[pos+1] == ' ' || line[pos+1] == '\t' {
				return pos
			}
			_, size := utf8.DecodeRuneInString(line[pos+1:])
			return pos + 1 + size
		},
	}
}

// QuotedChar matches a character constant that shares its quote with
// strings: 'A' closed, or 'A bare when the character is not followed by
// another letter or digit. 'AB and '' are left for the string production.
func QuotedChar(quote byte) NumericGrammar {
	return NumericGrammar{
		Name: "quoted-char",
		Match: func(line string, pos int) int {
			if pos+1 >= len(line) || line[pos] != quote || line[pos+1] == quote {
				return pos
			}
			_, size := utf8.DecodeRuneInString(line[pos+1:])
			end := pos + 1 + size
			switch {
			case end < len(line) && line[end] == quote:
				return end + 1
			case isSpace(line[pos+1]):
				return pos
			case end == len(line) || !isAlnum(line[end]):
				return end
			}
			return pos
		},
	}
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' }

func isAlnum(c byte) bool { return isDecDigit(c) || isLetter(c) }

func allDigits(s string, digit func(byte) bool) bool {
	for i := 0; i < len(s); i++ {
		if !digit(s[i]) {
			return false
		}
	}
	return true
}
