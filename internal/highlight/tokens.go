package highlight

import "github.com/zjrosen/retrolex/internal/dialect"

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens. These are the keys users can override in their config.
const (
	// Syntax categories
	TokenText       ColorToken = "syntax.text"
	TokenKeyword    ColorToken = "syntax.keyword"
	TokenDirective  ColorToken = "syntax.directive"
	TokenLabel      ColorToken = "syntax.label"
	TokenNumber     ColorToken = "syntax.number"
	TokenString     ColorToken = "syntax.string"
	TokenComment    ColorToken = "syntax.comment"
	TokenOperator   ColorToken = "syntax.operator"
	TokenIdentifier ColorToken = "syntax.identifier"
	TokenRegister   ColorToken = "syntax.register"

	// Viewer chrome
	TokenLineNumber   ColorToken = "chrome.line_number"
	TokenCursorLine   ColorToken = "chrome.cursor_line"
	TokenStatusText   ColorToken = "chrome.status.text"
	TokenStatusBg     ColorToken = "chrome.status.bg"
	TokenStatusAccent ColorToken = "chrome.status.accent"
)

// AllTokens returns every color token.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenText, TokenKeyword, TokenDirective, TokenLabel, TokenNumber,
		TokenString, TokenComment, TokenOperator, TokenIdentifier, TokenRegister,
		TokenLineNumber, TokenCursorLine, TokenStatusText, TokenStatusBg, TokenStatusAccent,
	}
}

// TokenFor returns the color token a category is drawn with.
func TokenFor(cat dialect.Category) ColorToken {
	switch cat {
	case dialect.Keyword:
		return TokenKeyword
	case dialect.Directive:
		return TokenDirective
	case dialect.Label:
		return TokenLabel
	case dialect.Number:
		return TokenNumber
	case dialect.String:
		return TokenString
	case dialect.Comment:
		return TokenComment
	case dialect.Operator:
		return TokenOperator
	case dialect.Identifier:
		return TokenIdentifier
	case dialect.Register:
		return TokenRegister
	default:
		return TokenText
	}
}
