// Package dialect holds the reserved-word tables and the per-dialect
// descriptors consumed by the scanner.
package dialect

// Category tags how a span of source text should be rendered.
type Category int

const (
	None Category = iota // whitespace and unclassified text
	Keyword
	Directive
	Label
	Number
	String
	Comment
	Operator
	Identifier
	Register
)

// String returns the string representation of the category.
func (c Category) String() string {
	switch c {
	case None:
		return "none"
	case Keyword:
		return "keyword"
	case Directive:
		return "directive"
	case Label:
		return "label"
	case Number:
		return "number"
	case String:
		return "string"
	case Comment:
		return "comment"
	case Operator:
		return "operator"
	case Identifier:
		return "identifier"
	case Register:
		return "register"
	default:
		return "unknown"
	}
}

// Categories lists every category in declaration order.
func Categories() []Category {
	return []Category{None, Keyword, Directive, Label, Number, String, Comment, Operator, Identifier, Register}
}

// MarshalText implements encoding.TextMarshaler so categories serialize by
// name in json and yaml output.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
