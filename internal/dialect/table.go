package dialect

import "strings"

// SymbolTable is an immutable set of upper-case reserved words that all
// share one category. Tables are built once at package init and may be
// referenced by several dialects.
type SymbolTable struct {
	name     string
	category Category
	words    map[string]struct{}
}

// NewSymbolTable builds a table from the given words. Words are stored
// upper-cased.
func NewSymbolTable(name string, category Category, words ...string) *SymbolTable {
	t := &SymbolTable{
		name:     name,
		category: category,
		words:    make(map[string]struct{}, len(words)),
	}
	for _, w := range words {
		t.words[strings.ToUpper(w)] = struct{}{}
	}
	return t
}

// Name returns the table name, e.g. "mos6502-opcodes".
func (t *SymbolTable) Name() string {
	return t.name
}

// Category returns the category every word in the table maps to.
func (t *SymbolTable) Category() Category {
	return t.category
}

// Contains reports whether the already-normalized word is in the table.
func (t *SymbolTable) Contains(word string) bool {
	_, ok := t.words[word]
	return ok
}

// Len returns the number of words in the table.
func (t *SymbolTable) Len() int {
	return len(t.words)
}

// numbered expands a stem into stem0..stem(n-1), used for the Rockwell bit
// instructions (BBR0-BBR7 and friends).
func numbered(n int, stems ...string) []string {
	out := make([]string, 0, n*len(stems))
	for _, s := range stems {
		for i := 0; i < n; i++ {
			out = append(out, s+string(rune('0'+i)))
		}
	}
	return out
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
