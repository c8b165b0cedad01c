// Package naming turns arbitrary JSON keys into identifiers for generated code.
package naming

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// FieldCase selects the convention used for field identifiers.
type FieldCase string

const (
	SnakeCase  FieldCase = "snake"
	CamelCase  FieldCase = "camel"
	PascalCase FieldCase = "pascal"
)

// Valid reports whether c is a known field case. The empty value means SnakeCase.
func (c FieldCase) Valid() bool {
	switch c {
	case "", SnakeCase, CamelCase, PascalCase:
		return true
	}
	return false
}

// keywords is the reserved word set checked for every field name.
var keywords = map[string]struct{}{
	"as": {}, "async": {}, "await": {}, "break": {}, "const": {}, "continue": {},
	"crate": {}, "dyn": {}, "else": {}, "enum": {}, "extern": {}, "false": {},
	"fn": {}, "for": {}, "if": {}, "impl": {}, "in": {}, "let": {}, "loop": {},
	"match": {}, "mod": {}, "move": {}, "mut": {}, "pub": {}, "ref": {},
	"return": {}, "self": {}, "Self": {}, "static": {}, "struct": {}, "super": {},
	"trait": {}, "true": {}, "type": {}, "unsafe": {}, "use": {}, "where": {},
	"while": {},
}

// IsKeyword reports whether word is in the built-in reserved word set.
func IsKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}

// Only ASCII letters and digits count as alphanumeric.
func isAlnum(c rune) bool {
	return isUpper(c) || isLower(c) || isDigit(c)
}

func isUpper(c rune) bool { return c >= 'A' && c <= 'Z' }
func isLower(c rune) bool { return c >= 'a' && c <= 'z' }
func isDigit(c rune) bool { return c >= '0' && c <= '9' }

// SanitizeStructName converts name to a PascalCase type identifier.
// Non-alphanumeric characters are dropped and capitalize the next character;
// an empty result or one starting with a digit is prefixed with '_'.
func SanitizeStructName(name string) string {
	var b strings.Builder
	capitalizeNext := true

	for _, c := range name {
		if !isAlnum(c) {
			capitalizeNext = true
			continue
		}
		if capitalizeNext && isLower(c) {
			c -= 'a' - 'A'
		}
		capitalizeNext = false
		b.WriteRune(c)
	}

	return guardIdentifier(b.String())
}

// SanitizeFieldName converts name to a snake_case field identifier and
// appends '_' when the result is a reserved word. An empty result or one
// starting with a digit is prefixed with '_'.
func SanitizeFieldName(name string) string {
	return escapeKeyword(guardIdentifier(toSnake(name)), nil)
}

// toSnake lower-cases alphanumerics, maps everything else to '_' and splits
// camelCase boundaries. A run of capitals is kept together.
func toSnake(name string) string {
	var b strings.Builder
	var prev rune // last rune written, 0 at start

	for _, c := range name {
		switch {
		case isUpper(c):
			if prev != 0 && prev != '_' && !isUpper(prev) {
				b.WriteByte('_')
			}
			b.WriteRune(c + ('a' - 'A'))
			prev = c
		case isAlnum(c):
			b.WriteRune(c)
			prev = c
		default:
			b.WriteByte('_')
			prev = '_'
		}
	}

	return b.String()
}

func guardIdentifier(s string) string {
	if s == "" || isDigit(rune(s[0])) {
		return "_" + s
	}
	return s
}

// identifierOnly drops whatever strcase leaves that cannot appear in an identifier.
func identifierOnly(s string) string {
	return strings.Map(func(c rune) rune {
		if isAlnum(c) || c == '_' {
			return c
		}
		return -1
	}, s)
}

func escapeKeyword(s string, extra map[string]struct{}) string {
	if IsKeyword(s) {
		return s + "_"
	}
	if _, ok := extra[s]; ok {
		return s + "_"
	}
	return s
}

// Namer applies a field case and an extended reserved word set.
// The zero value behaves like SanitizeFieldName.
type Namer struct {
	fieldCase FieldCase
	reserved  map[string]struct{}
}

// NewNamer creates a Namer. reserved extends the built-in keyword set.
func NewNamer(fieldCase FieldCase, reserved []string) *Namer {
	n := &Namer{fieldCase: fieldCase, reserved: make(map[string]struct{}, len(reserved))}
	for _, word := range reserved {
		n.reserved[word] = struct{}{}
	}
	return n
}

// StructName converts a JSON key into a type identifier.
func (n *Namer) StructName(key string) string {
	return SanitizeStructName(key)
}

// FieldName converts a JSON key into a field identifier.
func (n *Namer) FieldName(key string) string {
	if n == nil {
		return SanitizeFieldName(key)
	}

	var name string
	switch n.fieldCase {
	case CamelCase:
		name = guardIdentifier(identifierOnly(strcase.ToLowerCamel(key)))
	case PascalCase:
		name = guardIdentifier(identifierOnly(strcase.ToCamel(key)))
	default:
		name = guardIdentifier(toSnake(key))
	}

	return escapeKeyword(name, n.reserved)
}
