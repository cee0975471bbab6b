package typescript

import (
	"strconv"
	"strings"
	"unicode"
)

// isIdentifier reports whether s can be used as a bare TypeScript
// property name
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, ch := range s {
		switch {
		case ch == '_' || ch == '$' || unicode.IsLetter(ch):
		case i > 0 && unicode.IsDigit(ch):
		default:
			return false
		}
	}
	return true
}

// reservedWords cannot name a binding such as an exported const
var reservedWords = map[string]bool{
	"await": true, "break": true, "case": true, "catch": true, "class": true,
	"const": true, "continue": true, "debugger": true, "default": true,
	"delete": true, "do": true, "else": true, "enum": true, "export": true,
	"extends": true, "false": true, "finally": true, "for": true,
	"function": true, "if": true, "implements": true, "import": true,
	"in": true, "instanceof": true, "interface": true, "let": true,
	"new": true, "null": true, "package": true, "private": true,
	"protected": true, "public": true, "return": true, "static": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true,
	"with": true, "yield": true,
}

// propertyKey renders name as an object or interface key, quoting it
// when it is not identifier-safe
func propertyKey(name string) string {
	if isIdentifier(name) {
		return name
	}
	return singleQuote(name)
}

// singleQuote renders s as a single-quoted string literal
func singleQuote(s string) string {
	var sb strings.Builder
	sb.WriteByte('\'')
	for _, ch := range s {
		switch ch {
		case '\'':
			sb.WriteString(`\'`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(ch)
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}

// indentLines prefixes every non-empty line after the first with prefix
func indentLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

// indentBlock prefixes every non-empty line with prefix
func indentBlock(s, prefix string) string {
	if s == "" {
		return s
	}
	return prefix + indentLines(s, prefix)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
