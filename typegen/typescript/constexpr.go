package typescript

import (
	"strconv"
	"strings"

	"github.com/bodnarbalazs/Cs2Ts/typegen/decl"
	"github.com/bodnarbalazs/Cs2Ts/typegen/util"
)

// ConstScope holds the compile-time constants visible to a translation:
// earlier fields of the same declaration, by declared name, as translated
// literal text.
type ConstScope struct {
	known map[string]string
}

// NewConstScope creates an empty scope
func NewConstScope() *ConstScope {
	return &ConstScope{known: make(map[string]string)}
}

// Define makes a translated literal visible to later identifier references
func (s *ConstScope) Define(name, literal string) {
	s.known[name] = literal
}

func (s *ConstScope) lookup(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.known[name]
	return v, ok
}

// TranslateConst translates expr to TypeScript expression text. The
// boolean is false when any part of expr is outside the supported grammar;
// in that case nothing is recorded on fc. On success every referenced enum
// is marked as a value import.
func TranslateConst(expr decl.ConstExpr, scope *ConstScope, fc *FileContext) (string, bool) {
	t := &translation{scope: scope}
	text, ok := t.translate(expr)
	if !ok {
		return "", false
	}
	if fc != nil {
		for _, enum := range t.enums {
			fc.Imports.Mark(enum, UsageValue)
		}
	}
	return text, true
}

// IsLiteralExpr reports whether expr is a literal token, possibly negated
// or parenthesized
func IsLiteralExpr(expr decl.ConstExpr) bool {
	switch expr.Kind {
	case decl.ExprLiteral:
		return true
	case decl.ExprNegate, decl.ExprParen:
		return IsLiteralExpr(*expr.Operand)
	}
	return false
}

type translation struct {
	scope *ConstScope
	enums []string
}

func (t *translation) translate(expr decl.ConstExpr) (string, bool) {
	switch expr.Kind {
	case decl.ExprLiteral:
		return literalText(expr), true

	case decl.ExprEnumMember:
		if expr.Enum == "" || expr.Name == "" {
			return "", false
		}
		t.enums = append(t.enums, expr.Enum)
		return expr.Enum + "." + expr.Name, true

	case decl.ExprParen:
		inner, ok := t.translate(*expr.Operand)
		if !ok {
			return "", false
		}
		return "(" + inner + ")", true

	case decl.ExprNegate:
		inner, ok := t.translate(*expr.Operand)
		if !ok {
			return "", false
		}
		return "-" + inner, true

	case decl.ExprSpread:
		inner, ok := t.translate(*expr.Operand)
		if !ok {
			return "", false
		}
		return "..." + inner, true

	case decl.ExprArray, decl.ExprCollection:
		elems := make([]string, len(expr.Elems))
		for i, e := range expr.Elems {
			text, ok := t.translate(e)
			if !ok {
				return "", false
			}
			elems[i] = text
		}
		return "[" + strings.Join(elems, ", ") + "]", true

	case decl.ExprObject:
		return t.object(expr.Props)

	case decl.ExprIdentifier:
		if expr.Resolved != nil && IsLiteralExpr(*expr.Resolved) {
			return t.translate(requote(*expr.Resolved))
		}
		return t.scope.lookup(expr.Name)

	default:
		return "", false
	}
}

// object renders a multi-line object literal; nested multi-line values are
// re-indented one level
func (t *translation) object(props []decl.Property) (string, bool) {
	if len(props) == 0 {
		return "{}", true
	}
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, p := range props {
		value, ok := t.translate(p.Value)
		if !ok {
			return "", false
		}
		sb.WriteString("  ")
		sb.WriteString(propertyKey(util.ToMemberCase(p.Name)))
		sb.WriteString(": ")
		sb.WriteString(indentLines(value, "  "))
		sb.WriteString(",\n")
	}
	sb.WriteString("}")
	return sb.String(), true
}

// requote makes sure a resolved string constant carries quotes
func requote(expr decl.ConstExpr) decl.ConstExpr {
	if expr.Kind == decl.ExprLiteral && expr.Literal == decl.LitString && !isQuoted(expr.Text) {
		return decl.StringLit(expr.Text)
	}
	return expr
}

func isQuoted(token string) bool {
	token = strings.TrimPrefix(token, "@")
	return len(token) >= 2 &&
		(token[0] == '"' || token[0] == '\'') &&
		token[len(token)-1] == token[0]
}

// literalText returns a literal token in TypeScript form
func literalText(expr decl.ConstExpr) string {
	switch expr.Literal {
	case decl.LitNumber:
		return numberToken(expr.Text)
	case decl.LitString:
		return stringToken(expr.Text)
	default:
		return expr.Text
	}
}

// numberToken strips numeric type suffixes (10L, 1.5f, 2m, 3UL) from
// decimal tokens; hex and binary tokens are left alone
func numberToken(token string) string {
	lower := strings.ToLower(token)
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0b") {
		return strings.TrimRight(token, "uUlL")
	}
	return strings.TrimRight(token, "uUlLfFdDmM")
}

// stringToken converts verbatim strings (@"a""b") to regular literals;
// other tokens are returned verbatim
func stringToken(token string) string {
	if strings.HasPrefix(token, "@\"") && strings.HasSuffix(token, "\"") && len(token) >= 3 {
		inner := strings.ReplaceAll(token[2:len(token)-1], `""`, `"`)
		return strconv.Quote(inner)
	}
	return token
}
