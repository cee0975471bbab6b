package typescript

import (
	"math"
	"strconv"
	"strings"

	"github.com/bodnarbalazs/Cs2Ts/typegen/decl"
)

// enumValue is the resolved constant value of one enum member
type enumValue struct {
	num     int64
	numeric bool
	text    string // string literal value when !numeric

	// unsigned marks a value above math.MaxInt64 (ulong enums); num holds
	// its uint64 bits
	unsigned bool
}

func (v enumValue) number() string {
	if v.unsigned {
		return strconv.FormatUint(uint64(v.num), 10)
	}
	return strconv.FormatInt(v.num, 10)
}

// forward renders the value for the name -> value object
func (v enumValue) forward() string {
	if v.numeric {
		return v.number()
	}
	return singleQuote(v.text)
}

// reverseKey renders the value as a key of the value -> name object.
// Negative numbers need a computed key.
func (v enumValue) reverseKey() string {
	switch {
	case !v.numeric:
		return singleQuote(v.text)
	case !v.unsigned && v.num < 0:
		return "[" + v.number() + "]"
	default:
		return v.number()
	}
}

// succ returns the value an initializer-less member following v takes
func (v enumValue) succ() (enumValue, bool) {
	switch {
	case !v.numeric:
		return enumValue{}, false
	case v.unsigned:
		if uint64(v.num) == math.MaxUint64 {
			return enumValue{}, false
		}
		return enumValue{num: v.num + 1, numeric: true, unsigned: true}, true
	case v.num == math.MaxInt64:
		return enumValue{num: math.MinInt64, numeric: true, unsigned: true}, true
	}
	return enumValue{num: v.num + 1, numeric: true}, true
}

// parseEnumNumber parses an integer token, falling back to uint64 for
// ulong values above math.MaxInt64
func parseEnumNumber(token string) (enumValue, bool) {
	token = numberToken(token)
	if n, err := strconv.ParseInt(token, 0, 64); err == nil {
		return enumValue{num: n, numeric: true}, true
	}
	u, err := strconv.ParseUint(token, 0, 64)
	if err != nil {
		return enumValue{}, false
	}
	if u <= math.MaxInt64 {
		return enumValue{num: int64(u), numeric: true}, true
	}
	return enumValue{num: int64(u), numeric: true, unsigned: true}, true
}

func reverseMapName(enum string) string {
	return enum + "Names"
}

// emitEnum renders a frozen name -> value object, a union type over its
// values and a frozen value -> name object asserted to be exhaustive.
//
// Members without an initializer continue numbering from the previous
// numeric member, starting at 0.
func (g *Generator) emitEnum(d decl.Declaration, fc *FileContext) string {
	type entry struct {
		member decl.Member
		value  enumValue
	}

	var entries []entry
	values := make(map[string]enumValue)
	next, sequential := enumValue{numeric: true}, true

	for _, m := range d.Members {
		fc.enterMember(m.Name)

		var v enumValue
		if m.Init == nil {
			if !sequential {
				fc.warn("member has no initializer and does not follow a numeric member, skipped")
				continue
			}
			v = next
		} else {
			var ok bool
			if v, ok = evalEnumValue(*m.Init, d.Name, values); !ok {
				fc.warn("enum value is not a constant expression or is outside the 64-bit range, member skipped")
				sequential = false
				continue
			}
		}

		next, sequential = v.succ()
		values[m.Name] = v
		entries = append(entries, entry{member: m, value: v})
	}
	fc.enterMember("")

	var sb strings.Builder
	if doc := RenderDoc(d.Doc, nil); doc != "" {
		sb.WriteString(doc)
		sb.WriteByte('\n')
	}

	// name -> value
	sb.WriteString("export const " + d.Name + " = Object.freeze({")
	if len(entries) > 0 {
		sb.WriteByte('\n')
		for _, e := range entries {
			line := propertyKey(e.member.Name) + ": " + e.value.forward() + ","
			sb.WriteString(withDoc(RenderDoc(e.member.Doc, nil), line, "  "))
			sb.WriteByte('\n')
		}
	}
	sb.WriteString("} as const);\n\n")

	sb.WriteString("export type " + d.Name + " = (typeof " + d.Name + ")[keyof typeof " + d.Name + "];\n\n")

	// value -> name
	seen := make(map[string]string)
	sb.WriteString("export const " + reverseMapName(d.Name) + " = Object.freeze({")
	if len(entries) > 0 {
		sb.WriteByte('\n')
		for _, e := range entries {
			key := e.value.reverseKey()
			if first, dup := seen[key]; dup {
				fc.enterMember(e.member.Name)
				fc.warn("value %s duplicates %s, reverse lookup keeps %s", e.value.forward(), first, first)
				fc.enterMember("")
				continue
			}
			seen[key] = e.member.Name
			sb.WriteString("  " + key + ": " + singleQuote(e.member.Name) + ",\n")
		}
	}
	sb.WriteString("} as Record<" + d.Name + ", keyof typeof " + d.Name + ">);")
	return sb.String()
}

// evalEnumValue resolves an enum member initializer: integer literals
// (decimal, hex, binary), string literals, unary negation, parentheses and
// references to earlier members of the same enum.
func evalEnumValue(expr decl.ConstExpr, enum string, earlier map[string]enumValue) (enumValue, bool) {
	switch expr.Kind {
	case decl.ExprLiteral:
		switch expr.Literal {
		case decl.LitNumber:
			return parseEnumNumber(expr.Text)
		case decl.LitString:
			token := stringToken(expr.Text)
			s, err := strconv.Unquote(token)
			if err != nil {
				s = strings.Trim(token, `"'`)
			}
			return enumValue{text: s}, true
		}
		return enumValue{}, false

	case decl.ExprParen:
		return evalEnumValue(*expr.Operand, enum, earlier)

	case decl.ExprNegate:
		v, ok := evalEnumValue(*expr.Operand, enum, earlier)
		if !ok || !v.numeric || v.unsigned || v.num == math.MinInt64 {
			return enumValue{}, false
		}
		return enumValue{num: -v.num, numeric: true}, true

	case decl.ExprIdentifier:
		if v, ok := earlier[expr.Name]; ok {
			return v, true
		}
		if expr.Resolved != nil {
			return evalEnumValue(*expr.Resolved, enum, earlier)
		}
		return enumValue{}, false

	case decl.ExprEnumMember:
		if expr.Enum != enum {
			return enumValue{}, false
		}
		v, ok := earlier[expr.Name]
		return v, ok
	}
	return enumValue{}, false
}
