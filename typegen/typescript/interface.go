package typescript

import (
	"strings"

	"github.com/bodnarbalazs/Cs2Ts/typegen/decl"
	"github.com/bodnarbalazs/Cs2Ts/typegen/util"
)

// emitInterface renders a structured declaration as an interface. Every
// base type, class or interface, goes into the extends clause.
func (g *Generator) emitInterface(d decl.Declaration, fc *FileContext) string {
	var sb strings.Builder
	if doc := RenderDoc(d.Doc, nil); doc != "" {
		sb.WriteString(doc)
		sb.WriteByte('\n')
	}

	sb.WriteString("export interface ")
	sb.WriteString(d.Name)
	if len(d.Bases) > 0 {
		bases := make([]string, len(d.Bases))
		for i, base := range d.Bases {
			bases[i] = g.mapper.Map(base, fc).TS
		}
		sb.WriteString(" extends ")
		sb.WriteString(strings.Join(bases, ", "))
	}

	var members []string
	for _, m := range d.Members {
		if m.Storage != decl.StorageInstance {
			continue
		}
		fc.enterMember(m.Name)
		members = append(members, g.interfaceMember(m, fc))
	}
	fc.enterMember("")

	if len(members) == 0 {
		sb.WriteString(" {}")
		return sb.String()
	}
	sb.WriteString(" {\n")
	for _, member := range members {
		sb.WriteString(member)
		sb.WriteByte('\n')
	}
	sb.WriteString("}")
	return sb.String()
}

func (g *Generator) interfaceMember(m decl.Member, fc *FileContext) string {
	var mapped Mapped
	if lit, ok := g.literalType(m.Derived, fc); ok {
		mapped = Mapped{TS: lit}
	} else {
		mapped = g.mapper.MapMember(m, fc)
	}

	line := propertyKey(util.ToMemberCase(m.Name)) + ": " + mapped.TS + ";"
	return withDoc(RenderDoc(m.Doc, mapped.Hints), line, "  ")
}

// literalType returns the singleton type of a derived read-only property
// whose value is a literal or an enum member reference
func (g *Generator) literalType(expr *decl.ConstExpr, fc *FileContext) (string, bool) {
	if expr == nil {
		return "", false
	}
	switch expr.Kind {
	case decl.ExprParen:
		return g.literalType(expr.Operand, fc)
	case decl.ExprEnumMember:
		if expr.Enum == "" || expr.Name == "" {
			return "", false
		}
		fc.Imports.Mark(expr.Enum, UsageType)
		return "typeof " + expr.Enum + "." + expr.Name, true
	}
	if !IsLiteralExpr(*expr) {
		return "", false
	}
	return TranslateConst(stripParens(*expr), nil, nil)
}

func stripParens(expr decl.ConstExpr) decl.ConstExpr {
	for expr.Kind == decl.ExprParen {
		expr = *expr.Operand
	}
	if expr.Kind == decl.ExprNegate {
		inner := stripParens(*expr.Operand)
		return decl.Negate(inner)
	}
	return expr
}
