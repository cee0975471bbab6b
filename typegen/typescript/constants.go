package typescript

import (
	"strings"

	"github.com/bodnarbalazs/Cs2Ts/typegen/decl"
	"github.com/bodnarbalazs/Cs2Ts/typegen/util"
)

// emitConstants renders one export per const or static read-only field
// with a translatable initializer. Fields outside the constant grammar are
// left out; the rest of the holder is still emitted.
func (g *Generator) emitConstants(d decl.Declaration, fc *FileContext) (string, []Export) {
	scope := NewConstScope()
	var blocks []string
	var exports []Export

	for _, m := range d.Members {
		if !m.Storage.IsCompileTimeConstant() || m.Init == nil {
			continue
		}
		fc.enterMember(m.Name)

		expr, ok := TranslateConst(*m.Init, scope, fc)
		if !ok {
			fc.warn("initializer is not a constant expression, field omitted")
			continue
		}
		if IsLiteralExpr(*m.Init) {
			scope.Define(m.Name, expr)
		}

		name := util.ToMemberCase(m.Name)
		if reservedWords[name] {
			fc.warn("%s is a reserved word, exported as %s_", name, name)
			name += "_"
		}
		mapped := g.mapper.MapMember(m, fc)
		line := "export const " + name + ": " + mapped.TS + " = " + expr + ";"
		blocks = append(blocks, withDoc(RenderDoc(m.Doc, mapped.Hints), line, ""))
		exports = append(exports, Export{Name: name, Value: true})
	}
	fc.enterMember("")

	if len(blocks) == 0 {
		return "", nil
	}

	// The holder's own doc is not rendered: a detached block would attach
	// to the first constant.
	return strings.Join(blocks, "\n\n"), exports
}
