package typescript

import (
	"strings"

	"github.com/bodnarbalazs/Cs2Ts/typegen/decl"
)

// Export is one symbol a generated file exports
type Export struct {
	Name  string
	Value bool // false for type-only exports (interfaces)
}

// FileResult is the generated TypeScript for one source file
type FileResult struct {
	SourcePath  string
	OutputPath  string // without extension
	Content     string // empty when nothing in the file was convertible
	Imports     []ImportLine
	Exports     []Export
	Diagnostics []Diagnostic
}

// Generator renders declarations to TypeScript
type Generator struct {
	mapper TypeMapper
}

// NewGenerator creates a generator
func NewGenerator(opts Options) *Generator {
	return &Generator{mapper: TypeMapper{RecordStyle: opts.RecordStyle}}
}

// GenerateFile renders every declaration of one source file and prepends
// the file's import header. idx must be fully populated.
func (g *Generator) GenerateFile(sourcePath string, decls []decl.Declaration, idx Index) FileResult {
	names := make([]string, len(decls))
	for i, d := range decls {
		names[i] = d.Name
	}
	fc := NewFileContext(sourcePath, names)
	outputPath := decl.OutputPath(sourcePath)

	var blocks []string
	var exports []Export
	for _, d := range decls {
		text, declExports := g.EmitDeclaration(d, fc)
		if text == "" {
			continue
		}
		blocks = append(blocks, text)
		exports = append(exports, declExports...)
	}

	result := FileResult{
		SourcePath:  sourcePath,
		OutputPath:  outputPath,
		Exports:     exports,
		Diagnostics: fc.Diagnostics,
	}
	if len(blocks) == 0 {
		return result
	}

	result.Imports = fc.Imports.Finalize(fc, outputPath, idx)
	for _, line := range result.Imports {
		if !line.Resolved {
			fc.enter("")
			fc.warn("import target %s is not a generated declaration, guessed %s", line.Name, line.Path)
		}
	}
	result.Diagnostics = fc.Diagnostics

	var sb strings.Builder
	if len(result.Imports) > 0 {
		sb.WriteString(RenderImports(result.Imports))
		sb.WriteString("\n\n")
	}
	sb.WriteString(strings.Join(blocks, "\n\n"))
	sb.WriteByte('\n')
	result.Content = sb.String()
	return result
}

// EmitDeclaration renders one declaration along its kind's single path.
// Unknown kinds render nothing.
func (g *Generator) EmitDeclaration(d decl.Declaration, fc *FileContext) (string, []Export) {
	fc.enter(d.Name)
	defer fc.enter("")

	switch d.Kind {
	case decl.KindStruct:
		return g.emitInterface(d, fc), []Export{{Name: d.Name}}
	case decl.KindEnum:
		return g.emitEnum(d, fc), []Export{{Name: d.Name, Value: true}, {Name: reverseMapName(d.Name), Value: true}}
	case decl.KindConstants:
		return g.emitConstants(d, fc)
	default:
		fc.warn("declaration kind is not convertible, skipped")
		return "", nil
	}
}

// withDoc prefixes text with its documentation block, both indented by
// prefix
func withDoc(doc, text, prefix string) string {
	if doc == "" {
		return prefix + text
	}
	return indentBlock(doc, prefix) + "\n" + prefix + text
}
