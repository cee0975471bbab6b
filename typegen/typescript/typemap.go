package typescript

import (
	"strings"
	"unicode"

	"github.com/bodnarbalazs/Cs2Ts/typegen/decl"
)

// Hint is a wire-format note attached to a member's documentation
type Hint int

const (
	HintDuration Hint = iota + 1
	HintDateTimeOffset
)

// Fixed types forced by member capabilities
const (
	RenderNodeType   = "ReactNode"
	RenderNodeModule = "react"
	DomElementType   = "HTMLElement"
)

// primitiveTypes maps canonical primitive names (see decl.CanonicalPrimitive)
// to TypeScript
var primitiveTypes = map[string]string{
	"byte":           "number",
	"sbyte":          "number",
	"short":          "number",
	"ushort":         "number",
	"int":            "number",
	"uint":           "number",
	"long":           "number",
	"ulong":          "number",
	"float":          "number",
	"double":         "number",
	"decimal":        "number",
	"bool":           "boolean",
	"string":         "string",
	"char":           "string",
	"Guid":           "string",
	"Uri":            "string",
	"DateTime":       "Date",
	"DateOnly":       "Date",
	"object":         "unknown",
	"dynamic":        "unknown",
	"TimeSpan":       "number",
	"DateTimeOffset": "string",
}

var primitiveHints = map[string]Hint{
	"TimeSpan":       HintDuration,
	"DateTimeOffset": HintDateTimeOffset,
}

// linearContainers render as T[] when given one type argument
var linearContainers = map[string]bool{
	"List":                true,
	"IList":               true,
	"IReadOnlyList":       true,
	"ICollection":         true,
	"IReadOnlyCollection": true,
	"IEnumerable":         true,
	"Collection":          true,
	"ReadOnlyCollection":  true,
	"HashSet":             true,
	"ISet":                true,
	"IReadOnlySet":        true,
	"SortedSet":           true,
	"Queue":               true,
	"Stack":               true,
	"LinkedList":          true,
	"ImmutableArray":      true,
	"ImmutableList":       true,
}

// mapContainers render as Partial<Record<K, V>> when given two type arguments
var mapContainers = map[string]bool{
	"Dictionary":           true,
	"IDictionary":          true,
	"IReadOnlyDictionary":  true,
	"SortedDictionary":     true,
	"ConcurrentDictionary": true,
	"ImmutableDictionary":  true,
}

const (
	actionType = "Action"
	funcType   = "Func"
)

// Mapped is a TypeScript type expression plus the documentation hints its
// source type carries.
type Mapped struct {
	TS    string
	Hints []Hint
}

// TypeMapper maps type references to TypeScript type expressions. The
// only side effect is registering import needs on the FileContext.
type TypeMapper struct {
	RecordStyle RecordStyle
}

// MapMember maps a member's type, honouring capability overrides
func (m TypeMapper) MapMember(member decl.Member, fc *FileContext) Mapped {
	switch {
	case member.Capabilities.Has(decl.CapRenderNode):
		fc.Imports.MarkExternal(RenderNodeType, RenderNodeModule, UsageType)
		return Mapped{TS: RenderNodeType}
	case member.Capabilities.Has(decl.CapDomElement):
		return Mapped{TS: DomElementType}
	}
	mapped := m.Map(member.Type, fc)
	if mapped.TS == "unknown" && member.Type.Kind == decl.TypeInvalid {
		fc.warn("member has no type, emitted as unknown")
	}
	return mapped
}

// Map maps a type reference
func (m TypeMapper) Map(ref decl.TypeRef, fc *FileContext) Mapped {
	var hints []Hint
	ts := m.mapRef(ref, fc, &hints)
	return Mapped{TS: ts, Hints: hints}
}

func (m TypeMapper) mapRef(ref decl.TypeRef, fc *FileContext, hints *[]Hint) string {
	switch ref.Kind {
	case decl.TypeNullable:
		inner := *ref.Elem
		for inner.Kind == decl.TypeNullable {
			inner = *inner.Elem
		}
		return m.mapRef(inner, fc, hints) + " | null"

	case decl.TypeArray:
		return m.arrayOf(*ref.Elem, fc, hints)

	case decl.TypeGeneric:
		return m.mapGeneric(ref, fc, hints)

	case decl.TypeFunction:
		result := "void"
		if ref.Result != nil {
			result = m.mapRef(*ref.Result, fc, hints)
		}
		return m.signature(ref.Params, result, fc, hints)

	case decl.TypePrimitive:
		if ts, ok := primitiveTypes[ref.Name]; ok {
			if hint, ok := primitiveHints[ref.Name]; ok {
				addHint(hints, hint)
			}
			return ts
		}
		return "unknown"

	case decl.TypeNamed:
		if ref.SimpleName() == actionType {
			return "() => void"
		}
		if !isDeclarationName(ref.Name) {
			fc.warn("type %q is not a generated declaration, emitted as unknown", ref.Name)
			return "unknown"
		}
		fc.Imports.Mark(ref.Name, UsageType)
		return ref.Name

	default:
		return "unknown"
	}
}

func (m TypeMapper) mapGeneric(ref decl.TypeRef, fc *FileContext, hints *[]Hint) string {
	name := ref.SimpleName()
	args := ref.Args

	switch {
	case linearContainers[name] && len(args) == 1:
		return m.arrayOf(args[0], fc, hints)

	case mapContainers[name] && len(args) == 2:
		key := m.mapRef(args[0], fc, hints)
		value := m.mapRef(args[1], fc, hints)
		if m.RecordStyle == RecordPlain {
			return "Record<" + key + ", " + value + ">"
		}
		return "Partial<Record<" + key + ", " + value + ">>"

	case name == actionType:
		if len(args) > 2 {
			fc.warn("Action with %d parameters is not supported, emitted as unknown", len(args))
			return "unknown"
		}
		return m.signature(args, "void", fc, hints)

	case name == funcType:
		if len(args) == 0 || len(args) > 3 {
			fc.warn("Func with %d type arguments is not supported, emitted as unknown", len(args))
			return "unknown"
		}
		result := m.mapRef(args[len(args)-1], fc, hints)
		return m.signature(args[:len(args)-1], result, fc, hints)
	}

	if !isDeclarationName(ref.Name) {
		fc.warn("generic type %q is not a generated declaration, emitted as unknown", ref.Name)
		return "unknown"
	}
	fc.Imports.Mark(ref.Name, UsageType)
	mapped := make([]string, len(args))
	for i, arg := range args {
		mapped[i] = m.mapRef(arg, fc, hints)
	}
	return ref.Name + "<" + strings.Join(mapped, ", ") + ">"
}

func (m TypeMapper) arrayOf(elem decl.TypeRef, fc *FileContext, hints *[]Hint) string {
	ts := m.mapRef(elem, fc, hints)
	if needsParens(elem) {
		return "(" + ts + ")[]"
	}
	return ts + "[]"
}

// signature renders a function type; one parameter is named arg, several
// are numbered arg1..argN
func (m TypeMapper) signature(params []decl.TypeRef, result string, fc *FileContext, hints *[]Hint) string {
	parts := make([]string, len(params))
	for i, p := range params {
		name := "arg"
		if len(params) > 1 {
			name = "arg" + itoa(i+1)
		}
		parts[i] = name + ": " + m.mapRef(p, fc, hints)
	}
	return "(" + strings.Join(parts, ", ") + ") => " + result
}

// needsParens reports whether the mapped form of ref is a union or function
// type that must be parenthesized before an array suffix
func needsParens(ref decl.TypeRef) bool {
	switch ref.Kind {
	case decl.TypeNullable, decl.TypeFunction:
		return true
	case decl.TypeNamed:
		return ref.SimpleName() == actionType
	case decl.TypeGeneric:
		name := ref.SimpleName()
		return (name == actionType && len(ref.Args) <= 2) ||
			(name == funcType && len(ref.Args) >= 1 && len(ref.Args) <= 3)
	}
	return false
}

// isDeclarationName reports whether name looks like a reference to another
// generated declaration: capitalized, with no namespace qualifier
func isDeclarationName(name string) bool {
	if name == "" || strings.ContainsAny(name, ".:") {
		return false
	}
	return unicode.IsUpper([]rune(name)[0])
}

func addHint(hints *[]Hint, hint Hint) {
	for _, h := range *hints {
		if h == hint {
			return
		}
	}
	*hints = append(*hints, hint)
}
