package decl

import "strings"

// TypeKind tags the variant held by a TypeRef
type TypeKind int

const (
	TypeInvalid TypeKind = iota
	TypePrimitive
	TypeNamed
	TypeNullable
	TypeArray
	TypeGeneric
	TypeFunction
)

// TypeRef is a recursive type descriptor.
//
//	Primitive: Name holds the canonical primitive name (see CanonicalPrimitive)
//	Named:     Name as declared, possibly namespace-qualified
//	Nullable:  Elem
//	Array:     Elem
//	Generic:   Name, Args
//	Function:  Params, Result (nil Result means no return value)
type TypeRef struct {
	Kind   TypeKind
	Name   string
	Elem   *TypeRef
	Args   []TypeRef
	Params []TypeRef
	Result *TypeRef
}

// Primitive returns a primitive type reference
func Primitive(name string) TypeRef {
	if canonical, ok := CanonicalPrimitive(name); ok {
		name = canonical
	}
	return TypeRef{Kind: TypePrimitive, Name: name}
}

// Named returns a reference to a named (non-primitive) type
func Named(name string) TypeRef {
	return TypeRef{Kind: TypeNamed, Name: name}
}

// Nullable wraps inner in a nullable reference
func Nullable(inner TypeRef) TypeRef {
	return TypeRef{Kind: TypeNullable, Elem: &inner}
}

// ArrayOf returns an array of elem
func ArrayOf(elem TypeRef) TypeRef {
	return TypeRef{Kind: TypeArray, Elem: &elem}
}

// Generic returns a generic instantiation
func Generic(name string, args ...TypeRef) TypeRef {
	return TypeRef{Kind: TypeGeneric, Name: name, Args: args}
}

// Func returns a function type; result may be nil for no return value
func Func(params []TypeRef, result *TypeRef) TypeRef {
	return TypeRef{Kind: TypeFunction, Params: params, Result: result}
}

// Ref resolves a bare name to a primitive or named reference
func Ref(name string) TypeRef {
	if canonical, ok := CanonicalPrimitive(name); ok {
		return TypeRef{Kind: TypePrimitive, Name: canonical}
	}
	return Named(name)
}

// SimpleName returns Name without any namespace qualifier
func (t TypeRef) SimpleName() string {
	if i := strings.LastIndex(t.Name, "."); i >= 0 {
		return t.Name[i+1:]
	}
	return t.Name
}

// String renders the reference in source shorthand, e.g. "List<int?>?"
func (t TypeRef) String() string {
	switch t.Kind {
	case TypePrimitive, TypeNamed:
		return t.Name
	case TypeNullable:
		return t.Elem.String() + "?"
	case TypeArray:
		return t.Elem.String() + "[]"
	case TypeGeneric:
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			args[i] = a.String()
		}
		return t.Name + "<" + strings.Join(args, ", ") + ">"
	case TypeFunction:
		params := make([]string, len(t.Params))
		for i, p := range t.Params {
			params[i] = p.String()
		}
		result := "void"
		if t.Result != nil {
			result = t.Result.String()
		}
		return "(" + strings.Join(params, ", ") + ") => " + result
	default:
		return "<invalid>"
	}
}

// primitiveAliases maps every accepted spelling to its canonical keyword
var primitiveAliases = map[string]string{
	"byte": "byte", "Byte": "byte",
	"sbyte": "sbyte", "SByte": "sbyte",
	"short": "short", "Int16": "short",
	"ushort": "ushort", "UInt16": "ushort",
	"int": "int", "Int32": "int",
	"uint": "uint", "UInt32": "uint",
	"long": "long", "Int64": "long",
	"ulong": "ulong", "UInt64": "ulong",
	"float": "float", "Single": "float",
	"double": "double", "Double": "double",
	"decimal": "decimal", "Decimal": "decimal",
	"bool": "bool", "Boolean": "bool",
	"string": "string", "String": "string",
	"char": "char", "Char": "char",
	"Guid":           "Guid",
	"Uri":            "Uri",
	"DateTime":       "DateTime",
	"DateOnly":       "DateOnly",
	"TimeSpan":       "TimeSpan",
	"DateTimeOffset": "DateTimeOffset",
	"object":         "object", "Object": "object",
	"dynamic": "dynamic",
}

// CanonicalPrimitive returns the canonical primitive name for name,
// accepting keyword, framework and System-qualified spellings.
func CanonicalPrimitive(name string) (string, bool) {
	name = strings.TrimPrefix(name, "global::")
	name = strings.TrimPrefix(name, "System.")
	canonical, ok := primitiveAliases[name]
	return canonical, ok
}
