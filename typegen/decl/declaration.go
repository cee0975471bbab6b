// Package decl holds the declaration model handed to the generator by the
// external parser: declarations, members, type references and constant
// expressions. Everything here is built once at load time and is read-only
// during generation.
package decl

import (
	"path"
	"strings"
)

// Kind classifies a declaration. Each kind has exactly one rendering path.
type Kind int

const (
	KindUnknown Kind = iota
	KindStruct
	KindEnum
	KindConstants
)

// ParseKind maps a manifest kind string to a Kind.
// Unrecognized strings yield KindUnknown, which renders to nothing.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "struct", "structured", "class", "record", "interface":
		return KindStruct
	case "enum":
		return KindEnum
	case "constants", "constant-holder", "const", "static-class":
		return KindConstants
	default:
		return KindUnknown
	}
}

func (k Kind) String() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindConstants:
		return "constants"
	default:
		return "unknown"
	}
}

// Storage describes how a member is stored in the source type.
type Storage int

const (
	StorageInstance Storage = iota
	StorageStatic
	StorageStaticReadonly
	StorageConst
)

// ParseStorage maps a manifest storage string to a Storage
func ParseStorage(s string) Storage {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "static":
		return StorageStatic
	case "static-readonly", "static_readonly", "readonly-static":
		return StorageStaticReadonly
	case "const":
		return StorageConst
	default:
		return StorageInstance
	}
}

// IsCompileTimeConstant reports whether a member of this storage can be
// exported from a constant holder.
func (s Storage) IsCompileTimeConstant() bool {
	return s == StorageConst || s == StorageStaticReadonly
}

// Declaration is one convertible type description.
type Declaration struct {
	Name       string
	Kind       Kind
	Members    []Member
	Bases      []TypeRef
	Doc        string // raw documentation text (XML doc comment or plain text)
	SourcePath string // project-relative, forward slashes
}

// Member is a field, property or enum member of a declaration.
type Member struct {
	Name         string
	Type         TypeRef
	Capabilities Capabilities
	Storage      Storage

	// Init is the field initializer or enum member value, if any
	Init *ConstExpr

	// Derived is the expression body of a computed read-only property
	// with no backing field
	Derived *ConstExpr

	Doc string
}

// OutputPath returns the generated file path for a source path: the
// cleaned, slash-separated source path with its extension removed.
// Callers append ".ts".
func OutputPath(sourcePath string) string {
	if sourcePath == "" {
		return ""
	}
	p := path.Clean(strings.ReplaceAll(sourcePath, "\\", "/"))
	slash := strings.LastIndex(p, "/")
	if dot := strings.LastIndex(p, "."); dot > slash+1 {
		return p[:dot]
	}
	return p
}

// EscapesRoot reports whether an output path climbs above the output
// directory, e.g. "../shared/Money"
func EscapesRoot(outputPath string) bool {
	return outputPath == ".." || strings.HasPrefix(outputPath, "../")
}
