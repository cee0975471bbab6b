package typescript

import (
	"path"
	"sort"
	"strings"
)

// Usage flags how an imported symbol is referenced. Flags only escalate.
type Usage uint8

const (
	// UsageType means the symbol appears only in type positions
	UsageType Usage = 1 << iota
	// UsageValue means the symbol's runtime value is referenced
	UsageValue
)

type importEntry struct {
	usage  Usage
	module string // fixed module specifier for external symbols
}

// ImportSet accumulates one output file's import needs
type ImportSet struct {
	entries map[string]*importEntry
}

// NewImportSet creates an empty import set
func NewImportSet() *ImportSet {
	return &ImportSet{entries: make(map[string]*importEntry)}
}

// Mark records a need for a generated declaration, unioning usage flags
func (s *ImportSet) Mark(name string, usage Usage) {
	s.mark(name, "", usage)
}

// MarkExternal records a need for a symbol from a fixed external module
func (s *ImportSet) MarkExternal(name, module string, usage Usage) {
	s.mark(name, module, usage)
}

func (s *ImportSet) mark(name, module string, usage Usage) {
	entry, ok := s.entries[name]
	if !ok {
		entry = &importEntry{}
		s.entries[name] = entry
	}
	entry.usage |= usage
	if module != "" {
		entry.module = module
	}
}

// Usage returns the accumulated flags for name (zero when never marked)
func (s *ImportSet) Usage(name string) Usage {
	if entry, ok := s.entries[name]; ok {
		return entry.usage
	}
	return 0
}

// Len returns the number of distinct symbols marked
func (s *ImportSet) Len() int {
	return len(s.entries)
}

// ImportLine is one resolved import statement
type ImportLine struct {
	Name     string
	Path     string
	TypeOnly bool
	Resolved bool // false when Path is a same-directory guess
}

func (l ImportLine) String() string {
	if l.TypeOnly {
		return "import type { " + l.Name + " } from '" + l.Path + "';"
	}
	return "import { " + l.Name + " } from '" + l.Path + "';"
}

// Index resolves a declaration name to an import path relative to the
// importing file. Implementations must be safe for concurrent reads.
type Index interface {
	ImportPath(fromPath, name string) (string, bool)
}

// Finalize drops the names declared in the file itself, then returns the
// remaining imports sorted by name with resolved paths. Names the index
// does not know fall back to "./Name".
func (s *ImportSet) Finalize(fc *FileContext, fromPath string, idx Index) []ImportLine {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		if fc != nil && fc.Declares(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]ImportLine, 0, len(names))
	for _, name := range names {
		entry := s.entries[name]
		line := ImportLine{
			Name:     name,
			TypeOnly: entry.usage&UsageValue == 0,
			Resolved: true,
		}
		switch {
		case entry.module != "":
			line.Path = entry.module
		default:
			p, ok := "", false
			if idx != nil {
				p, ok = idx.ImportPath(fromPath, name)
			}
			if !ok {
				p = "./" + name
				line.Resolved = false
			}
			line.Path = p
		}
		lines = append(lines, line)
	}
	return lines
}

// RenderImports renders import lines, one per line, with no trailing newline
func RenderImports(lines []ImportLine) string {
	rendered := make([]string, len(lines))
	for i, l := range lines {
		rendered[i] = l.String()
	}
	return strings.Join(rendered, "\n")
}

// ResolvePath returns the relative module specifier for importing toFile
// from fromFile. Both are project-relative paths; extensions are ignored.
//
//	ResolvePath("Models/Order.ts", "Models/Shared/Money.ts") = "./Shared/Money"
//	ResolvePath("Api/V1/Dto.ts", "Models/Order.ts")          = "../../Models/Order"
func ResolvePath(fromFile, toFile string) string {
	fromDirs, _ := splitPath(fromFile)
	toDirs, toBase := splitPath(toFile)

	common := 0
	for common < len(fromDirs) && common < len(toDirs) && fromDirs[common] == toDirs[common] {
		common++
	}

	var sb strings.Builder
	ups := len(fromDirs) - common
	if ups == 0 {
		sb.WriteString("./")
	}
	for i := 0; i < ups; i++ {
		sb.WriteString("../")
	}
	for _, dir := range toDirs[common:] {
		sb.WriteString(dir)
		sb.WriteByte('/')
	}
	sb.WriteString(toBase)
	return sb.String()
}

// sourceExtensions are stripped before path resolution. Other dots are
// kept, so "User.Dto" stays a base name.
var sourceExtensions = []string{".d.ts", ".tsx", ".ts", ".cs"}

// splitPath strips the extension and splits a path into its directory
// segments and base name
func splitPath(p string) ([]string, string) {
	p = path.Clean(strings.ReplaceAll(p, "\\", "/"))
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimPrefix(p, "/")
	for _, ext := range sourceExtensions {
		if strings.HasSuffix(p, ext) && len(p) > len(ext) {
			p = strings.TrimSuffix(p, ext)
			break
		}
	}

	segments := strings.Split(p, "/")
	var dirs []string
	for _, seg := range segments[:len(segments)-1] {
		if seg != "" && seg != "." {
			dirs = append(dirs, seg)
		}
	}
	return dirs, segments[len(segments)-1]
}
