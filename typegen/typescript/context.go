package typescript

import "fmt"

// RecordStyle selects how map-like generics render
type RecordStyle int

const (
	// RecordPartial renders Partial<Record<K, V>>: a produced map may omit keys
	RecordPartial RecordStyle = iota
	// RecordPlain renders Record<K, V>
	RecordPlain
)

// ParseRecordStyle maps a config value to a RecordStyle; unknown values
// fall back to RecordPartial.
func ParseRecordStyle(s string) RecordStyle {
	if s == "plain" {
		return RecordPlain
	}
	return RecordPartial
}

// Options configures a Generator
type Options struct {
	RecordStyle RecordStyle
}

// Diagnostic records a unit that was degraded instead of failing the run
type Diagnostic struct {
	File        string
	Declaration string
	Member      string
	Message     string
}

func (d Diagnostic) String() string {
	target := d.Declaration
	if d.Member != "" {
		target += "." + d.Member
	}
	if target == "" {
		return fmt.Sprintf("%s: %s", d.File, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.File, target, d.Message)
}

// FileContext is the per-output-file state of one emission task: its import
// needs and diagnostics. It is owned by a single goroutine.
type FileContext struct {
	SourcePath  string
	Imports     *ImportSet
	Diagnostics []Diagnostic

	declared map[string]bool
	current  string // declaration being emitted
	member   string // member being emitted
}

// NewFileContext creates the context for one source file; declared lists
// every declaration name emitted into that file.
func NewFileContext(sourcePath string, declared []string) *FileContext {
	fc := &FileContext{
		SourcePath: sourcePath,
		Imports:    NewImportSet(),
		declared:   make(map[string]bool, len(declared)),
	}
	for _, name := range declared {
		fc.declared[name] = true
	}
	return fc
}

// Declares reports whether name is declared in this file
func (fc *FileContext) Declares(name string) bool {
	return fc.declared[name]
}

func (fc *FileContext) enter(declaration string) {
	fc.current = declaration
	fc.member = ""
}

func (fc *FileContext) enterMember(member string) {
	fc.member = member
}

func (fc *FileContext) warn(format string, args ...interface{}) {
	fc.Diagnostics = append(fc.Diagnostics, Diagnostic{
		File:        fc.SourcePath,
		Declaration: fc.current,
		Member:      fc.member,
		Message:     fmt.Sprintf(format, args...),
	})
}
