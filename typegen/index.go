package typegen

import (
	"sort"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bodnarbalazs/Cs2Ts/typegen/typescript"
)

// DefaultPathCacheSize bounds the memo of resolved import specifiers
const DefaultPathCacheSize = 4096

// TypeDeclarationIndex maps declaration names to the output path (without
// extension) of the file that declares them. It is written only during
// the registration phase; after Freeze it is read-only and safe for
// concurrent use.
type TypeDeclarationIndex struct {
	entries map[string]string
	frozen  atomic.Bool
	paths   *lru.Cache[pathKey, string]
}

type pathKey struct {
	from, name string
}

var _ typescript.Index = (*TypeDeclarationIndex)(nil)

// NewIndex creates an empty index. cacheSize bounds the import path memo;
// values below 1 use DefaultPathCacheSize.
func NewIndex(cacheSize int) *TypeDeclarationIndex {
	if cacheSize < 1 {
		cacheSize = DefaultPathCacheSize
	}
	// lru.New only fails for a non-positive size
	paths, _ := lru.New[pathKey, string](cacheSize)
	return &TypeDeclarationIndex{
		entries: make(map[string]string),
		paths:   paths,
	}
}

// Register records that name is declared in the file at outputPath and
// returns the path it replaced, if any. Registering after Freeze panics.
func (ix *TypeDeclarationIndex) Register(name, outputPath string) (previous string, replaced bool) {
	if ix.frozen.Load() {
		panic("typegen: Register called on a frozen index")
	}
	previous, replaced = ix.entries[name]
	ix.entries[name] = outputPath
	return previous, replaced
}

// Freeze ends the registration phase
func (ix *TypeDeclarationIndex) Freeze() {
	ix.frozen.Store(true)
}

// Frozen reports whether Freeze has been called
func (ix *TypeDeclarationIndex) Frozen() bool {
	return ix.frozen.Load()
}

// Lookup returns the output path that declares name
func (ix *TypeDeclarationIndex) Lookup(name string) (string, bool) {
	p, ok := ix.entries[name]
	return p, ok
}

// Len returns the number of registered names
func (ix *TypeDeclarationIndex) Len() int {
	return len(ix.entries)
}

// Names returns every registered name, sorted
func (ix *TypeDeclarationIndex) Names() []string {
	names := make([]string, 0, len(ix.entries))
	for name := range ix.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ImportPath returns the module specifier for importing name from the
// file at fromPath. Resolved specifiers are memoized.
func (ix *TypeDeclarationIndex) ImportPath(fromPath, name string) (string, bool) {
	target, ok := ix.entries[name]
	if !ok {
		return "", false
	}
	key := pathKey{from: fromPath, name: name}
	if p, ok := ix.paths.Get(key); ok {
		return p, true
	}
	p := typescript.ResolvePath(fromPath, target)
	ix.paths.Add(key, p)
	return p, true
}
