package typegen

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bodnarbalazs/Cs2Ts/errors"
	"github.com/bodnarbalazs/Cs2Ts/logger"
	"github.com/bodnarbalazs/Cs2Ts/typegen/decl"
)

var manifestExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
	".json": true,
}

// ResolveManifests expands manifest arguments into a sorted list of files.
// An argument may name a file, a directory (searched recursively for
// .yaml, .yml and .json files) or a glob pattern.
func ResolveManifests(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid manifest pattern %q", arg)
		}
		if len(matches) == 0 {
			return nil, errors.WithHint(
				errors.Newf("manifest %s not found", arg),
				"set input.manifests in cs2ts.toml or pass manifest paths as arguments")
		}

		for _, match := range matches {
			err := filepath.WalkDir(match, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					return nil
				}
				// Explicit files are taken regardless of extension
				if p == match || manifestExtensions[strings.ToLower(filepath.Ext(p))] {
					add(p)
				}
				return nil
			})
			if err != nil {
				return nil, errors.Wrapf(err, "failed to scan %s", match)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

// LoadDeclarations loads every manifest in order and concatenates their
// declarations
func LoadDeclarations(paths []string) ([]decl.Declaration, error) {
	var all []decl.Declaration
	for _, p := range paths {
		m, err := decl.LoadManifest(p)
		if err != nil {
			return nil, err
		}
		logger.Debugw("Loaded manifest",
			logger.FieldFile, p,
			logger.FieldCount, len(m.Declarations),
			"schema_version", m.SchemaVersion)
		all = append(all, m.Declarations...)
	}
	return all, nil
}
