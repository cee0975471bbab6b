package typegen

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bodnarbalazs/Cs2Ts/errors"
)

// CompareResult describes how an output directory differs from a fresh
// generation. Paths are slash-separated and relative to the directory.
type CompareResult struct {
	UpToDate bool
	Changed  []string // content differs
	Missing  []string // generated but absent on disk
	Stale    []string // generated files on disk the run no longer produces
}

// Err returns ErrOutOfDate wrapped with the differing paths, or nil
func (r *CompareResult) Err() error {
	if r.UpToDate {
		return nil
	}
	var parts []string
	if n := len(r.Changed); n > 0 {
		parts = append(parts, pluralize(n, "changed"))
	}
	if n := len(r.Missing); n > 0 {
		parts = append(parts, pluralize(n, "missing"))
	}
	if n := len(r.Stale); n > 0 {
		parts = append(parts, pluralize(n, "stale"))
	}
	return errors.WithHint(
		errors.Wrap(errors.ErrOutOfDate, strings.Join(parts, ", ")),
		"run 'cs2ts generate' to update")
}

func pluralize(n int, what string) string {
	if n == 1 {
		return "1 file " + what
	}
	return strconv.Itoa(n) + " files " + what
}

// CompareDirectories compares freshly generated files in generatedDir
// against existingDir, ignoring banner and lint header lines. Files in
// existingDir without the banner are not considered generated and are
// ignored.
func CompareDirectories(generatedDir, existingDir string) (*CompareResult, error) {
	generated, err := collectFiles(generatedDir)
	if err != nil {
		return nil, err
	}

	result := &CompareResult{}
	artifacts := make(map[string]string, len(generated))
	for _, rel := range generated {
		artifacts[rel] = ""

		fresh, err := os.ReadFile(filepath.Join(generatedDir, filepath.FromSlash(rel)))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read generated %s", rel)
		}
		current, err := os.ReadFile(filepath.Join(existingDir, filepath.FromSlash(rel)))
		if errors.Is(err, fs.ErrNotExist) {
			result.Missing = append(result.Missing, rel)
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", rel)
		}
		if !bytes.Equal(stripHeader(fresh), stripHeader(current)) {
			result.Changed = append(result.Changed, rel)
		}
	}

	result.Stale, err = StaleFiles(existingDir, artifacts)
	if err != nil {
		return nil, err
	}

	result.UpToDate = len(result.Changed) == 0 && len(result.Missing) == 0 && len(result.Stale) == 0
	return result, nil
}

// collectFiles lists the generated files under dir
func collectFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, FileExtension) {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan %s", dir)
	}
	sort.Strings(files)
	return files, nil
}
