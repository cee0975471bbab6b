package typegen

import (
	"bufio"
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bodnarbalazs/Cs2Ts/errors"
	"github.com/bodnarbalazs/Cs2Ts/logger"
)

// Banner marks a file as generated. Cleanup and check only touch files
// that start with it.
const Banner = "// Code generated by cs2ts. DO NOT EDIT."

// ESLintDisable is prepended after the banner when requested
const ESLintDisable = "/* eslint-disable */"

// FileExtension is appended to every output path
const FileExtension = ".ts"

// WriteOptions controls how generated files land on disk
type WriteOptions struct {
	Dir           string
	Banner        bool
	ESLintDisable bool

	// Clean removes generated files (those carrying Banner) that the run
	// did not produce
	Clean bool
}

// WriteReport lists what a write changed, as paths relative to Dir
type WriteReport struct {
	Written   []string
	Unchanged []string
	Removed   []string
}

// Artifacts returns the full content of every file the run produces,
// keyed by slash-separated path relative to the output directory
func Artifacts(res *Result, opts WriteOptions) map[string]string {
	artifacts := make(map[string]string, len(res.Files)+1)
	for _, f := range res.Files {
		artifacts[f.OutputPath+FileExtension] = decorate(f.Content, opts)
	}
	if res.IndexContent != "" {
		artifacts[IndexFileName+FileExtension] = decorate(res.IndexContent, opts)
	}
	return artifacts
}

// decorate prepends the configured header lines
func decorate(content string, opts WriteOptions) string {
	var header []string
	if opts.Banner {
		header = append(header, Banner)
	}
	if opts.ESLintDisable {
		header = append(header, ESLintDisable)
	}
	if len(header) == 0 {
		return content
	}
	return strings.Join(header, "\n") + "\n\n" + content
}

// Write writes the run's artifacts under opts.Dir. Files whose content is
// already current are left untouched.
func Write(res *Result, opts WriteOptions) (*WriteReport, error) {
	if opts.Dir == "" {
		return nil, errors.WithHint(errors.New("output directory is not set"), "set output.dir in cs2ts.toml or pass --output")
	}
	log := logger.ComponentLogger("typegen.writer")
	report := &WriteReport{}

	artifacts := Artifacts(res, opts)
	keys := sortedKeys(artifacts)
	for _, rel := range keys {
		if err := checkInside(opts.Dir, rel); err != nil {
			return report, err
		}
	}
	for _, rel := range keys {
		content := artifacts[rel]
		target := filepath.Join(opts.Dir, filepath.FromSlash(rel))

		if existing, err := os.ReadFile(target); err == nil && string(existing) == content {
			report.Unchanged = append(report.Unchanged, rel)
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return report, errors.Wrapf(err, "failed to create directory for %s", target)
		}
		if err := os.WriteFile(target, []byte(content), 0644); err != nil {
			return report, errors.Wrapf(err, "failed to write %s", target)
		}
		report.Written = append(report.Written, rel)
		log.Debugw("Wrote file", logger.FieldOutput, target)
	}

	if opts.Clean {
		stale, err := StaleFiles(opts.Dir, artifacts)
		if err != nil {
			return report, err
		}
		for _, rel := range stale {
			target := filepath.Join(opts.Dir, filepath.FromSlash(rel))
			if err := os.Remove(target); err != nil {
				return report, errors.Wrapf(err, "failed to remove stale file %s", target)
			}
			report.Removed = append(report.Removed, rel)
			log.Infow("Removed stale generated file", logger.FieldOutput, target)
		}
	}

	return report, nil
}

// checkInside rejects an artifact path that resolves outside dir
func checkInside(dir, rel string) error {
	target := filepath.Join(dir, filepath.FromSlash(rel))
	r, err := filepath.Rel(dir, target)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve %s", target)
	}
	if r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return errors.WithHint(
			errors.Newf("output %s is outside the output directory %s", rel, dir),
			"source paths must not climb above the source root with ..",
		)
	}
	return nil
}

// StaleFiles lists the generated files under dir (those starting with
// Banner) that are not in artifacts. A missing dir has no stale files.
func StaleFiles(dir string, artifacts map[string]string) ([]string, error) {
	var stale []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && p == dir {
				return filepath.SkipDir
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, FileExtension) {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if _, ok := artifacts[rel]; ok {
			return nil
		}
		generated, err := hasBanner(p)
		if err != nil {
			return err
		}
		if generated {
			stale = append(stale, rel)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan %s", dir)
	}
	sort.Strings(stale)
	return stale, nil
}

func hasBanner(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	return strings.TrimRight(line, "\r\n") == Banner, nil
}

// stripHeader drops the banner and lint lines plus the blank line after
// them, so content compares equal regardless of header options
func stripHeader(content []byte) []byte {
	rest := content
	stripped := false
	for {
		line, tail, _ := bytes.Cut(rest, []byte("\n"))
		l := string(bytes.TrimRight(line, "\r"))
		if l != Banner && l != ESLintDisable {
			break
		}
		rest, stripped = tail, true
	}
	if stripped {
		rest = bytes.TrimPrefix(rest, []byte("\n"))
	}
	return rest
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
