package typegen

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bodnarbalazs/Cs2Ts/errors"
	"github.com/bodnarbalazs/Cs2Ts/logger"
	"github.com/bodnarbalazs/Cs2Ts/typegen/decl"
	"github.com/bodnarbalazs/Cs2Ts/typegen/typescript"
)

// IndexFileName is the barrel file written next to the generated files
const IndexFileName = "index"

// Options configures a generation run
type Options struct {
	// Workers bounds the concurrency of both phases; <1 uses GOMAXPROCS
	Workers int

	RecordStyle typescript.RecordStyle

	// Include and Exclude are glob patterns over source paths
	Include []string
	Exclude []string

	// Barrel renders an index file re-exporting every generated file
	Barrel bool

	// Trace logs every emitted declaration at debug level
	Trace bool
}

// Result is the outcome of one generation run
type Result struct {
	RunID string

	// Files holds one entry per source file that produced output, sorted
	// by source path
	Files []typescript.FileResult

	// IndexContent is the barrel file content, when requested and non-empty
	IndexContent string

	// Diagnostics holds every degraded unit of the run, in source path order
	Diagnostics []typescript.Diagnostic

	Declarations int
	Skipped      int // source files excluded by the filter
	Duration     time.Duration
}

// registration is one name -> file entry computed in the first phase
type registration struct {
	name       string
	outputPath string
}

// Run converts declarations to TypeScript in two phases. The first phase
// registers every type declaration in the index; the index is frozen once
// all registrations are merged. The second phase renders each source file
// independently against the frozen index. Degraded units become
// diagnostics; only cancellation and invalid options fail a run.
func Run(ctx context.Context, decls []decl.Declaration, opts Options) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := logger.RunLogger("typegen", runID)

	filter, err := NewSourceFilter(opts.Include, opts.Exclude)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	files, paths, skipped := groupBySource(decls, filter)
	result := &Result{RunID: runID, Skipped: skipped}
	paths, result.Diagnostics = rejectEscaping(paths)
	for _, p := range paths {
		result.Declarations += len(files[p])
	}

	log.Debugw("Starting generation",
		logger.FieldCount, result.Declarations,
		"files", len(paths),
		"skipped", skipped,
		logger.FieldWorkers, workers)

	// Phase 1: collect registrations per file
	regs := make([][]registration, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			regs[i] = registrations(files[p])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "registration phase interrupted")
	}

	idx := NewIndex(DefaultPathCacheSize)
	result.Diagnostics = append(result.Diagnostics, mergeRegistrations(idx, paths, regs)...)
	idx.Freeze()
	log.Debugw("Index frozen",
		logger.FieldPhase, "register",
		logger.FieldCount, idx.Len())

	// Phase 2: render every file against the frozen index
	gen := typescript.NewGenerator(typescript.Options{RecordStyle: opts.RecordStyle})
	rendered := make([]typescript.FileResult, len(paths))
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rendered[i] = gen.GenerateFile(p, files[p], idx)
			if opts.Trace {
				for _, d := range files[p] {
					log.Debugw("Emitted declaration",
						logger.FieldFile, p,
						logger.FieldOutput, rendered[i].OutputPath,
						logger.FieldDeclaration, d.Name)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "emission phase interrupted")
	}

	var exports []typescript.FileExports
	exported := make(map[string]string)
	barrel := opts.Barrel
	for _, fr := range rendered {
		result.Diagnostics = append(result.Diagnostics, fr.Diagnostics...)
		if fr.Content == "" {
			continue
		}
		result.Files = append(result.Files, fr)
		if !opts.Barrel {
			continue
		}
		if strings.EqualFold(fr.OutputPath, IndexFileName) {
			barrel = false
			result.Diagnostics = append(result.Diagnostics, typescript.Diagnostic{
				File:    fr.SourcePath,
				Message: fmt.Sprintf("output %s%s is the barrel file, barrel not generated", fr.OutputPath, FileExtension),
			})
			continue
		}
		kept, diags := barrelExports(idx, fr, exported)
		result.Diagnostics = append(result.Diagnostics, diags...)
		exports = append(exports, typescript.FileExports{OutputPath: fr.OutputPath, Exports: kept})
	}
	if barrel {
		result.IndexContent = typescript.GenerateIndexFile(exports)
	}

	for _, d := range result.Diagnostics {
		log.Debugw("Diagnostic",
			logger.FieldFile, d.File,
			logger.FieldDeclaration, d.Declaration,
			logger.FieldMember, d.Member,
			"message", d.Message)
	}

	result.Duration = time.Since(start)
	log.Infow("Generation complete",
		"files", len(result.Files),
		logger.FieldCount, result.Declarations,
		"diagnostics", len(result.Diagnostics),
		logger.FieldDurationMS, result.Duration.Milliseconds())
	return result, nil
}

// groupBySource buckets declarations by source path, keeping their order
// within a file, and returns the selected paths sorted
func groupBySource(decls []decl.Declaration, filter *SourceFilter) (map[string][]decl.Declaration, []string, int) {
	files := make(map[string][]decl.Declaration)
	excluded := make(map[string]bool)
	for _, d := range decls {
		if !filter.Match(d.SourcePath) {
			excluded[d.SourcePath] = true
			continue
		}
		files[d.SourcePath] = append(files[d.SourcePath], d)
	}

	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return files, paths, len(excluded)
}

// registrations returns the names a file contributes to the index. Only
// interfaces and enums are importable types.
func registrations(decls []decl.Declaration) []registration {
	var regs []registration
	for _, d := range decls {
		if d.Kind != decl.KindStruct && d.Kind != decl.KindEnum {
			continue
		}
		regs = append(regs, registration{name: d.Name, outputPath: decl.OutputPath(d.SourcePath)})
	}
	return regs
}

// barrelExports picks the exports of fr that the barrel re-exports.
// Names the index maps to another file are dropped (the duplicate is
// already reported). Any other name an earlier file already exports is
// dropped with a diagnostic. exported maps export name -> output path.
func barrelExports(idx *TypeDeclarationIndex, fr typescript.FileResult, exported map[string]string) ([]typescript.Export, []typescript.Diagnostic) {
	var kept []typescript.Export
	var diags []typescript.Diagnostic
	for _, e := range fr.Exports {
		if owner, ok := idx.Lookup(e.Name); ok && owner != fr.OutputPath {
			continue
		}
		if first, ok := exported[e.Name]; ok {
			diags = append(diags, typescript.Diagnostic{
				File:        fr.SourcePath,
				Declaration: e.Name,
				Message:     fmt.Sprintf("already exported from %s, left out of the barrel", first),
			})
			continue
		}
		exported[e.Name] = fr.OutputPath
		kept = append(kept, e)
	}
	return kept, diags
}

// rejectEscaping drops source paths whose output would land outside the
// output directory
func rejectEscaping(paths []string) ([]string, []typescript.Diagnostic) {
	kept := paths[:0]
	var diags []typescript.Diagnostic
	for _, p := range paths {
		if decl.EscapesRoot(decl.OutputPath(p)) {
			diags = append(diags, typescript.Diagnostic{
				File:    p,
				Message: "source path leaves the output directory, file skipped",
			})
			continue
		}
		kept = append(kept, p)
	}
	return kept, diags
}

// mergeRegistrations applies registrations in source path order. A name
// declared more than once resolves to its last registration.
func mergeRegistrations(idx *TypeDeclarationIndex, paths []string, regs [][]registration) []typescript.Diagnostic {
	var diags []typescript.Diagnostic
	for i, fileRegs := range regs {
		for _, r := range fileRegs {
			previous, replaced := idx.Register(r.name, r.outputPath)
			if !replaced {
				continue
			}
			diags = append(diags, typescript.Diagnostic{
				File:        paths[i],
				Declaration: r.name,
				Message:     fmt.Sprintf("duplicate declaration name, imports resolve to %s instead of %s", r.outputPath, previous),
			})
		}
	}
	return diags
}
