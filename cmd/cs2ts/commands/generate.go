package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/bodnarbalazs/Cs2Ts/errors"
	"github.com/bodnarbalazs/Cs2Ts/logger"
	"github.com/bodnarbalazs/Cs2Ts/typegen"
)

// GenerateCmd converts declaration manifests to TypeScript files
var GenerateCmd = newGenerateCmd()

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [manifest...]",
		Short: "Generate TypeScript from declaration manifests",
		Long: `Generate TypeScript from declaration manifests.

Each source file named in the manifests produces one .ts file at the same
relative path under the output directory. Classes and structs become
interfaces, enums become frozen const objects with a union type and a
reverse lookup, and static classes with constants become exported consts. An index.ts barrel re-exports every generated file.

Manifests may be files, directories (searched for .yaml, .yml and .json)
or glob patterns. Without arguments, input.manifests from cs2ts.toml is
used.

Examples:
  cs2ts generate                               # Use cs2ts.toml
  cs2ts generate api.manifest.yaml -o web/gen  # Explicit input and output
  cs2ts generate manifests/ --stdout           # Print instead of writing
  cs2ts generate --no-hook                     # Skip hooks.post_generate`,
		RunE: runGenerate,
	}
	addGenerateFlags(cmd)
	cmd.Flags().Bool("stdout", false, "Print generated files instead of writing them")
	cmd.Flags().Bool("no-hook", false, "Do not run hooks.post_generate")
	return cmd
}

// addGenerateFlags registers the flags generate, check and watch share
func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "Output directory (default: output.dir)")
	cmd.Flags().IntP("workers", "w", 0, "Concurrent workers (default: generate.workers, 0 = one per CPU)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	res, err := generateResult(cmd.Context(), cfg, manifestInputs(cfg, args), verbosity(cmd))
	if err != nil {
		return err
	}

	opts := writeOptions(cfg, cfg.Output.Dir)
	out := cmd.OutOrStdout()

	if toStdout, _ := cmd.Flags().GetBool("stdout"); toStdout {
		artifacts := typegen.Artifacts(res, opts)
		paths := make([]string, 0, len(artifacts))
		for p := range artifacts {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		for _, p := range paths {
			fmt.Fprintf(out, "// File: %s\n%s\n", p, artifacts[p])
		}
		printDiagnostics(cmd.ErrOrStderr(), res.Diagnostics)
		return nil
	}

	report, err := typegen.Write(res, opts)
	if err != nil {
		return err
	}

	skipHook, _ := cmd.Flags().GetBool("no-hook")
	if !skipHook && len(report.Written) > 0 {
		if err := typegen.RunHook(cmd.Context(), cfg.Hooks.PostGenerate, opts.Dir, hookFiles(report.Written)); err != nil {
			return errors.Wrap(err, "generated files were written")
		}
	}

	logger.Infow("Generation complete",
		logger.FieldRunID, res.RunID,
		logger.FieldOutput, opts.Dir,
		"written", len(report.Written),
		"unchanged", len(report.Unchanged),
		"removed", len(report.Removed))

	printGenerateSummary(out, res, report, opts.Dir)
	return nil
}
