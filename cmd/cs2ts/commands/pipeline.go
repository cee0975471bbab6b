package commands

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bodnarbalazs/Cs2Ts/config"
	"github.com/bodnarbalazs/Cs2Ts/errors"
	"github.com/bodnarbalazs/Cs2Ts/logger"
	"github.com/bodnarbalazs/Cs2Ts/typegen"
	"github.com/bodnarbalazs/Cs2Ts/typegen/typescript"
)

// loadConfig loads the layered configuration and applies the flags
// shared by generate, check and watch
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}

	// Commands mutate their copy; the cached config stays untouched
	local := *cfg
	if cmd.Flags().Changed("output") {
		dir, _ := cmd.Flags().GetString("output")
		local.Output.Dir = dir
	}
	if cmd.Flags().Changed("workers") {
		local.Generate.Workers, _ = cmd.Flags().GetInt("workers")
	}
	return &local, local.Validate()
}

// verbosity returns the -v count; zero when the root flag is absent
func verbosity(cmd *cobra.Command) int {
	n, _ := cmd.Flags().GetCount("verbose")
	return n
}

// manifestInputs returns the manifest arguments, falling back to the
// configured ones
func manifestInputs(cfg *config.Config, args []string) []string {
	if len(args) > 0 {
		return args
	}
	return cfg.Input.Manifests
}

func runOptions(cfg *config.Config, verbosity int) typegen.Options {
	return typegen.Options{
		Trace:       logger.ShouldLogTrace(verbosity),
		Workers:     cfg.Generate.Workers,
		RecordStyle: typescript.ParseRecordStyle(cfg.Generate.RecordStyle),
		Include:     cfg.Input.Include,
		Exclude:     cfg.Input.Exclude,
		Barrel:      cfg.Output.Index,
	}
}

func writeOptions(cfg *config.Config, dir string) typegen.WriteOptions {
	return typegen.WriteOptions{
		Dir:           dir,
		Banner:        cfg.Output.Banner,
		ESLintDisable: cfg.Output.ESLintDisable,
		Clean:         cfg.Output.Clean,
	}
}

// generateResult resolves and loads the manifests, then runs the
// generator over their declarations
func generateResult(ctx context.Context, cfg *config.Config, inputs []string, verbosity int) (*typegen.Result, error) {
	if len(inputs) == 0 {
		return nil, errors.WithHint(
			errors.New("no manifests given"),
			"pass manifest paths as arguments or set input.manifests in "+config.FileName)
	}

	paths, err := typegen.ResolveManifests(inputs)
	if err != nil {
		return nil, err
	}
	logger.Debugw("Resolved manifests", logger.FieldCount, len(paths))

	decls, err := typegen.LoadDeclarations(paths)
	if err != nil {
		return nil, err
	}

	return typegen.Run(ctx, decls, runOptions(cfg, verbosity))
}

// hookFiles returns written paths relative to the output directory in
// OS form, as a formatter run from that directory expects
func hookFiles(written []string) []string {
	files := make([]string, len(written))
	for i, rel := range written {
		files[i] = filepath.FromSlash(rel)
	}
	return files
}

// watchTargets picks what to watch for the manifest inputs: existing
// files and directories as given, glob patterns through their matches
func watchTargets(inputs []string) ([]string, error) {
	var targets []string
	for _, in := range inputs {
		if strings.ContainsAny(in, "*?[") {
			matches, err := typegen.ResolveManifests([]string{in})
			if err != nil {
				return nil, err
			}
			targets = append(targets, matches...)
			continue
		}
		targets = append(targets, in)
	}
	return append(targets, config.LoadedFiles()...), nil
}
