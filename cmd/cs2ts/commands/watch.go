package commands

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/bodnarbalazs/Cs2Ts/config"
	"github.com/bodnarbalazs/Cs2Ts/logger"
	"github.com/bodnarbalazs/Cs2Ts/typegen"
)

// WatchCmd regenerates whenever manifests or configuration change
var WatchCmd = &cobra.Command{
	Use:   "watch [manifest...]",
	Short: "Regenerate TypeScript when manifests change",
	Long: `Watch declaration manifests and cs2ts.toml, regenerating after each burst
of changes. Changes to the configuration file reload it before the next run.

Examples:
  cs2ts watch                  # Watch input.manifests from cs2ts.toml
  cs2ts watch manifests/       # Watch a directory of manifests`,
	RunE: runWatch,
}

func init() {
	addGenerateFlags(WatchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	inputs := manifestInputs(cfg, args)

	regenerate := func(ctx context.Context) error {
		res, err := generateResult(ctx, cfg, inputs, verbosity(cmd))
		if err != nil {
			return err
		}
		report, err := typegen.Write(res, writeOptions(cfg, cfg.Output.Dir))
		if err != nil {
			return err
		}
		if len(report.Written) > 0 {
			if err := typegen.RunHook(ctx, cfg.Hooks.PostGenerate, cfg.Output.Dir, hookFiles(report.Written)); err != nil {
				return err
			}
		}
		printGenerateSummary(cmd.OutOrStdout(), res, report, cfg.Output.Dir)
		return nil
	}

	if err := regenerate(ctx); err != nil {
		// Keep watching so the next edit can fix it
		PrintError(cmd.ErrOrStderr(), err)
	}

	targets, err := watchTargets(inputs)
	if err != nil {
		return err
	}

	w, err := config.NewWatcher(targets, cfg.Debounce(), func(ctx context.Context, changed []string) error {
		logger.Infow("Manifests changed", logger.FieldCount, len(changed))
		if touchesConfig(changed) {
			config.Reset()
			reloaded, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cfg = reloaded
			inputs = manifestInputs(cfg, args)
			logger.Infow("Configuration reloaded", "files", config.LoadedFiles())
		}
		return regenerate(ctx)
	})
	if err != nil {
		return err
	}
	defer w.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "%s Watching %d paths (Ctrl+C to stop)\n", pterm.LightCyan("…"), len(targets))
	return w.Run(ctx)
}

func touchesConfig(changed []string) bool {
	for _, p := range changed {
		if filepath.Ext(p) == ".toml" {
			return true
		}
	}
	return false
}
