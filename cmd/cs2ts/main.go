package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bodnarbalazs/Cs2Ts/cmd/cs2ts/commands"
	"github.com/bodnarbalazs/Cs2Ts/config"
	"github.com/bodnarbalazs/Cs2Ts/errors"
	"github.com/bodnarbalazs/Cs2Ts/logger"
)

var rootCmd = &cobra.Command{
	Use:   "cs2ts",
	Short: "cs2ts - C# declarations to TypeScript",
	Long: `cs2ts - Generate TypeScript from C# type declarations.

cs2ts reads declaration manifests produced by the C# parser and writes one
TypeScript module per source file: interfaces for classes and structs,
enums with reverse maps, and exported constants, with imports resolved
across the whole project.

Available commands:
  generate - Generate TypeScript from manifests
  check    - Verify generated files are up to date
  watch    - Regenerate when manifests change
  config   - Manage cs2ts configuration
  version  - Show version information

Examples:
  cs2ts config init        # Write a starter cs2ts.toml
  cs2ts generate           # Generate into output.dir
  cs2ts check              # Fail when generated files are stale
  cs2ts watch -v           # Regenerate on change, with progress logs`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("log-json")
		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		logger.Debugw("Logger initialized", "verbosity", logger.LevelName(verbosity))

		if path, _ := cmd.Flags().GetString("config"); path != "" {
			config.UseFile(path)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default: nearest cs2ts.toml)")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(commands.ExitCode(err))
	}
}
