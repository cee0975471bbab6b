package commands

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/bodnarbalazs/Cs2Ts/errors"
	"github.com/bodnarbalazs/Cs2Ts/typegen"
)

// CheckCmd verifies that the output directory matches a fresh generation
var CheckCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [manifest...]",
		Short: "Check that generated TypeScript is up to date",
		Long: `Check that generated TypeScript matches the current manifests.

Generates into a temporary directory and compares the result with the
output directory, ignoring banner and lint header lines. Files in the
output directory without the generated banner are not compared.

Exit codes:
  0 - Generated files are up to date
  1 - Generated files are out of date (differences listed)
  2 - Error during check

Examples:
  cs2ts check                  # Check output.dir from cs2ts.toml
  cs2ts check -o web/gen       # Check another directory`,
		RunE: runCheck,
	}
	addGenerateFlags(cmd)
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmp, err := checkOutput(cmd, args)
	if err != nil {
		return withExitCode(ExitCheckErr, err)
	}

	out := cmd.OutOrStdout()
	if cmp.UpToDate {
		fmt.Fprintf(out, "%s Generated files are up to date\n", pterm.LightGreen("✓"))
		return nil
	}

	fmt.Fprintf(out, "%s Generated files are out of date:\n", pterm.LightRed("✗"))
	printCompare(out, cmp)
	return withExitCode(ExitFailure, cmp.Err())
}

func checkOutput(cmd *cobra.Command, args []string) (*typegen.CompareResult, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	res, err := generateResult(cmd.Context(), cfg, manifestInputs(cfg, args), verbosity(cmd))
	if err != nil {
		return nil, err
	}

	tempDir, err := os.MkdirTemp("", "cs2ts-check-*")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp directory")
	}
	defer os.RemoveAll(tempDir)

	opts := writeOptions(cfg, tempDir)
	opts.Clean = false
	if _, err := typegen.Write(res, opts); err != nil {
		return nil, err
	}

	return typegen.CompareDirectories(tempDir, cfg.Output.Dir)
}
