package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/pterm/pterm"

	"github.com/bodnarbalazs/Cs2Ts/typegen"
	"github.com/bodnarbalazs/Cs2Ts/typegen/typescript"
)

// printDiagnostics lists degraded units, one per line
func printDiagnostics(w io.Writer, diags []typescript.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(w, "  %s %s\n", pterm.Yellow("!"), d.String())
	}
}

// printGenerateSummary reports a finished generate run
func printGenerateSummary(w io.Writer, res *typegen.Result, report *typegen.WriteReport, dir string) {
	fmt.Fprintf(w, "%s %d declarations → %d files in %s (%s)\n",
		pterm.LightGreen("✓"),
		res.Declarations,
		len(res.Files),
		pterm.Cyan(dir),
		res.Duration.Round(time.Millisecond))

	if n := len(report.Written); n > 0 {
		fmt.Fprintf(w, "  %s %d written\n", pterm.Gray("→"), n)
	}
	if n := len(report.Unchanged); n > 0 {
		fmt.Fprintf(w, "  %s %d unchanged\n", pterm.Gray("→"), n)
	}
	for _, rel := range report.Removed {
		fmt.Fprintf(w, "  %s removed %s\n", pterm.Gray("→"), rel)
	}
	if res.Skipped > 0 {
		fmt.Fprintf(w, "  %s %d source files excluded by filters\n", pterm.Gray("→"), res.Skipped)
	}

	if len(res.Diagnostics) > 0 {
		fmt.Fprintf(w, "%s %d diagnostics:\n", pterm.Yellow("⚠"), len(res.Diagnostics))
		printDiagnostics(w, res.Diagnostics)
	}
}

// printCompare lists the differences found by check
func printCompare(w io.Writer, cmp *typegen.CompareResult) {
	for _, rel := range cmp.Changed {
		fmt.Fprintf(w, "  %s %s\n", pterm.Yellow("changed"), rel)
	}
	for _, rel := range cmp.Missing {
		fmt.Fprintf(w, "  %s %s\n", pterm.LightRed("missing"), rel)
	}
	for _, rel := range cmp.Stale {
		fmt.Fprintf(w, "  %s %s\n", pterm.Gray("stale"), rel)
	}
}
