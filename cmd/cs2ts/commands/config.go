package commands

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bodnarbalazs/Cs2Ts/config"
	"github.com/bodnarbalazs/Cs2Ts/errors"
)

// ConfigCmd groups the configuration subcommands
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage cs2ts configuration",
	Long: `Display and manage cs2ts configuration.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (CS2TS_* prefix, e.g. CS2TS_OUTPUT_DIR)
3. --config file, or the nearest cs2ts.toml walking up directories
4. User config (~/.cs2ts/cs2ts.toml)
5. System config (/etc/cs2ts/cs2ts.toml)
6. Default values

Examples:
  cs2ts config show                  # Show effective configuration
  cs2ts config show --format yaml    # Show configuration as YAML
  cs2ts config show --sources        # Show where each setting came from
  cs2ts config init                  # Write a starter cs2ts.toml
  cs2ts config validate              # Validate current configuration`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter cs2ts.toml",
	Long: `Write a starter cs2ts.toml (default: ./cs2ts.toml).

An existing file is kept unless --force is given, in which case it is
backed up first (.back1, .back2, .back3).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	RunE:  runConfigValidate,
}

func init() {
	configShowCmd.Flags().String("format", "toml", "Output format: toml, json, yaml")
	configShowCmd.Flags().Bool("sources", false, "Show the source of each setting")

	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file (after backing it up)")
	configInitCmd.Flags().StringP("output", "o", "generated", "Output directory for the starter config")
	configInitCmd.Flags().StringSlice("manifest", []string{"cs2ts.manifest.yaml"}, "Manifests for the starter config")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configValidateCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	withSources, _ := cmd.Flags().GetBool("sources")

	if withSources {
		settings, err := config.Introspect()
		if err != nil {
			return errors.Wrap(err, "failed to inspect config")
		}
		return renderConfig(cmd, format, settings)
	}

	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	return renderConfig(cmd, format, cfg)
}

// renderConfig marshals v in the requested format
func renderConfig(cmd *cobra.Command, format string, v interface{}) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = json.MarshalIndent(v, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case "yaml":
		data, err = yaml.Marshal(v)
	case "toml":
		if settings, ok := v.([]config.SettingInfo); ok {
			// TOML has no top-level arrays
			v = map[string][]config.SettingInfo{"settings": settings}
		}
		data, err = toml.Marshal(v)
	default:
		return errors.Newf("unsupported format: %s (supported: toml, json, yaml)", format)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to marshal config to %s", format)
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.FileName
	if len(args) > 0 {
		path = args[0]
	}
	force, _ := cmd.Flags().GetBool("force")
	outputDir, _ := cmd.Flags().GetString("output")
	manifests, _ := cmd.Flags().GetStringSlice("manifest")

	if err := config.WriteStarter(path, config.Starter(outputDir, manifests), force); err != nil {
		return err
	}

	abs, _ := filepath.Abs(path)
	fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", pterm.LightGreen("✓"), abs)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	// Load validates
	if _, err := config.Load(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s Configuration is valid\n", pterm.LightGreen("✓"))
	for _, f := range config.LoadedFiles() {
		fmt.Fprintf(out, "  %s %s\n", pterm.Gray("→"), f)
	}
	return nil
}
