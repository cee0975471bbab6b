package config

// Config represents the cs2ts configuration
type Config struct {
	Input    InputConfig    `mapstructure:"input" toml:"input" yaml:"input" json:"input"`
	Output   OutputConfig   `mapstructure:"output" toml:"output" yaml:"output" json:"output"`
	Generate GenerateConfig `mapstructure:"generate" toml:"generate" yaml:"generate" json:"generate"`
	Hooks    HooksConfig    `mapstructure:"hooks" toml:"hooks" yaml:"hooks" json:"hooks"`
	Watch    WatchConfig    `mapstructure:"watch" toml:"watch" yaml:"watch" json:"watch"`
}

// InputConfig selects the declaration manifests and source files to convert
type InputConfig struct {
	Manifests []string `mapstructure:"manifests" toml:"manifests" yaml:"manifests" json:"manifests"` // files, directories or globs
	Include   []string `mapstructure:"include" toml:"include" yaml:"include" json:"include"`         // source path globs (empty = all)
	Exclude   []string `mapstructure:"exclude" toml:"exclude" yaml:"exclude" json:"exclude"`         // source path globs
}

// OutputConfig controls where and how generated files are written
type OutputConfig struct {
	Dir           string `mapstructure:"dir" toml:"dir" yaml:"dir" json:"dir"`
	Banner        bool   `mapstructure:"banner" toml:"banner" yaml:"banner" json:"banner"`                                 // "Code generated" header (default: true)
	ESLintDisable bool   `mapstructure:"eslint_disable" toml:"eslint_disable" yaml:"eslint_disable" json:"eslint_disable"` // add /* eslint-disable */
	Index         bool   `mapstructure:"index" toml:"index" yaml:"index" json:"index"`                                     // write index.ts barrel (default: true)
	Clean         bool   `mapstructure:"clean" toml:"clean" yaml:"clean" json:"clean"`                                     // remove stale generated files (default: true)
}

// GenerateConfig tunes the generator
type GenerateConfig struct {
	Workers     int    `mapstructure:"workers" toml:"workers" yaml:"workers" json:"workers"`                     // 0 = one per CPU
	RecordStyle string `mapstructure:"record_style" toml:"record_style" yaml:"record_style" json:"record_style"` // partial or plain
}

// HooksConfig configures commands run around generation
type HooksConfig struct {
	PostGenerate string `mapstructure:"post_generate" toml:"post_generate" yaml:"post_generate" json:"post_generate"` // e.g. "npx prettier --write {files}"
}

// WatchConfig configures watch mode
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms" yaml:"debounce_ms" json:"debounce_ms"`
}

// Record styles accepted by generate.record_style
const (
	RecordStylePartial = "partial"
	RecordStylePlain   = "plain"
)

// Config file names and locations
const (
	FileName        = "cs2ts.toml"
	SystemPath      = "/etc/cs2ts/cs2ts.toml"
	UserDirName     = ".cs2ts"
	EnvPrefix       = "CS2TS"
	DefaultDirPerm  = 0755
	DefaultFilePerm = 0644
)
