package config

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Input defaults
	v.SetDefault("input.manifests", []string{"cs2ts.manifest.yaml"})
	v.SetDefault("input.include", []string{})
	v.SetDefault("input.exclude", []string{})

	// Output defaults
	v.SetDefault("output.dir", "generated")
	v.SetDefault("output.banner", true)
	v.SetDefault("output.eslint_disable", false)
	v.SetDefault("output.index", true)
	v.SetDefault("output.clean", true)

	// Generator defaults
	v.SetDefault("generate.workers", 0)
	v.SetDefault("generate.record_style", RecordStylePartial)

	v.SetDefault("hooks.post_generate", "")

	v.SetDefault("watch.debounce_ms", 300) // editors write in bursts
}
