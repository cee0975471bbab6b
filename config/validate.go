package config

import (
	"time"

	"github.com/gobwas/glob"
	"github.com/kballard/go-shellquote"

	"github.com/bodnarbalazs/Cs2Ts/errors"
)

func invalid(format string, args ...interface{}) error {
	return errors.Wrapf(errors.ErrInvalidConfig, format, args...)
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Output.Dir == "" {
		return errors.WithHint(invalid("output.dir cannot be empty"), "set output.dir or pass --output")
	}

	// Workers: 0 = one per CPU, negative = invalid
	if c.Generate.Workers < 0 {
		return invalid("generate.workers must be >= 0, got %d", c.Generate.Workers)
	}

	switch c.Generate.RecordStyle {
	case RecordStylePartial, RecordStylePlain:
	default:
		return invalid("generate.record_style must be %q or %q, got %q",
			RecordStylePartial, RecordStylePlain, c.Generate.RecordStyle)
	}

	if c.Watch.DebounceMS < 0 {
		return invalid("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}

	for _, pattern := range c.Input.Include {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return invalid("input.include pattern %q: %v", pattern, err)
		}
	}
	for _, pattern := range c.Input.Exclude {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return invalid("input.exclude pattern %q: %v", pattern, err)
		}
	}

	if c.Hooks.PostGenerate != "" {
		if _, err := shellquote.Split(c.Hooks.PostGenerate); err != nil {
			return invalid("hooks.post_generate: %v", err)
		}
	}

	return nil
}

// Debounce returns watch.debounce_ms as a duration
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}
