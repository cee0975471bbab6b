package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodnarbalazs/Cs2Ts/errors"
)

// isolate points HOME and the working directory at fresh temp dirs and
// clears the cached configuration
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	Reset()
	t.Cleanup(func() { UseFile("") })
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, []string{"cs2ts.manifest.yaml"}, cfg.Input.Manifests)
	assert.Equal(t, "generated", cfg.Output.Dir)
	assert.True(t, cfg.Output.Banner)
	assert.True(t, cfg.Output.Index)
	assert.True(t, cfg.Output.Clean)
	assert.False(t, cfg.Output.ESLintDisable)
	assert.Equal(t, RecordStylePartial, cfg.Generate.RecordStyle)
	assert.Equal(t, 300*time.Millisecond, cfg.Debounce())
	assert.NoError(t, cfg.Validate())
}

func validConfig() Config {
	return Starter("generated", nil)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"starter is valid", func(*Config) {}, false},
		{"zero workers means one per CPU", func(c *Config) { c.Generate.Workers = 0 }, false},
		{"negative workers", func(c *Config) { c.Generate.Workers = -1 }, true},
		{"plain records", func(c *Config) { c.Generate.RecordStyle = RecordStylePlain }, false},
		{"unknown record style", func(c *Config) { c.Generate.RecordStyle = "loose" }, true},
		{"empty output dir", func(c *Config) { c.Output.Dir = "" }, true},
		{"negative debounce", func(c *Config) { c.Watch.DebounceMS = -5 }, true},
		{"bad include glob", func(c *Config) { c.Input.Include = []string{"Models/[a-"} }, true},
		{"bad exclude glob", func(c *Config) { c.Input.Exclude = []string{"[z-"} }, true},
		{"hook with quotes", func(c *Config) { c.Hooks.PostGenerate = `npx prettier --write "{files}"` }, false},
		{"hook with unterminated quote", func(c *Config) { c.Hooks.PostGenerate = `npx "prettier` }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, `
[output]
dir = "web/src/types"
eslint_disable = true

[generate]
record_style = "plain"
workers = 4
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "web/src/types", cfg.Output.Dir)
	assert.True(t, cfg.Output.ESLintDisable)
	assert.True(t, cfg.Output.Banner, "unset keys keep their defaults")
	assert.Equal(t, RecordStylePlain, cfg.Generate.RecordStyle)
	assert.Equal(t, 4, cfg.Generate.Workers)
}

func TestLoadLayered(t *testing.T) {
	project := isolate(t)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	writeFile(t, filepath.Join(home, UserDirName, FileName), `
[output]
dir = "from-user"
eslint_disable = true
`)
	writeFile(t, filepath.Join(project, FileName), `
[output]
dir = "from-project"
`)
	nested := filepath.Join(project, "src", "app")
	require.NoError(t, os.MkdirAll(nested, 0755))
	t.Chdir(nested)
	t.Setenv("CS2TS_GENERATE_WORKERS", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-project", cfg.Output.Dir, "project config overrides user config")
	assert.True(t, cfg.Output.ESLintDisable, "user config still applies")
	assert.Equal(t, 3, cfg.Generate.Workers, "environment overrides files")

	assert.Equal(t, []string{
		filepath.Join(home, UserDirName, FileName),
		filepath.Join(project, FileName),
	}, LoadedFiles())

	settings, err := Introspect()
	require.NoError(t, err)
	bySource := make(map[string]SettingInfo)
	for _, s := range settings {
		bySource[s.Key] = s
	}
	assert.Equal(t, SourceProject, bySource["output.dir"].Source)
	assert.Equal(t, SourceUser, bySource["output.eslint_disable"].Source)
	assert.Equal(t, SourceEnvironment, bySource["generate.workers"].Source)
	assert.Equal(t, "CS2TS_GENERATE_WORKERS", bySource["generate.workers"].SourcePath)
	assert.Equal(t, SourceDefault, bySource["output.banner"].Source)
}

func TestLoadCachesUntilReset(t *testing.T) {
	project := isolate(t)
	writeFile(t, filepath.Join(project, FileName), "[output]\ndir = \"first\"\n")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "first", cfg.Output.Dir)

	writeFile(t, filepath.Join(project, FileName), "[output]\ndir = \"second\"\n")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "first", cfg.Output.Dir)

	Reset()
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "second", cfg.Output.Dir)
}

func TestLoadExplicitFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.toml")
	writeFile(t, path, "[generate]\nrecord_style = \"plain\"\n")

	UseFile(path)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, RecordStylePlain, cfg.Generate.RecordStyle)

	UseFile(filepath.Join(t.TempDir(), "missing.toml"))
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadRejectsInvalid(t *testing.T) {
	project := isolate(t)

	writeFile(t, filepath.Join(project, FileName), "[generate]\nrecord_style = \"loose\"\n")
	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))

	Reset()
	writeFile(t, filepath.Join(project, FileName), "[generate\n")
	_, err = Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}

func TestFindProjectConfig(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "")
	deep := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(deep, 0755))

	assert.Equal(t, filepath.Join(root, FileName), FindProjectConfig(deep))
	assert.Equal(t, "", FindProjectConfig(t.TempDir()))
}

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "CS2TS_OUTPUT_DIR", EnvVar("output.dir"))
	assert.Equal(t, "CS2TS_HOOKS_POST_GENERATE", EnvVar("hooks.post_generate"))
}

func TestWriteStarter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	starter := Starter("web/types", []string{"build/manifest.json"})

	require.NoError(t, WriteStarter(path, starter, false))
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, starter.Input.Manifests, cfg.Input.Manifests)
	assert.Equal(t, starter.Input.Exclude, cfg.Input.Exclude)
	assert.Equal(t, starter.Output, cfg.Output)
	assert.Equal(t, starter.Generate, cfg.Generate)
	assert.Equal(t, starter.Watch, cfg.Watch)
	assert.NoError(t, cfg.Validate())

	err = WriteStarter(path, starter, false)
	require.Error(t, err)
	assert.NotEmpty(t, errors.GetAllHints(err))

	require.NoError(t, WriteStarter(path, Starter("other", nil), true))
	assert.FileExists(t, path+".back1")
	cfg, err = LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "other", cfg.Output.Dir)
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "manifest.yaml")
	writeFile(t, manifest, "declarations: []\n")
	configFile := filepath.Join(t.TempDir(), FileName)
	writeFile(t, configFile, "")

	changes := make(chan []string, 16)
	w, err := NewWatcher([]string{dir, configFile}, 20*time.Millisecond, func(_ context.Context, changed []string) error {
		changes <- changed
		return nil
	})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// A burst of writes collapses into one callback; unrelated files and
	// backups are ignored
	writeFile(t, manifest, "declarations: []\n# 1\n")
	writeFile(t, manifest, "declarations: []\n# 2\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	writeFile(t, configFile+".back1", "ignored")

	waitFor(t, changes, manifest)

	writeFile(t, configFile, "[output]\ndir = \"x\"\n")
	waitFor(t, changes, configFile)

	cancel()
	assert.NoError(t, <-done)
}

// waitFor consumes callbacks until one reports want. Ignored files must
// never be reported.
func waitFor(t *testing.T, changes <-chan []string, want string) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case changed := <-changes:
			seen := false
			for _, p := range changed {
				assert.NotEqual(t, ".txt", filepath.Ext(p))
				assert.NotEqual(t, ".back1", filepath.Ext(p))
				seen = seen || p == want
			}
			if seen {
				return
			}
		case <-timeout:
			t.Fatalf("change to %s not reported", want)
		}
	}
}

func TestWatcherMissingPath(t *testing.T) {
	_, err := NewWatcher([]string{filepath.Join(t.TempDir(), "absent.yaml")}, time.Millisecond, nil)
	assert.Error(t, err)
}
