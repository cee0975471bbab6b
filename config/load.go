package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/bodnarbalazs/Cs2Ts/errors"
)

var (
	mu            sync.Mutex
	globalConfig  *Config
	viperInstance *viper.Viper
	explicitPath  string

	// sources records where each key was set during the last load
	sources map[string]SourceInfo
	// loadedFiles lists the config files merged during the last load
	loadedFiles []string
)

// UseFile makes Load read path in place of the project config found by
// walking up from the working directory. An empty path restores the
// search. Clears the cached configuration.
func UseFile(path string) {
	mu.Lock()
	defer mu.Unlock()
	explicitPath = path
	resetLocked()
}

// Load reads the layered configuration and validates it. The result is
// cached until Reset.
func Load() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalConfig != nil {
		return globalConfig, nil
	}

	v, err := initViper()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	globalConfig = cfg
	return globalConfig, nil
}

// GetViper returns the Viper instance behind the current configuration
func GetViper() (*viper.Viper, error) {
	mu.Lock()
	defer mu.Unlock()
	return initViper()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &cfg, nil
}

// LoadFromFile loads configuration from a single file on top of the
// defaults, without environment overrides
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}
	return LoadWithViper(v)
}

// Reset clears the cached configuration
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	resetLocked()
}

func resetLocked() {
	globalConfig = nil
	viperInstance = nil
	sources = nil
	loadedFiles = nil
}

// LoadedFiles returns the config files merged by the last load, lowest
// precedence first
func LoadedFiles() []string {
	mu.Lock()
	defer mu.Unlock()
	return append([]string(nil), loadedFiles...)
}

// initViper builds the Viper instance: defaults, then system, user and
// project files, then CS2TS_* environment variables
func initViper() (*viper.Viper, error) {
	if viperInstance != nil {
		return viperInstance, nil
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	sources = make(map[string]SourceInfo)
	loadedFiles = nil
	if err := mergeConfigFiles(v, configPaths()); err != nil {
		return nil, err
	}

	viperInstance = v
	return v, nil
}

type configPath struct {
	path   string
	source ConfigSource
}

// configPaths lists candidate files, lowest precedence first
func configPaths() []configPath {
	paths := []configPath{{SystemPath, SourceSystem}}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, configPath{filepath.Join(home, UserDirName, FileName), SourceUser})
	}

	if explicitPath != "" {
		return append(paths, configPath{explicitPath, SourceFlag})
	}
	if wd, err := os.Getwd(); err == nil {
		if project := FindProjectConfig(wd); project != "" {
			paths = append(paths, configPath{project, SourceProject})
		}
	}
	return paths
}

// FindProjectConfig searches for cs2ts.toml by walking up from dir.
// Returns the first file found, or "" when there is none.
func FindProjectConfig(dir string) string {
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// mergeConfigFiles merges existing files in order, key by key, recording
// each key's source. An explicitly requested file must exist.
func mergeConfigFiles(v *viper.Viper, paths []configPath) error {
	for _, cp := range paths {
		if _, err := os.Stat(cp.path); err != nil {
			if cp.source == SourceFlag {
				return errors.Wrapf(err, "config file %s", cp.path)
			}
			continue
		}

		fileViper := viper.New()
		fileViper.SetConfigFile(cp.path)
		fileViper.SetConfigType("toml")
		if err := fileViper.ReadInConfig(); err != nil {
			return errors.WithHint(
				errors.Wrapf(errors.Wrap(errors.ErrInvalidConfig, err.Error()), "config file %s", cp.path),
				"run 'cs2ts config validate' after fixing the file")
		}

		for _, key := range fileViper.AllKeys() {
			v.Set(key, fileViper.Get(key))
			sources[key] = SourceInfo{Source: cp.source, Path: cp.path}
		}
		loadedFiles = append(loadedFiles, cp.path)
	}
	return nil
}
