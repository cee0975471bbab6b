package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/bodnarbalazs/Cs2Ts/errors"
	"github.com/bodnarbalazs/Cs2Ts/logger"
)

// Starter returns the configuration written by WriteStarter: the defaults
// with the given output directory and manifests
func Starter(outputDir string, manifests []string) Config {
	cfg := Config{
		Input: InputConfig{
			Manifests: manifests,
			Include:   []string{},
			Exclude:   []string{"**/obj/**", "**/bin/**"},
		},
		Output: OutputConfig{
			Dir:    outputDir,
			Banner: true,
			Index:  true,
			Clean:  true,
		},
		Generate: GenerateConfig{RecordStyle: RecordStylePartial},
		Watch:    WatchConfig{DebounceMS: 300},
	}
	if len(cfg.Input.Manifests) == 0 {
		cfg.Input.Manifests = []string{"cs2ts.manifest.yaml"}
	}
	return cfg
}

// EncodeTOML renders cfg as a TOML document
func EncodeTOML(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# cs2ts configuration\n# Every key can be overridden with a CS2TS_* environment variable.\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to encode config")
	}
	return buf.Bytes(), nil
}

// WriteStarter writes a starter config file. An existing file is only
// replaced when force is set, after rotating backups.
func WriteStarter(path string, cfg Config, force bool) error {
	if _, err := os.Stat(path); err == nil {
		if !force {
			return errors.WithHint(errors.Newf("%s already exists", path), "pass --force to overwrite it")
		}
		if err := createBackup(path); err != nil {
			return errors.Wrap(err, "failed to create backup")
		}
	}

	data, err := EncodeTOML(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), DefaultDirPerm); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}
	if err := os.WriteFile(path, data, DefaultFilePerm); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// createBackup creates rotating backups (.back1, .back2, .back3) before
// overwriting a config file
func createBackup(configPath string) error {
	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		logger.Warnw("Failed to delete old backup",
			logger.FieldFile, back3,
			logger.FieldError, err)
	}

	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}
	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}
	if err := os.WriteFile(back1, content, DefaultFilePerm); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}
	return nil
}

// isBackupFile reports whether path is a rotated config backup
func isBackupFile(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".back1" || ext == ".back2" || ext == ".back3"
}
