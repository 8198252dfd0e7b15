package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// localConfigPath is checked relative to the working directory.
const localConfigPath = "configs/runner.yaml"

// ResolvePath returns the config file that Load would read.
// Search order: customPath -> ~/.coinrun/configs/runner.yaml -> ./configs/runner.yaml.
// An empty result means the embedded default is used.
func ResolvePath(customPath string) string {
	if customPath != "" {
		return customPath
	}
	if p := userConfigPath("runner.yaml"); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if _, err := os.Stat(localConfigPath); err == nil {
		return localConfigPath
	}
	return ""
}

// Load loads the runner configuration.
// A custom path must exist and parse; files found on the search path are
// skipped silently when broken, falling back to the embedded default.
func Load(customPath string) (RunnerConfig, error) {
	cfg, _, err := LoadSource(customPath)
	return cfg, err
}

// LoadSource is Load that also returns the file the config came from.
// An empty source means the embedded default was used.
func LoadSource(customPath string) (RunnerConfig, string, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RunnerConfig{}, "", fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return RunnerConfig{}, "", fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	if p := ResolvePath(""); p != "" {
		if data, err := os.ReadFile(p); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, p, nil
			}
		}
	}

	cfg, err := Parse(defaultRunnerYAML)
	if err != nil {
		return DefaultRunnerConfig(), "", nil
	}
	return cfg, "", nil
}

// Parse decodes YAML over the built-in defaults, so partial files only
// override what they mention. The result is validated.
func Parse(data []byte) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// An empty document leaves the defaults untouched.
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return RunnerConfig{}, err
	}

	if err := cfg.Validate(); err != nil {
		return RunnerConfig{}, err
	}
	return cfg, nil
}

// Encode serializes a config to YAML.
func Encode(cfg RunnerConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".coinrun", "configs", filename)
}
