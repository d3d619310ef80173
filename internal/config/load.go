package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load(fl *Flags) (*Config, error) {
	cfg := Default()

	// Explicit path takes priority
	configPath := fl.Config
	if configPath == "" {
		configPath = findConfigFile(fl.fs.Arg(0))
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	fl.apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// modelConfigName is the per-model config file, looked up in the
// directory holding the model.
const modelConfigName = "flatshade.yaml"

// findConfigFile returns the first config that exists: one next to the
// model, then ./config.yaml, then the user config dir. Empty means none.
func findConfigFile(model string) string {
	var candidates []string
	if model != "" {
		candidates = append(candidates, filepath.Join(filepath.Dir(model), modelConfigName))
	}
	candidates = append(candidates, "config.yaml", filepath.Join(ConfigDir(), "config.yaml"))

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the flatshade directory under the user config dir.
func ConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "flatshade")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "flatshade")
}

// loadFromFile merges the YAML document at path over cfg. Keys the file
// leaves out keep their current values.
func loadFromFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
