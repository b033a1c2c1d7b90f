package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalPath is the project-relative config location checked by Load.
const LocalPath = "configs/flappy.yaml"

// Load loads the game configuration.
// Search order: customPath -> ~/.flapper/configs/flappy.yaml -> ./configs/flappy.yaml -> embedded default.
// Only an explicitly requested file is allowed to fail; the others are skipped
// when missing or unreadable. The result is validated before it is returned.
func Load(customPath string) (GameConfig, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	if userCfgPath := userConfigPath("flappy.yaml"); userCfgPath != "" {
		if cfg, err := loadFile(userCfgPath); err == nil {
			return cfg, cfg.Validate()
		}
	}

	if cfg, err := loadFile(LocalPath); err == nil {
		return cfg, cfg.Validate()
	}

	cfg, err := parse(defaultYAML)
	if err != nil {
		return DefaultConfig(), nil
	}
	return cfg, cfg.Validate()
}

// loadFile reads and parses a YAML file on top of the defaults, so a partial
// file only overrides the keys it names.
func loadFile(path string) (GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return GameConfig{}, fmt.Errorf("config: cannot read %s: %w", path, err)
	}
	cfg, err := parse(data)
	if err != nil {
		return GameConfig{}, fmt.Errorf("config: cannot parse %s: %w", path, err)
	}
	return cfg, nil
}

func parse(data []byte) (GameConfig, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return GameConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flapper", "configs", filename)
}
