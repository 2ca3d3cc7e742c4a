package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file name looked up in the search path.
const FileName = "matrixpong.yaml"

// Load loads the configuration.
// Search order: customPath -> ~/.matrixpong/config.yaml -> ./configs/matrixpong.yaml -> embedded default
//
// Values missing from a file keep their defaults. The result is validated.
func Load(customPath string) (Config, error) {
	cfg, _, err := LoadWithSource(customPath)
	return cfg, err
}

// LoadWithSource is Load that also reports which source was used.
func LoadWithSource(customPath string) (Config, string, error) {
	cfg := DefaultConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, "", fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, "", fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		keepFileSpeeds(data, &cfg)
		return cfg, customPath, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := UserPath("config.yaml"); userCfgPath != "" {
		if c, ok := tryFile(userCfgPath); ok {
			return c, userCfgPath, c.Validate()
		}
	}

	// Try local configs directory
	local := filepath.Join("configs", FileName)
	if c, ok := tryFile(local); ok {
		return c, local, c.Validate()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return DefaultConfig(), "built-in", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "embedded", cfg.Validate()
}

// tryFile reads and parses path over the defaults. Unreadable or
// malformed files are skipped.
func tryFile(path string) (Config, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, false
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, false
	}
	keepFileSpeeds(data, &cfg)
	return cfg, true
}

// keepFileSpeeds switches cfg to the fixed preset when the file sets ball
// speeds but names no difficulty, so the default preset does not replace them.
func keepFileSpeeds(data []byte, cfg *Config) {
	var set struct {
		Difficulty *string `yaml:"difficulty"`
		Physics    struct {
			StartSpeed     *float64 `yaml:"start_speed"`
			SpeedIncrement *float64 `yaml:"speed_increment"`
		} `yaml:"physics"`
	}
	if err := yaml.Unmarshal(data, &set); err != nil || set.Difficulty != nil {
		return
	}
	if set.Physics.StartSpeed != nil || set.Physics.SpeedIncrement != nil {
		cfg.Difficulty = DifficultyFixed
	}
}

// UserPath returns a path inside ~/.matrixpong, or empty if home is unavailable.
func UserPath(elem ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home, ".matrixpong"}, elem...)...)
}

// Marshal renders the configuration as YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
