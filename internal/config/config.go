package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Match controls how input field names are matched to model variables.
type Match struct {
	CaseInsensitive bool `yaml:"case_insensitive"`
	TrimSpace       bool `yaml:"trim_space"`
}

// Log controls diagnostic logging.
type Log struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Config is the in-memory representation of ~/.mvx/mvx.yaml.
type Config struct {
	LicensePath string `yaml:"license_path"`
	ModelIndex  int    `yaml:"model_index,omitempty"`
	// MissingValue is reported for model inputs with no value. Nil means NaN.
	MissingValue *float64 `yaml:"missing_value,omitempty"`
	Delimiter    string   `yaml:"delimiter,omitempty"`
	Match        Match    `yaml:"match"`
	Log          Log      `yaml:"log"`
}

// MvxDir returns the absolute path to ~/.mvx/.
func MvxDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".mvx"), nil
}

// ConfigPath returns the absolute path to ~/.mvx/mvx.yaml.
func ConfigPath() (string, error) {
	dir, err := MvxDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "mvx.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultConfig returns the Config used when no file exists and written by mvx init.
func DefaultConfig() (*Config, error) {
	dir, err := MvxDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		LicensePath: filepath.Join(dir, "license.yaml"),
		ModelIndex:  1,
		Delimiter:   ",",
		Log: Log{
			Level:  "info",
			Format: "auto",
		},
	}, nil
}

// Load reads ~/.mvx/mvx.yaml, falling back to defaults when it does not exist.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path, falling back to defaults when it does
// not exist. Environment overrides are applied last.
func LoadFrom(path string) (*Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.LicensePath, err = ExpandPath(cfg.LicensePath)
	if err != nil {
		return nil, err
	}
	if cfg.ModelIndex <= 0 {
		cfg.ModelIndex = 1
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, err := GetConfigValue("MVX_LICENSE_FILE"); err != nil {
		return err
	} else if v != "" {
		c.LicensePath = v
	}
	if v, err := GetConfigValue("MVX_LOG_LEVEL"); err != nil {
		return err
	} else if v != "" {
		c.Log.Level = v
	}
	return nil
}

func (c *Config) validate() error {
	if c.Delimiter != "" && len([]rune(c.Delimiter)) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter)
	}
	return nil
}

// DelimiterRune returns the configured delimiter, ',' when unset.
func (c *Config) DelimiterRune() rune {
	if c.Delimiter == "" {
		return ','
	}
	return []rune(c.Delimiter)[0]
}

// Save marshals cfg and writes it to path, creating the parent directory.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}
