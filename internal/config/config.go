package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/fsx/pkg/fsx"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Mode is a permission mode written in octal in fsx.yaml ("0755", 0o750, 644).
type Mode fs.FileMode

// UnmarshalYAML parses the scalar as an octal number.
func (m *Mode) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: mode must be a scalar", node.Line)
	}
	s := strings.TrimPrefix(strings.ToLower(node.Value), "0o")
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return fmt.Errorf("line %d: invalid mode %q: %w", node.Line, node.Value, err)
	}
	*m = Mode(v)
	return nil
}

// MarshalYAML writes the mode as a quoted octal string.
func (m Mode) MarshalYAML() (interface{}, error) {
	return fmt.Sprintf("%04o", uint32(m)), nil
}

// FileMode returns m as an fs.FileMode.
func (m Mode) FileMode() fs.FileMode {
	return fs.FileMode(m)
}

// Config holds the defaults applied by the fsx CLI.
type Config struct {
	DirMode   Mode `yaml:"dir_mode,omitempty"`
	FileMode  Mode `yaml:"file_mode,omitempty"`
	Overwrite bool `yaml:"overwrite,omitempty"`
	Verbose   bool `yaml:"verbose,omitempty"`
}

const ConfigFileName = "fsx.yaml"

// Default returns the configuration used when no fsx.yaml is present.
func Default() *Config {
	return &Config{
		DirMode:  Mode(fsx.DefaultDirMode),
		FileMode: Mode(fsx.DefaultFileMode),
	}
}

// Load reads fsx.yaml from dir.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads the config file at path. Unset modes take their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", fsx.ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects modes carrying bits beyond the permission bits.
func (c *Config) Validate() error {
	if c.DirMode.FileMode()&^fs.ModePerm != 0 {
		return fmt.Errorf("%w: dir_mode %o exceeds 0777", fsx.ErrInvalidConfig, uint32(c.DirMode))
	}
	if c.FileMode.FileMode()&^fs.ModePerm != 0 {
		return fmt.Errorf("%w: file_mode %o exceeds 0777", fsx.ErrInvalidConfig, uint32(c.FileMode))
	}
	return nil
}
