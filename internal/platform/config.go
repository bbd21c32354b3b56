package platform

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/TimRka/Notes-manager-PL/pkg/core"
	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the file looked up in the working directory and its parents.
const ConfigFileName = "notebook.yaml"

// ConfigEnv names the environment variable pointing at a config file.
const ConfigEnv = "NOTEBOOK_CONFIG"

// Config is the on-disk configuration of the CLI.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`

	// File is the absolute path the config was read from, empty for built-in defaults.
	File string `yaml:"-"`
}

// StorageConfig selects and tunes the repository.
type StorageConfig struct {
	Adapter    string `yaml:"adapter" default:"fs"`
	Path       string `yaml:"path" default:"Notes.json"`
	IDPolicy   string `yaml:"id-policy" default:"max"`
	Strict     bool   `yaml:"strict"`
	Versioning bool   `yaml:"versioning"`
	SystemDir  string `yaml:"system-dir" default:".notebook"`
}

// LogConfig sets the log level (debug, info, warn or error) and an optional
// rotating log file. With File empty, logs go to stderr.
type LogConfig struct {
	Level      string `yaml:"level" default:"info"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max-size" default:"10"`
	MaxBackups int    `yaml:"max-backups" default:"5"`
	MaxAge     int    `yaml:"max-age" default:"30"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() (*Config, error) {
	c := new(Config)
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "set default config failed")
	}
	return c, nil
}

// LoadConfig reads a YAML config file over the built-in defaults.
func LoadConfig(f string) (*Config, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, errors.Wrap(err, "resolve config path failed")
	}
	realpath = filepath.Clean(realpath)

	c, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	c.File = realpath

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, errors.Wrap(err, "read config file failed")
	}

	if err := yaml.Unmarshal(file, c); err != nil {
		return nil, errors.Wrap(err, "parse config file failed")
	}

	// Fill fields present in the file but left empty.
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "re-set default config failed")
	}

	if _, err := core.ParseIDPolicy(c.Storage.IDPolicy); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", realpath)
	}
	return c, nil
}

// ResolveConfig finds and loads the config: the explicit path first, then
// $NOTEBOOK_CONFIG, then notebook.yaml in the working directory or its
// nearest ancestor. Without any of them the built-in defaults apply.
func ResolveConfig(explicit string) (*Config, error) {
	if explicit != "" {
		return LoadConfig(explicit)
	}
	if env := os.Getenv(ConfigEnv); env != "" {
		return LoadConfig(env)
	}

	wd, err := os.Getwd()
	if err == nil {
		if root, err := FindRoot(wd); err == nil {
			return LoadConfig(filepath.Join(root, ConfigFileName))
		}
	}
	return DefaultConfig()
}

// StorePath returns the store location. A relative path in a config file is
// resolved against the directory of that file.
func (c *Config) StorePath() string {
	p := c.Storage.Path
	if c.File != "" && !filepath.IsAbs(p) {
		return filepath.Join(filepath.Dir(c.File), p)
	}
	return p
}

// Options converts the config into functional options.
func (c *Config) Options() ([]Option, error) {
	policy, err := core.ParseIDPolicy(c.Storage.IDPolicy)
	if err != nil {
		return nil, err
	}
	return []Option{
		WithAdapter(c.Storage.Adapter),
		WithIDPolicy(policy),
		WithStrict(c.Storage.Strict),
		WithVersioning(c.Storage.Versioning),
		WithSystemDir(c.Storage.SystemDir),
	}, nil
}

// LogLevel parses the configured level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
