// Package config provides configuration loading for the skilltui
// application: built-in defaults, an optional YAML file in the config
// directory, SKILLTUI_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	EnvPrefix   = "SKILLTUI"
	DefaultTool = "npx skills"

	dirName        = ".skilltui"
	configName     = "config"
	defaultLogName = "debug.log"
)

// Config is the effective application configuration.
type Config struct {
	Tool    string        `mapstructure:"tool" yaml:"tool"`
	Targets TargetsConfig `mapstructure:"targets" yaml:"targets"`
	Catalog CatalogConfig `mapstructure:"catalog" yaml:"catalog"`
	Runner  RunnerConfig  `mapstructure:"runner" yaml:"runner"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	UI      UIConfig      `mapstructure:"ui" yaml:"ui"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`

	// Source is the config file that was read, if any.
	Source string `mapstructure:"-" yaml:"-"`
}

// TargetsConfig locates the repository list.
type TargetsConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// CatalogConfig controls subcommand discovery.
type CatalogConfig struct {
	TargetCommands []string      `mapstructure:"target_commands" yaml:"target_commands"`
	HelpTimeout    time.Duration `mapstructure:"help_timeout" yaml:"help_timeout"`
}

// MarshalYAML writes the timeout in its human form ("20s").
func (c CatalogConfig) MarshalYAML() (interface{}, error) {
	return struct {
		TargetCommands []string `yaml:"target_commands"`
		HelpTimeout    string   `yaml:"help_timeout"`
	}{c.TargetCommands, c.HelpTimeout.String()}, nil
}

// RunnerConfig selects how child processes are attached.
type RunnerConfig struct {
	Pty bool `mapstructure:"pty" yaml:"pty"`
}

// OutputConfig bounds the output pane buffer.
type OutputConfig struct {
	MaxLines int `mapstructure:"max_lines" yaml:"max_lines"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	NoColor bool `mapstructure:"no_color" yaml:"no_color"`
}

// LogConfig controls the debug log.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// Options tells Load where to look beyond the defaults.
type Options struct {
	// ConfigFile overrides the default <config dir>/config.yaml. Unlike the
	// default location, an explicit file must exist.
	ConfigFile string
	// Flags are bound to their config keys when present.
	Flags *pflag.FlagSet
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"tool":     "tool",
	"targets":  "targets.file",
	"pty":      "runner.pty",
	"no-color": "ui.no_color",
}

// GetConfigDir returns the path to the .skilltui directory
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, dirName), nil
}

// EnsureConfigDir creates the .skilltui directory if it doesn't exist
func EnsureConfigDir() error {
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("tool", DefaultTool)
	v.SetDefault("targets.file", "repos.txt")
	v.SetDefault("catalog.target_commands", []string{"add"})
	v.SetDefault("catalog.help_timeout", 20*time.Second)
	v.SetDefault("runner.pty", false)
	v.SetDefault("output.max_lines", 5000)
	v.SetDefault("ui.no_color", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// Load resolves the configuration. Env var overrides use prefix SKILLTUI_.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else if dir, err := GetConfigDir(); err == nil {
		v.AddConfigPath(dir)
		v.SetConfigName(configName)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag --%s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Source = v.ConfigFileUsed()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate normalizes the configuration and rejects unusable values.
func (c *Config) Validate() error {
	c.Tool = strings.TrimSpace(c.Tool)
	if c.Tool == "" {
		return errors.New("config: tool must not be empty")
	}
	if c.Output.MaxLines < 0 {
		return fmt.Errorf("config: output.max_lines must be >= 0, got %d", c.Output.MaxLines)
	}
	if c.Catalog.HelpTimeout <= 0 {
		return fmt.Errorf("config: catalog.help_timeout must be positive, got %s", c.Catalog.HelpTimeout)
	}

	cmds := c.Catalog.TargetCommands[:0]
	for _, name := range c.Catalog.TargetCommands {
		if name = strings.TrimSpace(name); name != "" {
			cmds = append(cmds, name)
		}
	}
	c.Catalog.TargetCommands = cmds
	return nil
}

// LogPath returns the debug log location, defaulting to the config directory.
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	dir, err := GetConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, defaultLogName)
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return out, nil
}
