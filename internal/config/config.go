package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Format  string `mapstructure:"format"`
	Quiet   bool   `mapstructure:"quiet"`
	Verbose bool   `mapstructure:"verbose"`

	// Default values for commands
	Defaults DefaultsConfig `mapstructure:"defaults"`

	// Web server settings
	Server ServerConfig `mapstructure:"server"`

	// Monitored database instances, keyed by name
	Instances map[string]Instance `mapstructure:"instances"`
}

// DefaultsConfig holds default values for various commands
type DefaultsConfig struct {
	// Instance used when -i is not given
	Instance string `mapstructure:"instance"`

	// Watch command refresh interval
	Interval string `mapstructure:"interval"`

	// Truncate statement text in table output to this many runes (0 = off)
	InfoWidth int `mapstructure:"info_width"`
}

// ServerConfig holds settings for the serve command
type ServerConfig struct {
	Listen          string `mapstructure:"listen"`
	ShutdownTimeout string `mapstructure:"shutdown_timeout"`
}

// Instance holds connection parameters for one monitored server
type Instance struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	Timeout      string `mapstructure:"timeout"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format:  "auto",
		Quiet:   false,
		Verbose: false,
		Defaults: DefaultsConfig{
			Interval:  "5s",
			InfoWidth: 80,
		},
		Server: ServerConfig{
			Listen:          ":8080",
			ShutdownTimeout: "10s",
		},
		Instances: map[string]Instance{},
	}
}

// Lookup returns the connection parameters for a named instance. The
// second result is false when the instance is not configured; callers
// are expected to abort before touching the database in that case.
func (c *Config) Lookup(name string) (Instance, bool) {
	inst, ok := c.Instances[name]
	if !ok {
		return Instance{}, false
	}
	if inst.Port == 0 {
		inst.Port = 3306
	}
	if inst.Timeout == "" {
		inst.Timeout = "5s"
	}
	return inst, true
}

// InstanceNames returns the configured instance names.
func (c *Config) InstanceNames() []string {
	names := make([]string, 0, len(c.Instances))
	for name := range c.Instances {
		names = append(names, name)
	}
	return names
}

// Load loads configuration from files and environment
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("madw")
	v.SetConfigType("yaml")

	// Config paths in order of precedence, lowest first
	v.AddConfigPath("/etc/madw/")
	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "madw"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
		v.SetConfigName(".madw")
	}
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("MADW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.BindEnv("format", "MADW_FORMAT")
	v.BindEnv("quiet", "MADW_QUIET")
	v.BindEnv("verbose", "MADW_VERBOSE")
	v.BindEnv("defaults.instance", "MADW_INSTANCE")
	v.BindEnv("server.listen", "MADW_LISTEN")

	// Set defaults
	cfg := Default()
	v.SetDefault("format", cfg.Format)
	v.SetDefault("quiet", cfg.Quiet)
	v.SetDefault("verbose", cfg.Verbose)
	v.SetDefault("defaults.interval", cfg.Defaults.Interval)
	v.SetDefault("defaults.info_width", cfg.Defaults.InfoWidth)
	v.SetDefault("server.listen", cfg.Server.Listen)
	v.SetDefault("server.shutdown_timeout", cfg.Server.ShutdownTimeout)

	// Try to read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
