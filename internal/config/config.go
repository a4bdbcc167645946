package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/viper"
)

// Keys used in config files, LOGSCAN_* env vars and bound flags.
const (
	KeyLogDirectory = "log_directory"
	KeyPattern      = "pattern"
	KeyAddr         = "addr"
	KeyDebounce     = "debounce"
)

const (
	DefaultLogDirectory = "logs"
	DefaultPattern      = "app_debug_*.log"
	DefaultAddr         = ":8080"
	DefaultDebounce     = 250 * time.Millisecond
)

// Config controls where logscan looks for logs and how it serves results.
type Config struct {
	LogDirectory string        `mapstructure:"log_directory"`
	Pattern      string        `mapstructure:"pattern"`
	Addr         string        `mapstructure:"addr"`
	Debounce     time.Duration `mapstructure:"debounce"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogDirectory: DefaultLogDirectory,
		Pattern:      DefaultPattern,
		Addr:         DefaultAddr,
		Debounce:     DefaultDebounce,
	}
}

// SetDefaults registers the built-in values on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyLogDirectory, d.LogDirectory)
	v.SetDefault(KeyPattern, d.Pattern)
	v.SetDefault(KeyAddr, d.Addr)
	v.SetDefault(KeyDebounce, d.Debounce)
}

// Load builds a validated Config from v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		LogDirectory: v.GetString(KeyLogDirectory),
		Pattern:      v.GetString(KeyPattern),
		Addr:         v.GetString(KeyAddr),
		Debounce:     v.GetDuration(KeyDebounce),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration can be used.
func (c Config) Validate() error {
	var errs []error
	if c.LogDirectory == "" {
		errs = append(errs, errors.New("log directory must not be empty"))
	}
	if c.Pattern == "" {
		errs = append(errs, errors.New("pattern must not be empty"))
	} else if !doublestar.ValidatePattern(c.Pattern) {
		errs = append(errs, fmt.Errorf("invalid pattern %q", c.Pattern))
	}
	if c.Debounce < 0 {
		errs = append(errs, fmt.Errorf("debounce must not be negative, got %s", c.Debounce))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
