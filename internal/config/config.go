// Package config loads runner settings from an optional YAML file and
// DISPATCH_* environment variables.
package config

import (
	"os"
	"strings"
	"time"

	apperrors "github.com/maxkimambo/dispatch/internal/errors"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	KeyLatency       = "latency"
	KeyToast         = "toast"
	KeyMainQueueSize = "main_queue_size"
	KeyIOParallelism = "io_parallelism"

	EnvPrefix = "DISPATCH"
)

// Three seconds per call and a long toast.
const (
	DefaultLatency       = 3 * time.Second
	DefaultToast         = "long"
	DefaultMainQueueSize = 16
	DefaultIOParallelism = 4
)

// Config holds everything the run command needs
type Config struct {
	Latency       time.Duration
	Toast         string
	MainQueueSize int
	IOParallelism int
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Latency:       DefaultLatency,
		Toast:         DefaultToast,
		MainQueueSize: DefaultMainQueueSize,
		IOParallelism: DefaultIOParallelism,
	}
}

// Load reads configPath (if non-empty) and the environment on top of the defaults.
// A missing file named explicitly is an error; an empty path skips the file.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetDefault(KeyLatency, DefaultLatency.String())
	v.SetDefault(KeyToast, DefaultToast)
	v.SetDefault(KeyMainQueueSize, DefaultMainQueueSize)
	v.SetDefault(KeyIOParallelism, DefaultIOParallelism)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, apperrors.NewConfigReadError(configPath, err)
		}
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, apperrors.NewConfigReadError(configPath, err)
		}
	}

	latency, err := time.ParseDuration(v.GetString(KeyLatency))
	if err != nil {
		return nil, apperrors.NewConfigParseError(KeyLatency, err)
	}

	queueSize, err := intSetting(v, KeyMainQueueSize)
	if err != nil {
		return nil, err
	}
	parallelism, err := intSetting(v, KeyIOParallelism)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Latency:       latency,
		Toast:         strings.ToLower(strings.TrimSpace(v.GetString(KeyToast))),
		MainQueueSize: queueSize,
		IOParallelism: parallelism,
	}
	return cfg, nil
}

// intSetting rejects values viper's GetInt would silently turn into 0
func intSetting(v *viper.Viper, key string) (int, error) {
	n, err := cast.ToIntE(v.Get(key))
	if err != nil {
		return 0, apperrors.NewConfigParseError(key, err)
	}
	return n, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Latency < 0 {
		return apperrors.NewLatencyError(c.Latency)
	}
	if c.Toast != "short" && c.Toast != "long" {
		return apperrors.NewToastLengthError(c.Toast)
	}
	if c.MainQueueSize < 1 {
		return apperrors.NewLimitError(KeyMainQueueSize, c.MainQueueSize)
	}
	if c.IOParallelism < 1 {
		return apperrors.NewLimitError(KeyIOParallelism, c.IOParallelism)
	}
	return nil
}
