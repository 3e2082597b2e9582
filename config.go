package tetraxr

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/tanema/gween/ease"
)

// EnvPrefix is the prefix of environment variables overriding configuration values. Nested keys are separated
// by a double underscore, so TETRAXR__PLAYSPACE__NAME sets playspace.name.
const EnvPrefix = "TETRAXR__"

// ErrUnsupportedConfig is returned when a configuration value is outside of the supported set.
var ErrUnsupportedConfig = errors.New("unsupported configuration value")

// Config holds every tunable of a Runtime.
type Config struct {
	Playspace  PlayspaceConfig  `koanf:"playspace"`
	Camera     CameraConfig     `koanf:"camera"`
	Dispatcher DispatcherConfig `koanf:"dispatcher"`
	Teleport   TeleportConfig   `koanf:"teleport"`
	Logging    LoggingConfig    `koanf:"logging"`
	Metrics    MetricsConfig    `koanf:"metrics"`
}

// PlayspaceConfig configures the Playspace.
type PlayspaceConfig struct {
	Name string `koanf:"name"` // reserved name of the playspace node
}

// CameraConfig configures how the main camera is found.
type CameraConfig struct {
	Tag string `koanf:"tag"` // tag identifying the main camera
}

// DispatcherConfig configures the Dispatcher.
type DispatcherConfig struct {
	Name string `koanf:"name"` // name of the node hosting the deferred action pump
}

// TeleportConfig configures the Teleporter's tween.
type TeleportConfig struct {
	Duration time.Duration `koanf:"duration"` // 0 teleports instantly
	Easing   string        `koanf:"easing"`   // linear|in-out-quad|out-cubic|in-out-sine
}

// LoggingConfig configures the zap logger built by NewLogger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // "json" or "console"
}

// MetricsConfig configures the Prometheus metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Address string `koanf:"address"`
}

var easings = map[string]ease.TweenFunc{
	"linear":      ease.Linear,
	"in-out-quad": ease.InOutQuad,
	"out-cubic":   ease.OutCubic,
	"in-out-sine": ease.InOutSine,
}

// EasingFunc returns the tween function for the configured easing name.
func (c TeleportConfig) EasingFunc() (ease.TweenFunc, error) {
	fn, ok := easings[c.Easing]
	if !ok {
		return nil, fmt.Errorf("teleport easing %q: %w", c.Easing, ErrUnsupportedConfig)
	}
	return fn, nil
}

// DefaultConfig returns a Config with every value set to its default.
func DefaultConfig() Config {
	var cfg Config
	applyDefaults(&cfg)
	return cfg
}

// LoadConfig merges the YAML file at path (if present) with environment variables, then fills in defaults.
// An empty path or a missing file is not an error.
func LoadConfig(path string) (Config, error) {

	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil

}

// Validate checks enumerated values.
func (c Config) Validate() error {
	if _, err := c.Teleport.EasingFunc(); err != nil {
		return err
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("logging format %q: %w", c.Logging.Format, ErrUnsupportedConfig)
	}
	if c.Teleport.Duration < 0 {
		return fmt.Errorf("teleport duration %s: %w", c.Teleport.Duration, ErrUnsupportedConfig)
	}
	return nil
}

func applyDefaults(c *Config) {
	if c.Playspace.Name == "" {
		c.Playspace.Name = DefaultPlayspaceName
	}
	if c.Camera.Tag == "" {
		c.Camera.Tag = DefaultMainCameraTag
	}
	if c.Dispatcher.Name == "" {
		c.Dispatcher.Name = DefaultDispatcherName
	}
	if c.Teleport.Easing == "" {
		c.Teleport.Easing = "in-out-quad"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Metrics.Address == "" {
		c.Metrics.Address = ":9090"
	}
}
