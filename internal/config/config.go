package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Agent   AgentConfig   `mapstructure:"agent"`
	Eval    EvalConfig    `mapstructure:"eval"`
	Env     EnvConfig     `mapstructure:"env"`
	Render  RenderConfig  `mapstructure:"render"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// AgentConfig holds agent settings
type AgentConfig struct {
	Seed int64 `mapstructure:"seed"`
}

// EvalConfig holds evaluation run settings
type EvalConfig struct {
	Episodes int    `mapstructure:"episodes"`
	MaxSteps int    `mapstructure:"max_steps"`
	PlotPath string `mapstructure:"plot_path"`
}

// EnvConfig holds built-in environment settings
type EnvConfig struct {
	Width    int `mapstructure:"width"`
	Height   int `mapstructure:"height"`
	Ghosts   int `mapstructure:"ghosts"`
	Lives    int `mapstructure:"lives"`
	MaxTicks int `mapstructure:"max_ticks"`
}

// RenderConfig holds render-path settings
type RenderConfig struct {
	StepDelayMs int `mapstructure:"step_delay_ms"`
}

// UIConfig holds display window settings
type UIConfig struct {
	Scale          int    `mapstructure:"scale"`
	ReplayInterval int    `mapstructure:"replay_interval"`
	Title          string `mapstructure:"title"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Agent defaults
	v.SetDefault("agent.seed", 42)

	// Evaluation defaults
	v.SetDefault("eval.episodes", 5)
	v.SetDefault("eval.max_steps", 0)
	v.SetDefault("eval.plot_path", "")

	// Environment defaults
	v.SetDefault("env.width", 19)
	v.SetDefault("env.height", 15)
	v.SetDefault("env.ghosts", 3)
	v.SetDefault("env.lives", 3)
	v.SetDefault("env.max_ticks", 2000)

	// Render defaults
	v.SetDefault("render.step_delay_ms", 20)

	// UI defaults
	v.SetDefault("ui.scale", 3)
	v.SetDefault("ui.replay_interval", 2)
	v.SetDefault("ui.title", "Pacman AI")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/pacman-ai")
	}

	// Set environment variable prefix
	v.SetEnvPrefix("PACAI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if configPath != "" {
			// Specific file requested but not found - that's ok, use defaults
		} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// For default locations, only ignore ConfigFileNotFoundError
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Unmarshal into config struct
	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// Validate configuration
	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	// Re-unmarshal to update struct
	v.Unmarshal(cfg)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file
func WatchConfig(onChange func()) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		// Re-unmarshal on change
		v.Unmarshal(cfg)
		if onChange != nil {
			onChange()
		}
	})
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Eval.Episodes <= 0 {
		return fmt.Errorf("eval.episodes must be positive")
	}
	if c.Eval.MaxSteps < 0 {
		return fmt.Errorf("eval.max_steps must be non-negative")
	}

	if c.Env.Width <= 4 || c.Env.Height <= 4 {
		return fmt.Errorf("env dimensions must be greater than 4")
	}
	if c.Env.Ghosts < 1 {
		return fmt.Errorf("env.ghosts must be at least 1")
	}
	if c.Env.Lives < 1 {
		return fmt.Errorf("env.lives must be at least 1")
	}
	if c.Env.MaxTicks < 0 {
		return fmt.Errorf("env.max_ticks must be non-negative")
	}

	if c.Render.StepDelayMs < 0 {
		return fmt.Errorf("render.step_delay_ms must be non-negative")
	}

	if c.UI.Scale <= 0 {
		return fmt.Errorf("ui.scale must be positive")
	}
	if c.UI.ReplayInterval <= 0 {
		return fmt.Errorf("ui.replay_interval must be positive")
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json")
	}

	return nil
}
