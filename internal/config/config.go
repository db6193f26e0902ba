package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Calculator CalculatorConfig `mapstructure:"calculator"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
	Log        LogConfig        `mapstructure:"log"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// CalculatorConfig holds keypad and session settings.
type CalculatorConfig struct {
	Locale        string `mapstructure:"locale"`
	GreetingAfter int    `mapstructure:"greeting_after"`
	Greeting      string `mapstructure:"greeting"`
	MaxSessions   int    `mapstructure:"max_sessions"`
}

// TelemetryConfig toggles optional exporters.
type TelemetryConfig struct {
	OTLPLogs bool `mapstructure:"otlp_logs"`
}

// LogConfig holds logging settings for the terminal client.
type LogConfig struct {
	File string `mapstructure:"file"`
}

// Load reads configuration from file and env. Env var overrides use prefix KEYPAD_,
// e.g. KEYPAD_SERVER_ADDR or KEYPAD_CALCULATOR_LOCALE.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("calculator.locale", "en-US")
	v.SetDefault("calculator.greeting_after", 3)
	v.SetDefault("calculator.greeting", "Hello World")
	v.SetDefault("calculator.max_sessions", 10000)
	v.SetDefault("telemetry.otlp_logs", false)
	v.SetDefault("log.file", "")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("KEYPAD_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "keypad"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("KEYPAD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicit KEYPAD_CONFIG must exist and parse
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

