package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	LogLevel  string  `yaml:"log-level" env:"TICTACTOE_LOG_LEVEL" env-default:"info"`
	LogFormat string  `yaml:"log-format" env:"TICTACTOE_LOG_FORMAT" env-default:"json"`
	LogFile   string  `yaml:"log-file" env:"TICTACTOE_LOG_FILE" env-default:"tictactoe.log"`
	SessionID string  `yaml:"session-id" env:"TICTACTOE_SESSION_ID" env-default:"local"`
	Storage   Storage `yaml:"storage"`
	UI        UI      `yaml:"ui"`
}

type Storage struct {
	Driver string `yaml:"driver" env:"TICTACTOE_STORAGE_DRIVER" env-default:"memory"`
	Redis  Redis  `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env:"TICTACTOE_REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"TICTACTOE_REDIS_PORT" env-default:"6379"`
}

// UI - AlertSticky keeps outcome alerts on screen until a key is pressed.
type UI struct {
	AlertTimeout time.Duration `yaml:"alert-timeout" env:"TICTACTOE_UI_ALERT_TIMEOUT" env-default:"3s"`
	AlertSticky  bool          `yaml:"alert-sticky" env:"TICTACTOE_UI_ALERT_STICKY" env-default:"false"`
	NoColor      bool          `yaml:"no-color" env:"TICTACTOE_NO_COLOR" env-default:"false"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads the config file at path, overridden by environment variables.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch that.Storage.Driver {
	case StorageMemory, StorageRedis:
	default:
		return fmt.Errorf("unknown storage driver %q", that.Storage.Driver)
	}

	switch that.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", that.LogLevel)
	}

	switch that.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("unknown log format %q", that.LogFormat)
	}

	if that.SessionID == "" {
		return errors.New("session-id must not be empty")
	}

	if that.UI.AlertTimeout <= 0 {
		return errors.New("ui.alert-timeout must be positive")
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
