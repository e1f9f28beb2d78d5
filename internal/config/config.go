package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	fileName = "config.yml"
	appDir   = "tictactoe"
)

var ErrUnknownLogLevel = errors.New("unknown log level")

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis    Redis  `yaml:"redis"`
	Search   Search `yaml:"search"`
}

type Redis struct {
	Host    string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	GameTTL time.Duration `yaml:"game-ttl" env:"REDIS_GAME_TTL" env-default:"24h"`
}

type Search struct {
	Order    string `yaml:"order" env:"SEARCH_ORDER" env-default:"row-major"`
	Parallel bool   `yaml:"parallel" env:"SEARCH_PARALLEL" env-default:"false"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load reads the file at path, or the first config.yml found by Lookup when path
// is empty. Without any file the environment and defaults are used.
func Load(path string) (*Config, error) {
	config := &Config{}

	if path == "" {
		path = Lookup()
	}

	if path == "" {
		if err := cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}

		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return config, nil
}

// Lookup finds config.yml in the working directory, then in the XDG config directories.
func Lookup() string {
	if baseDir, err := os.Getwd(); err == nil {
		local := filepath.Join(baseDir, fileName)
		if _, err = os.Stat(local); err == nil {
			return local
		}
	}

	path, err := xdg.SearchConfigFile(filepath.Join(appDir, fileName))
	if err != nil {
		return ""
	}

	return path
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// SlogLevel maps log-level to a slog level.
func (that *Config) SlogLevel() (slog.Level, error) {
	switch that.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLogLevel, that.LogLevel)
	}
}
