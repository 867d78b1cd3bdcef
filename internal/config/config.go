package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageRedis  = "redis"
	StorageMemory = "memory"

	// PathEnv names a config file that wins over every other location.
	PathEnv = "CONFIG_PATH"

	localConfigFile = "config.yml"
	xdgConfigFile   = "alphagames/config.yml"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	LogLevel   string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string        `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Storage    string        `yaml:"storage" env:"STORAGE" env-default:"redis"`
	SessionTTL time.Duration `yaml:"session-ttl" env:"SESSION_TTL" env-default:"24h"`
	Redis      Redis         `yaml:"redis"`
	Postgres   Postgres      `yaml:"postgres"`
	Kafka      Kafka         `yaml:"kafka"`
	Bot        Bot           `yaml:"bot"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// Postgres keeps finished games. An empty DSN turns the results store off.
type Postgres struct {
	DSN string `yaml:"dsn" env:"POSTGRES_DSN"`
}

// Kafka receives game analytics. Without brokers nothing is published.
type Kafka struct {
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS"`
	Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"game-events"`
}

type Bot struct {
	Seed                int64         `yaml:"seed" env:"BOT_SEED"`
	CheckersDelay       time.Duration `yaml:"checkers-delay" env:"BOT_CHECKERS_DELAY" env-default:"1s"`
	TicTacToeDelay      time.Duration `yaml:"tictactoe-delay" env:"BOT_TICTACTOE_DELAY" env-default:"500ms"`
	ConnectFourDelay    time.Duration `yaml:"connectfour-delay" env:"BOT_CONNECTFOUR_DELAY" env-default:"1s"`
	TicTacToeStrategy   string        `yaml:"tictactoe-strategy" env:"BOT_TICTACTOE_STRATEGY" env-default:"winblock"`
	ConnectFourStrategy string        `yaml:"connectfour-strategy" env:"BOT_CONNECTFOUR_STRATEGY" env-default:"random"`
}

// Load reads the config file at path, or only defaults and environment when path is empty.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(config)
	} else {
		err = cleanenv.ReadConfig(path, config)
	}

	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err = config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// MustLoad - load all configurations from the first config file found.
func MustLoad() *Config {
	config, err := Load(ResolvePath())
	if err != nil {
		panic(err)
	}

	return config
}

// ResolvePath looks for the config file in $CONFIG_PATH, the working directory and
// the XDG config directories, in that order. It returns "" when there is none.
func ResolvePath() string {
	if path := os.Getenv(PathEnv); path != "" {
		return path
	}

	if _, err := os.Stat(localConfigFile); err == nil {
		return localConfigFile
	}

	if path, err := xdg.SearchConfigFile(xdgConfigFile); err == nil {
		return path
	}

	return ""
}

func (that *Config) Validate() error {
	if that.Storage != StorageRedis && that.Storage != StorageMemory {
		return fmt.Errorf("%w: storage must be %q or %q, got %q", ErrInvalidConfig, StorageRedis, StorageMemory, that.Storage)
	}

	if that.SessionTTL < 0 {
		return fmt.Errorf("%w: session-ttl must not be negative", ErrInvalidConfig)
	}

	for name, delay := range map[string]time.Duration{
		"checkers-delay":    that.Bot.CheckersDelay,
		"tictactoe-delay":   that.Bot.TicTacToeDelay,
		"connectfour-delay": that.Bot.ConnectFourDelay,
	} {
		if delay < 0 {
			return fmt.Errorf("%w: bot %s must not be negative", ErrInvalidConfig, name)
		}
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
