package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ArchiveMemory = "memory"
	ArchiveRedis  = "redis"
)

type Config struct {
	Log              Log           `yaml:"log"`
	HTTPPort         string        `yaml:"http-port" env:"CHECKERS_HTTP_PORT" env-default:"9090"`
	GinMode          string        `yaml:"gin-mode" env:"CHECKERS_GIN_MODE" env-default:"release"`
	PollInterval     time.Duration `yaml:"poll-interval" env-default:"1500ms"`
	RoomCodeAttempts int           `yaml:"room-code-attempts" env-default:"32"`
	Archive          string        `yaml:"archive" env:"CHECKERS_ARCHIVE" env-default:"memory"`
	Redis            Redis         `yaml:"redis"`
}

type Log struct {
	Level      string `yaml:"level" env:"CHECKERS_LOG_LEVEL" env-default:"info"`
	File       string `yaml:"file" env:"CHECKERS_LOG_FILE"`
	MaxSizeMB  int    `yaml:"max-size-mb" env-default:"100"`
	MaxBackups int    `yaml:"max-backups" env-default:"3"`
	MaxAgeDays int    `yaml:"max-age-days" env-default:"28"`
}

type Redis struct {
	Host string        `yaml:"host" env:"CHECKERS_REDIS_HOST" env-default:"localhost"`
	Port string        `yaml:"port" env:"CHECKERS_REDIS_PORT" env-default:"6379"`
	TTL  time.Duration `yaml:"ttl" env-default:"24h"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if config.Archive != ArchiveMemory && config.Archive != ArchiveRedis {
		return nil, fmt.Errorf("unknown archive %q, expected %s or %s", config.Archive, ArchiveMemory, ArchiveRedis)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
