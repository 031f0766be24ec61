// Package config предоставялет структуры и функции для парсинга и загрузки конфига клиента.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Бэкенды хранения выбранного пользователя.
const (
	StateBackendFile  = "file"
	StateBackendRedis = "redis"
	StateBackendNone  = "none"
)

// Config общая структура для хранения настроек
type Config struct {
	Env             string `yaml:"env" env:"ENV" env-default:"local"`
	LogLevel        string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	API             `yaml:"api"`
	State           `yaml:"state"`
	RedisConnection `yaml:"redis_connection"`
}

// API настройки транспорта до REST API
type API struct {
	BaseURL   string        `yaml:"base_url" env:"YAYAYUM_API_BASE" env-required:"true"`
	Token     string        `yaml:"token" env:"YAYAYUM_API_TOKEN"`
	Username  string        `yaml:"username" env:"YAYAYUM_API_USERNAME"`
	Password  string        `yaml:"password" env:"YAYAYUM_API_PASSWORD"`
	Timeout   time.Duration `yaml:"timeout" env:"YAYAYUM_API_TIMEOUT" env-default:"30s"`
	RateLimit float64       `yaml:"rate_limit" env:"YAYAYUM_API_RATE_LIMIT"`
	Burst     int           `yaml:"burst" env:"YAYAYUM_API_BURST" env-default:"1"`
}

// State настройки хранения выбранного пользователя
type State struct {
	Backend string        `yaml:"backend" env:"YAYAYUM_STATE_BACKEND" env-default:"file"`
	Path    string        `yaml:"path" env:"YAYAYUM_STATE_PATH" env-default:".yayayum/state.json"`
	TTL     time.Duration `yaml:"ttl" env:"YAYAYUM_STATE_TTL"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS" env-default:"localhost:6379"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user" env:"REDIS_USER"`
	DB           int           `yaml:"db" env:"REDIS_DB"`
	MaxRetries   int           `yaml:"max_retries" env:"REDIS_MAX_RETRIES"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env:"REDIS_TIMEOUT"`
	KeyPrefix    string        `yaml:"key_prefix" env:"REDIS_KEY_PREFIX" env-default:"yayayum:"`
}

// Load читает конфиг из файла path и переменных окружения. При пустом path
// используются только окружение и значения по умолчанию.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad функция для загрузки конфига по пути из CONFIG_PATH; при ошибке завершает процесс.
func MustLoad() *Config {
	cfg, err := Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func (c *Config) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("api base url is required")
	}
	switch c.State.Backend {
	case StateBackendFile, StateBackendRedis, StateBackendNone:
	default:
		return fmt.Errorf("unknown state backend %q", c.State.Backend)
	}
	if c.Burst < 0 {
		return fmt.Errorf("burst must not be negative")
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"API:\n"+
			"  BaseURL: %s\n"+
			"  Token: %s\n"+
			"  Timeout: %s\n"+
			"  RateLimit: %g (burst %d)\n"+
			"State:\n"+
			"  Backend: %s\n"+
			"  Path: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n",
		c.Env,
		c.BaseURL,
		mask(c.Token),
		c.Timeout,
		c.RateLimit,
		c.Burst,
		c.State.Backend,
		c.State.Path,
		c.AddressRedis,
		c.DB,
	)
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "***"
}
