package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"vacancybot/internal/adapters/out/hh"
	"vacancybot/internal/adapters/out/telegram"
	"vacancybot/internal/core/application/fetcher"
	"vacancybot/internal/core/application/usecases/commands"
	"vacancybot/internal/core/ports"
	"vacancybot/internal/jobs"
	"vacancybot/internal/pkg/retry"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	HTTP     HTTPConfig     `koanf:"http"`
	Database DatabaseConfig `koanf:"database"`
	Redis    RedisConfig    `koanf:"redis"`
	Cache    CacheConfig    `koanf:"cache"`
	HH       HHConfig       `koanf:"hh"`
	Telegram TelegramConfig `koanf:"telegram"`
	Search   SearchConfig   `koanf:"search"`
	Delivery DeliveryConfig `koanf:"delivery"`
	Log      LogConfig      `koanf:"log"`
}

type HTTPConfig struct {
	Port            string        `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name"`
	SslMode  string `koanf:"sslmode"`
}

// RedisConfig selects the Redis result cache when Addr is set; otherwise the
// in-process cache is used.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

type CacheConfig struct {
	TTL time.Duration `koanf:"ttl"`
}

type HHConfig struct {
	BaseURL   string        `koanf:"base_url"`
	UserAgent string        `koanf:"user_agent"`
	Timeout   time.Duration `koanf:"timeout"`
}

type TelegramConfig struct {
	APIURL  string        `koanf:"api_url"`
	Token   string        `koanf:"token"`
	Timeout time.Duration `koanf:"timeout"`
}

type SearchConfig struct {
	PerPage     int           `koanf:"per_page"`
	MaxPages    int           `koanf:"max_pages"`
	PageSize    int           `koanf:"page_size"`
	MaxAttempts int           `koanf:"max_attempts"`
	RetryDelay  time.Duration `koanf:"retry_delay"`
	PageDelay   time.Duration `koanf:"page_delay"`
}

type DeliveryConfig struct {
	Schedule    string        `koanf:"schedule"`
	Timeout     time.Duration `koanf:"timeout"`
	BatchSize   int           `koanf:"batch_size"`
	Concurrency int           `koanf:"concurrency"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// DefaultConfig is the configuration used when nothing overrides it.
func DefaultConfig() Config {
	search := commands.DefaultSearchSettings()
	delivery := commands.DefaultDeliverySettings()

	return Config{
		HTTP:     HTTPConfig{Port: "8080", ShutdownTimeout: 10 * time.Second},
		Database: DatabaseConfig{Host: "localhost", Port: "5432", User: "postgres", Name: "vacancybot", SslMode: "disable"},
		Cache:    CacheConfig{TTL: ports.DefaultResultTTL},
		HH:       HHConfig{BaseURL: hh.DefaultBaseURL, Timeout: hh.DefaultTimeout},
		Telegram: TelegramConfig{APIURL: telegram.DefaultAPIURL, Timeout: telegram.DefaultTimeout},
		Search: SearchConfig{
			PerPage:     search.PerPage,
			MaxPages:    search.MaxPages,
			PageSize:    search.PageSize,
			MaxAttempts: retry.DefaultMaxAttempts,
			RetryDelay:  retry.DefaultBaseDelay,
			PageDelay:   fetcher.DefaultPageDelay,
		},
		Delivery: DeliveryConfig{
			Schedule:    jobs.DefaultDeliverySchedule,
			Timeout:     5 * time.Minute,
			BatchSize:   delivery.BatchSize,
			Concurrency: commands.DefaultTickConcurrency,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig layers the configuration: defaults, then the TOML file at path
// (skipped when path is empty), then environment variables. A .env file in
// the working directory is loaded into the environment first if present.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		k := koanf.New(".")
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return Config{}, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		if err := k.Unmarshal("", &cfg); err != nil {
			return Config{}, fmt.Errorf("error unmarshaling config: %w", err)
		}
	}

	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.HTTP.Port, "HTTP_PORT")
	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")
	setString(&cfg.Database.SslMode, "DB_SSLMODE")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.HH.UserAgent, "HH_USER_AGENT")
	setString(&cfg.Telegram.Token, "TELEGRAM_BOT_TOKEN")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Format, "LOG_FORMAT")

	if v, ok := os.LookupEnv("REDIS_DB"); ok && v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REDIS_DB: %w", err)
		}
		cfg.Redis.DB = db
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// DSN is the PostgreSQL connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SslMode)
}
