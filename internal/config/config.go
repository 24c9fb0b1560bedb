package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

var (
	// ErrReadConfig возвращается, если не удалось прочитать или распарсить файл
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrInvalidConfig возвращается, если конфигурация не прошла валидацию
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Redis    RedisConfig    `toml:"redis"`
	RabbitMQ RabbitMQConfig `toml:"rabbitmq"`
	Waitlist WaitlistConfig `toml:"waitlist"`
	Course   CourseConfig   `toml:"course"`
	Rates    RatesConfig    `toml:"rates"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type RabbitMQConfig struct {
	Enabled    bool   `toml:"enabled"`
	URL        string `toml:"url"`
	Exchange   string `toml:"exchange"`
	RoutingKey string `toml:"routing_key"`
	Timeout    int    `toml:"timeout"`
}

type WaitlistConfig struct {
	HoldDurationMinutes int    `toml:"hold_duration_minutes"`
	SweepCron           string `toml:"sweep_cron"`
}

// HoldDuration длительность удержания слота за записью листа ожидания
func (w WaitlistConfig) HoldDuration() time.Duration {
	return time.Duration(w.HoldDurationMinutes) * time.Minute
}

type CourseConfig struct {
	Timezone                   string `toml:"timezone"`
	DefaultTurnDurationMinutes int    `toml:"default_turn_duration_minutes"`
}

// Location часовой пояс поля. Пустое значение - UTC.
func (c CourseConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

type RatesConfig struct {
	RequiredTiers   []string `toml:"required_tiers"`
	RequiredRatios  []string `toml:"required_ratios"`
	CacheTTLSeconds int      `toml:"cache_ttl_seconds"`
}

// CacheTTL время жизни закэшированной активной конфигурации тарифов
func (r RatesConfig) CacheTTL() time.Duration {
	return time.Duration(r.CacheTTLSeconds) * time.Second
}

// Load читает TOML файл, затем применяет переменные окружения (и .env, если есть)
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "teetime-service",
		},
		Redis: RedisConfig{Addr: "127.0.0.1:6379"},
		RabbitMQ: RabbitMQConfig{
			Exchange:   "teetime.events",
			RoutingKey: "waitlist.offer",
			Timeout:    5,
		},
		Waitlist: WaitlistConfig{
			HoldDurationMinutes: 120,
			SweepCron:           "@every 1m",
		},
		Course: CourseConfig{DefaultTurnDurationMinutes: 150},
		Rates: RatesConfig{
			RequiredTiers:   []string{"visitor", "member", "platinum"},
			RequiredRatios:  []string{"1:1", "1:2", "1:3", "1:4"},
			CacheTTLSeconds: 300,
		},
	}
}

// applyEnv переопределяет секреты и адреса из окружения
func applyEnv(cfg *Config) {
	setString(&cfg.Database.Host, "TEETIME_DB_HOST")
	setInt(&cfg.Database.Port, "TEETIME_DB_PORT")
	setString(&cfg.Database.User, "TEETIME_DB_USER")
	setString(&cfg.Database.Password, "TEETIME_DB_PASSWORD")
	setString(&cfg.Database.DBName, "TEETIME_DB_NAME")
	setString(&cfg.Redis.Addr, "TEETIME_REDIS_ADDR")
	setString(&cfg.Redis.Password, "TEETIME_REDIS_PASSWORD")
	setString(&cfg.RabbitMQ.URL, "TEETIME_RABBITMQ_URL")
	setString(&cfg.Logs.Level, "TEETIME_LOG_LEVEL")
	setInt(&cfg.Server.HTTPPort, "TEETIME_HTTP_PORT")
}

// Validate проверяет обязательные поля и допустимые диапазоны
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range: %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Waitlist.HoldDurationMinutes <= 0 {
		return fmt.Errorf("%w: waitlist.hold_duration_minutes must be positive", ErrInvalidConfig)
	}
	if c.Waitlist.SweepCron == "" {
		return fmt.Errorf("%w: waitlist.sweep_cron is required", ErrInvalidConfig)
	}
	if c.Course.DefaultTurnDurationMinutes <= 0 {
		return fmt.Errorf("%w: course.default_turn_duration_minutes must be positive", ErrInvalidConfig)
	}
	if _, err := c.Course.Location(); err != nil {
		return fmt.Errorf("%w: course.timezone: %v", ErrInvalidConfig, err)
	}
	if len(c.Rates.RequiredTiers) == 0 || len(c.Rates.RequiredRatios) == 0 {
		return fmt.Errorf("%w: rates.required_tiers and rates.required_ratios must not be empty", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return fmt.Errorf("%w: rabbitmq.url is required when rabbitmq is enabled", ErrInvalidConfig)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
	}
}
