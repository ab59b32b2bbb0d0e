package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig возвращается, если конфигурация не проходит проверку
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Провайдеры идентификации и платежей
const (
	AuthProviderDirectory = "directory"
	AuthProviderMemory    = "memory"

	PaymentProviderMock = "mock"
	PaymentProviderHTTP = "http"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Payment  PaymentConfig  `toml:"payment"`
	Booking  BookingConfig  `toml:"booking"`
	Reviews  ReviewsConfig  `toml:"reviews"`
	Redis    RedisConfig    `toml:"redis"`
	RabbitMQ RabbitMQConfig `toml:"rabbitmq"`
	CORS     CORSConfig     `toml:"cors"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к postgres
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

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig настройки аутентификации
type AuthConfig struct {
	Provider        string       `toml:"provider"`
	JWTSecret       string       `toml:"jwt_secret"`
	TokenTTLMinutes int          `toml:"token_ttl_minutes"`
	AdminEmail      string       `toml:"admin_email"`
	Users           []MemoryUser `toml:"users"`
}

// MemoryUser пользователь для провайдера "memory"
type MemoryUser struct {
	ID          int64  `toml:"id"`
	Email       string `toml:"email"`
	Password    string `toml:"password"`
	DisplayName string `toml:"display_name"`
	Role        string `toml:"role"`
}

// PaymentConfig настройки платёжного шлюза
type PaymentConfig struct {
	Provider    string  `toml:"provider"`
	URL         string  `toml:"url"`
	APIKey      string  `toml:"api_key"`
	Timeout     int     `toml:"timeout"`
	SuccessRate float64 `toml:"success_rate"`
	DelayMillis int     `toml:"delay_ms"`
}

// BookingConfig настройки бронирования
type BookingConfig struct {
	HorizonDays int    `toml:"horizon_days"`
	Currency    string `toml:"currency"`
}

// ReviewsConfig настройки отзывов
type ReviewsConfig struct {
	MaxRetries              int  `toml:"max_retries"`
	RequireCompletedBooking bool `toml:"require_completed_booking"`
}

// RedisConfig настройки redis для избранного. Пустой адрес выключает избранное
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Enabled возвращает true, если redis настроен
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// RabbitMQConfig настройки публикации событий. Пустой URL выключает публикацию
type RabbitMQConfig struct {
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// Enabled возвращает true, если rabbitmq настроен
func (r RabbitMQConfig) Enabled() bool {
	return r.URL != ""
}

// CORSConfig настройки CORS
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Load читает конфигурацию из TOML файла, подгружает .env и применяет переопределения из окружения
func Load(path string) (*Config, error) {
	// .env опционален
	_ = godotenv.Load()

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("PAYMENT_API_KEY"); v != "" {
		c.Payment.APIKey = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		c.RabbitMQ.URL = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "wedding-market-service"
	}

	if c.Auth.Provider == "" {
		c.Auth.Provider = AuthProviderDirectory
	}
	if c.Auth.TokenTTLMinutes == 0 {
		c.Auth.TokenTTLMinutes = 60 * 24
	}
	c.Auth.AdminEmail = strings.ToLower(strings.TrimSpace(c.Auth.AdminEmail))

	if c.Payment.Provider == "" {
		c.Payment.Provider = PaymentProviderMock
	}
	if c.Payment.Timeout == 0 {
		c.Payment.Timeout = 10
	}
	if c.Payment.SuccessRate == 0 {
		c.Payment.SuccessRate = 0.9
	}

	if c.Booking.HorizonDays == 0 {
		c.Booking.HorizonDays = 90
	}
	if c.Booking.Currency == "" {
		c.Booking.Currency = "INR"
	}

	if c.Reviews.MaxRetries == 0 {
		c.Reviews.MaxRetries = 5
	}

	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "wedding.events"
	}
}

// Validate проверяет значения, которые нельзя исправить значениями по умолчанию
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Auth.Provider {
	case AuthProviderDirectory, AuthProviderMemory:
	default:
		return fmt.Errorf("%w: unknown auth.provider %q", ErrInvalidConfig, c.Auth.Provider)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret is empty", ErrInvalidConfig)
	}
	if c.Auth.TokenTTLMinutes < 0 {
		return fmt.Errorf("%w: auth.token_ttl_minutes %d", ErrInvalidConfig, c.Auth.TokenTTLMinutes)
	}

	switch c.Payment.Provider {
	case PaymentProviderMock:
		if c.Payment.SuccessRate < 0 || c.Payment.SuccessRate > 1 {
			return fmt.Errorf("%w: payment.success_rate %v", ErrInvalidConfig, c.Payment.SuccessRate)
		}
	case PaymentProviderHTTP:
		if c.Payment.URL == "" {
			return fmt.Errorf("%w: payment.url is required for http provider", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown payment.provider %q", ErrInvalidConfig, c.Payment.Provider)
	}
	if c.Payment.Timeout < 0 {
		return fmt.Errorf("%w: payment.timeout %d", ErrInvalidConfig, c.Payment.Timeout)
	}

	if c.Booking.HorizonDays <= 0 {
		return fmt.Errorf("%w: booking.horizon_days %d", ErrInvalidConfig, c.Booking.HorizonDays)
	}
	if c.Reviews.MaxRetries <= 0 {
		return fmt.Errorf("%w: reviews.max_retries %d", ErrInvalidConfig, c.Reviews.MaxRetries)
	}

	return nil
}
