package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Booking  BookingConfig
	Webhook  WebhookConfig
}

type ServerConfig struct {
	Address      string        `envconfig:"SERVER_ADDRESS" default:":5000"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"15s"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	IdleTimeout  time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"30s"`
}

type DatabaseConfig struct {
	Host         string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port         string `envconfig:"POSTGRES_PORT" default:"5432"`
	Name         string `envconfig:"POSTGRES_DB" default:"charter"`
	User         string `envconfig:"POSTGRES_USER" default:"postgres"`
	Password     string `envconfig:"POSTGRES_PASSWORD" default:""`
	MaxPoolConns int    `envconfig:"MAX_CONNS" default:"99"`
}

type BookingConfig struct {
	// UnitPrice is the fixed per-participant price; booking amount is always
	// participants * UnitPrice.
	UnitPrice         float64 `envconfig:"BOOKING_UNIT_PRICE" default:"199"`
	DefaultLanguage   string  `envconfig:"BOOKING_DEFAULT_LANGUAGE" default:"en"`
	StrictPhoneFormat bool    `envconfig:"BOOKING_STRICT_PHONE" default:"false"`
}

// WebhookConfig holds the shared secrets checked against the
// x-webhook-secret header. An empty secret leaves the receiver open.
type WebhookConfig struct {
	EventSecret    string `envconfig:"WEBHOOK_SECRET" default:""`
	RealtimeSecret string `envconfig:"REALTIME_WEBHOOK_SECRET" default:""`
	StorageSecret  string `envconfig:"STORAGE_WEBHOOK_SECRET" default:""`
}

func (dc *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s pool_max_conns=%d",
		dc.Host,
		dc.Port,
		dc.Name,
		dc.User,
		dc.Password,
		dc.MaxPoolConns,
	)
}

func NewConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	return &cfg, nil
}
