// Package config provides configuration loading and validation utilities.
package config

import (
	"fmt"
	"time"
)

// Config holds runtime configuration for the Halskey signal bot.
type Config struct {
	AppEnv string `mapstructure:"-"`

	Logger  LoggerConfig  `mapstructure:"logger"`
	Server  ServerConfig  `mapstructure:"server"`
	Bot     BotConfig     `mapstructure:"bot"`
	DB      DBConfig      `mapstructure:"db"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Channel ChannelConfig `mapstructure:"channel"`
	Sentry  SentryConfig  `mapstructure:"sentry"`
	Media   MediaConfig   `mapstructure:"media"`
}

// LoggerConfig controls the slog stack.
type LoggerConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
	// File enables rotating file output when non-empty.
	File string `mapstructure:"file"`
}

// ServerConfig configures the liveness/metrics HTTP server.
type ServerConfig struct {
	Port            string        `mapstructure:"port" validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// BotConfig configures the Telegram transport.
type BotConfig struct {
	Token   string        `mapstructure:"token" validate:"required"`
	Mode    string        `mapstructure:"mode" validate:"oneof=polling webhook"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DBConfig configures the Postgres connection.
type DBConfig struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     string `mapstructure:"port" validate:"required"`
	User     string `mapstructure:"user" validate:"required"`
	Password string `mapstructure:"password" validate:"required"`
	Name     string `mapstructure:"name" validate:"required"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// RedisConfig configures the redis instance shared by the scheduler and the
// callback dedupe store.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" validate:"required"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ChannelConfig identifies the target channel and the authorized operators.
type ChannelConfig struct {
	ID       int64   `mapstructure:"id" validate:"required"`
	AdminIDs []int64 `mapstructure:"admin_ids" validate:"required,min=1"`
}

// IsAdmin reports whether the given chat id belongs to an operator.
func (c ChannelConfig) IsAdmin(id int64) bool {
	for _, admin := range c.AdminIDs {
		if admin == id {
			return true
		}
	}

	return false
}

// SentryConfig controls error reporting.
type SentryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DSN     string `mapstructure:"dsn"`
}

// MediaConfig locates brand assets and the watermark service.
type MediaConfig struct {
	// Dir is the root of the media tree (brand images, saved result shots).
	Dir string `mapstructure:"dir" validate:"required"`
	// WatermarkURL is the overlay image composited onto result screenshots.
	WatermarkURL string `mapstructure:"watermark_url"`
}
