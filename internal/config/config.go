package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config корневая конфигурация сервиса, загружается из config.toml
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	KioskService KioskServiceConfig `toml:"kiosk_service"`
	MediaService MediaServiceConfig `toml:"media_service"`
	MQTT         MQTTConfig         `toml:"mqtt"`
	Notifier     NotifierConfig     `toml:"notifier"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения к базе данных
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// KioskServiceConfig настройки клиента реестра киосков
type KioskServiceConfig struct {
	URL             string `toml:"url"`
	Timeout         int    `toml:"timeout"`           // секунды
	CacheTTLSeconds int    `toml:"cache_ttl_seconds"` // TTL кэша данных киосков
}

// MediaServiceConfig настройки клиента каталога клиентов и медиа
type MediaServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// MQTTConfig настройки подключения к MQTT-брокеру плоскости управления
type MQTTConfig struct {
	BrokerURL      string `toml:"broker_url"`
	ClientID       string `toml:"client_id"`
	Username       string `toml:"username"`
	Password       string `toml:"password"`
	QoS            int    `toml:"qos"`
	ConnectTimeout int    `toml:"connect_timeout"` // секунды
	PublishTimeout int    `toml:"publish_timeout"` // секунды
}

// NotifierConfig настройки диспетчера уведомлений об отзыве
type NotifierConfig struct {
	Workers             int `toml:"workers"`
	MaxAttempts         int `toml:"max_attempts"`
	RetryDelaySeconds   int `toml:"retry_delay_seconds"`
	PollIntervalSeconds int `toml:"poll_interval_seconds"`
	BatchSize           int `toml:"batch_size"`
}

// Load читает и валидирует конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
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
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "ads-booking-service"
	}
	if c.KioskService.Timeout == 0 {
		c.KioskService.Timeout = 5
	}
	if c.KioskService.CacheTTLSeconds == 0 {
		c.KioskService.CacheTTLSeconds = 60
	}
	if c.MediaService.Timeout == 0 {
		c.MediaService.Timeout = 5
	}
	if c.MQTT.QoS == 0 {
		c.MQTT.QoS = 1
	}
	if c.MQTT.ConnectTimeout == 0 {
		c.MQTT.ConnectTimeout = 10
	}
	if c.MQTT.PublishTimeout == 0 {
		c.MQTT.PublishTimeout = 5
	}
	if c.Notifier.Workers == 0 {
		c.Notifier.Workers = 4
	}
	if c.Notifier.MaxAttempts == 0 {
		c.Notifier.MaxAttempts = 5
	}
	if c.Notifier.RetryDelaySeconds == 0 {
		c.Notifier.RetryDelaySeconds = 30
	}
	if c.Notifier.PollIntervalSeconds == 0 {
		c.Notifier.PollIntervalSeconds = 5
	}
	if c.Notifier.BatchSize == 0 {
		c.Notifier.BatchSize = 50
	}
}

func (c *Config) validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.KioskService.URL == "" {
		return fmt.Errorf("%w: kiosk_service.url is required", ErrInvalidConfig)
	}
	if c.MediaService.URL == "" {
		return fmt.Errorf("%w: media_service.url is required", ErrInvalidConfig)
	}
	if c.MQTT.BrokerURL == "" {
		return fmt.Errorf("%w: mqtt.broker_url is required", ErrInvalidConfig)
	}
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		return fmt.Errorf("%w: mqtt.qos must be 0, 1 or 2", ErrInvalidConfig)
	}
	return nil
}
