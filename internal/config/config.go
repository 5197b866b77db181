package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Admin     AdminConfig     `toml:"admin"`
	Telegram  TelegramConfig  `toml:"telegram"`
	AvitoSync AvitoSyncConfig `toml:"avito_sync"`
	Jobs      JobsConfig      `toml:"jobs"`
	Site      SiteConfig      `toml:"site"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
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

// AdminConfig учетные данные администратора.
// PasswordHash — bcrypt-хэш пароля (генерируется один раз при настройке).
type AdminConfig struct {
	Login         string `toml:"login"`
	PasswordHash  string `toml:"password_hash"`
	TokenTTLHours int    `toml:"token_ttl_hours"`
}

// TelegramConfig настройки уведомлений в Telegram
type TelegramConfig struct {
	Enabled  bool   `toml:"enabled"`
	BotToken string `toml:"bot_token"`
	ChatID   string `toml:"chat_id"`
	Timeout  int    `toml:"timeout"`
}

// AvitoSyncConfig настройки синхронизации календаря с Авито
type AvitoSyncConfig struct {
	Enabled         bool   `toml:"enabled"`
	ICalURL         string `toml:"ical_url"`
	IntervalMinutes int    `toml:"interval_minutes"`
	HTTPTimeout     int    `toml:"http_timeout"`
}

// JobsConfig интервалы фоновых задач
type JobsConfig struct {
	ExpiryIntervalMinutes   int `toml:"expiry_interval_minutes"`
	ReminderIntervalMinutes int `toml:"reminder_interval_minutes"`
	ReminderAfterHours      int `toml:"reminder_after_hours"`
}

// SiteConfig данные сайта для iCal-экспорта
type SiteConfig struct {
	Domain       string `toml:"domain"`
	CalendarName string `toml:"calendar_name"`
}

// Load загружает конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if cfg.Admin.Login == "" || cfg.Admin.PasswordHash == "" {
		return nil, fmt.Errorf("config: admin login and password_hash are required")
	}

	return cfg, nil
}

// defaultConfig значения по умолчанию, перекрываются файлом
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "booking-service",
		},
		Admin: AdminConfig{
			TokenTTLHours: 24,
		},
		Telegram: TelegramConfig{
			Timeout: 10,
		},
		AvitoSync: AvitoSyncConfig{
			IntervalMinutes: 15,
			HTTPTimeout:     30,
		},
		Jobs: JobsConfig{
			ExpiryIntervalMinutes:   15,
			ReminderIntervalMinutes: 15,
			ReminderAfterHours:      8,
		},
		Site: SiteConfig{
			Domain:       "lesnoy-domik.ru",
			CalendarName: "Лесной Домик — Занятость",
		},
	}
}
