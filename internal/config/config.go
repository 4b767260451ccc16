package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из TOML файла
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Schedule ScheduleConfig `toml:"schedule"`
}

// ServerConfig настройки HTTP сервера
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
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ScheduleConfig настройки расписания и генерации слотов
type ScheduleConfig struct {
	// MaxDates максимальное количество дат в одной заявке
	MaxDates int `toml:"max_dates"`

	// ExcludedWeekday нерабочий день недели ("Sunday", "Monday", ...)
	ExcludedWeekday string `toml:"excluded_weekday"`

	// Границы каталога допустимых времен начала и окончания окна
	EarliestStart string `toml:"earliest_start"` // "06:00"
	LatestStart   string `toml:"latest_start"`   // "14:00"
	EarliestEnd   string `toml:"earliest_end"`   // "14:00"
	LatestEnd     string `toml:"latest_end"`     // "22:00"

	// StepMinutes шаг каталога времен (размер деления лестницы)
	StepMinutes int `toml:"step_minutes"`

	// SplitWindows если true, окно нарезается на слоты фиксированной длительности
	// Если false, одно окно порождает один слот
	SplitWindows bool `toml:"split_windows"`

	// SlotDurationMinutes длительность слота при нарезке окна
	SlotDurationMinutes int `toml:"slot_duration_minutes"`
}

// Weekday конвертирует ExcludedWeekday в time.Weekday
func (s *ScheduleConfig) Weekday() (time.Weekday, error) {
	switch strings.ToLower(s.ExcludedWeekday) {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	default:
		return 0, fmt.Errorf("config: unknown weekday %q", s.ExcludedWeekday)
	}
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "availability-service"
	}

	if cfg.Schedule.MaxDates == 0 {
		cfg.Schedule.MaxDates = 7
	}
	if cfg.Schedule.ExcludedWeekday == "" {
		cfg.Schedule.ExcludedWeekday = "Sunday"
	}
	if cfg.Schedule.EarliestStart == "" {
		cfg.Schedule.EarliestStart = "06:00"
	}
	if cfg.Schedule.LatestStart == "" {
		cfg.Schedule.LatestStart = "14:00"
	}
	if cfg.Schedule.EarliestEnd == "" {
		cfg.Schedule.EarliestEnd = "14:00"
	}
	if cfg.Schedule.LatestEnd == "" {
		cfg.Schedule.LatestEnd = "22:00"
	}
	if cfg.Schedule.StepMinutes == 0 {
		cfg.Schedule.StepMinutes = 60
	}
	if cfg.Schedule.SlotDurationMinutes == 0 {
		cfg.Schedule.SlotDurationMinutes = 60
	}
}

func validate(cfg *Config) error {
	if cfg.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if cfg.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	if _, err := cfg.Schedule.Weekday(); err != nil {
		return err
	}
	if cfg.Schedule.MaxDates < 1 {
		return fmt.Errorf("config: schedule.max_dates must be positive")
	}
	if cfg.Schedule.StepMinutes < 1 {
		return fmt.Errorf("config: schedule.step_minutes must be positive")
	}
	if cfg.Schedule.SplitWindows && cfg.Schedule.SlotDurationMinutes < 1 {
		return fmt.Errorf("config: schedule.slot_duration_minutes must be positive")
	}
	return nil
}
