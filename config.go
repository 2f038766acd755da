package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	storeMemory   = "memory"
	storePostgres = "postgres"
	storeSQLite   = "sqlite"
)

type config struct {
	HTTPAddr                string        `yaml:"http_addr"`
	RecordStore             string        `yaml:"record_store"`
	DatabaseURL             string        `yaml:"database_url"`
	RecordTable             string        `yaml:"record_table"`
	DBMaxOpenConns          int           `yaml:"db_max_open_conns"`
	SQLitePath              string        `yaml:"sqlite_path"`
	RecordsFile             string        `yaml:"records_file"`
	JWTSecret               string        `yaml:"jwt_secret"`
	AlertWebhookURL         string        `yaml:"alert_webhook_url"`
	AlertNotifyTemplate     string        `yaml:"alert_notify_template"`
	AlertNotifyDedupeWindow time.Duration `yaml:"alert_notify_dedup_window"`
	AlertNotifyTimeout      time.Duration `yaml:"alert_notify_timeout"`
	AlertNotifyQueueSize    int           `yaml:"alert_notify_queue_size"`
	LogLevel                string        `yaml:"log_level"`
	LogFormat               string        `yaml:"log_format"`
	ShutdownTimeout         time.Duration `yaml:"shutdown_timeout"`
}

// loadConfig reads the environment, then overlays the YAML file named by DASHBOARD_CONFIG.
func loadConfig() (config, error) {
	cfg := config{
		HTTPAddr:                getenvDefault("HTTP_ADDR", ":8080"),
		RecordStore:             getenvDefault("RECORD_STORE", storeMemory),
		DatabaseURL:             getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		RecordTable:             getenvDefault("RECORD_TABLE", "production_records"),
		DBMaxOpenConns:          getenvIntDefault("DB_MAX_OPEN_CONNS", 10),
		SQLitePath:              getenvDefault("SQLITE_PATH", "var/lgb-dashboard.db"),
		RecordsFile:             getenvDefault("RECORDS_FILE", ""),
		JWTSecret:               getenvDefault("AUTH_JWT_SECRET", ""),
		AlertWebhookURL:         getenvDefault("ALERT_WEBHOOK_URL", ""),
		AlertNotifyTemplate:     getenvDefault("ALERT_NOTIFY_TEMPLATE", ""),
		AlertNotifyDedupeWindow: getenvDuration("ALERT_NOTIFY_DEDUP_WINDOW", 10*time.Minute),
		AlertNotifyTimeout:      getenvDuration("ALERT_NOTIFY_TIMEOUT", 5*time.Second),
		AlertNotifyQueueSize:    getenvIntDefault("ALERT_NOTIFY_QUEUE_SIZE", 64),
		LogLevel:                getenvDefault("LOG_LEVEL", "info"),
		LogFormat:               getenvDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:         getenvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if path := os.Getenv("DASHBOARD_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.RecordStore = strings.ToLower(strings.TrimSpace(cfg.RecordStore))
	switch cfg.RecordStore {
	case storeMemory, storeSQLite:
	case storePostgres:
		if cfg.DatabaseURL == "" {
			return cfg, errors.New("config: DATABASE_URL or PG_DSN is required for the postgres store")
		}
	default:
		return cfg, fmt.Errorf("config: unknown record store %q", cfg.RecordStore)
	}
	if cfg.RecordStore == storeSQLite && cfg.SQLitePath == "" {
		return cfg, errors.New("config: SQLITE_PATH is required for the sqlite store")
	}
	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
