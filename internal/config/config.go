// Package config centralizes the environment knobs the server reads after
// godotenv has loaded any .env file.
package config

import (
	"os"
	"time"
)

type Config struct {
	HTTPPort          string
	InventoryFile     string
	UsersFile         string
	AuditFile         string
	InventoryCacheTTL time.Duration
	ReportCacheTTL    time.Duration
}

func Load() *Config {
	return &Config{
		HTTPPort:          getenv("HTTP_PORT", "8080"),
		InventoryFile:     getenv("INVENTORY_FILE", "biomedical_lab_inventory.xlsx"),
		UsersFile:         getenv("USERS_FILE", "users.csv"),
		AuditFile:         getenv("AUDIT_LOG_FILE", "audit_log.csv"),
		InventoryCacheTTL: getduration("INVENTORY_CACHE_TTL", 10*time.Minute),
		ReportCacheTTL:    getduration("REPORT_CACHE_TTL", 5*time.Minute),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getduration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
