package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Split    SplitConfig
	Store    StoreConfig
	Contacts ContactsConfig
}

// SplitConfig holds splitting-engine configuration
type SplitConfig struct {
	Pdftotext   string
	Pdfseparate string
	Pdfinfo     string
	RulesPath   string // optional JSON rule file; empty -> built-in rules
	MaxPages    int    // 0 = no limit
	PageTimeout time.Duration
}

// StoreConfig holds batch-store configuration
type StoreConfig struct {
	SettingsPath string // SQLite file for cleanup settings; empty -> in-memory
}

// ContactsConfig holds contact-directory configuration
type ContactsConfig struct {
	DSN          string // optional Postgres directory
	Table        string
	MaxConns     int32
	DialTimeout  time.Duration
	QueryTimeout time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Split: SplitConfig{
			Pdftotext:   getEnv("PDFTOTEXT_BIN", "pdftotext"),
			Pdfseparate: getEnv("PDFSEPARATE_BIN", "pdfseparate"),
			Pdfinfo:     getEnv("PDFINFO_BIN", "pdfinfo"),
			RulesPath:   getEnv("RULES_PATH", ""),
			MaxPages:    getEnvAsInt("SPLIT_MAX_PAGES", 0),
			PageTimeout: getEnvAsDuration("SPLIT_PAGE_TIMEOUT", 30*time.Second),
		},
		Store: StoreConfig{
			SettingsPath: getEnv("SETTINGS_DB_PATH", ""),
		},
		Contacts: ContactsConfig{
			DSN:          getEnv("CONTACTS_DB_URL", ""),
			Table:        getEnv("CONTACTS_TABLE", "contacts"),
			MaxConns:     getEnvAsInt32("CONTACTS_DB_MAX_CONNS", 5),
			DialTimeout:  getEnvAsDuration("CONTACTS_DB_DIAL_TIMEOUT", 3*time.Second),
			QueryTimeout: getEnvAsDuration("CONTACTS_DB_QUERY_TIMEOUT", 10*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
