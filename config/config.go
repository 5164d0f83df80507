package config

import (
	"encoding/base64"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// BackupKeyLength is the required decoded length of BACKUP_KEY
	BackupKeyLength = 32
)

type Config struct {
	DBPath      string
	Environment string
	LogLevel    string
	// Local API consumed by the presentation layer
	APIAddr         string
	ShutdownTimeout int // seconds
	// Reminder jobs (cron specs)
	ReminderSchedule        string
	InactivityCheckSchedule string
	// Email (Resend)
	ResendAPIKey  string
	EmailFrom     string
	EmailFromName string
	NotifyEmail   string // Recipient of reminder digests
	EmailTestMode bool   // When true, emails are logged instead of sent
	// Backups
	BackupDir string
	BackupKey string // base64, 32 bytes; empty disables encryption
	// Cloudflare R2 Storage (backups)
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	// Other
	ChromePath string
	ExportDir  string
}

// Load reads configuration from the environment, loading .env first if present
func Load() (*Config, error) {
	// Not an error if .env doesn't exist
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	cfg := &Config{
		DBPath:                  getEnv("DB_PATH", "crm_legal.db"),
		Environment:             getEnv("ENVIRONMENT", "development"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		APIAddr:                 getEnv("API_ADDR", "127.0.0.1:8765"),
		ShutdownTimeout:         getEnvInt("SHUTDOWN_TIMEOUT", 10),
		ReminderSchedule:        getEnv("REMINDER_SCHEDULE", "@every 1m"),
		InactivityCheckSchedule: getEnv("INACTIVITY_CHECK_SCHEDULE", "@every 1h"),
		ResendAPIKey:            getEnv("RESEND_API_KEY", ""),
		EmailFrom:               getEnv("EMAIL_FROM", "recordatorios@crm-legal.local"),
		EmailFromName:           getEnv("EMAIL_FROM_NAME", "CRM Legal"),
		NotifyEmail:             getEnv("NOTIFY_EMAIL", ""),
		EmailTestMode:           getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		BackupDir:               getEnv("BACKUP_DIR", "backups"),
		BackupKey:               getEnv("BACKUP_KEY", ""),
		R2AccountID:             getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:           getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey:       getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:            getEnv("R2_BUCKET_NAME", ""),
		ChromePath:              getEnv("CHROME_PATH", ""),
		ExportDir:               getEnv("EXPORT_DIR", "exports"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the values that would otherwise fail late at runtime
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("DB_PATH is required")
	}

	host, _, err := net.SplitHostPort(c.APIAddr)
	if err != nil {
		return fmt.Errorf("invalid API_ADDR %q: %w", c.APIAddr, err)
	}
	// The API has no authentication, it must never listen beyond this machine
	if host != "localhost" {
		ip := net.ParseIP(host)
		if ip == nil || !ip.IsLoopback() {
			return fmt.Errorf("API_ADDR must be a loopback address, got %q", host)
		}
	}

	if c.BackupKey != "" {
		if _, err := c.BackupKeyBytes(); err != nil {
			return err
		}
	}

	if !c.EmailTestMode && c.NotifyEmail != "" && c.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY is required when EMAIL_TEST_MODE is off")
	}
	return nil
}

// BackupKeyBytes decodes BACKUP_KEY. It returns nil when no key is configured.
func (c *Config) BackupKeyBytes() ([]byte, error) {
	if c.BackupKey == "" {
		return nil, nil
	}
	key, err := base64.StdEncoding.DecodeString(c.BackupKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode BACKUP_KEY: %w", err)
	}
	if len(key) != BackupKeyLength {
		return nil, fmt.Errorf("BACKUP_KEY must be %d bytes (got %d bytes)", BackupKeyLength, len(key))
	}
	return key, nil
}

// R2Configured reports whether all R2 credentials are present
func (c *Config) R2Configured() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" && c.R2BucketName != ""
}

// IsProduction reports whether the app runs with production defaults
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
