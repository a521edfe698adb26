package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for our application
type Config struct {
	Port                    string
	Origin                  string
	Environment             string
	JWTSecret               string
	JWTRefreshSecret        string
	JWTExpirationHours      int
	JWTRefreshExpirationDay int
	Database                DatabaseConfig
	Redis                   RedisConfig
	Mailer                  MailerConfig
	CacheTTLSeconds         int
	ExportDir               string
	TaskWorkers             int
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// RedisConfig holds cache and task-queue broker details
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MailerConfig holds SMTP configuration for background email jobs
type MailerConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load database configuration
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hospital"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	jwtExpHours, err := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %w", err)
	}

	jwtRefreshExpDays, err := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_DAYS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_DAYS: %w", err)
	}

	cacheTTL, err := strconv.Atoi(getEnv("CACHE_TTL_SECONDS", "300"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL_SECONDS: %w", err)
	}

	taskWorkers, err := strconv.Atoi(getEnv("TASK_WORKERS", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid TASK_WORKERS: %w", err)
	}

	return &Config{
		Port:                    getEnv("PORT", "3001"),
		Origin:                  getEnv("ORIGIN", "http://localhost:4200"),
		Environment:             getEnv("APP_ENV", "development"),
		JWTSecret:               getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTRefreshSecret:        getEnv("JWT_REFRESH_SECRET", "default_refresh_secret"),
		JWTExpirationHours:      jwtExpHours,
		JWTRefreshExpirationDay: jwtRefreshExpDays,
		Database:                dbConfig,
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Mailer: MailerConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("EMAIL_FROM", "noreply@hospital.local"),
		},
		CacheTTLSeconds: cacheTTL,
		ExportDir:       getEnv("EXPORT_DIR", "exports"),
		TaskWorkers:     taskWorkers,
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
