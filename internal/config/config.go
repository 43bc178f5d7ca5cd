package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
	Cron       CronConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
	MinConns int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// AttendanceConfig holds the attendance policy knobs. Defaults mirror the
// operational policy: 30-minute early window, worked hours clamped to the
// shift, overtime counted only after shift end, one punch per local day.
type AttendanceConfig struct {
	GraceMinutes     int
	ClampToShift     bool
	OvertimeScope    string // "after_only" or "before_and_after"
	MaxPunchesPerDay int
}

// CronConfig holds when the monthly background jobs fire. Jobs tick hourly
// and only do work on RunDay at RunHour (UTC).
type CronConfig struct {
	RunDay  int
	RunHour int
}

func Load() (*Config, error) {
	// .env is optional outside local development
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	dbMaxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	dbMinConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "forher-hr"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: dbMaxConns,
		MinConns: dbMinConns,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	// Attendance policy
	graceMinutes, err := strconv.Atoi(getEnv("ATTENDANCE_GRACE_MINUTES", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_GRACE_MINUTES: %w", err)
	}

	maxPunches, err := strconv.Atoi(getEnv("ATTENDANCE_MAX_PUNCHES_PER_DAY", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_MAX_PUNCHES_PER_DAY: %w", err)
	}

	config.Attendance = AttendanceConfig{
		GraceMinutes:     graceMinutes,
		ClampToShift:     getEnv("ATTENDANCE_CLAMP_TO_SHIFT", "true") == "true",
		OvertimeScope:    getEnv("ATTENDANCE_OVERTIME_SCOPE", "after_only"),
		MaxPunchesPerDay: maxPunches,
	}

	// Cron schedules
	cronRunDay, err := strconv.Atoi(getEnv("CRON_RUN_DAY", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid CRON_RUN_DAY: %w", err)
	}

	cronRunHour, err := strconv.Atoi(getEnv("CRON_RUN_HOUR", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid CRON_RUN_HOUR: %w", err)
	}

	config.Cron = CronConfig{
		RunDay:  cronRunDay,
		RunHour: cronRunHour,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Attendance.OvertimeScope != "after_only" && c.Attendance.OvertimeScope != "before_and_after" {
		return fmt.Errorf("ATTENDANCE_OVERTIME_SCOPE must be after_only or before_and_after")
	}
	if c.Attendance.MaxPunchesPerDay < 1 {
		return fmt.Errorf("ATTENDANCE_MAX_PUNCHES_PER_DAY must be at least 1")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
