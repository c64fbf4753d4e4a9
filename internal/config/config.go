package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	App       AppConfig
	JWT       JWTConfig
	Storage   StorageConfig
	FaceMatch FaceMatchConfig
	Office    OfficeGeofenceConfig
	Policy    PolicyConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	Timezone string
}

// JWTConfig holds JWT verification configuration. Tokens are issued by the
// identity service; this backend only verifies them.
type JWTConfig struct {
	Secret string
}

type StorageConfig struct {
	Type     string
	BasePath string
	BaseURL  string
}

// FaceMatchConfig configures the external face-recognition service client.
type FaceMatchConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// OfficeGeofenceConfig is the global fallback geofence used when an employee
// has no branch assignment and the check-in request carries no branch.
// A zero radius means no global geofence is configured.
type OfficeGeofenceConfig struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

// PolicyConfig carries the attendance policy thresholds consumed by the
// daily-status classifier and the inactivity monitor.
type PolicyConfig struct {
	WorkStart            string // "15:04"
	WorkEnd              string
	LateGraceMinutes     int
	EarlyOutGraceMinutes int
	HalfDayInBefore      string
	HalfDayOutAfter      string
	WeekOffWeekday       int // 0 = Sunday
	AutoStopAfter        time.Duration
	ResumeWindow         time.Duration
}

func Load() (*Config, error) {
	// Missing .env is fine in deployed environments; vars come from the host.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "kirana-attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
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
		Timezone: getEnv("APP_TIMEZONE", "Asia/Kolkata"),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	config.Storage = StorageConfig{
		Type:     getEnv("STORAGE_TYPE", "local"),
		BasePath: getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
	}

	faceMatchTimeout, err := time.ParseDuration(getEnv("FACEMATCH_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid FACEMATCH_TIMEOUT: %w", err)
	}

	config.FaceMatch = FaceMatchConfig{
		BaseURL: getEnv("FACEMATCH_BASE_URL", ""),
		APIKey:  getEnv("FACEMATCH_API_KEY", ""),
		Timeout: faceMatchTimeout,
	}

	officeLat, err := getEnvFloat("OFFICE_LATITUDE", 0)
	if err != nil {
		return nil, err
	}
	officeLng, err := getEnvFloat("OFFICE_LONGITUDE", 0)
	if err != nil {
		return nil, err
	}
	officeRadius, err := getEnvFloat("OFFICE_RADIUS_METERS", 0)
	if err != nil {
		return nil, err
	}
	config.Office = OfficeGeofenceConfig{
		Latitude:     officeLat,
		Longitude:    officeLng,
		RadiusMeters: officeRadius,
	}

	lateGrace, err := strconv.Atoi(getEnv("LATE_GRACE_MINUTES", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid LATE_GRACE_MINUTES: %w", err)
	}
	earlyGrace, err := strconv.Atoi(getEnv("EARLY_OUT_GRACE_MINUTES", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid EARLY_OUT_GRACE_MINUTES: %w", err)
	}
	weekOff, err := strconv.Atoi(getEnv("WEEK_OFF_WEEKDAY", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid WEEK_OFF_WEEKDAY: %w", err)
	}
	autoStop, err := time.ParseDuration(getEnv("AUTO_STOP_AFTER", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTO_STOP_AFTER: %w", err)
	}
	resumeWindow, err := time.ParseDuration(getEnv("RESUME_WINDOW", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RESUME_WINDOW: %w", err)
	}

	config.Policy = PolicyConfig{
		WorkStart:            getEnv("WORK_START", "09:00"),
		WorkEnd:              getEnv("WORK_END", "18:00"),
		LateGraceMinutes:     lateGrace,
		EarlyOutGraceMinutes: earlyGrace,
		HalfDayInBefore:      getEnv("HALF_DAY_IN_BEFORE", "13:00"),
		HalfDayOutAfter:      getEnv("HALF_DAY_OUT_AFTER", "13:00"),
		WeekOffWeekday:       weekOff,
		AutoStopAfter:        autoStop,
		ResumeWindow:         resumeWindow,
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
	if c.FaceMatch.BaseURL == "" {
		return fmt.Errorf("FACEMATCH_BASE_URL is required")
	}
	if c.Policy.WeekOffWeekday < 0 || c.Policy.WeekOffWeekday > 6 {
		return fmt.Errorf("WEEK_OFF_WEEKDAY must be between 0 and 6")
	}
	if c.Policy.ResumeWindow <= c.Policy.AutoStopAfter {
		return fmt.Errorf("RESUME_WINDOW must be larger than AUTO_STOP_AFTER")
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

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}
