package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database    DatabaseConfig
	JWT         JWTConfig
	App         AppConfig
	SMTP        SMTPConfig
	Attendance  AttendanceConfig
	Credentials CredentialsConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	FrontendURL    string
	RequestTimeout time.Duration
}

// SMTPConfig holds outgoing mail configuration. An empty Host disables sending.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	Timeout  time.Duration
}

type AttendanceConfig struct {
	OfficeRadiusMeters    float64
	OTPTTL                time.Duration
	LoginCorrectionWindow time.Duration
	// Location decides where one attendance day ends and the next begins.
	Location *time.Location
}

// CredentialsConfig holds the fixed admin and HR accounts. Hashes are bcrypt.
type CredentialsConfig struct {
	AdminEmpID        string
	AdminPasswordHash string
	HREmpID           string
	HRPasswordHash    string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file loaded, reading environment only", "error", err)
	}

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
		Name:     getEnv("DB_NAME", "attendance_marker"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}
	requestTimeout, err := time.ParseDuration(getEnv("REQUEST_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:5173"),
		RequestTimeout: requestTimeout,
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// SMTP configuration
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	smtpTimeout, err := time.ParseDuration(getEnv("SMTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_TIMEOUT: %w", err)
	}

	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", ""),
		FromName: getEnv("SMTP_FROM_NAME", "Attendance Marker"),
		Timeout:  smtpTimeout,
	}

	// Attendance configuration
	radius, err := strconv.ParseFloat(getEnv("OFFICE_RADIUS_METERS", "350"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_RADIUS_METERS: %w", err)
	}
	otpTTL, err := time.ParseDuration(getEnv("OTP_TTL", "3m"))
	if err != nil {
		return nil, fmt.Errorf("invalid OTP_TTL: %w", err)
	}
	correctionWindow, err := time.ParseDuration(getEnv("LOGIN_CORRECTION_WINDOW", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOGIN_CORRECTION_WINDOW: %w", err)
	}

	location, err := time.LoadLocation(getEnv("ATTENDANCE_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_TIMEZONE: %w", err)
	}

	config.Attendance = AttendanceConfig{
		OfficeRadiusMeters:    radius,
		OTPTTL:                otpTTL,
		LoginCorrectionWindow: correctionWindow,
		Location:              location,
	}

	config.Credentials = CredentialsConfig{
		AdminEmpID:        getEnv("ADMIN_EMP_ID", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		HREmpID:           getEnv("HR_EMP_ID", ""),
		HRPasswordHash:    getEnv("HR_PASSWORD_HASH", ""),
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
		return errors.New("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if c.Credentials.AdminEmpID == "" || c.Credentials.AdminPasswordHash == "" {
		return errors.New("ADMIN_EMP_ID and ADMIN_PASSWORD_HASH are required")
	}
	if c.Credentials.HREmpID == "" || c.Credentials.HRPasswordHash == "" {
		return errors.New("HR_EMP_ID and HR_PASSWORD_HASH are required")
	}
	if c.Attendance.OfficeRadiusMeters <= 0 {
		return errors.New("OFFICE_RADIUS_METERS must be positive")
	}
	if c.SMTP.Host != "" && c.SMTP.From == "" {
		return errors.New("SMTP_FROM is required when SMTP_HOST is set")
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

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
