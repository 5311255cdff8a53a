package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/validator"
	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Storage    StorageConfig
	Attendance AttendanceConfig
	Face       FaceConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	SMTP       SMTPConfig
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
}

// JWTConfig holds JWT verification configuration
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// StorageConfig selects the attendance store backend
type StorageConfig struct {
	Driver       string // postgres | memory
	MemoryRoster []string
}

// AttendanceConfig holds the attendance policy. Every time-of-day is evaluated in Location.
type AttendanceConfig struct {
	Location            *time.Location
	CheckInOpensAt      clock.TimeOfDay
	CheckInDeadline     clock.TimeOfDay
	WeeklyRestDay       time.Weekday
	HolidayCountry      string
	OfficeLatitude      float64
	OfficeLongitude     float64
	OfficeRadiusMeters  float64
	SweepAt             clock.TimeOfDay
	SweepEnabled        bool
	CollaboratorTimeout time.Duration
	ReportRecipients    []string
}

type FaceConfig struct {
	MatcherURL    string
	MinConfidence float64
}

type RedisConfig struct {
	URL string
}

type KafkaConfig struct {
	Brokers    []string
	SweepTopic string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded, using process environment", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:        getEnv("DB_HOST", "localhost"),
		Port:        dbPort,
		User:        getEnv("DB_USER", "postgres"),
		Password:    getEnv("DB_PASSWORD", ""),
		Name:        getEnv("DB_NAME", "hris-attendance"),
		SSLMode:     getEnv("DB_SSL_MODE", "disable"),
		AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", false),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	config.Storage = StorageConfig{
		Driver:       getEnv("STORAGE_DRIVER", "postgres"),
		MemoryRoster: getEnvSlice("MEMORY_ROSTER", ""),
	}

	attendanceConfig, err := loadAttendanceConfig()
	if err != nil {
		return nil, err
	}
	config.Attendance = attendanceConfig

	// Face matcher
	minConfidence, err := strconv.ParseFloat(getEnv("FACE_MIN_CONFIDENCE", "0.6"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid FACE_MIN_CONFIDENCE: %w", err)
	}
	config.Face = FaceConfig{
		MatcherURL:    getEnv("FACE_MATCHER_URL", ""),
		MinConfidence: minConfidence,
	}

	config.Redis = RedisConfig{
		URL: getEnv("REDIS_URL", ""),
	}

	config.Kafka = KafkaConfig{
		Brokers:    getEnvSlice("KAFKA_BROKERS", ""),
		SweepTopic: getEnv("KAFKA_SWEEP_TOPIC", "attendance.sweep.completed"),
	}

	// SMTP configuration
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "no-reply@hris.local"),
		FromName: getEnv("SMTP_FROM_NAME", "HRIS Attendance"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadAttendanceConfig() (AttendanceConfig, error) {
	loc, err := time.LoadLocation(getEnv("ATTENDANCE_TIMEZONE", "Asia/Kolkata"))
	if err != nil {
		return AttendanceConfig{}, fmt.Errorf("invalid ATTENDANCE_TIMEZONE: %w", err)
	}

	opensAt, err := clock.ParseTimeOfDay(getEnv("CHECK_IN_OPENS_AT", "07:00"))
	if err != nil {
		return AttendanceConfig{}, fmt.Errorf("invalid CHECK_IN_OPENS_AT: %w", err)
	}

	deadline, err := clock.ParseTimeOfDay(getEnv("CHECK_IN_DEADLINE", "10:45"))
	if err != nil {
		return AttendanceConfig{}, fmt.Errorf("invalid CHECK_IN_DEADLINE: %w", err)
	}

	sweepAt := deadline
	if raw := getEnv("ABSENCE_SWEEP_AT", ""); raw != "" {
		sweepAt, err = clock.ParseTimeOfDay(raw)
		if err != nil {
			return AttendanceConfig{}, fmt.Errorf("invalid ABSENCE_SWEEP_AT: %w", err)
		}
	}

	restDayIndex, err := strconv.Atoi(getEnv("WEEKLY_REST_DAY", "7"))
	if err != nil {
		return AttendanceConfig{}, fmt.Errorf("invalid WEEKLY_REST_DAY: %w", err)
	}
	restDay, err := WeekdayFromIndex(restDayIndex)
	if err != nil {
		return AttendanceConfig{}, err
	}

	officeLat, err := strconv.ParseFloat(getEnv("OFFICE_LATITUDE", "0"), 64)
	if err != nil {
		return AttendanceConfig{}, fmt.Errorf("invalid OFFICE_LATITUDE: %w", err)
	}
	officeLon, err := strconv.ParseFloat(getEnv("OFFICE_LONGITUDE", "0"), 64)
	if err != nil {
		return AttendanceConfig{}, fmt.Errorf("invalid OFFICE_LONGITUDE: %w", err)
	}
	radius, err := strconv.ParseFloat(getEnv("OFFICE_RADIUS_METERS", "100"), 64)
	if err != nil {
		return AttendanceConfig{}, fmt.Errorf("invalid OFFICE_RADIUS_METERS: %w", err)
	}

	timeout, err := time.ParseDuration(getEnv("COLLABORATOR_TIMEOUT", "5s"))
	if err != nil {
		return AttendanceConfig{}, fmt.Errorf("invalid COLLABORATOR_TIMEOUT: %w", err)
	}

	return AttendanceConfig{
		Location:            loc,
		CheckInOpensAt:      opensAt,
		CheckInDeadline:     deadline,
		WeeklyRestDay:       restDay,
		HolidayCountry:      getEnv("HOLIDAY_COUNTRY", "IN"),
		OfficeLatitude:      officeLat,
		OfficeLongitude:     officeLon,
		OfficeRadiusMeters:  radius,
		SweepAt:             sweepAt,
		SweepEnabled:        getEnvBool("SWEEP_ENABLED", true),
		CollaboratorTimeout: timeout,
		ReportRecipients:    getEnvSlice("ABSENCE_REPORT_RECIPIENTS", ""),
	}, nil
}

// WeekdayFromIndex converts a Monday-start day index (1 = Monday … 7 = Sunday).
func WeekdayFromIndex(index int) (time.Weekday, error) {
	if index < 1 || index > 7 {
		return 0, fmt.Errorf("invalid WEEKLY_REST_DAY %d: must be between 1 (Monday) and 7 (Sunday)", index)
	}
	return time.Weekday(index % 7), nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if !validator.IsInSlice(c.Storage.Driver, []string{"postgres", "memory"}) {
		return fmt.Errorf("STORAGE_DRIVER must be postgres or memory")
	}
	if c.Storage.Driver == "postgres" && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	return c.Attendance.Validate()
}

// Validate checks the attendance policy is internally consistent.
func (a AttendanceConfig) Validate() error {
	if !a.CheckInOpensAt.Before(a.CheckInDeadline) {
		return fmt.Errorf("CHECK_IN_OPENS_AT (%s) must be before CHECK_IN_DEADLINE (%s)", a.CheckInOpensAt, a.CheckInDeadline)
	}
	if !validator.IsValidLatitude(a.OfficeLatitude) {
		return fmt.Errorf("OFFICE_LATITUDE must be between -90 and 90")
	}
	if !validator.IsValidLongitude(a.OfficeLongitude) {
		return fmt.Errorf("OFFICE_LONGITUDE must be between -180 and 180")
	}
	if a.OfficeRadiusMeters <= 0 {
		return fmt.Errorf("OFFICE_RADIUS_METERS must be positive")
	}
	if a.CollaboratorTimeout <= 0 {
		return fmt.Errorf("COLLABORATOR_TIMEOUT must be positive")
	}
	for _, r := range a.ReportRecipients {
		if !validator.IsValidEmail(r) {
			return fmt.Errorf("ABSENCE_REPORT_RECIPIENTS contains an invalid address %q", r)
		}
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

// SlogLevel maps LOG_LEVEL to a slog level.
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

func getEnvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(fallback)))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvSlice(env string, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
