package config

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("DB_PASSWORD", "pw")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "Asia/Kolkata", cfg.Attendance.Location.String())
	assert.Equal(t, clock.TimeOfDay{Hour: 7}, cfg.Attendance.CheckInOpensAt)
	assert.Equal(t, clock.TimeOfDay{Hour: 10, Minute: 45}, cfg.Attendance.CheckInDeadline)
	assert.Equal(t, cfg.Attendance.CheckInDeadline, cfg.Attendance.SweepAt)
	assert.Equal(t, time.Sunday, cfg.Attendance.WeeklyRestDay)
	assert.Equal(t, 100.0, cfg.Attendance.OfficeRadiusMeters)
	assert.Equal(t, 5*time.Second, cfg.Attendance.CollaboratorTimeout)
	assert.True(t, cfg.Attendance.SweepEnabled)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.App.AllowedOrigins)
	assert.Equal(t, "postgres://postgres:pw@localhost:5432/hris-attendance?sslmode=disable", cfg.DatabaseURL())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("MEMORY_ROSTER", "a@example.com, b@example.com")
	t.Setenv("ATTENDANCE_TIMEZONE", "Asia/Jakarta")
	t.Setenv("CHECK_IN_OPENS_AT", "06:30")
	t.Setenv("CHECK_IN_DEADLINE", "09:15")
	t.Setenv("ABSENCE_SWEEP_AT", "09:20")
	t.Setenv("WEEKLY_REST_DAY", "5")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.Storage.MemoryRoster)
	assert.Equal(t, "Asia/Jakarta", cfg.Attendance.Location.String())
	assert.Equal(t, clock.TimeOfDay{Hour: 6, Minute: 30}, cfg.Attendance.CheckInOpensAt)
	assert.Equal(t, clock.TimeOfDay{Hour: 9, Minute: 20}, cfg.Attendance.SweepAt)
	assert.Equal(t, time.Friday, cfg.Attendance.WeeklyRestDay)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"missing jwt secret", map[string]string{"STORAGE_DRIVER": "memory"}},
		{"missing db password", map[string]string{"JWT_SECRET_KEY": "s"}},
		{"unknown driver", map[string]string{"JWT_SECRET_KEY": "s", "STORAGE_DRIVER": "sqlite"}},
		{"deadline before opening", map[string]string{"JWT_SECRET_KEY": "s", "STORAGE_DRIVER": "memory", "CHECK_IN_DEADLINE": "06:00"}},
		{"bad timezone", map[string]string{"JWT_SECRET_KEY": "s", "STORAGE_DRIVER": "memory", "ATTENDANCE_TIMEZONE": "Mars/Olympus"}},
		{"bad rest day", map[string]string{"JWT_SECRET_KEY": "s", "STORAGE_DRIVER": "memory", "WEEKLY_REST_DAY": "0"}},
		{"bad recipient", map[string]string{"JWT_SECRET_KEY": "s", "STORAGE_DRIVER": "memory", "ABSENCE_REPORT_RECIPIENTS": "hr@example.com,not-an-email"}},
		{"bad radius", map[string]string{"JWT_SECRET_KEY": "s", "STORAGE_DRIVER": "memory", "OFFICE_RADIUS_METERS": "-1"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for k, v := range c.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestWeekdayFromIndex(t *testing.T) {
	monday, err := WeekdayFromIndex(1)
	require.NoError(t, err)
	assert.Equal(t, time.Monday, monday)

	sunday, err := WeekdayFromIndex(7)
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, sunday)

	_, err = WeekdayFromIndex(8)
	assert.Error(t, err)
}
