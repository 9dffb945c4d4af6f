package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 30, cfg.Scheduling.SlotGranularityMinutes)
	assert.Equal(t, 14, cfg.Scheduling.CandidateWindowDays)
	assert.Equal(t, 2, cfg.Scheduling.NoShowBlockThreshold)
	assert.Equal(t, "appointments.events", cfg.Kafka.Topic)
	assert.False(t, cfg.Sweep.Enabled)

	loc, err := cfg.Scheduling.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := Parse(`
[scheduling]
slot_granularity_minutes = 15
candidate_window_days = 30

[kafka]
enabled = true
brokers = "k1:9092, k2:9092,"
`)
	require.NoError(t, err)

	assert.Equal(t, 15, cfg.Scheduling.SlotGranularityMinutes)
	assert.Equal(t, 30, cfg.Scheduling.CandidateWindowDays)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.BrokerList())
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"window too long":    "[scheduling]\ncandidate_window_days = 91",
		"granularity zero":   "[scheduling]\nslot_granularity_minutes = 0",
		"bad timezone":       "[scheduling]\ntimezone = \"Mars/Olympus\"",
		"kafka no brokers":   "[kafka]\nenabled = true",
		"sweep bad ttl":      "[sweep]\nenabled = true\npending_payment_ttl_minutes = 0",
		"rate limit no rate": "[rate_limit]\nenabled = true\nlimit = 0",
		"bad trusted proxy":  "[rate_limit]\ntrusted_proxies = [\"10.0.0.0/33\"]",
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(data)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[database]\nuser = \"file\"\n"), 0o600))

	t.Setenv("DB_USER", "env-user")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-user", cfg.Database.User)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Contains(t, cfg.Database.DSN(), "user=env-user")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
