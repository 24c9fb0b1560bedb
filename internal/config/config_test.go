package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 8085

[database]
host = "db"
user = "teetime"
dbname = "teetime"

[waitlist]
hold_duration_minutes = 90

[course]
timezone = "Asia/Bangkok"

[rates]
required_tiers = ["visitor", "member"]
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_AppliesFileOverDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 8085, cfg.Server.HTTPPort)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 90*time.Minute, cfg.Waitlist.HoldDuration())
	assert.Equal(t, "@every 1m", cfg.Waitlist.SweepCron)
	assert.Equal(t, 150, cfg.Course.DefaultTurnDurationMinutes)
	assert.Equal(t, []string{"visitor", "member"}, cfg.Rates.RequiredTiers)
	assert.Equal(t, []string{"1:1", "1:2", "1:3", "1:4"}, cfg.Rates.RequiredRatios)

	loc, err := cfg.Course.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Bangkok", loc.String())
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("TEETIME_DB_PASSWORD", "s3cret")
	t.Setenv("TEETIME_RABBITMQ_URL", "amqp://guest:guest@mq:5672/")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "amqp://guest:guest@mq:5672/", cfg.RabbitMQ.URL)
	assert.Contains(t, cfg.Database.DSN(), "password=s3cret")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "broken toml", body: "[server\nhttp_port = 1", wantErr: ErrReadConfig},
		{name: "missing dbname", body: "[database]\nhost = \"db\"", wantErr: ErrInvalidConfig},
		{
			name:    "rabbitmq enabled without url",
			body:    "[database]\nhost = \"db\"\ndbname = \"x\"\n[rabbitmq]\nenabled = true",
			wantErr: ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_HoldDuration(t *testing.T) {
	cfg := defaults()
	cfg.Database.DBName = "teetime"
	cfg.Waitlist.HoldDurationMinutes = 0

	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
