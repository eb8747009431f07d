package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Load(t *testing.T) {
	t.Setenv("DATABASE_URI", "postgres://localhost/savings")
	t.Setenv("STORE_TIMEOUT", "3s")
	t.Setenv("NOTIFY_DRIVER", "push")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://admin.example.com;https://ops.example.com")

	c := New()
	require.NoError(t, c.Load([]string{"-a", "0.0.0.0:9000", "--verbose"}))

	assert.Equal(t, "postgres://localhost/savings", c.Database.DSN)
	assert.Equal(t, 3*time.Second, c.Database.StoreTimeout)
	assert.Equal(t, "0.0.0.0:9000", c.Server.Listen)
	assert.Equal(t, NotifyDriverPush, c.Notify.Driver)
	assert.Equal(t, 3, c.Notify.MaxAttempts)
	assert.Equal(t, []string{"https://admin.example.com", "https://ops.example.com"}, c.CORSOrigins)
	assert.True(t, c.LogVerbose)
	assert.Empty(t, c.Redis.Addr)
}

func TestConfig_LoadRequiresDSN(t *testing.T) {
	t.Setenv("DATABASE_URI", "")

	c := New()
	assert.Error(t, c.Load(nil))
}

func TestConfig_Validate(t *testing.T) {
	c := Config{
		Database: DatabaseConfig{StoreTimeout: time.Second},
		Notify:   NotifyConfig{Driver: "carrier-pigeon", Workers: 1},
	}
	assert.Error(t, c.Validate())

	c.Notify.Driver = NotifyDriverLog
	assert.NoError(t, c.Validate())

	c.Notify.Workers = 0
	assert.Error(t, c.Validate())
}
