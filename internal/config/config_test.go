package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout())
	assert.Equal(t, "1000", cfg.FreeShippingThreshold.String())
	assert.Equal(t, "50", cfg.ShippingFee.String())
	assert.Empty(t, cfg.AdminPhones)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")
	t.Setenv("ADMIN_PHONES", "+911234567890, ,+919999999999")
	t.Setenv("SHIPPING_FEE", "75.5")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout())
	assert.Equal(t, []string{"+911234567890", "+919999999999"}, cfg.AdminPhones)
	assert.Equal(t, "75.5", cfg.ShippingFee.String())
}

func TestFromEnv_InvalidNumber(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	_, err := FromEnv()
	require.Error(t, err)
}
