// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, int64(1000), cfg.Cart.FreeShippingThreshold)
	assert.Equal(t, 10, cfg.Cart.DefaultMaxQuantity)
	assert.Equal(t, 24*time.Hour, cfg.Cart.SessionTTL)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadCartOverrides(t *testing.T) {
	t.Setenv("CART_FREE_SHIPPING_THRESHOLD", "500")
	t.Setenv("CART_DEFAULT_MAX_QUANTITY", "3")
	t.Setenv("CART_SESSION_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(500), cfg.Cart.FreeShippingThreshold)
	assert.Equal(t, 3, cfg.Cart.DefaultMaxQuantity)
	assert.Equal(t, time.Hour, cfg.Cart.SessionTTL)
}

func TestValidateRejectsBadCartPolicy(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Cart.DefaultMaxQuantity = 0
	assert.Error(t, cfg.Validate())

	cfg.Cart.DefaultMaxQuantity = 10
	cfg.Cart.FreeShippingThreshold = -1
	assert.Error(t, cfg.Validate())
}
