package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://example.supabase.co/")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "service-role-key")
	t.Setenv("FEEXPAY_WEBHOOK_SECRET", "")
	t.Setenv("STORE_TIMEOUT", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "")

	cfg := Load()

	assert.Equal(t, "feexgate", cfg.AppName)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "https://example.supabase.co", cfg.StoreURL, "trailing slash trimmed")
	assert.Equal(t, 10*time.Second, cfg.StoreTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
	assert.False(t, cfg.SignatureRequired())
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "service-role-key")
	t.Setenv("FEEXPAY_WEBHOOK_SECRET", " whsec_test ")
	t.Setenv("STORE_TIMEOUT", "5s")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://shop.example.com, https://admin.example.com")

	cfg := Load()

	assert.Equal(t, "whsec_test", cfg.WebhookSecret)
	assert.True(t, cfg.SignatureRequired())
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Equal(t, []string{"https://shop.example.com", "https://admin.example.com"}, cfg.CORSAllowOrigins)
}

func TestValidateFailsFast(t *testing.T) {
	cfg := Config{StoreServiceKey: "key"}
	assert.ErrorIs(t, cfg.Validate(), ErrMissingStoreURL)

	cfg = Config{StoreURL: "https://example.supabase.co"}
	assert.ErrorIs(t, cfg.Validate(), ErrMissingStoreKey)

	cfg = Config{StoreURL: "not a url", StoreServiceKey: "key"}
	assert.Error(t, cfg.Validate())

	cfg = Config{StoreURL: "https://example.supabase.co", StoreServiceKey: "key"}
	assert.NoError(t, cfg.Validate())
}

func TestGetenvDuration(t *testing.T) {
	t.Setenv("STORE_TIMEOUT", "bogus")
	assert.Equal(t, 10*time.Second, getenvDuration("STORE_TIMEOUT", 10*time.Second))

	t.Setenv("STORE_TIMEOUT", "-1s")
	assert.Equal(t, 10*time.Second, getenvDuration("STORE_TIMEOUT", 10*time.Second))

	t.Setenv("STORE_TIMEOUT", "30s")
	assert.Equal(t, 30*time.Second, getenvDuration("STORE_TIMEOUT", 10*time.Second))
}
