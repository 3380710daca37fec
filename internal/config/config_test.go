package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_REQUESTS", "25")

	cfg := Load()

	assert.Equal(t, "dryclean-api", cfg.App.Name)
	assert.Equal(t, 25, cfg.RateLimit.Requests)
	assert.Equal(t, 12*time.Hour, cfg.JWT.ExpiryHours)
	assert.Equal(t, "none", cfg.Printer.Type)
	assert.Equal(t, 5*time.Second, cfg.Printer.Timeout)
	assert.Contains(t, cfg.CORS.AllowedHeaders, "Idempotency-Key")
}

func TestShopLocation(t *testing.T) {
	shop := ShopConfig{Timezone: "Asia/Karachi"}
	loc := shop.Location()
	assert.Equal(t, "Asia/Karachi", loc.String())

	bad := ShopConfig{Timezone: "Mars/Olympus"}
	assert.Equal(t, time.UTC, bad.Location())

	now := shop.Clock()()
	assert.Equal(t, "Asia/Karachi", now.Location().String())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitList([]string{"a, b", "c", ""}))
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", User: "u", Password: "p", Name: "n", Port: "5432", SSLMode: "disable", Timezone: "UTC"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", db.DSN())
}
