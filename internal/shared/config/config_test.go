package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/api/v1", cfg.GetAPIBasePath())
	assert.Equal(t, ":8080", cfg.GetServerAddress())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 27, cfg.Auction.DefaultVIPSeatNum)
	assert.Equal(t, 13.0, cfg.Auction.MinimumBid)
	assert.Equal(t, "log", cfg.Notifications.Broker)
	assert.Contains(t, cfg.Database.DSN, "dbname=seatflow_db")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092 ,")
	t.Setenv("AUCTION_MINIMUM_BID", "20.5")
	t.Setenv("AUCTION_VIP_SEAT_NUMBER", "1")
	t.Setenv("JWT_EXPIRES_IN", "120")
	t.Setenv("EVENT_EXPIRY_CHECK_INTERVAL", "30s")
	t.Setenv("NOTIFICATION_BROKER", "Kafka")
	t.Setenv("GIN_MODE", "release")

	cfg := Load()

	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 20.5, cfg.Auction.MinimumBid)
	assert.Equal(t, 1, cfg.Auction.DefaultVIPSeatNum)
	assert.Equal(t, 2*time.Minute, cfg.JWT.JWTExpiresIn)
	assert.Equal(t, 30*time.Second, cfg.Jobs.ExpiryCheckInterval)
	assert.Equal(t, "kafka", cfg.Notifications.Broker)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("RATE_LIMIT_ENABLED", "maybe")

	cfg := Load()

	assert.Equal(t, 0, cfg.Redis.DB)
	assert.True(t, cfg.RateLimit.Enabled)
}
