package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streambot/internal/domain"
)

func validEnv() map[string]string {
	return map[string]string{
		EnvAPIKey:        "k",
		EnvAPISecret:     "s",
		EnvSubscriptions: "BTCUSDT,ETHUSDT",
		EnvWSTimeout:     "5000",
	}
}

func TestParseValid(t *testing.T) {
	cfg, err := Parse(validEnv())
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "k", cfg.APIKey)
	assert.Equal(t, "s", cfg.APISecret)
	assert.Equal(t, []string{"BTCUSDT", "ETHUSDT"}, cfg.Subscriptions)
	assert.Equal(t, 5000*time.Second, cfg.WSTimeout)

	// значения по умолчанию
	assert.Equal(t, domain.StreamTrade, cfg.Stream)
	assert.Equal(t, "1m", cfg.KlineInterval)
	assert.Equal(t, 99*time.Minute, cfg.KlineLookback)
	assert.Equal(t, "bot.log", cfg.Log.File)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Binance.Testnet)
	assert.Equal(t, 10*time.Second, cfg.Binance.HTTPTimeout)
}

func TestParseMissingRequired(t *testing.T) {
	for _, key := range []string{EnvAPIKey, EnvAPISecret, EnvSubscriptions, EnvWSTimeout} {
		t.Run("absent "+key, func(t *testing.T) {
			env := validEnv()
			delete(env, key)
			cfg, err := Parse(env)
			require.NoError(t, err)
			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
		t.Run("empty "+key, func(t *testing.T) {
			env := validEnv()
			env[key] = "  "
			cfg, err := Parse(env)
			require.NoError(t, err)
			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestParseAllMissing(t *testing.T) {
	cfg, err := Parse(map[string]string{})
	require.NoError(t, err)
	err = cfg.Validate()
	require.Error(t, err)
	for _, key := range []string{EnvAPIKey, EnvAPISecret, EnvSubscriptions, EnvWSTimeout} {
		assert.Contains(t, err.Error(), key)
	}
}

func TestParseSubscriptionsKeepOrder(t *testing.T) {
	env := validEnv()
	env[EnvSubscriptions] = " ETHUSDT, BNBUSDT,,BTCUSDT "
	cfg, err := Parse(env)
	require.NoError(t, err)
	assert.Equal(t, []string{"ETHUSDT", "BNBUSDT", "BTCUSDT"}, cfg.Subscriptions)

	env[EnvSubscriptions] = ",, ,"
	cfg, err = Parse(env)
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())
}

func TestParseTimeout(t *testing.T) {
	cases := map[string]time.Duration{
		"30":     30 * time.Second,
		"1500ms": 1500 * time.Millisecond,
		"2m":     2 * time.Minute,
	}
	for in, want := range cases {
		env := validEnv()
		env[EnvWSTimeout] = in
		cfg, err := Parse(env)
		require.NoError(t, err, in)
		assert.Equal(t, want, cfg.WSTimeout, in)
	}
}

func TestParseTimeoutInvalid(t *testing.T) {
	env := validEnv()
	env[EnvWSTimeout] = "soon"
	_, err := Parse(env)
	assert.Error(t, err)

	env[EnvWSTimeout] = "0"
	cfg, err := Parse(env)
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())
}

func TestParseOptional(t *testing.T) {
	env := validEnv()
	env["STREAM"] = "Ticker"
	env["KLINE_INTERVAL"] = "5m"
	env["KLINE_LOOKBACK"] = "3h"
	env["BINANCE_BASE_URL"] = "http://127.0.0.1:9000"
	env["BINANCE_WS_URL"] = "ws://127.0.0.1:9001/ws"
	env["BINANCE_TESTNET"] = "true"
	env["BINANCE_HTTP_TIMEOUT"] = "3"
	env["LOG_FILE"] = "other.log"
	env["LOG_LEVEL"] = "info"

	cfg, err := Parse(env)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, domain.StreamTicker, cfg.Stream)
	assert.Equal(t, "5m", cfg.KlineInterval)
	assert.Equal(t, 3*time.Hour, cfg.KlineLookback)
	assert.Equal(t, "http://127.0.0.1:9000", cfg.Binance.BaseURL)
	assert.Equal(t, "ws://127.0.0.1:9001/ws", cfg.Binance.WSBaseURL)
	assert.True(t, cfg.Binance.Testnet)
	assert.Equal(t, 3*time.Second, cfg.Binance.HTTPTimeout)
	assert.Equal(t, "other.log", cfg.Log.File)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestValidateUnknownStream(t *testing.T) {
	env := validEnv()
	env["STREAM"] = "depth"
	cfg, err := Parse(env)
	require.NoError(t, err)
	assert.ErrorContains(t, cfg.Validate(), "depth")
}

func TestValidateHTTPTimeout(t *testing.T) {
	env := validEnv()
	env["BINANCE_HTTP_TIMEOUT"] = "0"
	cfg, err := Parse(env)
	require.NoError(t, err)
	assert.ErrorContains(t, cfg.Validate(), "BINANCE_HTTP_TIMEOUT")
}
