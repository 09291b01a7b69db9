package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"

	"streambot/internal/domain"
)

type (
	Binance struct {
		BaseURL     string        `mapstructure:"BINANCE_BASE_URL"`
		WSBaseURL   string        `mapstructure:"BINANCE_WS_URL"`
		Testnet     bool          `mapstructure:"BINANCE_TESTNET"`
		HTTPTimeout time.Duration `mapstructure:"BINANCE_HTTP_TIMEOUT"` // таймаут REST-запросов
	}

	Log struct {
		File  string `mapstructure:"LOG_FILE"`
		Level string `mapstructure:"LOG_LEVEL"`
	}

	Config struct {
		APIKey        string            `mapstructure:"APIKEY"`
		APISecret     string            `mapstructure:"APISECRET"`
		Subscriptions []string          `mapstructure:"SUBSCRIPTIONS"`
		WSTimeout     time.Duration     `mapstructure:"WSTIMEOUT"`
		Stream        domain.StreamKind `mapstructure:"STREAM"`
		KlineInterval string            `mapstructure:"KLINE_INTERVAL"`
		KlineLookback time.Duration     `mapstructure:"KLINE_LOOKBACK"`

		Binance Binance `mapstructure:",squash"`
		Log     Log     `mapstructure:",squash"`
	}
)

// Имена обязательных переменных окружения
const (
	EnvAPIKey        = "APIKEY"
	EnvAPISecret     = "APISECRET"
	EnvSubscriptions = "SUBSCRIPTIONS"
	EnvWSTimeout     = "WSTIMEOUT"
)

func Default() *Config {
	return &Config{
		Stream:        domain.StreamTrade,
		KlineInterval: "1m",
		KlineLookback: 99 * time.Minute,
		Binance: Binance{
			HTTPTimeout: 10 * time.Second,
		},
		Log: Log{
			File:  "bot.log",
			Level: "debug",
		},
	}
}

// Load читает .env (если есть) и окружение процесса.
// Config возвращается всегда, даже при ошибке декодирования: из него берутся настройки лога.
func Load() (*Config, error) {
	// .env не обязателен; уже выставленные переменные не перезаписываются
	_ = godotenv.Load()
	return Parse(environ())
}

// Parse декодирует карту переменных окружения. Пустые значения считаются отсутствующими.
func Parse(env map[string]string) (*Config, error) {
	cfg := Default()

	in := make(map[string]interface{}, len(env))
	for k, v := range env {
		if strings.TrimSpace(v) == "" {
			continue
		}
		in[k] = v
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			secondsOrDurationHook,
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return cfg, err
	}
	if err := dec.Decode(in); err != nil {
		return cfg, fmt.Errorf("config: ошибка разбора окружения: %w", err)
	}

	cfg.Subscriptions = cleanSymbols(cfg.Subscriptions)
	cfg.Stream = domain.StreamKind(strings.ToLower(string(cfg.Stream)))
	return cfg, nil
}

// Validate проверяет только наличие значений: формат ключей и символов не проверяется.
func (c *Config) Validate() error {
	var errs []error
	if c.APIKey == "" {
		errs = append(errs, missing(EnvAPIKey))
	}
	if c.APISecret == "" {
		errs = append(errs, missing(EnvAPISecret))
	}
	if len(c.Subscriptions) == 0 {
		errs = append(errs, missing(EnvSubscriptions))
	}
	if c.WSTimeout <= 0 {
		errs = append(errs, missing(EnvWSTimeout))
	}
	if !c.Stream.Valid() {
		errs = append(errs, fmt.Errorf("config: неизвестный тип стрима %q (trade | ticker)", c.Stream))
	}
	if c.KlineLookback <= 0 {
		errs = append(errs, fmt.Errorf("config: KLINE_LOOKBACK должен быть > 0"))
	}
	if c.Binance.HTTPTimeout <= 0 {
		errs = append(errs, fmt.Errorf("config: BINANCE_HTTP_TIMEOUT должен быть > 0"))
	}
	return errors.Join(errs...)
}

func missing(name string) error {
	return fmt.Errorf("config: переменная %s не задана или пуста", name)
}

// secondsOrDurationHook: целое число — секунды, иначе строка в формате time.ParseDuration.
func secondsOrDurationHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(time.Duration(0)) {
		return data, nil
	}
	s := strings.TrimSpace(data.(string))
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(s)
}

func cleanSymbols(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok {
			env[k] = v
		}
	}
	return env
}
