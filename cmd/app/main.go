package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	binanceadapter "streambot/internal/adapters/exchange/binance"
	binancestream "streambot/internal/adapters/stream/binance"

	"github.com/rs/zerolog"

	"streambot/internal/config"
	"streambot/internal/domain"
	"streambot/internal/shared/format"
	"streambot/internal/shared/logging"
	"streambot/internal/usecase"
	"streambot/internal/usecase/processor"
)

// adapters собирает биржевые адаптеры по уже проверенной конфигурации.
type adapters func(cfg *config.Config, log zerolog.Logger) (domain.Exchange, domain.Streamer)

func main() {
	os.Exit(run(binanceAdapters))
}

func binanceAdapters(cfg *config.Config, log zerolog.Logger) (domain.Exchange, domain.Streamer) {
	wsURL := cfg.Binance.WSBaseURL
	if wsURL == "" && cfg.Binance.Testnet {
		wsURL = binancestream.TestnetURL
	}

	exchange := binanceadapter.New(binanceadapter.Options{
		APIKey:    cfg.APIKey,
		APISecret: cfg.APISecret,
		BaseURL:   cfg.Binance.BaseURL,
		Testnet:   cfg.Binance.Testnet,
		Timeout:   cfg.Binance.HTTPTimeout,
	})
	streamer := binancestream.New(binancestream.Options{
		BaseURL: wsURL,
		Timeout: cfg.WSTimeout,
	}, log)
	return exchange, streamer
}

func run(build adapters) int {
	cfg, cfgErr := config.Load()

	log, closer, err := logging.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Ошибка инициализации лога: %v\n", err)
		return 1
	}
	defer closer.Close()

	log.Info().Msg("бот запущен, читаем конфигурацию")
	if cfgErr == nil {
		cfgErr = cfg.Validate()
	}
	if cfgErr != nil {
		log.Error().Err(cfgErr).Msg("не удалось прочитать конфигурацию")
		return 1
	}
	log.Info().Msgf("конфигурация прочитана, символы %s", format.Symbols(cfg.Subscriptions))

	exchange, streamer := build(cfg, log)
	bot := usecase.NewBot(usecase.BotConfig{
		Symbols:       cfg.Subscriptions,
		Stream:        cfg.Stream,
		KlineInterval: cfg.KlineInterval,
		KlineLookback: cfg.KlineLookback,
	}, exchange, streamer, processor.NewLogHandler(log), log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := bot.Run(ctx); err != nil {
		log.Error().Err(err).Msg("бот остановлен с ошибкой")
		return 1
	}
	log.Info().Msg("бот остановлен")
	return 0
}
