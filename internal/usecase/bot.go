package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"streambot/internal/domain"
	"streambot/internal/shared/format"
	"streambot/internal/usecase/processor"
)

// BotConfig — параметры запуска, уже прошедшие валидацию.
type BotConfig struct {
	Symbols       []string
	Stream        domain.StreamKind
	KlineInterval string
	KlineLookback time.Duration
}

type Bot struct {
	cfg      BotConfig
	exchange domain.Exchange
	streamer domain.Streamer
	handler  processor.Handler
	log      zerolog.Logger
	now      func() time.Time
}

func NewBot(cfg BotConfig, ex domain.Exchange, st domain.Streamer, h processor.Handler, log zerolog.Logger) *Bot {
	return &Bot{
		cfg:      cfg,
		exchange: ex,
		streamer: st,
		handler:  h,
		log:      log,
		now:      time.Now,
	}
}

// Run: проверка здоровья → история свечей → стримы.
// Отмена ctx на любом шаге — штатная остановка (nil).
func (b *Bot) Run(ctx context.Context) error {
	err := b.run(ctx)
	if err != nil && ctx.Err() != nil && errors.Is(err, context.Canceled) {
		b.log.Info().Err(err).Msg("бот остановлен по сигналу")
		return nil
	}
	return err
}

func (b *Bot) run(ctx context.Context) error {
	if err := b.CheckHealth(ctx); err != nil {
		return err
	}

	sess := NewSession(b.cfg.Symbols)
	log := b.log.With().Str("session", sess.ID).Logger()
	log.Info().Msgf("сессия запущена, символы %s", format.Symbols(sess.Symbols))

	if err := b.FetchHistory(ctx, sess); err != nil {
		return err
	}

	log.Info().Str("stream", string(b.cfg.Stream)).Msg("запуск стримов")
	err := b.Stream(ctx, sess)
	for _, symbol := range sess.Symbols {
		log.Info().Str("symbol", symbol).Int("received", sess.Received(symbol)).Msg("стрим завершён")
	}
	return err
}
