package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// FetchHistory параллельно тянет свечи по всем символам и ждёт всех.
// Первая ошибка отменяет остальные запросы.
func (b *Bot) FetchHistory(ctx context.Context, sess *Session) error {
	since := b.now().Add(-b.cfg.KlineLookback)

	g, gctx := errgroup.WithContext(ctx)
	for _, symbol := range sess.Symbols {
		symbol := symbol
		g.Go(func() error {
			klines, err := b.exchange.Klines(gctx, symbol, b.cfg.KlineInterval, since)
			if err != nil {
				return fmt.Errorf("история %s: %w", symbol, err)
			}
			sess.SetKlines(symbol, klines)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, symbol := range sess.Symbols {
		klines, _ := sess.Klines(symbol)
		b.log.Info().Str("symbol", symbol).Int("count", len(klines)).Msg("получены исторические свечи")
	}
	return nil
}
