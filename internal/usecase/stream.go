package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"streambot/internal/domain"
)

// Stream держит по стриму на каждый символ одновременно.
// Ошибка любого стрима останавливает все остальные.
func (b *Bot) Stream(ctx context.Context, sess *Session) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, symbol := range sess.Symbols {
		symbol := symbol
		g.Go(func() error {
			return b.streamer.Stream(gctx, symbol, b.cfg.Stream, func(msg domain.Message) error {
				sess.markReceived(symbol)
				return b.handler.Handle(gctx, msg)
			})
		})
	}
	return g.Wait()
}
