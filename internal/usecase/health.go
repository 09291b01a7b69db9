package usecase

import (
	"context"
	"fmt"

	"streambot/internal/domain"
	"streambot/internal/shared/format"
)

// CheckHealth — одноразовый шлюз перед стартом: ping → время сервера → статус системы.
// Первая же ошибка останавливает проверку, повторов нет.
func (b *Bot) CheckHealth(ctx context.Context) error {
	if err := b.exchange.Ping(ctx); err != nil {
		return err
	}
	b.log.Debug().Msg("пинг сервера успешен")

	ts, err := b.exchange.ServerTime(ctx)
	if err != nil {
		return err
	}
	b.log.Debug().Msgf("время сервера %s", format.Time(ts))

	status, err := b.exchange.SystemStatus(ctx)
	if err != nil {
		return err
	}
	if !status.Operational() {
		return fmt.Errorf("%s: %w", b.exchange.Name(), &domain.StatusError{Status: status})
	}
	b.log.Debug().Msg("сервер работает в штатном режиме")
	return nil
}
