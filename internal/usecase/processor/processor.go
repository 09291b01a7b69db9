package processor

import (
	"context"

	"github.com/rs/zerolog"

	"streambot/internal/domain"
)

// Handler — точка расширения: сюда приходит каждое событие стрима.
// Вызывается последовательно в пределах символа, но параллельно для разных символов.
type Handler interface {
	Handle(ctx context.Context, msg domain.Message) error
}

type HandlerFunc func(ctx context.Context, msg domain.Message) error

func (f HandlerFunc) Handle(ctx context.Context, msg domain.Message) error { return f(ctx, msg) }

// LogHandler только пишет событие в лог; стратегии здесь нет.
type LogHandler struct {
	log zerolog.Logger
}

func NewLogHandler(log zerolog.Logger) *LogHandler { return &LogHandler{log: log} }

func (h *LogHandler) Handle(_ context.Context, msg domain.Message) error {
	h.log.Info().Msgf("stream: %s-%s data: %s", msg.Symbol, msg.Event, msg.Payload)
	return nil
}
