package binancestream

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"streambot/internal/domain"

	simplejson "github.com/bitly/go-simplejson"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var _ domain.Streamer = (*Streamer)(nil)

const (
	MainURL    = "wss://stream.binance.com:9443/ws"
	TestnetURL = "wss://stream.testnet.binance.vision/ws"
)

type Options struct {
	BaseURL string        // пусто — MainURL
	Timeout time.Duration // максимальная пауза между кадрами
}

// Streamer открывает raw-стримы <symbol>@trade / <symbol>@ticker.
type Streamer struct {
	baseURL string
	timeout time.Duration
	dialer  *websocket.Dialer
	log     zerolog.Logger
}

func New(opts Options, log zerolog.Logger) *Streamer {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = MainURL
	}
	return &Streamer{
		baseURL: base,
		timeout: opts.Timeout,
		dialer:  websocket.DefaultDialer,
		log:     log,
	}
}

func (s *Streamer) URL(symbol string, kind domain.StreamKind) string {
	return fmt.Sprintf("%s/%s@%s", s.baseURL, strings.ToLower(symbol), kind)
}

// Stream читает кадры до отмены ctx (nil) или до ошибки чтения/таймаута.
func (s *Streamer) Stream(ctx context.Context, symbol string, kind domain.StreamKind, fn func(domain.Message) error) error {
	url := s.URL(symbol, kind)
	log := s.log.With().Str("symbol", symbol).Str("stream", string(kind)).Logger()

	conn, resp, err := s.dialer.DialContext(ctx, url, nil)
	if err != nil {
		if ctx.Err() != nil {
			log.Info().Msg("стрим остановлен до подключения")
			return nil
		}
		if resp != nil {
			return fmt.Errorf("stream %s: подключение (http %s): %w", url, resp.Status, err)
		}
		return fmt.Errorf("stream %s: подключение: %w", url, err)
	}
	log.Info().Str("url", url).Msg("подключение к стриму установлено")

	// закрываем соединение при отмене, чтобы разблокировать ReadMessage
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			_ = conn.Close()
		case <-stop:
			_ = conn.Close()
		}
	}()

	conn.SetPingHandler(func(data string) error {
		s.extendDeadline(conn)
		return conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(time.Second))
	})

	for {
		s.extendDeadline(conn)
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				log.Info().Msg("стрим остановлен")
				return nil
			}
			var netErr interface{ Timeout() bool }
			if errors.As(err, &netErr) && netErr.Timeout() {
				return fmt.Errorf("stream %s: нет данных дольше %s: %w", url, s.timeout, err)
			}
			return fmt.Errorf("stream %s: ошибка чтения: %w", url, err)
		}

		msg := decode(symbol, payload)
		if err := fn(msg); err != nil {
			return fmt.Errorf("stream %s: обработчик: %w", url, err)
		}
	}
}

func (s *Streamer) extendDeadline(conn *websocket.Conn) {
	if s.timeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(s.timeout))
	}
}

// decode достаёт тип события и символ; Payload остаётся байт-в-байт.
func decode(symbol string, payload []byte) domain.Message {
	msg := domain.Message{
		Symbol:     strings.ToUpper(symbol),
		Payload:    payload,
		ReceivedAt: time.Now(),
	}
	js, err := simplejson.NewJson(payload)
	if err != nil {
		return msg
	}
	if e, err := js.Get("e").String(); err == nil {
		msg.Event = e
	}
	if sym, err := js.Get("s").String(); err == nil && sym != "" {
		msg.Symbol = sym
	}
	return msg
}
