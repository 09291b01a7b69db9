package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Базовые доменные сущности

// Kline — одна свеча OHLCV за фиксированный интервал.
type Kline struct {
	OpenTime      time.Time
	CloseTime     time.Time
	Open          decimal.Decimal
	High          decimal.Decimal
	Low           decimal.Decimal
	Close         decimal.Decimal
	Volume        decimal.Decimal
	QuoteVolume   decimal.Decimal
	TakerBuyBase  decimal.Decimal
	TakerBuyQuote decimal.Decimal
	Trades        int64
}

// Message — сырое событие из стрима; Payload не изменяется.
type Message struct {
	Symbol     string
	Event      string // trade | 24hrTicker | ...
	Payload    []byte
	ReceivedAt time.Time
}

// SystemStatus — ответ /sapi/v1/system/status.
type SystemStatus struct {
	Status int    `json:"status"` // 0 — normal, 1 — maintenance
	Msg    string `json:"msg"`
}

func (s SystemStatus) Operational() bool { return s.Status == 0 }

// StreamKind — тип подписки на символ.
type StreamKind string

const (
	StreamTrade  StreamKind = "trade"
	StreamTicker StreamKind = "ticker"
)

func (k StreamKind) Valid() bool { return k == StreamTrade || k == StreamTicker }

var (
	ErrPing           = errors.New("сервер не ответил на ping")
	ErrNotOperational = errors.New("сервер не в рабочем режиме")
)

// StatusError несёт код и сообщение, которые вернула биржа.
type StatusError struct {
	Status SystemStatus
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: status=%d msg=%q", ErrNotOperational, e.Status.Status, e.Status.Msg)
}

func (e *StatusError) Unwrap() error { return ErrNotOperational }

// Контракт REST-адаптера биржи
type Exchange interface {
	Name() string
	Ping(ctx context.Context) error
	ServerTime(ctx context.Context) (time.Time, error)
	SystemStatus(ctx context.Context) (SystemStatus, error)
	Klines(ctx context.Context, symbol, interval string, since time.Time) ([]Kline, error)
}

// Streamer держит один стрим символа и блокируется до отмены ctx или ошибки.
type Streamer interface {
	Stream(ctx context.Context, symbol string, kind StreamKind, fn func(Message) error) error
}
