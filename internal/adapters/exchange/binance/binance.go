package binanceadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"streambot/internal/domain"

	gbinance "github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"
)

var _ domain.Exchange = (*BinanceExchange)(nil)

const (
	pingEndpoint         = "/api/v3/ping"
	systemStatusEndpoint = "/sapi/v1/system/status"
	klinesLimit          = 1000 // максимум свечей за один запрос

	DefaultTimeout = 10 * time.Second
)

type Options struct {
	APIKey    string
	APISecret string
	BaseURL   string // пусто — адрес по умолчанию из SDK
	Testnet   bool
	Timeout   time.Duration // <= 0 — DefaultTimeout
}

type BinanceExchange struct {
	client    *gbinance.Client
	pageLimit int
}

func New(opts Options) *BinanceExchange {
	// UseTestnet читается SDK в момент создания клиента
	gbinance.UseTestnet = opts.Testnet
	client := gbinance.NewClient(opts.APIKey, opts.APISecret)

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client.HTTPClient = &http.Client{Timeout: timeout}
	if opts.BaseURL != "" {
		client.BaseURL = opts.BaseURL
	}
	return &BinanceExchange{client: client, pageLimit: klinesLimit}
}

func (b *BinanceExchange) Name() string { return "Binance" }

// Ping — PingService из SDK выбрасывает тело ответа, а живым считается только ответ «{}».
func (b *BinanceExchange) Ping(ctx context.Context) error {
	body, err := b.get(ctx, pingEndpoint)
	if err != nil {
		return fmt.Errorf("binance: %w: %w", domain.ErrPing, err)
	}
	if !bytes.Equal(bytes.TrimSpace(body), []byte("{}")) {
		return fmt.Errorf("binance: %w: неожиданный ответ %q", domain.ErrPing, body)
	}
	return nil
}

func (b *BinanceExchange) ServerTime(ctx context.Context) (time.Time, error) {
	ms, err := b.client.NewServerTimeService().Do(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("binance: ошибка получения времени сервера: %w", err)
	}
	return time.UnixMilli(ms), nil
}

// SystemStatus — в SDK нет сервиса для /sapi/v1/system/status.
func (b *BinanceExchange) SystemStatus(ctx context.Context) (domain.SystemStatus, error) {
	body, err := b.get(ctx, systemStatusEndpoint)
	if err != nil {
		return domain.SystemStatus{}, fmt.Errorf("binance: статус системы: %w", err)
	}
	var status domain.SystemStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return domain.SystemStatus{}, fmt.Errorf("binance: статус системы: ошибка парсинга JSON: %w", err)
	}
	return status, nil
}

// get идёт напрямую через HTTP-клиент и базовый адрес самого SDK.
func (b *BinanceExchange) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.client.BaseURL+endpoint, nil)
	if err != nil {
		return nil, err
	}
	res, err := b.client.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode/100 != 2 {
		return nil, fmt.Errorf("http %d: %s", res.StatusCode, bytes.TrimSpace(body))
	}
	return body, nil
}

// Klines листает страницы вперёд от since, пока биржа не вернёт неполную страницу.
func (b *BinanceExchange) Klines(ctx context.Context, symbol, interval string, since time.Time) ([]domain.Kline, error) {
	var out []domain.Kline
	start := since.UnixMilli()
	for {
		raw, err := b.client.NewKlinesService().
			Symbol(symbol).
			Interval(interval).
			StartTime(start).
			Limit(b.pageLimit).
			Do(ctx)
		if err != nil {
			return nil, fmt.Errorf("binance: свечи %s (%s): %w", symbol, interval, err)
		}

		for _, k := range raw {
			kl, err := convertKline(k)
			if err != nil {
				return nil, fmt.Errorf("binance: свеча %s #%d: %w", symbol, len(out), err)
			}
			out = append(out, kl)
		}

		if len(raw) < b.pageLimit {
			break
		}
		next := raw[len(raw)-1].CloseTime + 1
		if next <= start {
			break
		}
		start = next
	}
	if out == nil {
		out = []domain.Kline{}
	}
	return out, nil
}

func convertKline(k *gbinance.Kline) (domain.Kline, error) {
	var p decimalParser
	kl := domain.Kline{
		OpenTime:      time.UnixMilli(k.OpenTime),
		CloseTime:     time.UnixMilli(k.CloseTime),
		Open:          p.parse(k.Open),
		High:          p.parse(k.High),
		Low:           p.parse(k.Low),
		Close:         p.parse(k.Close),
		Volume:        p.parse(k.Volume),
		QuoteVolume:   p.parse(k.QuoteAssetVolume),
		TakerBuyBase:  p.parse(k.TakerBuyBaseAssetVolume),
		TakerBuyQuote: p.parse(k.TakerBuyQuoteAssetVolume),
		Trades:        k.TradeNum,
	}
	return kl, p.err
}

// decimalParser запоминает первую ошибку разбора
type decimalParser struct{ err error }

func (p *decimalParser) parse(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("некорректное число %q: %w", s, err)
	}
	return d
}
