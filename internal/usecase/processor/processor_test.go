package processor

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streambot/internal/domain"
)

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHandler(zerolog.New(&buf))

	payload := `{"e":"trade","s":"BTCUSDT","p":"37000.01"}`
	err := h.Handle(context.Background(), domain.Message{Symbol: "BTCUSDT", Event: "trade", Payload: []byte(payload)})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"level":"info"`)
	assert.Contains(t, buf.String(), `stream: BTCUSDT-trade data: {\"e\":\"trade\"`)
}

func TestHandlerFunc(t *testing.T) {
	var got []string
	var h Handler = HandlerFunc(func(_ context.Context, msg domain.Message) error {
		got = append(got, msg.Symbol)
		return nil
	})
	require.NoError(t, h.Handle(context.Background(), domain.Message{Symbol: "ETHUSDT"}))
	assert.Equal(t, []string{"ETHUSDT"}, got)
}
