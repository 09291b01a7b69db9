package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeIsUTC(t *testing.T) {
	loc := time.FixedZone("MSK", 3*3600)
	ts := time.Date(2024, 3, 9, 17, 5, 7, 0, loc)
	assert.Equal(t, "14:05:07 09.03.2024", Time(ts))
}

func TestSymbols(t *testing.T) {
	assert.Equal(t, "[BTCUSDT ETHUSDT]", Symbols([]string{"BTCUSDT", "ETHUSDT"}))
	assert.Equal(t, "[]", Symbols(nil))
}
