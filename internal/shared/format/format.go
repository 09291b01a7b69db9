package format

import (
	"strings"
	"time"
)

// Layout — формат времени в диагностических строках
const Layout = "15:04:05 02.01.2006"

// Time — время в UTC для диагностических строк.
func Time(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Symbols возвращает "[BTCUSDT ETHUSDT]" в порядке конфигурации.
func Symbols(xs []string) string {
	return "[" + strings.Join(xs, " ") + "]"
}
