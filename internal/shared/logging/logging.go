package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// TimeFormat повторяет формат даты старых логов бота.
const TimeFormat = "01/02/2006 03:04:05 PM"

// New открывает лог-файл (с перезаписью) и возвращает логгер «timestamp LEVEL message».
func New(file, level string) (zerolog.Logger, io.Closer, error) {
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("не удалось открыть лог-файл %s: %w", file, err)
	}
	logger, err := NewWriter(f, level)
	if err != nil {
		_ = f.Close()
		return zerolog.Nop(), nil, err
	}
	return logger, f, nil
}

// NewWriter — то же, что New, но поверх произвольного io.Writer.
func NewWriter(w io.Writer, level string) (zerolog.Logger, error) {
	lvl := zerolog.DebugLevel
	if strings.TrimSpace(level) != "" {
		var err error
		lvl, err = zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("неизвестный уровень логирования %q: %w", level, err)
		}
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: TimeFormat,
		FormatLevel: func(i interface{}) string {
			return strings.ToUpper(fmt.Sprint(i))
		},
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
