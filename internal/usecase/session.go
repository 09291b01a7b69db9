package usecase

import (
	"sync"

	"github.com/google/uuid"

	"streambot/internal/domain"
)

// Session — состояние одного запуска: свечи и счётчики стримов по символам.
type Session struct {
	ID      string
	Symbols []string

	mu       sync.RWMutex
	klines   map[string][]domain.Kline
	received map[string]int
}

func NewSession(symbols []string) *Session {
	return &Session{
		ID:       uuid.NewString(),
		Symbols:  append([]string(nil), symbols...),
		klines:   make(map[string][]domain.Kline, len(symbols)),
		received: make(map[string]int, len(symbols)),
	}
}

func (s *Session) SetKlines(symbol string, klines []domain.Kline) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.klines[symbol] = klines
}

func (s *Session) Klines(symbol string) ([]domain.Kline, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	k, ok := s.klines[symbol]
	return k, ok
}

func (s *Session) markReceived(symbol string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.received[symbol]++
	return s.received[symbol]
}

// Received — сколько сообщений стрима обработано по символу.
func (s *Session) Received(symbol string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.received[symbol]
}
