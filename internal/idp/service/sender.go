package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/aussiebroadwan/signup/pkg/slogx"
)

// CodeSender delivers a verification code to a destination address.
type CodeSender interface {
	SendCode(ctx context.Context, destination, code string) error
}

// LogCodeSender writes codes to the structured log. It stands in for a mail
// relay in development and end-to-end tests.
type LogCodeSender struct{}

func (LogCodeSender) SendCode(ctx context.Context, destination, code string) error {
	slogx.FromContext(ctx).Info("verification code issued",
		slog.String("destination", destination),
		slog.String("code", code),
	)
	return nil
}

// MemoryCodeSender keeps the last code sent to each destination.
type MemoryCodeSender struct {
	mu    sync.Mutex
	codes map[string]string
	sent  int
}

func NewMemoryCodeSender() *MemoryCodeSender {
	return &MemoryCodeSender{codes: make(map[string]string)}
}

func (m *MemoryCodeSender) SendCode(_ context.Context, destination, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[strings.ToLower(destination)] = code
	m.sent++
	return nil
}

// LastCode returns the last code sent to destination.
func (m *MemoryCodeSender) LastCode(destination string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	code, ok := m.codes[strings.ToLower(destination)]
	return code, ok
}

// Sent returns how many codes have been delivered.
func (m *MemoryCodeSender) Sent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent
}
