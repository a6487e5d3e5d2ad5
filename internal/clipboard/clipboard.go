// Package clipboard wraps the platform clipboard behind a small interface
// so headless environments and tests can substitute an in-memory writer.
package clipboard

import (
	"sync"

	"github.com/atotto/clipboard"
)

// Writer writes text to a clipboard.
type Writer interface {
	WriteAll(text string) error
}

// System writes to the platform clipboard.
type System struct{}

// WriteAll copies text to the platform clipboard.
func (System) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Supported reports whether a platform clipboard is available.
func Supported() bool {
	return !clipboard.Unsupported
}

// Memory is an in-memory clipboard, used in tests and on hosts without a
// display server.
type Memory struct {
	mu   sync.Mutex
	text string
}

// WriteAll stores text in memory.
func (m *Memory) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// Text returns the last written text.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}
