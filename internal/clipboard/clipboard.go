// Package clipboard exposes the system clipboard as a small interface so the
// UI can be tested without one.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard not supported on this system")

// Writer puts text on a clipboard.
type Writer interface {
	WriteAll(text string) error
}

// System writes to the OS clipboard.
type System struct{}

// WriteAll copies text to the system clipboard.
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

// Func adapts a function to Writer.
type Func func(text string) error

// WriteAll calls f(text).
func (f Func) WriteAll(text string) error {
	return f(text)
}
