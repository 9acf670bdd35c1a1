// Package source reads form input from files on disk.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MaxBytes caps how much text is loaded into the form.
const MaxBytes = 1 << 20

var extraneousWhitespace = regexp.MustCompile(`\s+`)

// ErrTooLarge is returned when a file exceeds MaxBytes.
var ErrTooLarge = errors.New("input file too large")

// Load returns the text content of path. PDF files are converted to plain
// text; everything else is read as UTF-8.
func Load(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return loadPDF(path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.Size() > MaxBytes {
		return "", fmt.Errorf("%w: %s (%d bytes)", ErrTooLarge, path, info.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// Read loads text from r, as used for stdin.
func Read(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxBytes+1))
	if err != nil {
		return "", err
	}
	if len(data) > MaxBytes {
		return "", ErrTooLarge
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func loadPDF(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer file.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}

	var builder strings.Builder
	if _, err := io.Copy(&builder, io.LimitReader(content, MaxBytes)); err != nil {
		return "", err
	}

	text := extraneousWhitespace.ReplaceAllString(builder.String(), " ")
	return strings.TrimSpace(text), nil
}
