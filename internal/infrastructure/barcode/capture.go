// Package barcode acquires product barcodes from typed input, images, or a
// placeholder camera.
package barcode

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/safeeat/backend/internal/domain"
)

// Accepted barcode lengths: EAN-8 up to GTIN-14
const (
	minDigits = 8
	maxDigits = 14
)

// SampleBarcodes are the codes handed out by SampleCapturer
var SampleBarcodes = []string{
	"7300400481588",
	"8712100849084",
	"3017620422003",
}

// Validate trims input and checks that it looks like a retail barcode
func Validate(input string) (string, error) {
	code := strings.TrimSpace(input)
	if code == "" {
		return "", fmt.Errorf("%w: enter a barcode", domain.ErrCapture)
	}
	if len(code) < minDigits || len(code) > maxDigits {
		return "", fmt.Errorf("%w: barcode must have %d-%d digits, got %d", domain.ErrCapture, minDigits, maxDigits, len(code))
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return "", fmt.Errorf("%w: barcode must be numeric: %q", domain.ErrCapture, code)
		}
	}
	return code, nil
}

// ManualCapturer returns a barcode typed by the user
type ManualCapturer struct {
	Input string
}

// Capture implements domain.BarcodeCapturer
func (m ManualCapturer) Capture(ctx context.Context) (string, error) {
	return Validate(m.Input)
}

// SampleCapturer stands in for a camera without a decoder. It cycles through
// SampleBarcodes in order.
type SampleCapturer struct {
	mu   sync.Mutex
	next int
}

// Capture implements domain.BarcodeCapturer
func (s *SampleCapturer) Capture(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCapture, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	code := SampleBarcodes[s.next%len(SampleBarcodes)]
	s.next++
	return code, nil
}
