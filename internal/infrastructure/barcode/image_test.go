package barcode

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safeeat/backend/internal/domain"
)

func encodeEAN13(t *testing.T, code string) []byte {
	t.Helper()
	matrix, err := oned.NewEAN13Writer().Encode(code, gozxing.BarcodeFormat_EAN_13, 400, 120, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, matrix))
	return buf.Bytes()
}

func TestDecodeImage_EAN13(t *testing.T) {
	data := encodeEAN13(t, "3017620422003")

	code, err := DecodeImage(bytes.NewReader(data))

	require.NoError(t, err)
	assert.Equal(t, "3017620422003", code)
}

func TestImageCapturer(t *testing.T) {
	code, err := ImageCapturer{Data: encodeEAN13(t, "7300400481588")}.Capture(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "7300400481588", code)
}

func TestImageCapturer_Empty(t *testing.T) {
	_, err := ImageCapturer{}.Capture(context.Background())
	assert.ErrorIs(t, err, domain.ErrCapture)
}

func TestDecodeImage_NotAnImage(t *testing.T) {
	_, err := DecodeImage(strings.NewReader("definitely not a png"))
	assert.ErrorIs(t, err, domain.ErrCapture)
}

func TestDecodeImage_BlankImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 200, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	_, err := DecodeImage(&buf)
	assert.ErrorIs(t, err, domain.ErrCapture)
}
