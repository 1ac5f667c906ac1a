package barcode

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"

	"github.com/safeeat/backend/internal/domain"
)

// maxImageSize caps the bytes read from an uploaded photo
const maxImageSize = 10 << 20

// DecodeImage reads an EAN/UPC barcode from a PNG or JPEG image
func DecodeImage(r io.Reader) (string, error) {
	img, _, err := image.Decode(io.LimitReader(r, maxImageSize))
	if err != nil {
		return "", fmt.Errorf("%w: unreadable image: %v", domain.ErrCapture, err)
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCapture, err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}
	result, err := oned.NewMultiFormatUPCEANReader(hints).Decode(bmp, hints)
	if err != nil {
		return "", fmt.Errorf("%w: no barcode found in image", domain.ErrCapture)
	}

	return Validate(result.GetText())
}

// ImageCapturer decodes the barcode from a captured photo
type ImageCapturer struct {
	Data []byte
}

// Capture implements domain.BarcodeCapturer
func (c ImageCapturer) Capture(ctx context.Context) (string, error) {
	if len(c.Data) == 0 {
		return "", fmt.Errorf("%w: empty image", domain.ErrCapture)
	}
	return DecodeImage(bytes.NewReader(c.Data))
}
