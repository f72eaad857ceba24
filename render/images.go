package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"
)

// DecodeLogo decodes the logo payload value. The browser form sends a data
// URI; raw base64 is accepted as well for CLI use.
func DecodeLogo(value string) ([]byte, error) {
	if idx := strings.Index(value, "base64,"); idx >= 0 {
		value = value[idx+len("base64,"):]
	}
	value = strings.TrimSpace(value)

	data, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("failed to decode logo base64: %w", err)
	}
	return data, nil
}

// NormalizeLogo decodes a PNG/JPEG/GIF logo, scales it down to fit within
// maxW x maxH pixels (aspect ratio preserved, never upscaled) and re-encodes
// it as PNG. EXIF orientation of JPEG uploads is applied during decode.
func NormalizeLogo(data []byte, maxW, maxH int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode logo image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxW || bounds.Dy() > maxH {
		img = imaging.Fit(img, maxW, maxH, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode normalized logo: %w", err)
	}
	return buf.Bytes(), nil
}

// QRCode renders the auction URL as a PNG QR code of size x size pixels.
func QRCode(url string, size int) ([]byte, error) {
	data, err := qrcode.Encode(url, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return data, nil
}

// pngSize returns the pixel dimensions of an encoded PNG.
func pngSize(data []byte) (w, h int, err error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read PNG dimensions: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
