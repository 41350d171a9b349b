package images

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/worksheet-lab/ruiji/internal/models"
	"github.com/worksheet-lab/ruiji/internal/utils"
	_ "golang.org/x/image/webp"
)

// MaxImageSize is the largest image accepted, in bytes
const MaxImageSize = 10 * 1024 * 1024

var (
	ErrEmpty             = errors.New("image data is empty")
	ErrTooLarge          = errors.New("image too large (max 10MB)")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

var supportedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Decode validates raw image bytes and wraps them in a models.Image
func Decode(data []byte, source string) (*models.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	if len(data) > MaxImageSize {
		return nil, ErrTooLarge
	}

	mimeType := http.DetectContentType(data)
	if !supportedTypes[mimeType] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mimeType)
	}

	img := &models.Image{
		ID:       utils.CalculateDataMD5(data),
		MIMEType: mimeType,
		Data:     data,
		Source:   source,
		Size:     len(data),
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		slog.Warn("Failed to get image dimensions", "id", img.ID, "mime_type", mimeType, "err", err)
	} else {
		img.Width = cfg.Width
		img.Height = cfg.Height
	}

	return img, nil
}

// ParseDataURL decodes a base64 "data:" URL as produced by a browser paste or canvas export
func ParseDataURL(dataURL string) ([]byte, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(dataURL), "data:")
	if !ok {
		return nil, fmt.Errorf("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URL")
	}
	if !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("data URL must be base64 encoded")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data URL: %w", err)
	}
	return data, nil
}

// ReadFile loads an image from disk
func ReadFile(path string) (*models.Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat image %s: %w", filepath.Base(path), err)
	}
	if info.Size() > MaxImageSize {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrTooLarge)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	img, err := Decode(data, "file")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// FormatOf returns the short format name ("jpeg", "png", ...) for a MIME type
func FormatOf(mimeType string) string {
	return strings.TrimPrefix(mimeType, "image/")
}
