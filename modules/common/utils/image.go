package utils

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF 디코더 등록
	_ "image/jpeg" // JPEG 디코더 등록
	_ "image/png"  // PNG 디코더 등록
	"net/http"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
	_ "golang.org/x/image/webp" // WebP 디코더 등록
)

// Output formats
const (
	FormatJPEG = "jpeg"
	FormatWebP = "webp"
)

var (
	// ErrEmptyImage is returned for blank sources.
	ErrEmptyImage = errors.New("empty image data")
	// ErrImageTooLarge is returned when the declared dimensions exceed the pixel cap.
	ErrImageTooLarge = errors.New("image exceeds pixel limit")
)

// StripDataURL - "data:image/xxx;base64," 접두사 제거
func StripDataURL(s string) string {
	if idx := strings.Index(s, ","); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

// DecodeBase64Image - base64 (또는 data URL) 문자열을 바이너리로 변환
func DecodeBase64Image(s string) ([]byte, error) {
	payload := strings.TrimSpace(StripDataURL(s))
	if payload == "" {
		return nil, ErrEmptyImage
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// 일부 클라이언트는 padding 없이 전송
		if raw, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "=")); rawErr == nil {
			return raw, nil
		}
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	return data, nil
}

// DecodeImage - 이미지 디코딩 (WebP, PNG, JPEG, GIF 자동 감지)
// maxPixels > 0 이면 헤더의 크기를 먼저 확인, 초과 시 픽셀 데이터는 읽지 않음
func DecodeImage(data []byte, maxPixels int64) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyImage
	}
	if maxPixels > 0 {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, "", fmt.Errorf("failed to read image header: %w", err)
		}
		if int64(cfg.Width)*int64(cfg.Height) > maxPixels {
			return nil, "", fmt.Errorf("%w: %dx%d > %d pixels", ErrImageTooLarge, cfg.Width, cfg.Height, maxPixels)
		}
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}

// Encode - 지정된 포맷으로 인코딩
func Encode(img image.Image, format string, quality int) ([]byte, error) {
	switch format {
	case FormatWebP:
		return EncodeWebP(img, float32(quality))
	default:
		return EncodeJPEG(img, quality)
	}
}

// EncodeJPEG - JPEG 인코딩 (고정 quality)
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeWebP - WebP lossy 인코딩
func EncodeWebP(img image.Image, quality float32) ([]byte, error) {
	options, err := encoder.NewLossyEncoderOptions(encoder.PresetPhoto, quality)
	if err != nil {
		return nil, fmt.Errorf("failed to create WebP encoder options: %w", err)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, options); err != nil {
		return nil, fmt.Errorf("failed to encode WebP: %w", err)
	}
	return buf.Bytes(), nil
}

// MimeTypeFor maps an output format to its MIME type.
func MimeTypeFor(format string) string {
	if format == FormatWebP {
		return "image/webp"
	}
	return "image/jpeg"
}

// ToDataURI - 바이너리를 data URI로 변환
func ToDataURI(data []byte, mimeType string) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DetectMimeType sniffs image bytes, defaulting to PNG.
func DetectMimeType(data []byte) string {
	mimeType := http.DetectContentType(data)
	if strings.HasPrefix(mimeType, "image/") {
		return mimeType
	}
	return "image/png"
}
