package imagevariant

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"time"

	"social-agents-server/modules/common/utils"
)

// ErrDecode marks a source that could not be turned into an image.
var ErrDecode = errors.New("image decode failed")

// Fetcher - base64/data URI 또는 http(s) URL 소스를 이미지로 변환
type Fetcher struct {
	httpClient *http.Client
	maxBytes   int64
	maxPixels  int64
}

// NewFetcher builds a fetcher with a per-request timeout, a body cap and a
// cap on decoded pixels.
func NewFetcher(timeout time.Duration, maxBytes, maxPixels int64) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		maxBytes:   maxBytes,
		maxPixels:  maxPixels,
	}
}

// Decode - 소스 문자열을 디코딩 (실패 시 ErrDecode로 감싸서 반환)
func (f *Fetcher) Decode(ctx context.Context, source string) (image.Image, error) {
	var (
		data []byte
		err  error
	)
	if isRemote(source) {
		data, err = f.download(ctx, strings.TrimSpace(source))
	} else {
		data, err = utils.DecodeBase64Image(source)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	img, _, err := utils.DecodeImage(data, f.maxPixels)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return img, nil
}

func isRemote(source string) bool {
	s := strings.ToLower(strings.TrimSpace(source))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", f.maxBytes)
	}
	return data, nil
}
