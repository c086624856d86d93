package imagevariant

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/rs/zerolog/log"

	"social-agents-server/modules/common/config"
	"social-agents-server/modules/common/storage"
	"social-agents-server/modules/common/utils"
)

// ErrNoImages is returned when a request carries no sources.
var ErrNoImages = errors.New("no images provided")

// Uploader hosts an encoded variant and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

type Service struct {
	fetcher  *Fetcher
	uploader Uploader
	quality  int
	encode   func(img image.Image, format string, quality int) ([]byte, error)
}

// NewService - uploader는 nil 가능 (업로드 요청 시 data URI 유지)
func NewService(cfg *config.Config, uploader Uploader) *Service {
	return &Service{
		fetcher:  NewFetcher(cfg.ImageFetchTimeout, cfg.MaxUploadBytes, cfg.ImageMaxPixels),
		uploader: uploader,
		quality:  cfg.ImageJPEGQuality,
		encode:   utils.Encode,
	}
}

// options - 요청 기본값이 적용된 처리 옵션
type options struct {
	platform Platform
	filters  []string
	enhance  bool
	anchor   Anchor
	format   string
	upload   bool
}

func resolveOptions(req *ProcessRequest) options {
	opts := options{
		platform: LookupPlatform(req.Platform),
		filters:  req.Filters,
		enhance:  true,
		anchor:   ParseAnchor(req.CropMode),
		format:   utils.FormatJPEG,
		upload:   req.Upload,
	}
	if opts.filters == nil {
		opts.filters = defaultFilters
	}
	if req.Enhance != nil {
		opts.enhance = *req.Enhance
	}
	if strings.EqualFold(req.Format, utils.FormatWebP) {
		opts.format = utils.FormatWebP
	}
	return opts
}

// Process - 모든 이미지를 처리하여 응답 생성
func (s *Service) Process(ctx context.Context, req *ProcessRequest) (*ProcessResponse, error) {
	opts := resolveOptions(req)
	processed := make([]ProcessedImage, 0, len(req.Images))

	_, err := s.ProcessStream(ctx, req, func(img ProcessedImage) error {
		processed = append(processed, img)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ProcessResponse{
		Success:         true,
		Platform:        opts.platform.Name,
		TargetSize:      Size{Width: opts.platform.Width, Height: opts.platform.Height},
		ProcessedImages: processed,
		Count:           len(processed),
	}, nil
}

// ProcessStream - 이미지 하나 처리될 때마다 emit 호출, 처리된 개수 반환
// 개별 이미지 실패는 로그 후 건너뜀
func (s *Service) ProcessStream(ctx context.Context, req *ProcessRequest, emit func(ProcessedImage) error) (int, error) {
	if len(req.Images) == 0 {
		return 0, ErrNoImages
	}

	opts := resolveOptions(req)
	log.Info().
		Int("images", len(req.Images)).
		Str("platform", opts.platform.Name).
		Strs("filters", opts.filters).
		Bool("enhance", opts.enhance).
		Str("format", opts.format).
		Msg("🎨 [ImageVariant] Processing request")

	count := 0
	for idx, source := range req.Images {
		if err := ctx.Err(); err != nil {
			return count, err
		}

		result, err := s.processImage(ctx, idx, source, opts)
		if err != nil {
			log.Warn().Err(err).Int("index", idx).Msg("⚠️  [ImageVariant] Skipping image")
			continue
		}

		if err := emit(*result); err != nil {
			return count, fmt.Errorf("failed to emit image %d: %w", idx, err)
		}
		count++
	}

	log.Info().Int("processed", count).Int("requested", len(req.Images)).Msg("✅ [ImageVariant] Request complete")
	return count, nil
}

func (s *Service) processImage(ctx context.Context, idx int, source string, opts options) (*ProcessedImage, error) {
	decoded, err := s.fetcher.Decode(ctx, source)
	if err != nil {
		return nil, err
	}
	base := Normalize(decoded)

	// 개별 variant 실패는 해당 variant만 건너뜀
	variants := make([]Variant, 0, len(opts.filters)+1)
	if opts.enhance {
		if v, err := s.render(ctx, Enhance(base), EnhancedVariant, opts); err != nil {
			log.Warn().Err(err).Int("index", idx).Msg("⚠️  [ImageVariant] Skipping variant")
		} else {
			variants = append(variants, *v)
		}
	}

	for _, name := range opts.filters {
		if name == EnhancedVariant {
			continue
		}
		if _, ok := LookupFilter(name); !ok {
			continue
		}
		v, err := s.render(ctx, ApplyFilter(base, name), name, opts)
		if err != nil {
			log.Warn().Err(err).Int("index", idx).Msg("⚠️  [ImageVariant] Skipping variant")
			continue
		}
		variants = append(variants, *v)
	}

	return &ProcessedImage{
		ID:           idx,
		Platform:     opts.platform.Name,
		Dimensions:   Size{Width: opts.platform.Width, Height: opts.platform.Height},
		Variants:     variants,
		VariantCount: len(variants),
	}, nil
}

// render - crop/resize, 인코딩 후 data URI 또는 업로드 URL 생성
func (s *Service) render(ctx context.Context, img image.Image, variant string, opts options) (*Variant, error) {
	sized := CropAndResize(img, opts.platform.Width, opts.platform.Height, opts.anchor)

	data, err := s.encode(sized, opts.format, s.quality)
	if err != nil {
		return nil, fmt.Errorf("variant %s: %w", variant, err)
	}
	mimeType := utils.MimeTypeFor(opts.format)

	url := utils.ToDataURI(data, mimeType)
	if opts.upload && s.uploader != nil {
		objectPath := storage.ObjectPath("variants/"+variant, opts.format)
		if publicURL, err := s.uploader.Upload(ctx, objectPath, data, mimeType); err != nil {
			log.Warn().Err(err).Str("variant", variant).Msg("⚠️  [ImageVariant] Upload failed, keeping data URI")
		} else {
			url = publicURL
		}
	}

	return &Variant{
		Variant: variant,
		Name:    DisplayName(variant),
		URL:     url,
		Width:   opts.platform.Width,
		Height:  opts.platform.Height,
	}, nil
}
