package caption

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"social-agents-server/modules/common/gemini"
)

// ErrUnknownVariant is returned for a variant name with no generator.
var ErrUnknownVariant = errors.New("unknown caption variant")

type Service struct {
	generators     map[string]Generator
	defaultVariant string
}

// NewService - oneshot/pipeline 두 generator 등록
func NewService(model gemini.TextGenerator, defaultVariant string) *Service {
	s := &Service{
		generators:     map[string]Generator{},
		defaultVariant: defaultVariant,
	}
	for _, g := range []Generator{NewOneShot(model), NewPipeline(model)} {
		s.generators[g.Name()] = g
	}
	return s
}

// ResolveVariant maps a requested variant (empty means the default) to a
// registered generator name.
func (s *Service) ResolveVariant(variant string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(variant))
	if name == "" {
		name = s.defaultVariant
	}
	if _, ok := s.generators[name]; !ok {
		return "", ErrUnknownVariant
	}
	return name, nil
}

// Optimize - caption/hashtag 생성. 모델 에러는 로컬 fallback으로 대체
func (s *Service) Optimize(ctx context.Context, image []byte, mimeType, intent, variant string) (*Result, error) {
	name, err := s.ResolveVariant(variant)
	if err != nil {
		return nil, err
	}
	generator := s.generators[name]

	log.Info().
		Str("variant", name).
		Int("image_bytes", len(image)).
		Str("intent", truncate(intent, 40)).
		Msg("📝 [Caption] Optimizing")

	result, err := generator.Generate(ctx, &gemini.InlineImage{Data: image, MimeType: mimeType}, intent)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		reason := gemini.Reason(err)
		log.Warn().Err(err).Str("reason", reason).Msg("⚠️  [Caption] Model failed, using local fallback")

		result = LocalFallback(intent, generator.HashtagCap())
		result.Variant = name
		result.Reason = reason
		return result, nil
	}

	log.Info().
		Str("variant", name).
		Str("strategy", result.Strategy).
		Int("hashtags", len(result.Hashtags)).
		Msg("✅ [Caption] Generated")
	return result, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
