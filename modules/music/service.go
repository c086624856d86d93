package music

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"social-agents-server/modules/common/fallback"
)

// Limit bounds for POST /suggest-music
const (
	DefaultLimit = 5
	MaxLimit     = 25
)

// Suggestion sources
const (
	SourceITunes   = "itunes"
	SourceFallback = "fallback"
)

// ErrMissingText is returned when both description and caption are empty.
var ErrMissingText = errors.New("description or caption is required")

type Service struct {
	catalog Catalog
}

func NewService(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// Suggest - mood 결정 -> 카탈로그 검색 -> 실패/빈 결과면 fallback
func (s *Service) Suggest(ctx context.Context, req *SuggestRequest) (*SuggestResponse, error) {
	description := fallback.SafeString(req.Description, "")
	caption := fallback.SafeString(req.Caption, "")
	if description == "" && caption == "" {
		return nil, ErrMissingText
	}

	limit := fallback.Clamp(fallback.SafeInt(req.Limit, DefaultLimit), 1, MaxLimit)
	mood := ResolveMood(req.Mood, description, caption)
	genre := GenreFor(mood)

	log.Info().Str("mood", mood).Str("genre", genre).Int("limit", limit).Msg("🎵 [Music] Detected mood")

	source := SourceITunes
	suggestions, err := s.catalog.Search(ctx, mood, genre, limit)
	if err != nil {
		log.Warn().Err(err).Msg("⚠️  [Music] Catalog search failed")
	}
	if err != nil || len(suggestions) == 0 {
		log.Info().Str("mood", mood).Msg("🔄 [Music] Using fallback suggestions")
		suggestions = FallbackSuggestions(mood, limit)
		source = SourceFallback
	}

	return &SuggestResponse{
		Success:      true,
		DetectedMood: mood,
		Genre:        genre,
		Suggestions:  suggestions,
		Count:        len(suggestions),
		Source:       source,
	}, nil
}
