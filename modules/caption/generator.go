package caption

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"social-agents-server/modules/common/gemini"
)

// Generator produces a caption and hashtags for one image.
// Errors are model failures; the caller decides how to degrade.
type Generator interface {
	Name() string
	HashtagCap() int
	Generate(ctx context.Context, image *gemini.InlineImage, intent string) (*Result, error)
}

// OneShot - 이미지+intent로 한 번 호출, CAPTION/HASHTAGS 라벨 형식 응답 파싱
type OneShot struct {
	model gemini.TextGenerator
}

func NewOneShot(model gemini.TextGenerator) *OneShot {
	return &OneShot{model: model}
}

func (g *OneShot) Name() string    { return VariantOneShot }
func (g *OneShot) HashtagCap() int { return OneShotHashtagCap }

func (g *OneShot) Generate(ctx context.Context, image *gemini.InlineImage, intent string) (*Result, error) {
	text, err := g.model.GenerateText(ctx, oneShotPrompt(intent), image)
	if err != nil {
		return nil, err
	}

	caption, hashtags, ok := ParseLabeled(text)
	if !ok {
		log.Debug().Msg("⚠️  [Caption] Labels missing, using whole response as caption")
	}

	return &Result{
		Caption:  caption,
		Hashtags: CapHashtags(hashtags, OneShotHashtagCap),
		Variant:  VariantOneShot,
	}, nil
}

// Pipeline - 분석 -> 전략 결정 -> caption 호출 -> hashtag 호출
type Pipeline struct {
	model gemini.TextGenerator
}

func NewPipeline(model gemini.TextGenerator) *Pipeline {
	return &Pipeline{model: model}
}

func (g *Pipeline) Name() string    { return VariantPipeline }
func (g *Pipeline) HashtagCap() int { return PipelineHashtagCap }

func (g *Pipeline) Generate(ctx context.Context, image *gemini.InlineImage, intent string) (*Result, error) {
	// 1. 이미지 분석
	analysis, err := g.Analyze(ctx, image, intent)
	if err != nil {
		return nil, err
	}

	// 2. 전략 결정
	strategy := DecideStrategy(intent, analysis)
	log.Debug().
		Str("subject", analysis.Subject).
		Str("mood", analysis.Mood).
		Str("strategy", strategy).
		Msg("🔍 [Caption] Analysis complete")

	// 3. Caption
	captionText, err := g.model.GenerateText(ctx, captionPrompt(intent, analysis, strategy), nil)
	if err != nil {
		return nil, fmt.Errorf("caption call: %w", err)
	}
	caption, _, _ := ParseLabeled(captionText)

	// 4. Hashtags
	hashtagText, err := g.model.GenerateText(ctx, hashtagPrompt(intent, analysis), nil)
	if err != nil {
		return nil, fmt.Errorf("hashtag call: %w", err)
	}

	return &Result{
		Caption:  caption,
		Hashtags: CapHashtags(hashtagTokens(hashtagText), PipelineHashtagCap),
		Strategy: strategy,
		Variant:  VariantPipeline,
	}, nil
}

// Analyze - 이미지의 subject/mood 추출. JSON 파싱 실패는 에러가 아님
func (g *Pipeline) Analyze(ctx context.Context, image *gemini.InlineImage, intent string) (Analysis, error) {
	text, err := g.model.GenerateText(ctx, analysisPrompt, image)
	if err != nil {
		return Analysis{}, fmt.Errorf("analysis call: %w", err)
	}

	analysis, ok := ParseAnalysis(text, intent)
	if !ok {
		log.Debug().Str("mood", analysis.Mood).Msg("⚠️  [Caption] Analysis not JSON, using local mood")
	}
	return analysis, nil
}
