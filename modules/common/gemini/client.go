package gemini

import (
	"context"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/auth"
	"cloud.google.com/go/auth/credentials"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"social-agents-server/modules/common/config"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// InlineImage is an image attached to a prompt.
type InlineImage struct {
	Data     []byte
	MimeType string
}

// TextGenerator sends a prompt (optionally with one image) and returns the model's text.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, image *InlineImage) (string, error)
}

// Client wraps a genai client bound to one model.
type Client struct {
	genaiClient *genai.Client
	model       string
	temperature float32
}

var _ TextGenerator = (*Client)(nil)

// NewClient - Gemini API 또는 Vertex AI backend로 genai 클라이언트 생성
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	clientConfig := &genai.ClientConfig{}

	switch cfg.GeminiBackend {
	case config.BackendVertexAI:
		creds, err := vertexCredentials(cfg)
		if err != nil {
			return nil, err
		}
		clientConfig.Backend = genai.BackendVertexAI
		clientConfig.Project = cfg.VertexAIProject
		clientConfig.Location = cfg.VertexAILocation
		clientConfig.Credentials = creds
	default:
		clientConfig.Backend = genai.BackendGeminiAPI
		clientConfig.APIKey = cfg.GeminiAPIKey
	}

	genaiClient, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	log.Info().
		Str("backend", cfg.GeminiBackend).
		Str("model", cfg.GeminiModel).
		Msg("✅ [Gemini] Client initialized")

	return &Client{
		genaiClient: genaiClient,
		model:       cfg.GeminiModel,
		temperature: 0.7,
	}, nil
}

// vertexCredentials - 환경 변수 자격 증명 처리 (JSON > 파일 경로 > ADC)
func vertexCredentials(cfg *config.Config) (*auth.Credentials, error) {
	opts := &credentials.DetectOptions{Scopes: []string{cloudPlatformScope}}

	switch {
	case cfg.VertexAICredentialsJSON != "":
		log.Info().Msg("✅ [Gemini] Using VERTEXAI_CREDENTIALS_JSON from environment")
		opts.CredentialsJSON = []byte(cfg.VertexAICredentialsJSON)
	case cfg.VertexAICredentialsPath != "":
		log.Info().Str("path", cfg.VertexAICredentialsPath).Msg("✅ [Gemini] Using credentials file")
		data, err := os.ReadFile(cfg.VertexAICredentialsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		opts.CredentialsJSON = data
	default:
		log.Warn().Msg("⚠️  [Gemini] No explicit credentials found, using Application Default Credentials")
	}

	creds, err := credentials.DetectDefault(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load vertex credentials: %w", err)
	}
	return creds, nil
}

// GenerateText - 프롬프트(+이미지) 한 번 호출, 응답 텍스트 반환. 재시도 없음
func (c *Client) GenerateText(ctx context.Context, prompt string, image *InlineImage) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
	}
	if image != nil && len(image.Data) > 0 {
		parts = append(parts, genai.NewPartFromBytes(image.Data, image.MimeType))
	}

	log.Debug().
		Str("model", c.model).
		Bool("image", image != nil).
		Str("prompt", truncateString(prompt, 60)).
		Msg("📤 [Gemini] Calling model")

	result, err := c.genaiClient.Models.GenerateContent(
		ctx,
		c.model,
		[]*genai.Content{{Parts: parts}},
		&genai.GenerateContentConfig{
			Temperature: &c.temperature,
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := collectText(result)
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// collectText - 응답에서 텍스트 파트만 이어 붙임
func collectText(result *genai.GenerateContentResponse) string {
	if result == nil {
		return ""
	}

	var sb strings.Builder
	for _, candidate := range result.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought || part.Text == "" {
				continue
			}
			sb.WriteString(part.Text)
		}
		// 첫 번째 후보만 사용
		if sb.Len() > 0 {
			break
		}
	}
	return sb.String()
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
