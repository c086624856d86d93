package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Service names accepted in ENABLED_SERVICES
const (
	ServiceImage   = "image"
	ServiceCaption = "caption"
	ServiceMusic   = "music"
)

// Gemini backends
const (
	BackendGeminiAPI = "gemini-api"
	BackendVertexAI  = "vertex-ai"
)

// Config 구조체 - 모든 환경변수를 담음
type Config struct {
	// Server
	Environment     string
	Port            string
	EnabledServices []string
	MaxUploadBytes  int64

	// Gemini API
	GeminiAPIKey            string
	GeminiModel             string
	GeminiBackend           string
	VertexAIProject         string
	VertexAILocation        string
	VertexAICredentialsJSON string
	VertexAICredentialsPath string

	// Caption
	CaptionVariant    string
	CaptionDailyLimit int

	// Redis (quota only, empty host disables)
	RedisHost     string
	RedisPort     string
	RedisUsername string
	RedisPassword string
	RedisUseTLS   bool

	// Supabase (variant upload only)
	SupabaseURL        string
	SupabaseServiceKey string
	SupabaseBucket     string

	// Music catalog
	ITunesBaseURL string
	ITunesCountry string
	MusicTimeout  time.Duration

	// Image
	ImageJPEGQuality  int
	ImageFetchTimeout time.Duration
	ImageMaxPixels    int64
}

// DefaultImageMaxPixels matches the usual decompression-bomb threshold
// (about 179M pixels, roughly 13400x13400).
const DefaultImageMaxPixels = 178956970

// LoadConfig - 환경변수 로드
func LoadConfig() (*Config, error) {
	// .env 파일 로드 (있으면)
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("⚠️  .env file not found, using environment variables")
	}

	cfg := &Config{
		Environment:     getEnv("APP_ENV", "development"),
		Port:            getEnv("PORT", "8080"),
		EnabledServices: getList("ENABLED_SERVICES", []string{ServiceImage, ServiceCaption, ServiceMusic}),
		MaxUploadBytes:  int64(getInt("MAX_UPLOAD_MB", 32)) << 20,

		GeminiAPIKey:            getEnv("GEMINI_API_KEY", ""),
		GeminiModel:             getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiBackend:           strings.ToLower(getEnv("GEMINI_BACKEND", BackendGeminiAPI)),
		VertexAIProject:         getEnv("VERTEXAI_PROJECT", ""),
		VertexAILocation:        getEnv("VERTEXAI_LOCATION", "us-central1"),
		VertexAICredentialsJSON: getEnv("VERTEXAI_CREDENTIALS_JSON", ""),
		VertexAICredentialsPath: getEnv("VERTEXAI_CREDENTIALS_PATH", ""),

		CaptionVariant:    strings.ToLower(getEnv("CAPTION_VARIANT", "pipeline")),
		CaptionDailyLimit: getInt("CAPTION_DAILY_LIMIT", 0),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisUsername: getEnv("REDIS_USERNAME", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisUseTLS:   getBool("REDIS_USE_TLS", false),

		SupabaseURL:        getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey: getEnv("SUPABASE_SERVICE_KEY", ""),
		SupabaseBucket:     getEnv("SUPABASE_BUCKET", "social-variants"),

		ITunesBaseURL: getEnv("ITUNES_BASE_URL", "https://itunes.apple.com/search"),
		ITunesCountry: getEnv("ITUNES_COUNTRY", "US"),
		MusicTimeout:  time.Duration(getInt("MUSIC_TIMEOUT_SECONDS", 10)) * time.Second,

		ImageJPEGQuality:  getInt("IMAGE_JPEG_QUALITY", 90),
		ImageFetchTimeout: time.Duration(getInt("IMAGE_FETCH_TIMEOUT_SECONDS", 15)) * time.Second,
		ImageMaxPixels:    int64(getInt("IMAGE_MAX_PIXELS", DefaultImageMaxPixels)),
	}

	// 필수 환경변수 검증
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log.Info().
		Strs("services", cfg.EnabledServices).
		Str("gemini_model", cfg.GeminiModel).
		Str("gemini_backend", cfg.GeminiBackend).
		Str("caption_variant", cfg.CaptionVariant).
		Bool("redis", cfg.RedisEnabled()).
		Bool("supabase", cfg.StorageEnabled()).
		Msg("✅ Configuration loaded successfully")

	return cfg, nil
}

// validate - 필수 환경변수 검증
func (c *Config) validate() error {
	if len(c.EnabledServices) == 0 {
		return fmt.Errorf("ENABLED_SERVICES must name at least one service")
	}
	for _, name := range c.EnabledServices {
		switch name {
		case ServiceImage, ServiceCaption, ServiceMusic:
		default:
			return fmt.Errorf("unknown service in ENABLED_SERVICES: %s", name)
		}
	}

	if c.ServiceEnabled(ServiceCaption) {
		switch c.GeminiBackend {
		case BackendGeminiAPI:
			if c.GeminiAPIKey == "" {
				return fmt.Errorf("GEMINI_API_KEY is required")
			}
		case BackendVertexAI:
			if c.VertexAIProject == "" {
				return fmt.Errorf("VERTEXAI_PROJECT is required for the vertex-ai backend")
			}
		default:
			return fmt.Errorf("unknown GEMINI_BACKEND: %s", c.GeminiBackend)
		}

		if c.CaptionVariant != "pipeline" && c.CaptionVariant != "oneshot" {
			return fmt.Errorf("unknown CAPTION_VARIANT: %s", c.CaptionVariant)
		}
	}

	if c.ImageJPEGQuality < 1 || c.ImageJPEGQuality > 100 {
		return fmt.Errorf("IMAGE_JPEG_QUALITY must be between 1 and 100")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive")
	}
	if c.MusicTimeout <= 0 {
		return fmt.Errorf("MUSIC_TIMEOUT_SECONDS must be positive")
	}
	if c.ImageFetchTimeout <= 0 {
		return fmt.Errorf("IMAGE_FETCH_TIMEOUT_SECONDS must be positive")
	}
	if c.ImageMaxPixels <= 0 {
		return fmt.Errorf("IMAGE_MAX_PIXELS must be positive")
	}
	return nil
}

// ServiceEnabled reports whether the named service should be mounted.
func (c *Config) ServiceEnabled(name string) bool {
	for _, s := range c.EnabledServices {
		if s == name {
			return true
		}
	}
	return false
}

// ServiceName - health check에 노출되는 서비스 이름
func (c *Config) ServiceName() string {
	if len(c.EnabledServices) != 1 {
		return "social-agents"
	}
	switch c.EnabledServices[0] {
	case ServiceImage:
		return "image-processing-agent"
	case ServiceCaption:
		return "caption-optimization-agent"
	default:
		return "music-suggestion-agent"
	}
}

// RedisEnabled reports whether a Redis host was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// StorageEnabled reports whether Supabase credentials were configured.
func (c *Config) StorageEnabled() bool {
	return c.SupabaseURL != "" && c.SupabaseServiceKey != ""
}

// GetRedisAddr - Redis 연결 문자열 생성
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// getEnv - 환경변수 가져오기 (기본값 지원)
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if raw := os.Getenv(key); raw != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if raw := os.Getenv(key); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
			out = append(out, item)
		}
	}
	return out
}
