package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENABLED_SERVICES", "image,music")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.ImageJPEGQuality != 90 {
		t.Errorf("ImageJPEGQuality = %d, want 90", cfg.ImageJPEGQuality)
	}
	if cfg.MusicTimeout != 10*time.Second {
		t.Errorf("MusicTimeout = %v, want 10s", cfg.MusicTimeout)
	}
	if cfg.ITunesBaseURL != "https://itunes.apple.com/search" {
		t.Errorf("ITunesBaseURL = %q", cfg.ITunesBaseURL)
	}
	if cfg.MaxUploadBytes != 32<<20 {
		t.Errorf("MaxUploadBytes = %d, want %d", cfg.MaxUploadBytes, 32<<20)
	}
	if cfg.RedisEnabled() {
		t.Error("RedisEnabled() = true with no REDIS_HOST")
	}
	if cfg.StorageEnabled() {
		t.Error("StorageEnabled() = true with no Supabase credentials")
	}
	if cfg.ImageMaxPixels != DefaultImageMaxPixels {
		t.Errorf("ImageMaxPixels = %d, want %d", cfg.ImageMaxPixels, DefaultImageMaxPixels)
	}
}

func TestLoadConfigInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("ENABLED_SERVICES", "music")
	t.Setenv("MUSIC_TIMEOUT_SECONDS", "soon")
	t.Setenv("CAPTION_DAILY_LIMIT", "many")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.MusicTimeout != 10*time.Second {
		t.Errorf("MusicTimeout = %v, want 10s", cfg.MusicTimeout)
	}
	if cfg.CaptionDailyLimit != 0 {
		t.Errorf("CaptionDailyLimit = %d, want 0", cfg.CaptionDailyLimit)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{
			name:    "caption requires api key",
			env:     map[string]string{"ENABLED_SERVICES": "caption", "GEMINI_API_KEY": ""},
			wantErr: true,
		},
		{
			name:    "caption with api key",
			env:     map[string]string{"ENABLED_SERVICES": "caption", "GEMINI_API_KEY": "k"},
			wantErr: false,
		},
		{
			name:    "vertex requires project",
			env:     map[string]string{"ENABLED_SERVICES": "caption", "GEMINI_BACKEND": "vertex-ai", "VERTEXAI_PROJECT": ""},
			wantErr: true,
		},
		{
			name:    "unknown caption variant",
			env:     map[string]string{"ENABLED_SERVICES": "caption", "GEMINI_API_KEY": "k", "CAPTION_VARIANT": "poem"},
			wantErr: true,
		},
		{
			name:    "unknown service",
			env:     map[string]string{"ENABLED_SERVICES": "image,video"},
			wantErr: true,
		},
		{
			name:    "quality out of range",
			env:     map[string]string{"ENABLED_SERVICES": "image", "IMAGE_JPEG_QUALITY": "120"},
			wantErr: true,
		},
		{
			name:    "zero music timeout",
			env:     map[string]string{"ENABLED_SERVICES": "music", "MUSIC_TIMEOUT_SECONDS": "0"},
			wantErr: true,
		},
		{
			name:    "negative upload cap",
			env:     map[string]string{"ENABLED_SERVICES": "image", "MAX_UPLOAD_MB": "-1"},
			wantErr: true,
		},
		{
			name:    "zero fetch timeout",
			env:     map[string]string{"ENABLED_SERVICES": "image", "IMAGE_FETCH_TIMEOUT_SECONDS": "0"},
			wantErr: true,
		},
		{
			name:    "zero pixel cap",
			env:     map[string]string{"ENABLED_SERVICES": "image", "IMAGE_MAX_PIXELS": "0"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestServiceName(t *testing.T) {
	tests := []struct {
		services []string
		want     string
	}{
		{[]string{ServiceImage}, "image-processing-agent"},
		{[]string{ServiceCaption}, "caption-optimization-agent"},
		{[]string{ServiceMusic}, "music-suggestion-agent"},
		{[]string{ServiceImage, ServiceMusic}, "social-agents"},
	}
	for _, tt := range tests {
		cfg := &Config{EnabledServices: tt.services}
		if got := cfg.ServiceName(); got != tt.want {
			t.Errorf("ServiceName(%v) = %q, want %q", tt.services, got, tt.want)
		}
	}
}
