package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	storage_go "github.com/supabase-community/storage-go"
	"github.com/supabase-community/supabase-go"

	"social-agents-server/modules/common/config"
)

// fileAPI is the subset of the Supabase storage client used for uploads.
type fileAPI interface {
	UploadFile(bucketID string, relativePath string, data io.Reader, fileOptions ...storage_go.FileOptions) (storage_go.FileUploadResponse, error)
	GetPublicUrl(bucketID string, filePath string, urlOptions ...storage_go.UrlOptions) storage_go.SignedUrlResponse
}

type Client struct {
	files  fileAPI
	bucket string
}

// NewClient - Supabase Storage 클라이언트 생성
func NewClient(cfg *config.Config) (*Client, error) {
	supabaseClient, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	log.Info().Str("bucket", cfg.SupabaseBucket).Msg("✅ [Storage] Supabase client initialized")
	return &Client{
		files:  supabaseClient.Storage,
		bucket: cfg.SupabaseBucket,
	}, nil
}

// ObjectPath - 업로드 경로 생성 (prefix/YYYYMMDD/uuid.ext)
func ObjectPath(prefix, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	day := time.Now().UTC().Format("20060102")
	return path.Join(prefix, day, uuid.NewString()+"."+ext)
}

// Upload - 이미지 업로드 후 public URL 반환
func (c *Client) Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	upsert := true
	log.Debug().
		Str("path", objectPath).
		Int("bytes", len(data)).
		Msg("📤 [Storage] Uploading variant")

	_, err := c.files.UploadFile(c.bucket, objectPath, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objectPath, err)
	}

	publicURL := c.files.GetPublicUrl(c.bucket, objectPath).SignedURL
	if publicURL == "" {
		return "", fmt.Errorf("no public url returned for %s", objectPath)
	}

	log.Info().Str("path", objectPath).Msg("✅ [Storage] Variant uploaded")
	return publicURL, nil
}
