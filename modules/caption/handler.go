package caption

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"social-agents-server/modules/common/config"
	"social-agents-server/modules/common/gemini"
	"social-agents-server/modules/common/quota"
	"social-agents-server/modules/common/response"
	"social-agents-server/modules/common/utils"
)

const clientIDHeader = "X-Client-ID"

type Handler struct {
	service *Service
	limiter *quota.Limiter
	maxBody int64
}

func NewHandler(cfg *config.Config, model gemini.TextGenerator, limiter *quota.Limiter) *Handler {
	return &Handler{
		service: NewService(model, cfg.CaptionVariant),
		limiter: limiter,
		maxBody: cfg.MaxUploadBytes,
	}
}

// RegisterRoutes - caption 라우트 등록
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/instagram/optimize", h.HandleOptimize).Methods("POST", "OPTIONS")
}

// HandleOptimize - POST /api/instagram/optimize
// multipart: image (file), intent, variant (선택)
func (h *Handler) HandleOptimize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	if err := r.ParseMultipartForm(h.maxBody); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		log.Warn().Err(err).Msg("❌ [Caption] Invalid multipart form")
		response.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Image file is required")
		return
	}
	defer file.Close()

	intent := strings.TrimSpace(r.FormValue("intent"))
	if intent == "" {
		response.Error(w, http.StatusBadRequest, "Intent is required")
		return
	}

	variant, err := h.service.ResolveVariant(r.FormValue("variant"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, fmt.Sprintf("Unknown variant: %s", r.FormValue("variant")))
		return
	}

	// 일일 사용량 확인 (Redis 미설정 시 무제한)
	if usage, err := h.limiter.Take(r.Context(), clientID(r)); err == nil && usage.Exceeded() {
		log.Warn().Str("client", usage.ClientID).Int("used", usage.Used).Msg("⚠️  [Caption] Daily limit reached")
		response.Error(w, http.StatusTooManyRequests, "Daily caption limit reached")
		return
	}

	imageData, err := bufferToTempFile(file)
	if err != nil {
		log.Error().Err(err).Str("filename", header.Filename).Msg("❌ [Caption] Failed to buffer upload")
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := h.service.Optimize(r.Context(), imageData, utils.DetectMimeType(imageData), intent, variant)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error().Err(err).Msg("❌ [Caption] Optimization failed")
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	hashtags := result.Hashtags
	if hashtags == nil {
		hashtags = []string{}
	}
	response.JSON(w, http.StatusOK, OptimizeResponse{
		Success:  true,
		Caption:  result.Caption,
		Hashtags: hashtags,
		Strategy: result.Strategy,
		Variant:  result.Variant,
		Fallback: result.Fallback,
		Reason:   result.Reason,
	})
}

// bufferToTempFile - 업로드를 임시 파일에 저장 후 읽음. 모든 경로에서 파일 삭제
func bufferToTempFile(src io.Reader) ([]byte, error) {
	tmp, err := os.CreateTemp("", "caption-upload-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to save upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to save upload: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return data, nil
}

// clientID - X-Client-ID 헤더, 없으면 원격 주소
// The header is caller-supplied, so the quota only meters cooperating
// clients (the upstream backend sets it per creator). It is not an abuse
// control for direct callers.
func clientID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(clientIDHeader)); id != "" {
		return id
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
