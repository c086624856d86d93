package imagevariant

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"social-agents-server/modules/common/config"
	"social-agents-server/modules/common/response"
)

type Handler struct {
	service *Service
	maxBody int64
}

func NewHandler(cfg *config.Config, uploader Uploader) *Handler {
	return &Handler{
		service: NewService(cfg, uploader),
		maxBody: cfg.MaxUploadBytes,
	}
}

// RegisterRoutes - 이미지 처리 라우트 등록
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/process-images", h.HandleProcessImages).Methods("POST", "OPTIONS")
	r.HandleFunc("/process-images/stream", h.HandleProcessStream).Methods("GET")
	r.HandleFunc("/platforms", h.HandlePlatforms).Methods("GET", "OPTIONS")
	r.HandleFunc("/filters", h.HandleFilters).Methods("GET", "OPTIONS")
}

// HandleProcessImages - POST /process-images
// 이미지별로 플랫폼 크기에 맞춘 variant 생성
func (h *Handler) HandleProcessImages(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)

	var req ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("❌ [ImageVariant] Invalid request")
		response.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := h.service.Process(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrNoImages) {
			response.Error(w, http.StatusBadRequest, "No images provided")
			return
		}
		log.Error().Err(err).Msg("❌ [ImageVariant] Processing failed")
		response.Error(w, http.StatusInternalServerError, "Failed to process images: "+err.Error())
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// HandlePlatforms - GET /platforms
func (h *Handler) HandlePlatforms(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, PlatformsResponse{Success: true, Platforms: Platforms()})
}

// HandleFilters - GET /filters
func (h *Handler) HandleFilters(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, FiltersResponse{Success: true, Filters: Filters()})
}
