package music

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

func NewHandler(cfg *config.Config, catalog Catalog) *Handler {
	if catalog == nil {
		catalog = NewITunesClient(cfg.ITunesBaseURL, cfg.ITunesCountry, cfg.MusicTimeout)
	}
	return &Handler{
		service: NewService(catalog),
		maxBody: cfg.MaxUploadBytes,
	}
}

// RegisterRoutes - 음악 추천 라우트 등록
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/suggest-music", h.HandleSuggestMusic).Methods("POST", "OPTIONS")
	r.HandleFunc("/moods", h.HandleMoods).Methods("GET", "OPTIONS")
}

// HandleSuggestMusic - POST /suggest-music
func (h *Handler) HandleSuggestMusic(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)

	var req SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("❌ [Music] Invalid request")
		response.Error(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	result, err := h.service.Suggest(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrMissingText) {
			response.Error(w, http.StatusBadRequest, "Description or caption is required")
			return
		}
		log.Error().Err(err).Msg("❌ [Music] Suggestion failed")
		response.Error(w, http.StatusInternalServerError, "Failed to generate music suggestions: "+err.Error())
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// HandleMoods - GET /moods
func (h *Handler) HandleMoods(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, MoodsResponse{Success: true, Moods: Moods()})
}
