package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"social-agents-server/modules/caption"
	"social-agents-server/modules/common/config"
	"social-agents-server/modules/common/gemini"
	"social-agents-server/modules/common/logger"
	"social-agents-server/modules/common/metrics"
	"social-agents-server/modules/common/middleware"
	"social-agents-server/modules/common/quota"
	"social-agents-server/modules/common/redis"
	"social-agents-server/modules/common/response"
	"social-agents-server/modules/common/storage"
	"social-agents-server/modules/imagevariant"
	"social-agents-server/modules/music"
)

// 헬스 체크 응답
type healthResponse struct {
	Status  string   `json:"status"`
	Service string   `json:"service"`
	Modules []string `json:"modules,omitempty"`
}

func main() {
	logger.New(os.Getenv("APP_ENV"))

	// 환경변수 로드
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to load config")
	}
	logger.New(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverMetrics := metrics.New()

	// 라우터 설정
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.AccessLog, middleware.Observe(serverMetrics), middleware.Recovery, middleware.CORS)
	r.MethodNotAllowedHandler = middleware.CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			return
		}
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	}))

	health := func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, healthResponse{
			Status:  "healthy",
			Service: cfg.ServiceName(),
			Modules: cfg.EnabledServices,
		})
	}
	r.HandleFunc("/", health).Methods("GET")
	r.HandleFunc("/health", health).Methods("GET")
	r.HandleFunc("/metrics", serverMetrics.HandleMetrics).Methods("GET")

	// Image Variant 모듈
	if cfg.ServiceEnabled(config.ServiceImage) {
		var uploader imagevariant.Uploader
		if cfg.StorageEnabled() {
			storageClient, err := storage.NewClient(cfg)
			if err != nil {
				log.Warn().Err(err).Msg("⚠️  [Storage] Disabled, variants stay inline")
			} else {
				uploader = storageClient
			}
		}
		imagevariant.NewHandler(cfg, uploader).RegisterRoutes(r)
		log.Info().Msg("✅ [ImageVariant] Routes registered")
	}

	// Caption 모듈
	var rdbCloser func() error
	if cfg.ServiceEnabled(config.ServiceCaption) {
		model, err := gemini.NewClient(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("❌ Failed to create Gemini client")
		}

		var limiter *quota.Limiter
		if cfg.CaptionDailyLimit > 0 {
			if rdb := redis.Connect(cfg); rdb != nil {
				limiter = quota.NewLimiter(rdb, "caption:quota", cfg.CaptionDailyLimit)
				rdbCloser = rdb.Close
			}
		}
		caption.NewHandler(cfg, model, limiter).RegisterRoutes(r)
		log.Info().Str("variant", cfg.CaptionVariant).Bool("quota", limiter.Enabled()).Msg("✅ [Caption] Routes registered")
	}

	// Music 모듈
	if cfg.ServiceEnabled(config.ServiceMusic) {
		music.NewHandler(cfg, nil).RegisterRoutes(r)
		log.Info().Msg("✅ [Music] Routes registered")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("service", cfg.ServiceName()).Msg("🚀 Social agents server starting")
		log.Info().Msgf("❤️  Health check: http://localhost:%s/health", cfg.Port)
		log.Info().Msgf("📊 Metrics: http://localhost:%s/metrics", cfg.Port)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("🛑 Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("❌ Graceful shutdown failed")
	}
	if rdbCloser != nil {
		_ = rdbCloser()
	}
}
