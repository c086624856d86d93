package redis

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"social-agents-server/modules/common/config"
)

// Connect - Redis 연결 생성. REDIS_HOST가 비어 있거나 ping 실패 시 nil 반환
func Connect(cfg *config.Config) *redis.Client {
	if !cfg.RedisEnabled() {
		log.Info().Msg("ℹ️  [Redis] REDIS_HOST not set, quota disabled")
		return nil
	}

	log.Info().Str("addr", cfg.GetRedisAddr()).Msg("🔌 [Redis] Connecting")

	var tlsConfig *tls.Config
	if cfg.RedisUseTLS {
		tlsConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Username:     cfg.RedisUsername,
		Password:     cfg.RedisPassword,
		TLSConfig:    tlsConfig,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// 연결 테스트
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("❌ [Redis] Ping failed, quota disabled")
		_ = rdb.Close()
		return nil
	}

	log.Info().Msg("✅ [Redis] Connected")
	return rdb
}
