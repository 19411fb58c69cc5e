package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/say_cheerfully/internal/audio"
	"github.com/Vovarama1992/say_cheerfully/internal/config"
	"github.com/Vovarama1992/say_cheerfully/internal/delivery"
	"github.com/Vovarama1992/say_cheerfully/internal/domain"
	"github.com/Vovarama1992/say_cheerfully/internal/error_notificator"
	"github.com/Vovarama1992/say_cheerfully/internal/mirror"
	"github.com/Vovarama1992/say_cheerfully/internal/ports"
	"github.com/Vovarama1992/say_cheerfully/internal/speech"

	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / LOGGER
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	baseLogger, _ := zap.NewProduction()
	if cfg.LogLevel == "debug" {
		baseLogger, _ = zap.NewDevelopment()
	}
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// ERROR NOTIFICATION
	// =========================================================================

	var errInfra error_notificator.Notificator = error_notificator.NewLogInfra(zl)
	if cfg.Telegram.Enabled() {
		tg, err := error_notificator.NewTelegramInfra(cfg.Telegram.Token, cfg.Telegram.AdminChatID, zl)
		if err != nil {
			zl.Log(logger.LogEntry{Level: "warn", Message: "telegram notifier disabled", Error: err, Service: config.ServiceName})
		} else {
			errInfra = tg
		}
	}
	errService := error_notificator.NewService(errInfra)

	// =========================================================================
	// INFRASTRUCTURE
	// =========================================================================

	gemini := speech.NewGeminiClient(cfg.GeminiAPIKey)
	store := audio.NewFileStore(cfg.AudioDir, cfg.AudioFormat, zl)

	var artifactMirror ports.ArtifactMirror
	if cfg.S3.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		s3Client, err := mirror.NewS3Client(ctx, cfg.S3)
		cancel()
		if err != nil {
			log.Fatalf("failed to init s3: %v", err)
		}
		artifactMirror = mirror.NewService(s3Client)
	}

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	speechService := speech.NewService(gemini, zl)
	conversionService := domain.NewConversionService(
		speechService,
		store,
		artifactMirror,
		errService,
		zl,
	)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := delivery.NewRouter()
	delivery.RegisterRoutes(
		r,
		delivery.NewConvertHandler(conversionService, zl),
		delivery.NewRateLimiter(config.RateLimit, config.RateLimitWindow),
		config.PublicDir,
	)

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + config.Port
	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "server is running at http://localhost" + addr,
		Service: config.ServiceName,
	})

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
