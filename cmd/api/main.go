package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"softsell-api/internal/config"
	"softsell-api/internal/db"
	"softsell-api/internal/email"
	apihttp "softsell-api/internal/http"
	"softsell-api/internal/llm"
	"softsell-api/internal/repository"
	"softsell-api/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()
	if err := db.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("db schema", zap.Error(err))
	}

	llmClient, err := llm.New(cfg.LLMDriver, cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout, zap.NewStdLog(logger))
	if err != nil {
		logger.Fatal("llm client", zap.Error(err))
	}

	var notifier email.Notifier = email.NewDisabledSender("email notifier not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.NotifyTo, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			notifier = sender
		}
	}

	chatLimiter := service.NewRateLimiter(cfg.ChatRateWindow, cfg.ChatRateLimit)
	sessionLimiter := service.NewRateLimiter(cfg.ChatRateWindow, cfg.SessionRateLimit)
	formLimiter := service.NewRateLimiter(time.Minute, cfg.FormRateLimit)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory rate limits", zap.Error(err))
		} else {
			chatLimiter = service.NewRedisRateLimiter(redisClient, "rl:chat:", cfg.ChatRateWindow, cfg.ChatRateLimit)
			sessionLimiter = service.NewRedisRateLimiter(redisClient, "rl:session:", cfg.ChatRateWindow, cfg.SessionRateLimit)
			formLimiter = service.NewRedisRateLimiter(redisClient, "rl:forms:", time.Minute, cfg.FormRateLimit)
		}
		cancel()
	}

	secret := cfg.JWTSecret
	if secret == "" {
		// Sin secreto fijo los tokens de chat no sobreviven un reinicio, igual que las conversaciones.
		secret = uuid.NewString()
		logger.Warn("jwt secret not configured, using ephemeral secret")
	}
	tokens := service.NewSessionTokenService(secret, cfg.ChatTokenTTL)

	registry := service.NewConversationRegistry(logger, llmClient, cfg.LLMModel, cfg.ChatSessionIdleTTL)
	go registry.Run(ctx, time.Minute)

	formSvc := service.NewFormService(
		logger,
		repository.NewPgContactRepository(pool),
		repository.NewPgLicenseUploadRepository(pool),
		repository.NewPgValuationRepository(pool),
		repository.NewPgPaymentRepository(pool),
		notifier,
		cfg.UploadMaxBytes,
	)

	chatHandler := apihttp.NewChatHandler(logger, registry, tokens)
	formHandler := apihttp.NewFormHandler(logger, formSvc, cfg.UploadMaxBytes)
	router := apihttp.NewRouter(logger, chatHandler, formHandler, apihttp.RouterOptions{
		ChatLimiter:    chatLimiter,
		SessionLimiter: sessionLimiter,
		FormLimiter:    formLimiter,
		Health: func(ctx context.Context) error {
			return db.Ping(ctx, pool)
		},
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.String("port", cfg.HTTPPort), zap.String("llm_driver", cfg.LLMDriver))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
}
