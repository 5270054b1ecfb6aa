package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"softsell-api/internal/service"
)

// HealthCheck verifica las dependencias que el servicio necesita para atender.
type HealthCheck func(ctx context.Context) error

// RouterOptions agrupa limiters y chequeo de salud. Un campo nil desactiva
// esa proteccion.
type RouterOptions struct {
	ChatLimiter    service.RateLimiter
	SessionLimiter service.RateLimiter
	FormLimiter    service.RateLimiter
	Health         HealthCheck
}

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(logger *zap.Logger, chatH *ChatHandler, formH *FormHandler, opts RouterOptions) *gin.Engine {
	r := gin.New()

	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/healthz", healthHandler(logger, opts.Health))

	chat := r.Group("/chat")
	chat.POST("/sessions", RateLimitMiddleware(opts.SessionLimiter), chatH.CreateSession)
	chat.GET("/suggestions", chatH.Suggestions)

	session := chat.Group("", ChatSessionMiddleware(chatH.tokens, chatH.registry))
	session.GET("/transcript", chatH.GetTranscript)
	session.POST("/messages", RateLimitMiddleware(opts.ChatLimiter), chatH.PostMessage)
	session.POST("/questions", RateLimitMiddleware(opts.ChatLimiter), chatH.PostQuestion)

	forms := r.Group("/forms", RateLimitMiddleware(opts.FormLimiter))
	forms.POST("/contact", formH.SubmitContact)
	forms.POST("/license-uploads", formH.SubmitLicenseUpload)
	forms.POST("/valuations", formH.SubmitValuation)
	forms.POST("/payments", formH.SubmitPayment)

	return r
}

func healthHandler(logger *zap.Logger, check HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				logger.Warn("health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}

// RateLimitMiddleware corta con 429 cuando el limiter rechaza la IP. Sin
// limiter no limita.
func RateLimitMiddleware(limiter service.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter != nil && !limiter.Allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
