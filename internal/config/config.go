package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	LLMAPIKey  string        `env:"LLM_API_KEY,required"`
	LLMBaseURL string        `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel   string        `env:"LLM_MODEL" envDefault:"gpt-3.5-turbo"`
	LLMDriver  string        `env:"LLM_DRIVER" envDefault:"sdk"`
	LLMTimeout time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`

	JWTSecret          string        `env:"JWT_SECRET"`
	ChatTokenTTL       time.Duration `env:"CHAT_TOKEN_TTL" envDefault:"2h"`
	ChatSessionIdleTTL time.Duration `env:"CHAT_SESSION_IDLE_TTL" envDefault:"30m"`
	ChatRateLimit      int           `env:"CHAT_RATE_LIMIT" envDefault:"20"`
	ChatRateWindow     time.Duration `env:"CHAT_RATE_WINDOW" envDefault:"1m"`
	SessionRateLimit   int           `env:"SESSION_RATE_LIMIT" envDefault:"10"`
	FormRateLimit      int           `env:"FORM_RATE_LIMIT" envDefault:"5"`
	UploadMaxBytes     int64         `env:"UPLOAD_MAX_BYTES" envDefault:"10485760"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPass     string `env:"SMTP_PASS"`
	SMTPFrom     string `env:"SMTP_FROM"`
	SMTPFromName string `env:"SMTP_FROM_NAME" envDefault:"SoftSell"`
	SMTPUseTLS   bool   `env:"SMTP_USE_TLS" envDefault:"false"`
	NotifyTo     string `env:"NOTIFY_TO" envDefault:"info@softsell.com"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ChatConfig es el subconjunto que necesita el cliente de chat de terminal,
// que no toca la base de datos.
type ChatConfig struct {
	LLMAPIKey  string        `env:"LLM_API_KEY,required"`
	LLMBaseURL string        `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel   string        `env:"LLM_MODEL" envDefault:"gpt-3.5-turbo"`
	LLMDriver  string        `env:"LLM_DRIVER" envDefault:"sdk"`
	LLMTimeout time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`
}

func LoadChatConfig() (*ChatConfig, error) {
	var cfg ChatConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
