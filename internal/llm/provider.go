package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Client define la interfaz para generar texto con un proveedor externo.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Request es una unica llamada de generacion: un prompt, una respuesta.
type Request struct {
	Model       string
	Prompt      string
	Temperature float32
	MaxTokens   int
}

const (
	DriverSDK  = "sdk"
	DriverHTTP = "http"
)

var (
	ErrEmptyResponse = errors.New("llm empty response")
	ErrUnknownDriver = errors.New("llm unknown driver")
	ErrMissingAPIKey = errors.New("llm api key not configured")
)

type logger interface {
	Printf(format string, v ...interface{})
}

// New construye el cliente indicado por driver.
func New(driver, baseURL, apiKey, defaultModel string, timeout time.Duration, log any) (Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverSDK:
		return NewOpenAIClient(baseURL, apiKey, defaultModel, timeout), nil
	case DriverHTTP:
		return NewHTTPClient(baseURL, apiKey, defaultModel, timeout, log), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
