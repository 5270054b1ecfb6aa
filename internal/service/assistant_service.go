package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"softsell-api/internal/domain"
	"softsell-api/internal/llm"
)

var (
	ErrEmptyMessage      = errors.New("message is empty")
	ErrConversationBusy  = errors.New("conversation awaiting response")
	ErrAssistantNotReady = errors.New("assistant not configured")
)

// Conversation mantiene el transcript del asistente y el flag de pendiente.
// Solo hay una llamada al proveedor en curso por conversacion: mientras el
// flag esta activo, cualquier envio nuevo se rechaza sin tocar el transcript.
type Conversation struct {
	logger *zap.Logger
	llm    llm.Client
	model  string

	mu      sync.Mutex
	turns   []domain.Turn
	pending bool
	nextSeq int
	touched time.Time
}

// NewConversation crea una conversacion sembrada con el saludo.
func NewConversation(logger *zap.Logger, client llm.Client, model string) *Conversation {
	if logger == nil {
		logger = zap.NewNop()
	}
	now := time.Now().UTC()
	return &Conversation{
		logger: logger,
		llm:    client,
		model:  model,
		turns: []domain.Turn{{
			ID:        greetingTurnID,
			Seq:       0,
			Text:      GreetingText,
			IsUser:    false,
			CreatedAt: now,
		}},
		nextSeq: 1,
		touched: now,
	}
}

// SubmitUserMessage agrega el mensaje del usuario y la respuesta del asistente.
// Devuelve el turno del asistente agregado. Los errores del proveedor nunca se
// propagan: se reemplazan por el mensaje de fallback.
func (c *Conversation) SubmitUserMessage(ctx context.Context, text string) (domain.Turn, error) {
	text = strings.TrimSpace(text)
	history, err := c.begin(text)
	if err != nil {
		return domain.Turn{}, err
	}
	return c.complete(ctx, BuildConversationPrompt(history, text)), nil
}

// SubmitSuggestedQuestion responde las preguntas sugeridas con texto fijo; el
// resto va al proveedor sin historial.
func (c *Conversation) SubmitSuggestedQuestion(ctx context.Context, question string) (domain.Turn, error) {
	question = strings.TrimSpace(question)
	if _, err := c.begin(question); err != nil {
		return domain.Turn{}, err
	}
	if answer, ok := CannedAnswer(question); ok {
		return c.finish(answer), nil
	}
	return c.complete(ctx, BuildQuestionPrompt(question)), nil
}

// Transcript devuelve una copia ordenada de los turnos.
func (c *Conversation) Transcript() []domain.Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

func (c *Conversation) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

func (c *Conversation) State() domain.ConversationState {
	if c.Pending() {
		return domain.StateAwaitingResponse
	}
	return domain.StateIdle
}

// LastActivity es el ultimo uso de la conversacion (turno nuevo o lectura via registro).
func (c *Conversation) LastActivity() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.touched
}

func (c *Conversation) touch(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if now.After(c.touched) {
		c.touched = now
	}
}

// idleSince informa la inactividad en una sola lectura bajo lock. ok es false
// mientras hay una respuesta pendiente.
func (c *Conversation) idleSince(now time.Time) (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending {
		return 0, false
	}
	return now.Sub(c.touched), true
}

// begin valida, agrega el turno del usuario y activa el flag. Devuelve el
// historial previo al turno agregado.
func (c *Conversation) begin(text string) ([]domain.Turn, error) {
	if text == "" {
		return nil, ErrEmptyMessage
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending {
		return nil, ErrConversationBusy
	}
	history := make([]domain.Turn, len(c.turns))
	copy(history, c.turns)
	c.appendLocked(text, true)
	c.pending = true
	return history, nil
}

func (c *Conversation) complete(ctx context.Context, prompt string) domain.Turn {
	if c.llm == nil {
		c.logger.Warn("assistant provider call failed", zap.Error(ErrAssistantNotReady))
		return c.finish(FallbackText)
	}
	// Una vez emitida, la llamada corre hasta terminar aunque el caller se vaya.
	text, err := c.llm.Generate(context.WithoutCancel(ctx), llm.Request{
		Model:       c.model,
		Prompt:      prompt,
		Temperature: assistantTemperature,
		MaxTokens:   assistantMaxTokens,
	})
	if err != nil {
		c.logger.Warn("assistant provider call failed", zap.Error(err))
		return c.finish(FallbackText)
	}
	return c.finish(text)
}

func (c *Conversation) finish(text string) domain.Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	turn := c.appendLocked(text, false)
	c.pending = false
	return turn
}

func (c *Conversation) appendLocked(text string, isUser bool) domain.Turn {
	now := time.Now().UTC()
	turn := domain.Turn{
		ID:        strconv.Itoa(c.nextSeq) + "-" + uuid.NewString(),
		Seq:       c.nextSeq,
		Text:      text,
		IsUser:    isUser,
		CreatedAt: now,
	}
	c.nextSeq++
	c.turns = append(c.turns, turn)
	c.touched = now
	return turn
}
