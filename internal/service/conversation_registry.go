package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"softsell-api/internal/llm"
)

var ErrSessionNotFound = errors.New("chat session not found")

// ConversationRegistry guarda una Conversation por sesion de chat, solo en memoria.
type ConversationRegistry struct {
	logger  *zap.Logger
	llm     llm.Client
	model   string
	idleTTL time.Duration
	now     func() time.Time

	mu    sync.Mutex
	items map[string]*Conversation
}

func NewConversationRegistry(logger *zap.Logger, client llm.Client, model string, idleTTL time.Duration) *ConversationRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	if idleTTL <= 0 {
		idleTTL = 30 * time.Minute
	}
	return &ConversationRegistry{
		logger:  logger,
		llm:     client,
		model:   model,
		idleTTL: idleTTL,
		now:     func() time.Time { return time.Now().UTC() },
		items:   make(map[string]*Conversation),
	}
}

// Create abre una sesion nueva con su conversacion sembrada.
func (r *ConversationRegistry) Create() (string, *Conversation) {
	id := uuid.NewString()
	conv := NewConversation(r.logger.With(zap.String("session_id", id)), r.llm, r.model)
	r.mu.Lock()
	r.items[id] = conv
	r.mu.Unlock()
	return id, conv
}

// Get devuelve la conversacion y renueva su tiempo de inactividad.
func (r *ConversationRegistry) Get(id string) (*Conversation, error) {
	id = strings.TrimSpace(id)
	r.mu.Lock()
	conv, ok := r.items[id]
	r.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	conv.touch(r.now())
	return conv, nil
}

func (r *ConversationRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Sweep elimina conversaciones inactivas; nunca las que esperan respuesta.
func (r *ConversationRegistry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, conv := range r.items {
		if idle, ok := conv.idleSince(now); ok && idle > r.idleTTL {
			delete(r.items, id)
			removed++
		}
	}
	return removed
}

// Run barre el registro cada interval hasta que ctx se cancele.
func (r *ConversationRegistry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := r.Sweep(now.UTC()); n > 0 {
				r.logger.Info("chat sessions expired", zap.Int("count", n))
			}
		}
	}
}
