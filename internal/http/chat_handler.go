package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"softsell-api/internal/domain"
	"softsell-api/internal/service"
)

// ChatHandler mantiene dependencias para los endpoints del asistente.
type ChatHandler struct {
	logger   *zap.Logger
	registry *service.ConversationRegistry
	tokens   *service.SessionTokenService
}

// NewChatHandler crea una instancia de ChatHandler con dependencias necesarias.
func NewChatHandler(logger *zap.Logger, registry *service.ConversationRegistry, tokens *service.SessionTokenService) *ChatHandler {
	return &ChatHandler{
		logger:   logger,
		registry: registry,
		tokens:   tokens,
	}
}

// CreateSession maneja POST /chat/sessions.
func (h *ChatHandler) CreateSession(c *gin.Context) {
	id, conv := h.registry.Create()
	token, err := h.tokens.Issue(id)
	if err != nil {
		h.logger.Error("issue chat token failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create chat session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id":  id,
		"token":       token,
		"transcript":  conv.Transcript(),
		"suggestions": service.SuggestedQuestions(),
	})
}

// Suggestions maneja GET /chat/suggestions.
func (h *ChatHandler) Suggestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"suggestions": service.SuggestedQuestions()})
}

// GetTranscript maneja GET /chat/transcript.
func (h *ChatHandler) GetTranscript(c *gin.Context) {
	conv, ok := GetConversation(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing chat session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"transcript": conv.Transcript(),
		"pending":    conv.Pending(),
		"state":      conv.State(),
	})
}

// PostMessage maneja POST /chat/messages.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chat message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	conv, ok := GetConversation(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing chat session"})
		return
	}

	reply, err := conv.SubmitUserMessage(c.Request.Context(), req.Text)
	h.respond(c, conv, reply, err)
}

// PostQuestion maneja POST /chat/questions.
func (h *ChatHandler) PostQuestion(c *gin.Context) {
	var req struct {
		Question string `json:"question"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chat question request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	conv, ok := GetConversation(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing chat session"})
		return
	}

	reply, err := conv.SubmitSuggestedQuestion(c.Request.Context(), req.Question)
	h.respond(c, conv, reply, err)
}

func (h *ChatHandler) respond(c *gin.Context, conv *service.Conversation, reply domain.Turn, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is empty"})
		return
	case errors.Is(err, service.ErrConversationBusy):
		c.JSON(http.StatusConflict, gin.H{"error": "awaiting previous response"})
		return
	case err != nil:
		h.logger.Error("chat submission failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"reply":      reply,
		"transcript": conv.Transcript(),
	})
}
