package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"softsell-api/internal/service"
)

const conversationKey = "chat_conversation"

// ChatSessionMiddleware valida el token de chat y carga la conversacion.
func ChatSessionMiddleware(tokens *service.SessionTokenService, registry *service.ConversationRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokens == nil || registry == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "chat not configured"})
			c.Abort()
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(header[len("Bearer "):]))
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, service.ErrTokenExpired) {
				msg = "token expired"
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
			c.Abort()
			return
		}

		conv, err := registry.Get(claims.SessionID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "chat session not found"})
			c.Abort()
			return
		}

		c.Set(conversationKey, conv)
		c.Next()
	}
}

// GetConversation obtiene la conversacion cargada por ChatSessionMiddleware.
func GetConversation(c *gin.Context) (*service.Conversation, bool) {
	val, ok := c.Get(conversationKey)
	if !ok {
		return nil, false
	}
	conv, ok := val.(*service.Conversation)
	return conv, ok
}
