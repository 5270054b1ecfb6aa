package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenService emite y valida tokens JWT de sesiones de chat.
type SessionTokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

type ChatClaims struct {
	SessionID string `json:"sid"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

var (
	ErrTokenInvalid = errors.New("chat token invalid")
	ErrTokenExpired = errors.New("chat token expired")
)

const chatTokenType = "chat"

func NewSessionTokenService(secret string, ttl time.Duration) *SessionTokenService {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &SessionTokenService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "softsell-api",
	}
}

// Issue firma un token para la sesion indicada.
func (s *SessionTokenService) Issue(sessionID string) (string, error) {
	if len(s.secret) == 0 || strings.TrimSpace(sessionID) == "" {
		return "", ErrTokenInvalid
	}
	now := time.Now().UTC()
	claims := ChatClaims{
		SessionID: sessionID,
		TokenType: chatTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *SessionTokenService) Parse(tokenString string) (ChatClaims, error) {
	if len(s.secret) == 0 || strings.TrimSpace(tokenString) == "" {
		return ChatClaims{}, ErrTokenInvalid
	}
	var claims ChatClaims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ChatClaims{}, ErrTokenExpired
		}
		return ChatClaims{}, ErrTokenInvalid
	}
	if claims.TokenType != chatTokenType || claims.Issuer != s.issuer {
		return ChatClaims{}, ErrTokenInvalid
	}
	if strings.TrimSpace(claims.SessionID) == "" || claims.Subject != claims.SessionID {
		return ChatClaims{}, ErrTokenInvalid
	}
	return claims, nil
}
