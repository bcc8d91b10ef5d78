package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/sporture/talent-service/internal/config"
	"github.com/sporture/talent-service/internal/models"
	"github.com/sporture/talent-service/internal/services"
)

const (
	sessionContextKey = "session"
	bearerPrefix      = "Bearer "
)

// SessionClaims is the signed JWT payload carried between requests. The
// client never sees a raw role or account id it could tamper with.
type SessionClaims struct {
	AccountID   uint   `json:"account_id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	DisplayName string `json:"display_name"`
	jwt.RegisteredClaims
}

// JWTAuthMiddleware mints and verifies session tokens.
type JWTAuthMiddleware struct {
	secret   []byte
	tokenTTL time.Duration
}

func NewJWTAuthMiddleware(cfg config.AuthConfig) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{
		secret:   []byte(cfg.JWTSecret),
		tokenTTL: cfg.TokenTTL,
	}
}

// MintToken signs a session token for a freshly authenticated identity.
func (m *JWTAuthMiddleware) MintToken(session *services.Session) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		AccountID:   session.AccountID,
		Email:       session.Email,
		Role:        string(session.Role),
		DisplayName: session.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "talent-service",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken verifies a session token and rebuilds the session it carries.
func (m *JWTAuthMiddleware) ParseToken(tokenString string) (*services.Session, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}

	return &services.Session{
		AccountID:   claims.AccountID,
		Email:       claims.Email,
		Role:        models.AccountRole(claims.Role),
		DisplayName: claims.DisplayName,
	}, nil
}

// AuthMiddleware requires a valid Bearer session token and stores the
// decoded session on the request context.
func (m *JWTAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Missing or malformed Authorization header",
			})
			c.Abort()
			return
		}

		session, err := m.ParseToken(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid or expired session",
			})
			c.Abort()
			return
		}

		c.Set(sessionContextKey, session)
		c.Set("user_id", session.AccountID)
		c.Set("user_role", session.Role)
		c.Next()
	}
}

// OptionalAuthMiddleware decodes a session when a valid token is present
// but lets anonymous requests through. Used by the public intake form so an
// athlete session can be linked to the submission when one exists.
func (m *JWTAuthMiddleware) OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, bearerPrefix) {
			if session, err := m.ParseToken(strings.TrimPrefix(header, bearerPrefix)); err == nil {
				c.Set(sessionContextKey, session)
				c.Set("user_id", session.AccountID)
				c.Set("user_role", session.Role)
			}
		}
		c.Next()
	}
}

// RequireRoleMiddleware restricts a route to the given roles. It must run
// after AuthMiddleware.
func (m *JWTAuthMiddleware) RequireRoleMiddleware(requiredRoles ...models.AccountRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := SessionFromContext(c)
		if session == nil {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Message: "No session in context",
			})
			c.Abort()
			return
		}

		for _, role := range requiredRoles {
			if session.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Insufficient role",
		})
		c.Abort()
	}
}

// SessionFromContext returns the decoded session set by AuthMiddleware, or
// nil when the request is unauthenticated.
func SessionFromContext(c *gin.Context) *services.Session {
	v, exists := c.Get(sessionContextKey)
	if !exists {
		return nil
	}
	session, ok := v.(*services.Session)
	if !ok {
		return nil
	}
	return session
}
