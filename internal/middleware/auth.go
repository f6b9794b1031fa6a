package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/stefanpalsson415/family-care-api/internal/config"
	"github.com/stefanpalsson415/family-care-api/internal/handler"
)

const (
	ContextUserID   = "user_id"
	ContextFamilyID = "family_id"
)

// Claims scope a token to one user within one family.
type Claims struct {
	UserID   string `json:"user_id"`
	FamilyID string `json:"family_id"`
	jwt.RegisteredClaims
}

type AuthMiddleware struct {
	cfg config.JWTConfig
}

func NewAuthMiddleware(cfg config.JWTConfig) *AuthMiddleware {
	return &AuthMiddleware{cfg: cfg}
}

// Authenticate verifies the bearer token and sets the caller's user and
// family ids in the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid authorization format"))
			c.Abort()
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(m.cfg.Secret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
			c.Abort()
			return
		}

		if _, err := uuid.Parse(claims.UserID); err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user ID in token"))
			c.Abort()
			return
		}
		if _, err := uuid.Parse(claims.FamilyID); err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid family ID in token"))
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextFamilyID, claims.FamilyID)
		c.Next()
	}
}

// RequireFamily rejects requests whose token is scoped to a different
// family than the one addressed in the URL.
func (m *AuthMiddleware) RequireFamily() gin.HandlerFunc {
	return func(c *gin.Context) {
		familyID := c.Param("familyID")
		if familyID != "" && familyID != c.GetString(ContextFamilyID) {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("family access denied"))
			c.Abort()
			return
		}
		c.Next()
	}
}
