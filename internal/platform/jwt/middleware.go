// Package jwtmw verifies identity provider session tokens and resolves them
// to local user ids.
package jwtmw

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextUserID is the gin context key holding the local user id (uint).
const ContextUserID = "userID"

// Identity is the verified subject of a session token.
type Identity struct {
	ExternalID string
	Email      string
	Name       string
}

// Claims are the session token claims. Subject carries the identity
// provider user id.
type Claims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// SyncFunc maps a verified identity to a local user id, provisioning the
// user if needed.
type SyncFunc func(ctx context.Context, id Identity) (uint, error)

// AuthRequired returns a Gin middleware that validates the bearer token,
// syncs the identity and stores the local user id under ContextUserID.
func AuthRequired(secret string, sync SyncFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		if secret == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		id, err := Verify(secret, tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		userID, err := sync(c.Request.Context(), id)
		if err != nil {
			slog.Error("identity sync failed", "external_id", id.ExternalID, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve user"})
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// Verify parses an HMAC-signed token and returns its identity.
func Verify(secret, tokenStr string) (Identity, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		// only HMAC
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Identity{}, err
	}
	if !token.Valid || claims.Subject == "" {
		return Identity{}, jwt.ErrTokenInvalidClaims
	}
	return Identity{ExternalID: claims.Subject, Email: claims.Email, Name: claims.Name}, nil
}

// UserID returns the local user id set by AuthRequired.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}
