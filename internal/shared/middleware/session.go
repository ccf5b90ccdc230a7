package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"gallery-backend/internal/shared/response"
	"gallery-backend/pkg/jwt"
)

// SessionUserKey is the gin context key holding the identity subject.
const SessionUserKey = "user_id"

// TokenVerifier is satisfied by *jwt.Manager.
type TokenVerifier interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// RequireSession gates the writing methods (POST, PUT, DELETE) behind an
// identity token. Every other method passes through, so reads stay public and
// unsupported methods still reach the handler's 405. A nil verifier disables
// the gate.
func RequireSession(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil || !isWrite(c.Request.Method) {
			c.Next()
			return
		}

		// 1. Authorization: Bearer <token>
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			response.Unauthorized(c, "invalid authorization header format")
			return
		}

		// 2. Verify signature, expiry and subject
		claims, err := verifier.ValidateToken(parts[1])
		if err != nil {
			log.Warn().
				Err(err).
				Str("request_id", c.GetString("request_id")).
				Msg("rejected identity token")
			response.Unauthorized(c, "invalid token")
			return
		}

		c.Set(SessionUserKey, claims.Subject)
		c.Next()
	}
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}
