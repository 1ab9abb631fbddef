package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gbtraders/storefront-api/internal/api/http/respond"
	"github.com/gbtraders/storefront-api/internal/auth"
	"github.com/gbtraders/storefront-api/internal/observability"
)

// FirebaseAuthMiddleware validates Firebase ID tokens and extracts user info
func FirebaseAuthMiddleware(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			respond.Unauthorized(c, "missing authorization token")
			return
		}

		identity, err := verifier.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			logger := observability.Op(c.Request.Context(), "verify_id_token")
			logger.Debug().Err(err).Msg("rejected id token")
			respond.Unauthorized(c, "invalid token")
			return
		}

		c.Set(auth.CtxFirebaseUID, identity.UID)
		if identity.Email != "" {
			c.Set(auth.CtxEmail, identity.Email)
		}
		c.Set(auth.CtxFirebaseToken, identity)

		c.Next()
	}
}

// BearerSecretMiddleware admits requests whose bearer token equals secret.
// An empty secret rejects everything.
func BearerSecretMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if secret == "" || token == "" ||
			subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			respond.Unauthorized(c, "unauthorized")
			return
		}
		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	return ""
}
