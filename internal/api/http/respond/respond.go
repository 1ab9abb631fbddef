// Package respond writes the JSON error envelope shared by every handler:
// {"error": "...", "code": "..."} plus optional details.
package respond

import (
	"errors"
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"

	"github.com/gbtraders/storefront-api/internal/observability"
	"github.com/gbtraders/storefront-api/internal/storage/docstore"
)

// Error codes
const (
	CodeInvalidRequest     = "invalid_request"
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeRateLimited        = "rate_limited"
	CodeStoreUnavailable   = "store_unavailable"
	CodeInsufficientTokens = "insufficient_tokens"
	CodeInternal           = "internal"
)

// Error aborts the request with the envelope.
func Error(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message, "code": code})
}

// BadRequest reports a binding or validation failure. The validator message
// only names fields and rules, so it is safe to echo.
func BadRequest(c *gin.Context, message string, err error) {
	body := gin.H{"error": message, "code": CodeInvalidRequest}
	if err != nil {
		body["details"] = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, body)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, CodeUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, CodeForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, CodeNotFound, message)
}

// Failure maps an unexpected error to 503 (store unavailable) or 500. The
// cause is logged and reported to Sentry, never sent to the client.
func Failure(c *gin.Context, operation, message string, err error) {
	logger := observability.Op(c.Request.Context(), operation)
	logger.Error().Err(err).Msg(message)

	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}

	if errors.Is(err, docstore.ErrUnavailable) {
		Error(c, http.StatusServiceUnavailable, CodeStoreUnavailable, "service temporarily unavailable")
		return
	}
	Error(c, http.StatusInternalServerError, CodeInternal, message)
}
