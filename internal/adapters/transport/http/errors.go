package http

import (
	"net/http"

	"github.com/Miraines/MoonyAndStarry/blog-service/internal/adapters/transport/http/middleware"
	customErrors "github.com/Miraines/MoonyAndStarry/blog-service/internal/domain/blog/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps a domain error onto an HTTP status and a client-safe message.
func statusFor(err error) (int, string) {
	switch {
	case customErrors.IsInvalidArgument(err):
		return http.StatusBadRequest, err.Error()
	case customErrors.IsAlreadyExists(err):
		return http.StatusBadRequest, "user already exist"
	case customErrors.IsInvalidCredentials(err):
		return http.StatusUnauthorized, "incorrect username or password"
	case customErrors.IsInvalidTokenType(err):
		return http.StatusUnauthorized, "invalid token type"
	case customErrors.IsInvalidToken(err):
		return http.StatusUnauthorized, "invalid token"
	case customErrors.IsUnauthenticated(err):
		return http.StatusUnauthorized, "not authenticated"
	case customErrors.IsUserNotFound(err):
		return http.StatusUnauthorized, "user not found"
	case customErrors.IsForbidden(err):
		return http.StatusForbidden, "no permissions"
	case customErrors.IsNotFound(err):
		return http.StatusNotFound, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func (h *Handler) handleError(c *gin.Context, err error) {
	code, msg := statusFor(err)
	switch {
	case code == http.StatusUnauthorized:
		c.Header("WWW-Authenticate", "Bearer")
	case code >= http.StatusInternalServerError:
		h.log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", middleware.RequestID(c)),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(code, gin.H{"error": msg})
}
