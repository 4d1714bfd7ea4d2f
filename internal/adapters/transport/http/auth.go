package http

import (
	"strings"

	customErrors "github.com/Miraines/MoonyAndStarry/blog-service/internal/domain/blog/errors"
	"github.com/Miraines/MoonyAndStarry/blog-service/internal/domain/blog/model"
	"github.com/gin-gonic/gin"
)

const currentUserKey = "blog.current_user"

// RequireUser authenticates the bearer access token and stores the resolved
// user in the gin context.
func (h *Handler) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			h.handleError(c, customErrors.ErrUnauthenticated)
			return
		}

		user, err := h.auth.AuthenticateRequest(c.Request.Context(), token)
		if err != nil {
			h.handleError(c, err)
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by RequireUser.
func CurrentUser(c *gin.Context) (model.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return model.User{}, false
	}
	u, ok := v.(model.User)
	return u, ok
}

func bearerToken(header string) (string, bool) {
	const bearer = "bearer "
	if len(header) <= len(bearer) || !strings.EqualFold(header[:len(bearer)], bearer) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearer):])
	return token, token != ""
}
