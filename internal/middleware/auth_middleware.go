package middleware

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/amaan1133/eagle/internal/apperrors"
	"github.com/amaan1133/eagle/internal/constants"
	"github.com/amaan1133/eagle/internal/policy"
	"github.com/amaan1133/eagle/internal/services"
)

const contextKeyActor = "actor"

// RequireAuth resolves the caller from the session cookie or a bearer token
// and loads the user fresh so deactivation takes effect immediately. The
// resolved actor is stored in the gin context for handlers.
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := resolveUserID(c, authService)
		if userID == 0 {
			apperrors.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		user, err := authService.GetUser(userID)
		if err != nil || !user.IsActive {
			apperrors.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		c.Set(contextKeyActor, policy.Actor{
			ID:        user.ID,
			Username:  user.Username,
			Role:      user.Role,
			CompanyID: user.CompanyID,
		})
		c.Next()
	}
}

func resolveUserID(c *gin.Context, authService *services.AuthService) uint64 {
	session := sessions.Default(c)
	if v := session.Get(constants.ContextKeyUserID); v != nil {
		if id, ok := v.(uint64); ok {
			return id
		}
	}

	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		if id, err := authService.ParseToken(token); err == nil {
			return id
		}
	}
	return 0
}

// RequireAdmin rejects non-admin actors. It must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok || !actor.IsAdmin() {
			apperrors.Respond(c, apperrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetActor returns the authenticated actor set by RequireAuth.
func GetActor(c *gin.Context) (policy.Actor, bool) {
	v, exists := c.Get(contextKeyActor)
	if !exists {
		return policy.Actor{}, false
	}
	actor, ok := v.(policy.Actor)
	return actor, ok
}
