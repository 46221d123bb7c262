package middleware

import (
	"strings"

	"nepshift_backend/internal/auth"
	"nepshift_backend/internal/models"
	"nepshift_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserIDKey = "user_id"
	ContextRoleKey   = "user_role"
)

// AuthMiddleware validates the bearer token and puts the caller's identity
// into the gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortWith(c, apperrors.NewUnauthorizedError("Authorization header required"))
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortWith(c, apperrors.NewUnauthorizedError("Authorization header must be 'Bearer {token}'"))
			return
		}

		claims, err := auth.ParseToken(parts[1])
		if err != nil {
			abortWith(c, apperrors.ErrInvalidToken)
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextRoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole restricts a route group to the listed roles. Run after
// AuthMiddleware.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := CurrentRole(c)
		if !ok {
			abortWith(c, apperrors.NewUnauthorizedError("Authentication required"))
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		abortWith(c, apperrors.ErrInsufficientPermissions)
	}
}

func CurrentUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextUserIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

func CurrentRole(c *gin.Context) (models.UserRole, bool) {
	v, ok := c.Get(ContextRoleKey)
	if !ok {
		return "", false
	}
	role, ok := v.(models.UserRole)
	return role, ok
}

func abortWith(c *gin.Context, err *apperrors.AppError) {
	c.AbortWithStatusJSON(err.HTTPCode, apperrors.ErrorResponse{Error: err})
}
