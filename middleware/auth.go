package middleware

import (
	"context"
	"strings"

	"swatrental/models"
	"swatrental/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ActorResolver turns a token subject into the acting user.
type ActorResolver interface {
	ResolveActor(ctx context.Context, userID string) (models.Actor, error)
}

// JWTAuthMiddleware requires a valid bearer token and stores the resolved actor in the context.
func JWTAuthMiddleware(users ActorResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, utils.NewError(utils.KindUnauthorized, "Not authorized, no token"))
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			utils.JSONError(c, utils.NewError(utils.KindUnauthorized, "Not authorized, token failed"))
			return
		}

		actor, err := users.ResolveActor(c.Request.Context(), userID)
		if err != nil {
			zap.L().Debug("actor resolution failed", zap.String("userID", userID), zap.Error(err))
			utils.JSONError(c, err)
			return
		}

		c.Set(utils.ContextActorKey, actor)
		c.Next()
	}
}

// AdminOnly must run after JWTAuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			utils.JSONError(c, utils.NewError(utils.KindUnauthorized, "Not authorized"))
			return
		}
		if !actor.IsAdmin() {
			utils.JSONError(c, utils.Forbidden("Not authorized as an admin"))
			return
		}
		c.Next()
	}
}

// ActorFrom returns the actor set by JWTAuthMiddleware.
func ActorFrom(c *gin.Context) (models.Actor, bool) {
	raw, exists := c.Get(utils.ContextActorKey)
	if !exists {
		return models.Actor{}, false
	}
	actor, ok := raw.(models.Actor)
	return actor, ok && actor.ID != ""
}
