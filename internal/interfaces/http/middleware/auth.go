package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"iprights/internal/infrastructure/auth"
	"iprights/internal/shared/logger"
	"iprights/internal/shared/utils"
)

// ContextKeyActor is where RequireActor stores the authenticated actor id.
const ContextKeyActor = "actor"

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

// RequireActor authenticates the bearer token and stores the actor id on the
// request context. Every guarded ledger operation runs as that actor.
func (m *AuthMiddleware) RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		who, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextKeyActor, who.String())
		c.Next()
	}
}

// CallerFrom returns the authenticated actor id set by RequireActor.
func CallerFrom(c *gin.Context) string {
	return c.GetString(ContextKeyActor)
}
