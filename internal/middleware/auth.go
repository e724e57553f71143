package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jomadlcrz/class-schedule-backend/internal/response"
	"github.com/jomadlcrz/class-schedule-backend/internal/service"
)

// ContextKeyIdentity is the Gin context key for the verified identity.
const ContextKeyIdentity = "identity"

// RequireAuth validates the bearer credential from the Authorization
// header and stores the verified identity in the context. Every failure
// surfaces as 401 with the same body; the reason stays in the logs.
func RequireAuth(verifier service.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, response.MsgUnauthorized)
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, response.MsgUnauthorized)
			return
		}

		c.Set(ContextKeyIdentity, identity)
		c.Next()
	}
}

// GetIdentity retrieves the verified identity from the Gin context.
// Returns nil when RequireAuth was not applied.
func GetIdentity(c *gin.Context) *service.Identity {
	val, exists := c.Get(ContextKeyIdentity)
	if !exists {
		return nil
	}
	identity, ok := val.(*service.Identity)
	if !ok {
		return nil
	}
	return identity
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
