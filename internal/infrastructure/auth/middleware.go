package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const principalContextKey = "principal"

// Principal is the authenticated identity stored on the gin context.
type Principal struct {
	UserID uint
	Email  string
	Role   string
	Scopes []string
}

// Middleware validates the bearer token and stores the principal in context.
func (m *TokenManager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		claims, err := m.Parse(tokenString)
		if err != nil {
			m.log.Warn().Err(err).Str("path", c.FullPath()).Msg("token validation failed")
			abortUnauthorized(c, "invalid token")
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set(principalContextKey, Principal{
			UserID: userID,
			Email:  claims.Email,
			Role:   claims.Role,
			Scopes: claims.Scopes,
		})
		c.Next()
	}
}

// RequireScope rejects requests whose principal does not hold the required
// scope. Must run after Middleware.
func RequireScope(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			abortUnauthorized(c, "authentication required")
			return
		}
		if !ScopeSatisfied(principal.Scopes, required) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "insufficient permissions",
			})
			return
		}
		c.Next()
	}
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(c *gin.Context) (Principal, bool) {
	val, ok := c.Get(principalContextKey)
	if !ok {
		return Principal{}, false
	}
	principal, ok := val.(Principal)
	return principal, ok
}

// ScopeSatisfied reports whether any granted scope covers the required one,
// honoring "*" and "prefix.*" wildcards.
func ScopeSatisfied(granted []string, required string) bool {
	for _, scope := range granted {
		if scope == "*" || scope == required {
			return true
		}
		if prefix, ok := strings.CutSuffix(scope, ".*"); ok &&
			strings.HasPrefix(required, prefix+".") {
			return true
		}
	}
	return false
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": message,
	})
}
