package middleware

import (
	"errors"
	"net/http"
	"strings"

	"seatflow/internal/shared/identity"
	"seatflow/internal/shared/utils/response"
	"seatflow/pkg/logger"

	"github.com/gin-gonic/gin"
)

// PrincipalKey is the gin context key holding the *identity.Principal
const PrincipalKey = "principal"

// JWTAuth resolves the bearer token into a principal and stores it on the context
func JWTAuth(issuer *identity.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "authorization header format must be Bearer {token}", nil, nil)
			c.Abort()
			return
		}

		principal, err := issuer.Parse(tokenString, identity.TokenTypeAccess)
		if err != nil {
			msg := "invalid or expired token"
			if errors.Is(err, identity.ErrTokenExpired) {
				msg = "token expired"
			}
			logger.GetDefault().LogAuthFailure(c.Request.Context(), err.Error(), c.ClientIP())
			response.RespondJSON(c, "error", http.StatusUnauthorized, msg, nil, nil)
			c.Abort()
			return
		}

		c.Set(PrincipalKey, principal)
		c.Next()
	}
}

// OptionalAuth attaches a principal when a valid token is present and never rejects
func OptionalAuth(issuer *identity.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			if principal, err := issuer.Parse(tokenString, identity.TokenTypeAccess); err == nil {
				c.Set(PrincipalKey, principal)
			}
		}
		c.Next()
	}
}

// RequireRoles checks the principal holds one of the given roles
func RequireRoles(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "authentication required", nil, nil)
			c.Abort()
			return
		}

		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}

		response.RespondJSON(c, "error", http.StatusForbidden, "insufficient permissions", nil, nil)
		c.Abort()
	}
}

// RequireSuperAdmin only lets super admins through
func RequireSuperAdmin() gin.HandlerFunc {
	return RequireRoles(identity.RoleSuperAdmin)
}

// RequireAdmin lets any admin through
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(identity.RoleSuperAdmin, identity.RoleEventAdmin)
}

// PrincipalFrom reads the principal set by JWTAuth or OptionalAuth
func PrincipalFrom(c *gin.Context) (*identity.Principal, bool) {
	value, exists := c.Get(PrincipalKey)
	if !exists {
		return nil, false
	}
	principal, ok := value.(*identity.Principal)
	return principal, ok && principal != nil
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
