package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/canvassing/internal/auth"
	"github.com/lshigami/canvassing/internal/dto"
)

const (
	// ContextUserID is the gin context key for the authenticated user id.
	ContextUserID = "user_id"
	// ContextUserRole is the gin context key for the authenticated role.
	ContextUserRole = "user_role"
	// ContextUsername is the gin context key for the authenticated username.
	ContextUsername = "username"
)

// JWT validates the Authorization bearer token and stores the caller's
// identity in the gin context.
func JWT(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "missing authorization header"})
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "invalid authorization header"})
			return
		}
		claims, err := jwtService.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "invalid or expired token"})
			return
		}
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id stored by the JWT
// middleware.
func CurrentUserID(c *gin.Context) (uint, bool) {
	val, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := val.(uint)
	return id, ok
}
