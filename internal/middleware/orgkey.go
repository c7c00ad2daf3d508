package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/canvassing/internal/dto"
	"github.com/lshigami/canvassing/internal/repository"
)

// ContextOrganizationID is the gin context key for an API-key-authenticated
// organization.
const ContextOrganizationID = "organization_id"

// OrganizationKey authenticates organization-scoped callers through the
// X-API-Key header. Unknown keys are rejected without revealing whether the
// key ever existed.
func OrganizationKey(orgRepo repository.OrganizationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-API-Key")
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "missing API key"})
			return
		}
		org, err := orgRepo.FindByAPIKey(key)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "invalid API key"})
			return
		}
		c.Set(ContextOrganizationID, org.ID)
		c.Next()
	}
}

// CurrentOrganizationID returns the organization id stored by the
// OrganizationKey middleware.
func CurrentOrganizationID(c *gin.Context) (uint, bool) {
	val, ok := c.Get(ContextOrganizationID)
	if !ok {
		return 0, false
	}
	id, ok := val.(uint)
	return id, ok
}
