package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"munidesk/munidesk_go_module_builder_service/pkg/helper"
)

const (
	tenantHeader = "X-Tenant-Id"
	userHeader   = "X-User-Id"
	roleHeader   = "X-User-Role"

	ctxTenantId = "tenantId"
	ctxUserId   = "userId"
	ctxUserRole = "userRole"
)

// Identity copies the gateway-supplied identity headers into the request
// context. Authentication itself happens upstream; an absent tenant header
// falls back to the default tenant.
func (h *Handler) Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantId := c.GetHeader(tenantHeader)
		if tenantId == "" {
			tenantId = h.cfg.DefaultTenantId
		}

		c.Set(ctxTenantId, tenantId)
		c.Set(ctxUserId, c.GetHeader(userHeader))
		c.Set(ctxUserRole, c.GetHeader(roleHeader))

		c.Next()
	}
}

// RequireCapability aborts with 403 unless the caller's role grants the
// capability.
func (h *Handler) RequireCapability(capability helper.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ctxUserRole)

		if !helper.Capabilities(role).Has(capability) {
			c.AbortWithStatusJSON(http.StatusForbidden, APIResponse{
				Status:  "error",
				Message: "Access denied for role " + role,
			})
			return
		}

		c.Next()
	}
}
