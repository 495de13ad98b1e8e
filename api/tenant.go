package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"munidesk/munidesk_go_module_builder_service/models"
)

// RegisterTenant brings a tenant database online: connect, migrate, register
// the pool. Administrators only.
func (h *Handler) RegisterTenant(c *gin.Context) {
	var req models.RegisterTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	if err := h.services.Tenant().Register(c.Request.Context(), &req); err != nil {
		Fail(c, http.StatusBadRequest, err, "Error while registering the tenant")
		return
	}

	Success(c, http.StatusCreated, nil, "Tenant registered successfully")
}

func (h *Handler) DeregisterTenant(c *gin.Context) {
	err := h.services.Tenant().Deregister(c.Request.Context(), &models.DeregisterTenantRequest{
		TenantId: c.Param("tenant_id"),
	})
	if err != nil {
		Fail(c, http.StatusBadRequest, err, "Error while deregistering the tenant")
		return
	}

	Success(c, http.StatusOK, nil, "Tenant deregistered successfully")
}
