package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"munidesk/munidesk_go_module_builder_service/models"
)

func (h *Handler) ExportTable(c *gin.Context) {
	var req models.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	req.TenantId = c.GetString(ctxTenantId)
	req.TableId = c.Param("table_id")

	resp, err := h.services.Export().Export(c.Request.Context(), &req)
	if err != nil {
		Fail(c, http.StatusBadRequest, err, "Error while exporting the table")
		return
	}

	Success(c, http.StatusOK, resp, "Export ready")
}
