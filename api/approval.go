package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"munidesk/munidesk_go_module_builder_service/models"
)

// GetPending returns the review queue, already partitioned into singles and
// batch groups, optionally narrowed to one table or module.
func (h *Handler) GetPending(c *gin.Context) {
	pending, err := h.services.Approval().Pending(c.Request.Context(), &models.PendingScope{
		TenantId: c.GetString(ctxTenantId),
		TableId:  c.Query("table_id"),
		ModuleId: c.Query("module_id"),
	})
	if err != nil {
		Fail(c, http.StatusInternalServerError, err, "Error while listing pending records")
		return
	}

	Success(c, http.StatusOK, pending, "")
}

func (h *Handler) ApproveRecords(c *gin.Context) {
	req, ok := h.bindDecision(c)
	if !ok {
		return
	}

	if err := h.services.Approval().Approve(c.Request.Context(), req); err != nil {
		Fail(c, http.StatusBadRequest, err, "Error while approving records")
		return
	}

	Success(c, http.StatusOK, nil, "Records approved")
}

func (h *Handler) RejectRecords(c *gin.Context) {
	req, ok := h.bindDecision(c)
	if !ok {
		return
	}

	if err := h.services.Approval().Reject(c.Request.Context(), req); err != nil {
		Fail(c, http.StatusBadRequest, err, "Error while rejecting records")
		return
	}

	Success(c, http.StatusOK, nil, "Records rejected")
}

func (h *Handler) bindDecision(c *gin.Context) (*models.DecisionRequest, bool) {
	var req models.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return nil, false
	}

	req.TenantId = c.GetString(ctxTenantId)
	req.ActorId = c.GetString(ctxUserId)
	req.ActorRole = c.GetString(ctxUserRole)

	return &req, true
}
