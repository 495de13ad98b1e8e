package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"munidesk/munidesk_go_module_builder_service/models"
)

func (h *Handler) GetRecords(c *gin.Context) {
	records, err := h.services.Record().GetByTable(c.Request.Context(), &models.GetRecordsRequest{
		TenantId: c.GetString(ctxTenantId),
		TableId:  c.Param("table_id"),
		Search:   c.Query("search"),
		Limit:    cast.ToUint64(c.Query("limit")),
		Offset:   cast.ToUint64(c.Query("offset")),
	})
	if err != nil {
		Fail(c, http.StatusInternalServerError, err, "Error while listing records")
		return
	}

	Success(c, http.StatusOK, records, "")
}

func (h *Handler) CreateRecord(c *gin.Context) {
	var req models.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	req.TenantId = c.GetString(ctxTenantId)
	req.TableId = c.Param("table_id")
	req.CreatedBy = c.GetString(ctxUserId)

	record, err := h.services.Record().Create(c.Request.Context(), &req)
	if err != nil {
		Fail(c, http.StatusBadRequest, err, "Error while creating the record")
		return
	}

	Success(c, http.StatusCreated, record, "Record created successfully")
}

func (h *Handler) UpdateRecord(c *gin.Context) {
	var req models.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	req.TenantId = c.GetString(ctxTenantId)
	req.Id = c.Param("record_id")

	record, err := h.services.Record().Update(c.Request.Context(), &req)
	if err != nil {
		Fail(c, http.StatusBadRequest, err, "Error while updating the record")
		return
	}

	Success(c, http.StatusOK, record, "Record updated successfully")
}

func (h *Handler) DeleteRecord(c *gin.Context) {
	err := h.services.Record().Delete(c.Request.Context(), &models.RecordPrimaryKey{
		TenantId: c.GetString(ctxTenantId),
		Id:       c.Param("record_id"),
	})
	if err != nil {
		Fail(c, http.StatusBadRequest, err, "Error while deleting the record")
		return
	}

	Success(c, http.StatusOK, nil, "Record deleted successfully")
}
