package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"munidesk/munidesk_go_module_builder_service/models"
	"munidesk/munidesk_go_module_builder_service/pkg/helper"
)

func (h *Handler) PreviewImport(c *gin.Context) {
	var req models.ImportPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	req.TenantId = c.GetString(ctxTenantId)
	req.TableId = c.Param("table_id")

	preview, err := h.services.Import().Preview(c.Request.Context(), &req)
	if err != nil {
		Fail(c, http.StatusBadRequest, err, "Error while previewing the import")
		return
	}

	Success(c, http.StatusOK, preview, "")
}

func (h *Handler) ImportRecords(c *gin.Context) {
	var req models.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	req.TenantId = c.GetString(ctxTenantId)
	req.TableId = c.Param("table_id")
	req.CreatedBy = c.GetString(ctxUserId)

	result, err := h.services.Import().Import(c.Request.Context(), &req)
	if err != nil {
		Fail(c, http.StatusBadRequest, err, "Error while importing records")
		return
	}

	Success(c, http.StatusOK, result, "Import finished")
}

// XLSXHeader accepts a spreadsheet upload and returns its first row, so the
// mapping screen can offer columns without the client parsing xlsx itself.
func (h *Handler) XLSXHeader(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		Fail(c, http.StatusBadRequest, err, "A file upload is required")
		return
	}

	tmpPath := filepath.Join(os.TempDir(), uuid.NewString()+".xlsx")
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		Fail(c, http.StatusInternalServerError, err, "Error while storing the upload")
		return
	}
	defer os.Remove(tmpPath)

	headers, err := helper.ExcelFirstRow(tmpPath)
	if err != nil {
		Fail(c, http.StatusBadRequest, err, "Error while reading the spreadsheet")
		return
	}

	Success(c, http.StatusOK, gin.H{"headers": headers}, "")
}
