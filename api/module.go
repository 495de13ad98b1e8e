package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"munidesk/munidesk_go_module_builder_service/models"
)

// CreateModule runs the module wizard: the module, its tables, fields and any
// CSV seed rows, all in one request.
func (h *Handler) CreateModule(c *gin.Context) {
	var req models.CreateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	req.TenantId = c.GetString(ctxTenantId)
	req.CreatedBy = c.GetString(ctxUserId)

	resp, err := h.services.Module().Create(c.Request.Context(), &req)
	if err != nil {
		Fail(c, http.StatusBadRequest, err, "Error while creating the module")
		return
	}

	Success(c, http.StatusCreated, resp, "Module created successfully")
}

func (h *Handler) GetAllModules(c *gin.Context) {
	modules, err := h.services.Module().GetAll(c.Request.Context(), &models.GetAllModulesRequest{
		TenantId:   c.GetString(ctxTenantId),
		OnlyActive: c.Query("only_active") == "true",
		Search:     c.Query("search"),
	})
	if err != nil {
		Fail(c, http.StatusInternalServerError, err, "Error while listing modules")
		return
	}

	Success(c, http.StatusOK, modules, "")
}

// WatchModules streams the module listing as server-sent events: one full
// snapshot immediately, then one per change notification.
func (h *Handler) WatchModules(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	updates := make(chan []models.Module, 1)

	unsubscribe, err := h.services.Module().Watch(c.Request.Context(), c.GetString(ctxTenantId), func(modules []models.Module) {
		select {
		case updates <- modules:
		default:
		}
	})
	if err != nil {
		Fail(c, http.StatusInternalServerError, err, "Error while subscribing to module changes")
		return
	}
	defer unsubscribe()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case modules := <-updates:
			payload, err := json.Marshal(modules)
			if err != nil {
				continue
			}

			fmt.Fprintf(c.Writer, "data: %s\n\n", payload)
			c.Writer.Flush()
		}
	}
}

func (h *Handler) GetModule(c *gin.Context) {
	module, err := h.services.Module().GetByPK(c.Request.Context(), &models.ModulePrimaryKey{
		TenantId: c.GetString(ctxTenantId),
		Id:       c.Param("module_id"),
	})
	if err != nil {
		Fail(c, http.StatusNotFound, err, "Module not found")
		return
	}

	Success(c, http.StatusOK, module, "")
}

func (h *Handler) UpdateModule(c *gin.Context) {
	var req models.UpdateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	req.TenantId = c.GetString(ctxTenantId)
	req.Id = c.Param("module_id")

	module, err := h.services.Module().Update(c.Request.Context(), &req)
	if err != nil {
		Fail(c, http.StatusBadRequest, err, "Error while updating the module")
		return
	}

	Success(c, http.StatusOK, module, "Module updated successfully")
}

func (h *Handler) DeleteModule(c *gin.Context) {
	err := h.services.Module().Delete(c.Request.Context(), &models.ModulePrimaryKey{
		TenantId: c.GetString(ctxTenantId),
		Id:       c.Param("module_id"),
	}, c.GetString(ctxUserRole))
	if err != nil {
		Fail(c, http.StatusBadRequest, err, "Error while deleting the module")
		return
	}

	Success(c, http.StatusOK, nil, "Module deleted successfully")
}

func (h *Handler) GetTables(c *gin.Context) {
	tables, err := h.services.Module().GetTables(c.Request.Context(), &models.ModulePrimaryKey{
		TenantId: c.GetString(ctxTenantId),
		Id:       c.Param("module_id"),
	})
	if err != nil {
		Fail(c, http.StatusInternalServerError, err, "Error while listing tables")
		return
	}

	Success(c, http.StatusOK, tables, "")
}

func (h *Handler) AddTable(c *gin.Context) {
	var req models.CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	req.TenantId = c.GetString(ctxTenantId)
	req.ModuleId = c.Param("module_id")

	table, err := h.services.Module().AddTable(c.Request.Context(), &req)
	if err != nil {
		Fail(c, http.StatusBadRequest, err, "Error while creating the table")
		return
	}

	Success(c, http.StatusCreated, table, "Table created successfully")
}

func (h *Handler) RenameTable(c *gin.Context) {
	var req models.RenameTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	req.TenantId = c.GetString(ctxTenantId)
	req.Id = c.Param("table_id")

	if err := h.services.Module().RenameTable(c.Request.Context(), &req); err != nil {
		Fail(c, http.StatusBadRequest, err, "Error while renaming the table")
		return
	}

	Success(c, http.StatusOK, nil, "Table renamed successfully")
}

func (h *Handler) DeleteTable(c *gin.Context) {
	err := h.services.Module().DeleteTable(c.Request.Context(), &models.TablePrimaryKey{
		TenantId: c.GetString(ctxTenantId),
		Id:       c.Param("table_id"),
	})
	if err != nil {
		Fail(c, http.StatusBadRequest, err, "Error while deleting the table")
		return
	}

	Success(c, http.StatusOK, nil, "Table deleted successfully")
}

func (h *Handler) GetFields(c *gin.Context) {
	fields, err := h.services.Module().GetFields(c.Request.Context(), &models.TablePrimaryKey{
		TenantId: c.GetString(ctxTenantId),
		Id:       c.Param("table_id"),
	})
	if err != nil {
		Fail(c, http.StatusInternalServerError, err, "Error while listing fields")
		return
	}

	Success(c, http.StatusOK, fields, "")
}

func (h *Handler) AddFields(c *gin.Context) {
	var req models.CreateFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	req.TenantId = c.GetString(ctxTenantId)
	req.TableId = c.Param("table_id")

	if err := h.services.Module().AddFields(c.Request.Context(), &req); err != nil {
		Fail(c, http.StatusBadRequest, err, "Error while creating fields")
		return
	}

	Success(c, http.StatusCreated, nil, "Fields created successfully")
}

func (h *Handler) UpdateField(c *gin.Context) {
	var req models.UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	req.TenantId = c.GetString(ctxTenantId)
	req.Id = c.Param("field_id")

	field, err := h.services.Module().UpdateField(c.Request.Context(), &req)
	if err != nil {
		Fail(c, http.StatusBadRequest, err, "Error while updating the field")
		return
	}

	Success(c, http.StatusOK, field, "Field updated successfully")
}

func (h *Handler) DeleteField(c *gin.Context) {
	err := h.services.Module().DeleteField(c.Request.Context(), &models.FieldPrimaryKey{
		TenantId: c.GetString(ctxTenantId),
		Id:       c.Param("field_id"),
	})
	if err != nil {
		Fail(c, http.StatusBadRequest, err, "Error while deleting the field")
		return
	}

	Success(c, http.StatusOK, nil, "Field deleted successfully")
}
