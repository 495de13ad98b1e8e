package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"munidesk/munidesk_go_module_builder_service/config"
	"munidesk/munidesk_go_module_builder_service/pkg/helper"
	"munidesk/munidesk_go_module_builder_service/pkg/logger"
	"munidesk/munidesk_go_module_builder_service/service"
)

type Handler struct {
	cfg      config.Config
	log      logger.LoggerI
	services service.ServiceManagerI
}

func NewHandler(cfg config.Config, log logger.LoggerI, services service.ServiceManagerI) *Handler {
	return &Handler{
		cfg:      cfg,
		log:      log,
		services: services,
	}
}

// SetUpRouter wires every route. Identity arrives from the gateway as
// headers; the tenant middleware resolves the connection scope and the
// capability middleware guards writes per role.
func SetUpRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": h.cfg.Version})
	})

	v1 := router.Group("/v1", h.Identity())

	modules := v1.Group("/modules")
	{
		modules.POST("", h.RequireCapability(helper.CapCreateModule), h.CreateModule)
		modules.GET("", h.GetAllModules)
		modules.GET("/watch", h.WatchModules)
		modules.GET("/:module_id", h.GetModule)
		modules.PUT("/:module_id", h.RequireCapability(helper.CapCreateModule), h.UpdateModule)
		modules.DELETE("/:module_id", h.RequireCapability(helper.CapDeleteModule), h.DeleteModule)

		modules.GET("/:module_id/tables", h.GetTables)
		modules.POST("/:module_id/tables", h.RequireCapability(helper.CapCreateModule), h.AddTable)
	}

	tables := v1.Group("/tables")
	{
		tables.PUT("/:table_id", h.RequireCapability(helper.CapCreateModule), h.RenameTable)
		tables.DELETE("/:table_id", h.RequireCapability(helper.CapDeleteModule), h.DeleteTable)

		tables.GET("/:table_id/fields", h.GetFields)
		tables.POST("/:table_id/fields", h.RequireCapability(helper.CapCreateModule), h.AddFields)

		tables.GET("/:table_id/records", h.GetRecords)
		tables.POST("/:table_id/records", h.RequireCapability(helper.CapWriteRecords), h.CreateRecord)

		tables.POST("/:table_id/import/preview", h.RequireCapability(helper.CapWriteRecords), h.PreviewImport)
		tables.POST("/:table_id/import", h.RequireCapability(helper.CapWriteRecords), h.ImportRecords)
		tables.POST("/:table_id/export", h.ExportTable)
	}

	fields := v1.Group("/fields")
	{
		fields.PUT("/:field_id", h.RequireCapability(helper.CapCreateModule), h.UpdateField)
		fields.DELETE("/:field_id", h.RequireCapability(helper.CapCreateModule), h.DeleteField)
	}

	records := v1.Group("/records")
	{
		records.PUT("/:record_id", h.RequireCapability(helper.CapWriteRecords), h.UpdateRecord)
		records.DELETE("/:record_id", h.RequireCapability(helper.CapWriteRecords), h.DeleteRecord)
	}

	approvals := v1.Group("/approvals")
	{
		approvals.GET("", h.GetPending)
		approvals.POST("/approve", h.RequireCapability(helper.CapApproveRecords), h.ApproveRecords)
		approvals.POST("/reject", h.RequireCapability(helper.CapApproveRecords), h.RejectRecords)
	}

	tenants := v1.Group("/tenants", h.RequireCapability(helper.CapDeleteModule))
	{
		tenants.POST("", h.RegisterTenant)
		tenants.DELETE("/:tenant_id", h.DeregisterTenant)
	}

	v1.POST("/uploads/xlsx-header", h.RequireCapability(helper.CapWriteRecords), h.XLSXHeader)

	return router
}
