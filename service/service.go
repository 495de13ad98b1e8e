package service

import (
	"context"

	"munidesk/munidesk_go_module_builder_service/config"
	"munidesk/munidesk_go_module_builder_service/models"
	"munidesk/munidesk_go_module_builder_service/pkg/logger"
	"munidesk/munidesk_go_module_builder_service/storage"
)

// ServiceManagerI bundles the business services the HTTP layer consumes.
type ServiceManagerI interface {
	Module() ModuleServiceI
	Record() RecordServiceI
	Import() ImportServiceI
	Approval() ApprovalServiceI
	Export() ExportServiceI
	Tenant() TenantServiceI
}

type TenantServiceI interface {
	Register(ctx context.Context, req *models.RegisterTenantRequest) error
	Deregister(ctx context.Context, req *models.DeregisterTenantRequest) error
}

type ModuleServiceI interface {
	Create(ctx context.Context, req *models.CreateModuleRequest) (*models.CreateModuleResponse, error)
	GetByPK(ctx context.Context, req *models.ModulePrimaryKey) (*models.Module, error)
	GetAll(ctx context.Context, req *models.GetAllModulesRequest) ([]models.Module, error)
	Update(ctx context.Context, req *models.UpdateModuleRequest) (*models.Module, error)
	Delete(ctx context.Context, req *models.ModulePrimaryKey, actorRole string) error
	Watch(ctx context.Context, tenantId string, push func([]models.Module)) (func(), error)

	GetTables(ctx context.Context, req *models.ModulePrimaryKey) ([]models.Table, error)
	AddTable(ctx context.Context, req *models.CreateTableRequest) (*models.Table, error)
	RenameTable(ctx context.Context, req *models.RenameTableRequest) error
	DeleteTable(ctx context.Context, req *models.TablePrimaryKey) error

	GetFields(ctx context.Context, req *models.TablePrimaryKey) ([]models.Field, error)
	AddFields(ctx context.Context, req *models.CreateFieldsRequest) error
	UpdateField(ctx context.Context, req *models.UpdateFieldRequest) (*models.Field, error)
	DeleteField(ctx context.Context, req *models.FieldPrimaryKey) error
}

type RecordServiceI interface {
	Create(ctx context.Context, req *models.CreateRecordRequest) (*models.Record, error)
	GetByTable(ctx context.Context, req *models.GetRecordsRequest) ([]models.Record, error)
	Update(ctx context.Context, req *models.UpdateRecordRequest) (*models.Record, error)
	Delete(ctx context.Context, req *models.RecordPrimaryKey) error
}

type ImportServiceI interface {
	Preview(ctx context.Context, req *models.ImportPreviewRequest) (*models.ImportPreview, error)
	Import(ctx context.Context, req *models.ImportRequest) (*models.ImportResult, error)
}

type ApprovalServiceI interface {
	Pending(ctx context.Context, req *models.PendingScope) (*models.PendingSet, error)
	Approve(ctx context.Context, req *models.DecisionRequest) error
	Reject(ctx context.Context, req *models.DecisionRequest) error
}

type ExportServiceI interface {
	Export(ctx context.Context, req *models.ExportRequest) (*models.ExportResponse, error)
}

type serviceManager struct {
	module   ModuleServiceI
	record   RecordServiceI
	importer ImportServiceI
	approval ApprovalServiceI
	export   ExportServiceI
	tenant   TenantServiceI
}

func NewServiceManager(cfg config.Config, log logger.LoggerI, strg storage.StorageI) ServiceManagerI {
	return &serviceManager{
		module:   NewModuleService(cfg, log, strg),
		record:   NewRecordService(cfg, log, strg),
		importer: NewImportService(cfg, log, strg),
		approval: NewApprovalService(cfg, log, strg),
		export:   NewExportService(cfg, log, strg),
		tenant:   NewTenantService(cfg, log, strg),
	}
}

func (m *serviceManager) Module() ModuleServiceI     { return m.module }
func (m *serviceManager) Record() RecordServiceI     { return m.record }
func (m *serviceManager) Import() ImportServiceI     { return m.importer }
func (m *serviceManager) Approval() ApprovalServiceI { return m.approval }
func (m *serviceManager) Export() ExportServiceI     { return m.export }
func (m *serviceManager) Tenant() TenantServiceI     { return m.tenant }
