package storage

import (
	"context"

	"munidesk/munidesk_go_module_builder_service/models"
)

// StorageI is the record-store contract the services consume. Everything
// behind it (persistence, joins, realtime push) is replaceable.
type StorageI interface {
	Tenant() TenantRepoI
	Module() ModuleRepoI
	Table() TableRepoI
	Field() FieldRepoI
	Record() RecordRepoI
	Export() ExportRepoI
	Watcher() WatcherI
	CloseDB()
}

type TenantRepoI interface {
	Register(ctx context.Context, req *models.RegisterTenantRequest) error
	Deregister(ctx context.Context, req *models.DeregisterTenantRequest) error
}

type ModuleRepoI interface {
	Create(ctx context.Context, req *models.CreateModuleRequest) (*models.CreateModuleResponse, error)
	GetByPK(ctx context.Context, req *models.ModulePrimaryKey) (*models.Module, error)
	GetAll(ctx context.Context, req *models.GetAllModulesRequest) ([]models.Module, error)
	Update(ctx context.Context, req *models.UpdateModuleRequest) (*models.Module, error)
	Delete(ctx context.Context, req *models.ModulePrimaryKey) error
}

type TableRepoI interface {
	Create(ctx context.Context, req *models.CreateTableRequest) (*models.Table, error)
	GetByModule(ctx context.Context, req *models.ModulePrimaryKey) ([]models.Table, error)
	Rename(ctx context.Context, req *models.RenameTableRequest) error
	Delete(ctx context.Context, req *models.TablePrimaryKey) error
}

type FieldRepoI interface {
	CreateMany(ctx context.Context, req *models.CreateFieldsRequest) error
	GetByTable(ctx context.Context, req *models.TablePrimaryKey) ([]models.Field, error)
	Update(ctx context.Context, req *models.UpdateFieldRequest) (*models.Field, error)
	Delete(ctx context.Context, req *models.FieldPrimaryKey) error
}

type RecordRepoI interface {
	Insert(ctx context.Context, req *models.CreateRecordRequest) (*models.Record, error)
	InsertMany(ctx context.Context, req *models.InsertRecordsRequest) error
	GetByTable(ctx context.Context, req *models.GetRecordsRequest) ([]models.Record, error)
	QueryPending(ctx context.Context, req *models.PendingScope) ([]models.Record, error)
	UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) error
	Update(ctx context.Context, req *models.UpdateRecordRequest) (*models.Record, error)
	Delete(ctx context.Context, req *models.RecordPrimaryKey) error
}

type ExportRepoI interface {
	ExportCSV(ctx context.Context, req *models.ExportRequest) (*models.ExportResponse, error)
	ExportXLSX(ctx context.Context, req *models.ExportRequest) (*models.ExportResponse, error)
}

// WatcherI delivers module-list change pushes. Consumers refetch the full
// listing on every tick instead of merging increments.
type WatcherI interface {
	SubscribeModuleChanges(ctx context.Context, tenantId string, cb func()) (func(), error)
}
