package service

import (
	"context"

	"github.com/pkg/errors"

	"munidesk/munidesk_go_module_builder_service/config"
	"munidesk/munidesk_go_module_builder_service/models"
	"munidesk/munidesk_go_module_builder_service/pkg/logger"
	"munidesk/munidesk_go_module_builder_service/storage"
)

var errFakeInsert = errors.New("insert failed")

// fakeStorage records what the services ask of it. Only what the tests need
// is implemented; everything else returns zero values.
type fakeStorage struct {
	fields []models.Field

	createdModules []*models.CreateModuleRequest
	createdFields  []*models.CreateFieldsRequest
	inserts        []*models.InsertRecordsRequest
	insertedOne    []*models.CreateRecordRequest
	statusUpdates  []*models.UpdateStatusRequest

	pending []models.Record

	failChunk int // 1-based InsertMany call to fail, 0 = never
	statusErr error
}

func testConfig() config.Config {
	return config.Config{
		ImportChunkSize:   50,
		WizardChunkSize:   100,
		SelectOptionLimit: 50,
	}
}

func testLogger() logger.LoggerI {
	return logger.NewLogger("test", logger.LevelError)
}

func (f *fakeStorage) Tenant() storage.TenantRepoI { return nil }
func (f *fakeStorage) Module() storage.ModuleRepoI { return &fakeModuleRepo{f} }
func (f *fakeStorage) Table() storage.TableRepoI { return nil }
func (f *fakeStorage) Field() storage.FieldRepoI { return &fakeFieldRepo{f} }
func (f *fakeStorage) Record() storage.RecordRepoI { return &fakeRecordRepo{f} }
func (f *fakeStorage) Export() storage.ExportRepoI { return nil }
func (f *fakeStorage) Watcher() storage.WatcherI { return nil }
func (f *fakeStorage) CloseDB() {}

type fakeModuleRepo struct{ f *fakeStorage }

func (r *fakeModuleRepo) Create(ctx context.Context, req *models.CreateModuleRequest) (*models.CreateModuleResponse, error) {
	r.f.createdModules = append(r.f.createdModules, req)

	resp := &models.CreateModuleResponse{
		Module: models.Module{Id: "m1", Name: req.Name, IsActive: true},
		Tables: len(req.Tables),
	}
	for _, draft := range req.Tables {
		resp.Fields += len(draft.Fields)
		resp.Records += len(draft.Rows)
	}

	return resp, nil
}

func (r *fakeModuleRepo) GetByPK(ctx context.Context, req *models.ModulePrimaryKey) (*models.Module, error) {
	return &models.Module{Id: req.Id}, nil
}

func (r *fakeModuleRepo) GetAll(ctx context.Context, req *models.GetAllModulesRequest) ([]models.Module, error) {
	return nil, nil
}

func (r *fakeModuleRepo) Update(ctx context.Context, req *models.UpdateModuleRequest) (*models.Module, error) {
	return &models.Module{Id: req.Id, Name: req.Name}, nil
}

func (r *fakeModuleRepo) Delete(ctx context.Context, req *models.ModulePrimaryKey) error {
	return nil
}

type fakeFieldRepo struct{ f *fakeStorage }

func (r *fakeFieldRepo) CreateMany(ctx context.Context, req *models.CreateFieldsRequest) error {
	r.f.createdFields = append(r.f.createdFields, req)
	r.f.fields = append(r.f.fields, req.Fields...)
	return nil
}

func (r *fakeFieldRepo) GetByTable(ctx context.Context, req *models.TablePrimaryKey) ([]models.Field, error) {
	return r.f.fields, nil
}

func (r *fakeFieldRepo) Update(ctx context.Context, req *models.UpdateFieldRequest) (*models.Field, error) {
	return &models.Field{Id: req.Id, Label: req.Label}, nil
}

func (r *fakeFieldRepo) Delete(ctx context.Context, req *models.FieldPrimaryKey) error {
	return nil
}

type fakeRecordRepo struct{ f *fakeStorage }

func (r *fakeRecordRepo) Insert(ctx context.Context, req *models.CreateRecordRequest) (*models.Record, error) {
	r.f.insertedOne = append(r.f.insertedOne, req)

	return &models.Record{
		Id:      "r1",
		TableId: req.TableId,
		Data:    req.Data,
		Status:  config.StatusPending,
	}, nil
}

func (r *fakeRecordRepo) InsertMany(ctx context.Context, req *models.InsertRecordsRequest) error {
	r.f.inserts = append(r.f.inserts, req)

	if r.f.failChunk > 0 && len(r.f.inserts) == r.f.failChunk {
		return errFakeInsert
	}

	return nil
}

func (r *fakeRecordRepo) GetByTable(ctx context.Context, req *models.GetRecordsRequest) ([]models.Record, error) {
	return nil, nil
}

func (r *fakeRecordRepo) QueryPending(ctx context.Context, req *models.PendingScope) ([]models.Record, error) {
	return r.f.pending, nil
}

func (r *fakeRecordRepo) UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) error {
	if r.f.statusErr != nil {
		return r.f.statusErr
	}

	r.f.statusUpdates = append(r.f.statusUpdates, req)
	return nil
}

func (r *fakeRecordRepo) Update(ctx context.Context, req *models.UpdateRecordRequest) (*models.Record, error) {
	return &models.Record{Id: req.Id, Data: req.Data, Status: config.StatusPending}, nil
}

func (r *fakeRecordRepo) Delete(ctx context.Context, req *models.RecordPrimaryKey) error {
	return nil
}
