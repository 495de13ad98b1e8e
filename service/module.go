package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"munidesk/munidesk_go_module_builder_service/config"
	"munidesk/munidesk_go_module_builder_service/models"
	"munidesk/munidesk_go_module_builder_service/pkg/helper"
	span "munidesk/munidesk_go_module_builder_service/pkg/jaeger"
	"munidesk/munidesk_go_module_builder_service/pkg/logger"
	"munidesk/munidesk_go_module_builder_service/storage"
)

type moduleService struct {
	cfg  config.Config
	log  logger.LoggerI
	strg storage.StorageI
}

func NewModuleService(cfg config.Config, log logger.LoggerI, strg storage.StorageI) ModuleServiceI {
	return &moduleService{
		cfg:  cfg,
		log:  log,
		strg: strg,
	}
}

// Create validates and runs the module wizard. Every draft that carries seed
// rows gets its own batch id here, so records seeded from one uploaded file
// surface on the approval screen as a single group.
func (s *moduleService) Create(ctx context.Context, req *models.CreateModuleRequest) (resp *models.CreateModuleResponse, err error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "service_module.Create", req)
	defer dbSpan.Finish()

	s.log.Info("---CreateModule--->>>", logger.String("name", req.Name))

	if strings.TrimSpace(req.Name) == "" {
		return nil, errors.New("module name is required")
	}

	for ti := range req.Tables {
		draft := &req.Tables[ti]

		if strings.TrimSpace(draft.Name) == "" {
			return nil, errors.New("table name is required")
		}

		for _, fd := range draft.Fields {
			if fd.Type != "" && !config.FIELD_TYPES[fd.Type] {
				return nil, errors.Errorf("unknown field type %q", fd.Type)
			}
		}

		if len(draft.Rows) > 0 {
			draft.BatchId = helper.NewBatchId()
		}
	}

	resp, err = s.strg.Module().Create(ctx, req)
	if err != nil {
		s.log.Error("---CreateModule--->>>", logger.Error(err))
		return nil, err
	}

	return resp, nil
}

func (s *moduleService) GetByPK(ctx context.Context, req *models.ModulePrimaryKey) (*models.Module, error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "service_module.GetByPK", req)
	defer dbSpan.Finish()

	return s.strg.Module().GetByPK(ctx, req)
}

func (s *moduleService) GetAll(ctx context.Context, req *models.GetAllModulesRequest) ([]models.Module, error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "service_module.GetAll", req)
	defer dbSpan.Finish()

	return s.strg.Module().GetAll(ctx, req)
}

func (s *moduleService) Update(ctx context.Context, req *models.UpdateModuleRequest) (*models.Module, error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "service_module.Update", req)
	defer dbSpan.Finish()

	s.log.Info("---UpdateModule--->>>", logger.String("id", req.Id))

	if strings.TrimSpace(req.Name) == "" {
		return nil, errors.New("module name is required")
	}

	return s.strg.Module().Update(ctx, req)
}

// Delete removes a module and all stored data under it. Only administrators
// hold the capability, checked here as well as at the transport layer.
func (s *moduleService) Delete(ctx context.Context, req *models.ModulePrimaryKey, actorRole string) error {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "service_module.Delete", req)
	defer dbSpan.Finish()

	s.log.Info("---DeleteModule--->>>", logger.String("id", req.Id), logger.String("role", actorRole))

	if !helper.Capabilities(actorRole).Has(helper.CapDeleteModule) {
		return errors.Errorf("role %q cannot delete modules", actorRole)
	}

	return s.strg.Module().Delete(ctx, req)
}

// Watch pushes the full active-module listing on every change notification,
// plus once up front for the initial snapshot.
func (s *moduleService) Watch(ctx context.Context, tenantId string, push func([]models.Module)) (func(), error) {
	emit := func() {
		modules, err := s.strg.Module().GetAll(ctx, &models.GetAllModulesRequest{
			TenantId:   tenantId,
			OnlyActive: true,
		})
		if err != nil {
			s.log.Error("---WatchModules--->>>", logger.Error(err))
			return
		}

		push(modules)
	}

	unsubscribe, err := s.strg.Watcher().SubscribeModuleChanges(ctx, tenantId, emit)
	if err != nil {
		return nil, err
	}

	emit()

	return unsubscribe, nil
}

func (s *moduleService) GetTables(ctx context.Context, req *models.ModulePrimaryKey) ([]models.Table, error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "service_module.GetTables", req)
	defer dbSpan.Finish()

	return s.strg.Table().GetByModule(ctx, req)
}

func (s *moduleService) AddTable(ctx context.Context, req *models.CreateTableRequest) (*models.Table, error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "service_module.AddTable", req)
	defer dbSpan.Finish()

	if strings.TrimSpace(req.Name) == "" {
		return nil, errors.New("table name is required")
	}

	return s.strg.Table().Create(ctx, req)
}

func (s *moduleService) RenameTable(ctx context.Context, req *models.RenameTableRequest) error {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "service_module.RenameTable", req)
	defer dbSpan.Finish()

	if strings.TrimSpace(req.Name) == "" {
		return errors.New("table name is required")
	}

	return s.strg.Table().Rename(ctx, req)
}

func (s *moduleService) DeleteTable(ctx context.Context, req *models.TablePrimaryKey) error {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "service_module.DeleteTable", req)
	defer dbSpan.Finish()

	return s.strg.Table().Delete(ctx, req)
}

func (s *moduleService) GetFields(ctx context.Context, req *models.TablePrimaryKey) ([]models.Field, error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "service_module.GetFields", req)
	defer dbSpan.Finish()

	return s.strg.Field().GetByTable(ctx, req)
}

// AddFields mints stored names for new fields from their labels and appends
// them to the table. Existing names stay untouched: colliding labels get a
// positional suffix through the normalizer's fallback.
func (s *moduleService) AddFields(ctx context.Context, req *models.CreateFieldsRequest) error {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "service_module.AddFields", req)
	defer dbSpan.Finish()

	existing, err := s.strg.Field().GetByTable(ctx, &models.TablePrimaryKey{
		TenantId: req.TenantId,
		Id:       req.TableId,
	})
	if err != nil {
		return err
	}

	taken := make(map[string]bool, len(existing))
	for _, f := range existing {
		taken[f.Name] = true
	}

	for i := range req.Fields {
		field := &req.Fields[i]

		if field.Type == "" {
			field.Type = "text"
		}
		if !config.FIELD_TYPES[field.Type] {
			return errors.Errorf("unknown field type %q", field.Type)
		}

		name := helper.FieldName(field.Label, len(existing)+i+1)
		if taken[name] {
			return errors.Errorf("field %q already exists", name)
		}
		taken[name] = true

		field.Name = name
	}

	return s.strg.Field().CreateMany(ctx, req)
}

func (s *moduleService) UpdateField(ctx context.Context, req *models.UpdateFieldRequest) (*models.Field, error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "service_module.UpdateField", req)
	defer dbSpan.Finish()

	if req.Type != "" && !config.FIELD_TYPES[req.Type] {
		return nil, errors.Errorf("unknown field type %q", req.Type)
	}

	return s.strg.Field().Update(ctx, req)
}

func (s *moduleService) DeleteField(ctx context.Context, req *models.FieldPrimaryKey) error {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "service_module.DeleteField", req)
	defer dbSpan.Finish()

	return s.strg.Field().Delete(ctx, req)
}
