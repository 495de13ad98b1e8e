package service

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"munidesk/munidesk_go_module_builder_service/config"
	"munidesk/munidesk_go_module_builder_service/models"
	"munidesk/munidesk_go_module_builder_service/pkg/helper"
	span "munidesk/munidesk_go_module_builder_service/pkg/jaeger"
	"munidesk/munidesk_go_module_builder_service/pkg/logger"
	"munidesk/munidesk_go_module_builder_service/pkg/util"
	"munidesk/munidesk_go_module_builder_service/storage"
)

type recordService struct {
	cfg  config.Config
	log  logger.LoggerI
	strg storage.StorageI
}

func NewRecordService(cfg config.Config, log logger.LoggerI, strg storage.StorageI) RecordServiceI {
	return &recordService{
		cfg:  cfg,
		log:  log,
		strg: strg,
	}
}

// Create validates a manually entered record against the table's current
// fields and stores it as pending. The reserved batch key is stripped so no
// form submission can ever pose as a batch member.
func (s *recordService) Create(ctx context.Context, req *models.CreateRecordRequest) (*models.Record, error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "service_record.Create", req)
	defer dbSpan.Finish()

	s.log.Info("---CreateRecord--->>>", logger.String("table_id", req.TableId))

	if err := s.validate(ctx, req.TenantId, req.TableId, req.Data); err != nil {
		return nil, err
	}

	req.Data = helper.StripBatchKey(req.Data)

	record, err := s.strg.Record().Insert(ctx, req)
	if err != nil {
		s.log.Error("---CreateRecord--->>>", logger.Error(err))
		return nil, err
	}

	return record, nil
}

func (s *recordService) GetByTable(ctx context.Context, req *models.GetRecordsRequest) ([]models.Record, error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "service_record.GetByTable", req)
	defer dbSpan.Finish()

	return s.strg.Record().GetByTable(ctx, req)
}

// Update replaces a record's data after the same validation as Create. The
// adapter resets the status to pending, so edits always go back through
// review.
func (s *recordService) Update(ctx context.Context, req *models.UpdateRecordRequest) (*models.Record, error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "service_record.Update", req)
	defer dbSpan.Finish()

	s.log.Info("---UpdateRecord--->>>", logger.String("id", req.Id))

	if err := s.validate(ctx, req.TenantId, req.TableId, req.Data); err != nil {
		return nil, err
	}

	req.Data = helper.StripBatchKey(req.Data)

	record, err := s.strg.Record().Update(ctx, req)
	if err != nil {
		s.log.Error("---UpdateRecord--->>>", logger.Error(err))
		return nil, err
	}

	return record, nil
}

func (s *recordService) Delete(ctx context.Context, req *models.RecordPrimaryKey) error {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "service_record.Delete", req)
	defer dbSpan.Finish()

	s.log.Info("---DeleteRecord--->>>", logger.String("id", req.Id))

	return s.strg.Record().Delete(ctx, req)
}

func (s *recordService) validate(ctx context.Context, tenantId, tableId string, data map[string]any) error {
	fields, err := s.strg.Field().GetByTable(ctx, &models.TablePrimaryKey{
		TenantId: tenantId,
		Id:       tableId,
	})
	if err != nil {
		return err
	}

	for _, f := range fields {
		val := cast.ToString(data[f.Name])

		if f.IsRequired && val == "" {
			return errors.Errorf("field %q is required", f.Label)
		}

		if err := util.ValidateFieldValue(f.Type, val); err != nil {
			return errors.Wrapf(err, "field %q", f.Label)
		}
	}

	return nil
}
