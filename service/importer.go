package service

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"munidesk/munidesk_go_module_builder_service/config"
	"munidesk/munidesk_go_module_builder_service/models"
	"munidesk/munidesk_go_module_builder_service/pkg/helper"
	span "munidesk/munidesk_go_module_builder_service/pkg/jaeger"
	"munidesk/munidesk_go_module_builder_service/pkg/logger"
	"munidesk/munidesk_go_module_builder_service/storage"
)

type importService struct {
	cfg  config.Config
	log  logger.LoggerI
	strg storage.StorageI

	// serializes imports; a second import while one is running is
	// refused instead of queued, same as decisions
	mu sync.Mutex
}

func NewImportService(cfg config.Config, log logger.LoggerI, strg storage.StorageI) ImportServiceI {
	return &importService{
		cfg:  cfg,
		log:  log,
		strg: strg,
	}
}

// Preview parses the upload and proposes a column mapping against the table's
// current fields, plus a handful of sample rows for the mapping screen.
func (s *importService) Preview(ctx context.Context, req *models.ImportPreviewRequest) (*models.ImportPreview, error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "service_import.Preview", req)
	defer dbSpan.Finish()

	doc, err := helper.ParseCSV(req.RawText)
	if err != nil {
		return nil, err
	}

	fields, err := s.strg.Field().GetByTable(ctx, &models.TablePrimaryKey{
		TenantId: req.TenantId,
		Id:       req.TableId,
	})
	if err != nil {
		return nil, err
	}

	defaultAction := req.DefaultAction
	if defaultAction == "" {
		defaultAction = config.MappingIgnore
	}

	samples := doc.Rows
	if len(samples) > 5 {
		samples = samples[:5]
	}

	return &models.ImportPreview{
		Headers: doc.Headers,
		Mapping: helper.AutoMapColumns(doc.Headers, fields, defaultAction),
		Rows:    samples,
	}, nil
}

// Import runs the whole pipeline: parse, resolve the column mapping, create
// any fields mapped to "new", materialize rows, tag every one with a fresh
// batch id and insert in chunks. A chunk that fails is skipped and counted;
// the batch id still ties whatever landed together, so a partial import can
// be found and decided as one group.
func (s *importService) Import(ctx context.Context, req *models.ImportRequest) (*models.ImportResult, error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "service_import.Import", req)
	defer dbSpan.Finish()

	if !s.mu.TryLock() {
		return nil, errors.New("another import is being processed")
	}
	defer s.mu.Unlock()

	s.log.Info("---ImportRecords--->>>", logger.String("table_id", req.TableId))

	doc, err := helper.ParseCSV(req.RawText)
	if err != nil {
		return nil, err
	}

	fields, err := s.strg.Field().GetByTable(ctx, &models.TablePrimaryKey{
		TenantId: req.TenantId,
		Id:       req.TableId,
	})
	if err != nil {
		return nil, err
	}

	mapping := req.Mapping
	if mapping == nil {
		mapping = helper.AutoMapColumns(doc.Headers, fields, config.MappingIgnore)
	}

	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f.Name] = true
	}

	var (
		columnField = map[string]string{} // header -> stored field name
		newFields   []models.Field
	)

	for _, header := range doc.Headers {
		action, ok := mapping[header]
		if !ok {
			action = config.MappingIgnore
		}

		switch action {
		case config.MappingIgnore:

		case config.MappingNew:
			colCfg := req.Configs[header]

			fieldType := colCfg.Type
			if fieldType == "" {
				fieldType = "text"
			}
			if !config.FIELD_TYPES[fieldType] {
				return nil, errors.Errorf("unknown field type %q for column %q", fieldType, header)
			}

			name := helper.FieldName(header, len(fields)+len(newFields)+1)
			if known[name] {
				// the table already has this field, map onto it
				columnField[header] = name
				continue
			}
			known[name] = true

			field := models.Field{
				Name:       name,
				Label:      header,
				Type:       fieldType,
				IsRequired: false,
			}

			if colCfg.ExtractOptions && fieldType == "select" {
				field.Options = helper.ExtractOptions(doc, header, s.cfg.SelectOptionLimit)
			}

			newFields = append(newFields, field)
			columnField[header] = name

		default:
			if !known[action] {
				return nil, errors.Errorf("column %q mapped to unknown field %q", header, action)
			}

			columnField[header] = action
		}
	}

	if len(columnField) == 0 {
		return nil, errors.New("no columns mapped, nothing to import")
	}

	if len(newFields) > 0 {
		err = s.strg.Field().CreateMany(ctx, &models.CreateFieldsRequest{
			TenantId: req.TenantId,
			TableId:  req.TableId,
			Fields:   newFields,
		})
		if err != nil {
			return nil, err
		}
	}

	batchId := helper.NewBatchId()

	rows := make([]map[string]any, 0, len(doc.Rows))
	for _, raw := range doc.Rows {
		data := map[string]any{}
		for header, name := range columnField {
			if val := raw[header]; val != "" {
				data[name] = val
			}
		}

		if len(data) == 0 {
			continue
		}

		helper.TagBatch(data, batchId)
		rows = append(rows, data)
	}

	if len(rows) == 0 {
		return nil, errors.New("no rows to import")
	}

	result := &models.ImportResult{
		BatchId:   batchId,
		Attempted: len(rows),
		NewFields: len(newFields),
	}

	for start := 0; start < len(rows); start += s.cfg.ImportChunkSize {
		end := start + s.cfg.ImportChunkSize
		if end > len(rows) {
			end = len(rows)
		}

		err := s.strg.Record().InsertMany(ctx, &models.InsertRecordsRequest{
			TenantId:  req.TenantId,
			TableId:   req.TableId,
			CreatedBy: req.CreatedBy,
			Rows:      rows[start:end],
		})
		if err != nil {
			s.log.Error("---ImportRecords--->>>", logger.Error(err), logger.Int("chunk_start", start))
			result.FailedChunks++
			continue
		}

		result.Committed += end - start
	}

	return result, nil
}
