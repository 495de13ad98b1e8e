package service

import (
	"context"

	"github.com/pkg/errors"

	"munidesk/munidesk_go_module_builder_service/config"
	"munidesk/munidesk_go_module_builder_service/models"
	span "munidesk/munidesk_go_module_builder_service/pkg/jaeger"
	"munidesk/munidesk_go_module_builder_service/pkg/logger"
	"munidesk/munidesk_go_module_builder_service/storage"
)

type exportService struct {
	cfg  config.Config
	log  logger.LoggerI
	strg storage.StorageI
}

func NewExportService(cfg config.Config, log logger.LoggerI, strg storage.StorageI) ExportServiceI {
	return &exportService{
		cfg:  cfg,
		log:  log,
		strg: strg,
	}
}

// Export renders the table to the requested format and returns the download
// link. An empty format means CSV.
func (s *exportService) Export(ctx context.Context, req *models.ExportRequest) (*models.ExportResponse, error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "service_export.Export", req)
	defer dbSpan.Finish()

	s.log.Info("---ExportTable--->>>", logger.String("table_id", req.TableId), logger.String("format", req.Format))

	switch req.Format {
	case "", "csv":
		return s.strg.Export().ExportCSV(ctx, req)
	case "xlsx":
		return s.strg.Export().ExportXLSX(ctx, req)
	default:
		return nil, errors.Errorf("unknown export format %q", req.Format)
	}
}
