package postgres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"

	"munidesk/munidesk_go_module_builder_service/config"
	"munidesk/munidesk_go_module_builder_service/models"
	"munidesk/munidesk_go_module_builder_service/pkg/helper"
	"munidesk/munidesk_go_module_builder_service/pkg/jaeger"
	"munidesk/munidesk_go_module_builder_service/pkg/logger"
	"munidesk/munidesk_go_module_builder_service/storage"
)

type exportRepo struct {
	cfg config.Config
	log logger.LoggerI

	fields  storage.FieldRepoI
	records storage.RecordRepoI
}

func NewExportRepo(cfg config.Config, log logger.LoggerI) storage.ExportRepoI {
	return &exportRepo{
		cfg:     cfg,
		log:     log,
		fields:  NewFieldRepo(log),
		records: NewRecordRepo(cfg, log),
	}
}

// ExportCSV renders every record of the table to the console's CSV shape,
// uploads the file to object storage and returns the public link.
func (r *exportRepo) ExportCSV(ctx context.Context, req *models.ExportRequest) (*models.ExportResponse, error) {
	span, ctx := jaeger.StartSpanFromContext(ctx, "export.ExportCSV", req)
	defer span.Finish()

	fields, records, err := r.load(ctx, req)
	if err != nil {
		return nil, err
	}

	content := helper.BuildCSV(fields, records, req.FieldNames)

	fileName := fmt.Sprintf("report_%d.csv", time.Now().Unix())
	filePath := filepath.Join(os.TempDir(), fileName)

	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		return nil, errors.Wrap(err, "failed to write export file")
	}
	defer os.Remove(filePath)

	link, err := r.upload(ctx, filePath, fileName, "text/csv")
	if err != nil {
		return nil, err
	}

	return &models.ExportResponse{Link: link}, nil
}

// ExportXLSX renders the same ID/Status/Data + field-label layout as the CSV
// export, as a spreadsheet.
func (r *exportRepo) ExportXLSX(ctx context.Context, req *models.ExportRequest) (*models.ExportResponse, error) {
	span, ctx := jaeger.StartSpanFromContext(ctx, "export.ExportXLSX", req)
	defer span.Finish()

	fields, records, err := r.load(ctx, req)
	if err != nil {
		return nil, err
	}

	active := selectFields(fields, req.FieldNames)

	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)

	header := []any{"ID", "Status", "Data"}
	for _, f := range active {
		header = append(header, f.Label)
	}

	if err := file.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, errors.Wrap(err, "failed to write sheet header")
	}

	for i, record := range records {
		row := []any{record.Id, config.StatusLabels[record.Status], helper.ExportDate(record.CreatedAt)}
		for _, f := range active {
			row = append(row, cast.ToString(record.Data[f.Name]))
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, errors.Wrap(err, "failed to resolve sheet cell")
		}

		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, errors.Wrap(err, "failed to write sheet row")
		}
	}

	fileName := fmt.Sprintf("report_%d.xlsx", time.Now().Unix())
	filePath := filepath.Join(os.TempDir(), fileName)

	if err := file.SaveAs(filePath); err != nil {
		return nil, errors.Wrap(err, "failed to save export file")
	}
	defer os.Remove(filePath)

	link, err := r.upload(ctx, filePath, fileName, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err != nil {
		return nil, err
	}

	return &models.ExportResponse{Link: link}, nil
}

func (r *exportRepo) load(ctx context.Context, req *models.ExportRequest) ([]models.Field, []models.Record, error) {
	fields, err := r.fields.GetByTable(ctx, &models.TablePrimaryKey{
		TenantId: req.TenantId,
		Id:       req.TableId,
	})
	if err != nil {
		return nil, nil, err
	}

	records, err := r.records.GetByTable(ctx, &models.GetRecordsRequest{
		TenantId: req.TenantId,
		TableId:  req.TableId,
	})
	if err != nil {
		return nil, nil, err
	}

	return fields, records, nil
}

func (r *exportRepo) upload(ctx context.Context, filePath, objectName, contentType string) (string, error) {
	client, err := minio.New(r.cfg.MinioHost, &minio.Options{
		Creds:  credentials.NewStaticV4(r.cfg.MinioAccessKeyID, r.cfg.MinioSecretKey, ""),
		Secure: true,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to connect to minio")
	}

	_, err = client.FPutObject(ctx, r.cfg.MinioBucket, objectName, filePath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to upload export file")
	}

	return fmt.Sprintf("https://%s/%s/%s", r.cfg.MinioHost, r.cfg.MinioBucket, objectName), nil
}

func selectFields(fields []models.Field, selected []string) []models.Field {
	if selected == nil {
		return fields
	}

	keep := map[string]bool{}
	for _, name := range selected {
		keep[name] = true
	}

	var active []models.Field
	for _, f := range fields {
		if keep[f.Name] {
			active = append(active, f)
		}
	}

	return active
}
