package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"munidesk/munidesk_go_module_builder_service/config"
	"munidesk/munidesk_go_module_builder_service/models"
	"munidesk/munidesk_go_module_builder_service/pkg/helper"
	"munidesk/munidesk_go_module_builder_service/pkg/jaeger"
	"munidesk/munidesk_go_module_builder_service/pkg/logger"
	"munidesk/munidesk_go_module_builder_service/storage"
)

type tableRepo struct {
	log logger.LoggerI
}

func NewTableRepo(log logger.LoggerI) storage.TableRepoI {
	return &tableRepo{log: log}
}

func (r *tableRepo) Create(ctx context.Context, req *models.CreateTableRequest) (*models.Table, error) {
	span, ctx := jaeger.StartSpanFromContext(ctx, "table.Create", req)
	defer span.Finish()

	pool, err := conn(req.TenantId)
	if err != nil {
		return nil, err
	}

	dbName := req.DbName
	if dbName == "" {
		dbName = helper.Normalize(req.Name)
	}

	var (
		table = models.Table{
			Id:          uuid.NewString(),
			ModuleId:    req.ModuleId,
			Name:        req.Name,
			DbTableName: dbName,
		}
		createdAt time.Time
	)

	err = pool.QueryRow(ctx, `
		INSERT INTO "crud_tables" (id, crud_module_id, name, db_table_name)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		table.Id,
		table.ModuleId,
		table.Name,
		table.DbTableName,
	).Scan(&createdAt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create table")
	}

	table.CreatedAt = createdAt.Format(config.DatabaseTimeLayout)

	return &table, nil
}

func (r *tableRepo) GetByModule(ctx context.Context, req *models.ModulePrimaryKey) ([]models.Table, error) {
	span, ctx := jaeger.StartSpanFromContext(ctx, "table.GetByModule", req)
	defer span.Finish()

	pool, err := conn(req.TenantId)
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, `
		SELECT id, crud_module_id, name, db_table_name, created_at
		FROM "crud_tables"
		WHERE crud_module_id = $1
		ORDER BY created_at ASC`,
		req.Id,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get tables")
	}
	defer rows.Close()

	var tables []models.Table
	for rows.Next() {
		var (
			table     models.Table
			createdAt time.Time
		)

		err = rows.Scan(
			&table.Id,
			&table.ModuleId,
			&table.Name,
			&table.DbTableName,
			&createdAt,
		)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan table")
		}

		table.CreatedAt = createdAt.Format(config.DatabaseTimeLayout)

		tables = append(tables, table)
	}

	return tables, rows.Err()
}

// Rename updates the display name only. The backing db_table_name is part of
// the stored data's identity and never changes after creation.
func (r *tableRepo) Rename(ctx context.Context, req *models.RenameTableRequest) error {
	span, ctx := jaeger.StartSpanFromContext(ctx, "table.Rename", req)
	defer span.Finish()

	pool, err := conn(req.TenantId)
	if err != nil {
		return err
	}

	tag, err := pool.Exec(ctx, `
		UPDATE "crud_tables" SET name = $2 WHERE id = $1`,
		req.Id,
		req.Name,
	)
	if err != nil {
		return errors.Wrap(err, "failed to rename table")
	}

	if tag.RowsAffected() == 0 {
		return errors.New("table not found")
	}

	return nil
}

func (r *tableRepo) Delete(ctx context.Context, req *models.TablePrimaryKey) error {
	span, ctx := jaeger.StartSpanFromContext(ctx, "table.Delete", req)
	defer span.Finish()

	pool, err := conn(req.TenantId)
	if err != nil {
		return err
	}

	tag, err := pool.Exec(ctx, `DELETE FROM "crud_tables" WHERE id = $1`, req.Id)
	if err != nil {
		return errors.Wrap(err, "failed to delete table")
	}

	if tag.RowsAffected() == 0 {
		return errors.New("table not found")
	}

	return nil
}
