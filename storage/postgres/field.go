package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgtype"
	"github.com/pkg/errors"

	"munidesk/munidesk_go_module_builder_service/config"
	"munidesk/munidesk_go_module_builder_service/models"
	"munidesk/munidesk_go_module_builder_service/pkg/jaeger"
	"munidesk/munidesk_go_module_builder_service/pkg/logger"
	"munidesk/munidesk_go_module_builder_service/storage"
)

type fieldRepo struct {
	log logger.LoggerI
}

func NewFieldRepo(log logger.LoggerI) storage.FieldRepoI {
	return &fieldRepo{log: log}
}

// CreateMany appends fields to an existing table in one transaction. Callers
// supply the stored names; order indexes continue after the table's current
// highest so additions land at the end.
func (r *fieldRepo) CreateMany(ctx context.Context, req *models.CreateFieldsRequest) error {
	span, ctx := jaeger.StartSpanFromContext(ctx, "field.CreateMany", req)
	defer span.Finish()

	pool, err := conn(req.TenantId)
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var nextIndex int32
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(MAX(order_index), -1) + 1
		FROM "crud_fields"
		WHERE crud_table_id = $1`,
		req.TableId,
	).Scan(&nextIndex)
	if err != nil {
		return errors.Wrap(err, "failed to get field order")
	}

	for i, field := range req.Fields {
		options := pgtype.JSONB{}
		if err = options.Set(field.Options); err != nil {
			return errors.Wrap(err, "failed to set field options")
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO "crud_fields" (id, crud_table_id, name, label, field_type, is_required, options, order_index)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			uuid.NewString(),
			req.TableId,
			field.Name,
			field.Label,
			field.Type,
			field.IsRequired,
			options,
			nextIndex+int32(i),
		)
		if err != nil {
			return errors.Wrap(err, "failed to create field")
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	return nil
}

func (r *fieldRepo) GetByTable(ctx context.Context, req *models.TablePrimaryKey) ([]models.Field, error) {
	span, ctx := jaeger.StartSpanFromContext(ctx, "field.GetByTable", req)
	defer span.Finish()

	pool, err := conn(req.TenantId)
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, `
		SELECT id, crud_table_id, name, label, field_type, is_required, options, order_index
		FROM "crud_fields"
		WHERE crud_table_id = $1
		ORDER BY order_index ASC`,
		req.Id,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get fields")
	}
	defer rows.Close()

	var fields []models.Field
	for rows.Next() {
		var (
			field   models.Field
			options pgtype.JSONB
		)

		err = rows.Scan(
			&field.Id,
			&field.TableId,
			&field.Name,
			&field.Label,
			&field.Type,
			&field.IsRequired,
			&options,
			&field.OrderIndex,
		)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan field")
		}

		if options.Status == pgtype.Present {
			if err = options.AssignTo(&field.Options); err != nil {
				return nil, errors.Wrap(err, "failed to assign field options")
			}
		}

		fields = append(fields, field)
	}

	return fields, rows.Err()
}

// Update rewrites everything about a field except its stored name, which is
// immutable so existing record data keeps resolving.
func (r *fieldRepo) Update(ctx context.Context, req *models.UpdateFieldRequest) (*models.Field, error) {
	span, ctx := jaeger.StartSpanFromContext(ctx, "field.Update", req)
	defer span.Finish()

	pool, err := conn(req.TenantId)
	if err != nil {
		return nil, err
	}

	options := pgtype.JSONB{}
	if err = options.Set(req.Options); err != nil {
		return nil, errors.Wrap(err, "failed to set field options")
	}

	var (
		field  models.Field
		stored pgtype.JSONB
	)

	err = pool.QueryRow(ctx, `
		UPDATE "crud_fields"
		SET label = $2, field_type = $3, is_required = $4, options = $5, order_index = $6
		WHERE id = $1
		RETURNING id, crud_table_id, name, label, field_type, is_required, options, order_index`,
		req.Id,
		req.Label,
		req.Type,
		req.IsRequired,
		options,
		req.OrderIndex,
	).Scan(
		&field.Id,
		&field.TableId,
		&field.Name,
		&field.Label,
		&field.Type,
		&field.IsRequired,
		&stored,
		&field.OrderIndex,
	)
	if err != nil {
		if err.Error() == config.ErrNoRows {
			return nil, errors.New("field not found")
		}
		return nil, errors.Wrap(err, "failed to update field")
	}

	if stored.Status == pgtype.Present {
		if err = stored.AssignTo(&field.Options); err != nil {
			return nil, errors.Wrap(err, "failed to assign field options")
		}
	}

	return &field, nil
}

func (r *fieldRepo) Delete(ctx context.Context, req *models.FieldPrimaryKey) error {
	span, ctx := jaeger.StartSpanFromContext(ctx, "field.Delete", req)
	defer span.Finish()

	pool, err := conn(req.TenantId)
	if err != nil {
		return err
	}

	tag, err := pool.Exec(ctx, `DELETE FROM "crud_fields" WHERE id = $1`, req.Id)
	if err != nil {
		return errors.Wrap(err, "failed to delete field")
	}

	if tag.RowsAffected() == 0 {
		return errors.New("field not found")
	}

	return nil
}
