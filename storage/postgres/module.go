package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"munidesk/munidesk_go_module_builder_service/config"
	"munidesk/munidesk_go_module_builder_service/models"
	"munidesk/munidesk_go_module_builder_service/pkg/helper"
	"munidesk/munidesk_go_module_builder_service/pkg/jaeger"
	"munidesk/munidesk_go_module_builder_service/pkg/logger"
	"munidesk/munidesk_go_module_builder_service/storage"
)

type moduleRepo struct {
	cfg config.Config
	log logger.LoggerI
}

func NewModuleRepo(cfg config.Config, log logger.LoggerI) storage.ModuleRepoI {
	return &moduleRepo{cfg: cfg, log: log}
}

// Create runs the whole module wizard in one transaction: the module row, its
// tables, their fields and any CSV seed rows. Seed rows arrive keyed by draft
// field id and are re-keyed to the stored field names minted here; drafts that
// carry a batch id get it stamped into every seeded record. A failure at any
// step rolls the whole module back.
func (r *moduleRepo) Create(ctx context.Context, req *models.CreateModuleRequest) (*models.CreateModuleResponse, error) {
	span, ctx := jaeger.StartSpanFromContext(ctx, "module.Create", req)
	defer span.Finish()

	pool, err := conn(req.TenantId)
	if err != nil {
		return nil, err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var (
		moduleId  = uuid.NewString()
		slug      = helper.ModuleSlug(req.Name)
		createdAt time.Time
	)

	err = tx.QueryRow(ctx, `
		INSERT INTO "crud_modules" (id, name, description, slug, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		moduleId,
		req.Name,
		req.Description,
		slug,
		req.CreatedBy,
	).Scan(&createdAt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create module")
	}

	resp := &models.CreateModuleResponse{
		Module: models.Module{
			Id:          moduleId,
			Name:        req.Name,
			Description: req.Description,
			Slug:        slug,
			IsActive:    true,
			CreatedBy:   req.CreatedBy,
			CreatedAt:   createdAt.Format(config.DatabaseTimeLayout),
		},
	}

	for i, draft := range req.Tables {
		tableId := uuid.NewString()

		dbName := helper.Normalize(draft.Name)
		if dbName == "" {
			dbName = fmt.Sprintf("table_%d", i+1)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO "crud_tables" (id, crud_module_id, name, db_table_name)
			VALUES ($1, $2, $3, $4)`,
			tableId,
			moduleId,
			draft.Name,
			dbName,
		)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create table")
		}
		resp.Tables++

		// draft field id -> stored name, for re-keying seed rows
		names := make(map[string]string, len(draft.Fields))

		for j, fd := range draft.Fields {
			name := helper.FieldName(fd.Label, j+1)
			names[fd.Id] = name

			fieldType := fd.Type
			if fieldType == "" {
				fieldType = "text"
			}

			var optionsJson []byte
			if optionsJson, err = json.Marshal(fd.Options); err != nil {
				return nil, errors.Wrap(err, "failed to marshal field options")
			}

			_, err = tx.Exec(ctx, `
				INSERT INTO "crud_fields" (id, crud_table_id, name, label, field_type, is_required, options, order_index)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				uuid.NewString(),
				tableId,
				name,
				fd.Label,
				fieldType,
				fd.Required,
				optionsJson,
				j,
			)
			if err != nil {
				return nil, errors.Wrap(err, "failed to create field")
			}
			resp.Fields++
		}

		rows := make([]map[string]any, 0, len(draft.Rows))
		for _, raw := range draft.Rows {
			data := map[string]any{}
			for draftId, val := range raw {
				if name, ok := names[draftId]; ok && val != "" {
					data[name] = val
				}
			}

			if len(data) == 0 {
				continue
			}

			if draft.BatchId != "" {
				helper.TagBatch(data, draft.BatchId)
			}

			rows = append(rows, data)
		}

		for start := 0; start < len(rows); start += r.cfg.WizardChunkSize {
			end := start + r.cfg.WizardChunkSize
			if end > len(rows) {
				end = len(rows)
			}

			query, args, buildErr := buildRecordsInsert(tableId, req.CreatedBy, rows[start:end])
			if buildErr != nil {
				err = buildErr
				return nil, err
			}

			if _, err = tx.Exec(ctx, query, args...); err != nil {
				return nil, errors.Wrap(err, "failed to seed records")
			}
			resp.Records += end - start
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to commit transaction")
	}

	return resp, nil
}

func (r *moduleRepo) GetByPK(ctx context.Context, req *models.ModulePrimaryKey) (*models.Module, error) {
	span, ctx := jaeger.StartSpanFromContext(ctx, "module.GetByPK", req)
	defer span.Finish()

	pool, err := conn(req.TenantId)
	if err != nil {
		return nil, err
	}

	filter, arg := "id = $1", req.Id
	if req.Id == "" {
		filter, arg = "slug = $1", req.Slug
	}

	var (
		module      models.Module
		description sql.NullString
		createdBy   sql.NullString
		createdAt   time.Time
	)

	err = pool.QueryRow(ctx, `
		SELECT id, name, description, slug, is_active, created_by, created_at
		FROM "crud_modules"
		WHERE `+filter,
		arg,
	).Scan(
		&module.Id,
		&module.Name,
		&description,
		&module.Slug,
		&module.IsActive,
		&createdBy,
		&createdAt,
	)
	if err != nil {
		if err.Error() == config.ErrNoRows {
			return nil, errors.New("module not found")
		}
		return nil, errors.Wrap(err, "failed to get module")
	}

	module.Description = description.String
	module.CreatedBy = createdBy.String
	module.CreatedAt = createdAt.Format(config.DatabaseTimeLayout)

	return &module, nil
}

func (r *moduleRepo) GetAll(ctx context.Context, req *models.GetAllModulesRequest) ([]models.Module, error) {
	span, ctx := jaeger.StartSpanFromContext(ctx, "module.GetAll", req)
	defer span.Finish()

	pool, err := conn(req.TenantId)
	if err != nil {
		return nil, err
	}

	builder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("id", "name", "description", "slug", "is_active", "created_by", "created_at").
		From(`"crud_modules"`).
		OrderBy("created_at DESC")

	if req.OnlyActive {
		builder = builder.Where(squirrel.Eq{"is_active": true})
	}

	if req.Search != "" {
		builder = builder.Where(`name ILIKE ?`, "%"+req.Search+"%")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get modules")
	}
	defer rows.Close()

	var modules []models.Module
	for rows.Next() {
		var (
			module      models.Module
			description sql.NullString
			createdBy   sql.NullString
			createdAt   time.Time
		)

		err = rows.Scan(
			&module.Id,
			&module.Name,
			&description,
			&module.Slug,
			&module.IsActive,
			&createdBy,
			&createdAt,
		)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan module")
		}

		module.Description = description.String
		module.CreatedBy = createdBy.String
		module.CreatedAt = createdAt.Format(config.DatabaseTimeLayout)

		modules = append(modules, module)
	}

	return modules, rows.Err()
}

// Update changes display metadata only. The slug is minted at creation and
// never rewritten, so saved links keep working after a rename.
func (r *moduleRepo) Update(ctx context.Context, req *models.UpdateModuleRequest) (*models.Module, error) {
	span, ctx := jaeger.StartSpanFromContext(ctx, "module.Update", req)
	defer span.Finish()

	pool, err := conn(req.TenantId)
	if err != nil {
		return nil, err
	}

	var (
		module      models.Module
		description sql.NullString
		createdBy   sql.NullString
		createdAt   time.Time
	)

	err = pool.QueryRow(ctx, `
		UPDATE "crud_modules"
		SET name = $2, description = $3
		WHERE id = $1
		RETURNING id, name, description, slug, is_active, created_by, created_at`,
		req.Id,
		req.Name,
		req.Description,
	).Scan(
		&module.Id,
		&module.Name,
		&description,
		&module.Slug,
		&module.IsActive,
		&createdBy,
		&createdAt,
	)
	if err != nil {
		if err.Error() == config.ErrNoRows {
			return nil, errors.New("module not found")
		}
		return nil, errors.Wrap(err, "failed to update module")
	}

	module.Description = description.String
	module.CreatedBy = createdBy.String
	module.CreatedAt = createdAt.Format(config.DatabaseTimeLayout)

	return &module, nil
}

// Delete removes the module and, through cascading foreign keys, every table,
// field and record under it.
func (r *moduleRepo) Delete(ctx context.Context, req *models.ModulePrimaryKey) error {
	span, ctx := jaeger.StartSpanFromContext(ctx, "module.Delete", req)
	defer span.Finish()

	pool, err := conn(req.TenantId)
	if err != nil {
		return err
	}

	tag, err := pool.Exec(ctx, `DELETE FROM "crud_modules" WHERE id = $1`, req.Id)
	if err != nil {
		return errors.Wrap(err, "failed to delete module")
	}

	if tag.RowsAffected() == 0 {
		return errors.New("module not found")
	}

	return nil
}
