package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"munidesk/munidesk_go_module_builder_service/config"
	"munidesk/munidesk_go_module_builder_service/models"
	"munidesk/munidesk_go_module_builder_service/pkg/jaeger"
	"munidesk/munidesk_go_module_builder_service/pkg/logger"
	"munidesk/munidesk_go_module_builder_service/storage"
)

type recordRepo struct {
	cfg config.Config
	log logger.LoggerI
}

func NewRecordRepo(cfg config.Config, log logger.LoggerI) storage.RecordRepoI {
	return &recordRepo{cfg: cfg, log: log}
}

// Insert writes a single record in pending status.
func (r *recordRepo) Insert(ctx context.Context, req *models.CreateRecordRequest) (*models.Record, error) {
	span, ctx := jaeger.StartSpanFromContext(ctx, "record.Insert", req)
	defer span.Finish()

	pool, err := conn(req.TenantId)
	if err != nil {
		return nil, err
	}

	dataJson, err := json.Marshal(req.Data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal record data")
	}

	var (
		record = models.Record{
			Id:        uuid.NewString(),
			TableId:   req.TableId,
			Data:      req.Data,
			Status:    config.StatusPending,
			CreatedBy: req.CreatedBy,
		}
		createdAt time.Time
		updatedAt time.Time
	)

	err = pool.QueryRow(ctx, `
		INSERT INTO "crud_records" (id, crud_table_id, data, status, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		record.Id,
		record.TableId,
		dataJson,
		record.Status,
		nullableId(record.CreatedBy),
	).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create record")
	}

	record.CreatedAt = createdAt.Format(config.DatabaseTimeLayout)
	record.UpdatedAt = updatedAt.Format(config.DatabaseTimeLayout)

	return &record, nil
}

// InsertMany writes one chunk of rows in a single multi-values statement.
// Either the whole chunk lands or none of it does.
func (r *recordRepo) InsertMany(ctx context.Context, req *models.InsertRecordsRequest) error {
	span, ctx := jaeger.StartSpanFromContext(ctx, "record.InsertMany", req)
	defer span.Finish()

	if len(req.Rows) == 0 {
		return nil
	}

	pool, err := conn(req.TenantId)
	if err != nil {
		return err
	}

	query, args, err := buildRecordsInsert(req.TableId, req.CreatedBy, req.Rows)
	if err != nil {
		return err
	}

	if _, err = pool.Exec(ctx, query, args...); err != nil {
		return errors.Wrap(err, "failed to insert records")
	}

	return nil
}

func (r *recordRepo) GetByTable(ctx context.Context, req *models.GetRecordsRequest) ([]models.Record, error) {
	span, ctx := jaeger.StartSpanFromContext(ctx, "record.GetByTable", req)
	defer span.Finish()

	pool, err := conn(req.TenantId)
	if err != nil {
		return nil, err
	}

	builder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("id", "crud_table_id", "data", "status", "rejection_reason",
			"created_by", "approved_by", "created_at", "updated_at").
		From(`"crud_records"`).
		Where(squirrel.Eq{"crud_table_id": req.TableId}).
		OrderBy("created_at DESC", "id ASC")

	if req.Search != "" {
		builder = builder.Where(`data::text ILIKE ?`, "%"+req.Search+"%")
	}

	if req.Limit > 0 {
		builder = builder.Limit(req.Limit).Offset(req.Offset)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get records")
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		record, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}

		records = append(records, *record)
	}

	return records, rows.Err()
}

// QueryPending returns every pending record in scope together with its table
// and module display names, newest first. Grouping into singles and batches is
// the caller's job.
func (r *recordRepo) QueryPending(ctx context.Context, req *models.PendingScope) ([]models.Record, error) {
	span, ctx := jaeger.StartSpanFromContext(ctx, "record.QueryPending", req)
	defer span.Finish()

	pool, err := conn(req.TenantId)
	if err != nil {
		return nil, err
	}

	builder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select("r.id", "r.crud_table_id", "r.data", "r.status", "r.rejection_reason",
			"r.created_by", "r.approved_by", "r.created_at", "r.updated_at",
			"t.name", "m.name").
		From(`"crud_records" r`).
		Join(`"crud_tables" t ON t.id = r.crud_table_id`).
		Join(`"crud_modules" m ON m.id = t.crud_module_id`).
		Where(squirrel.Eq{"r.status": config.StatusPending}).
		OrderBy("r.created_at DESC", "r.id ASC")

	if req.TableId != "" {
		builder = builder.Where(squirrel.Eq{"r.crud_table_id": req.TableId})
	}

	if req.ModuleId != "" {
		builder = builder.Where(squirrel.Eq{"t.crud_module_id": req.ModuleId})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get pending records")
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var (
			record          models.Record
			dataJson        []byte
			rejectionReason sql.NullString
			createdBy       sql.NullString
			approvedBy      sql.NullString
			createdAt       time.Time
			updatedAt       time.Time
		)

		err = rows.Scan(
			&record.Id,
			&record.TableId,
			&dataJson,
			&record.Status,
			&rejectionReason,
			&createdBy,
			&approvedBy,
			&createdAt,
			&updatedAt,
			&record.TableName,
			&record.ModuleName,
		)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan record")
		}

		if err = json.Unmarshal(dataJson, &record.Data); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal record data")
		}

		record.RejectionReason = rejectionReason.String
		record.CreatedBy = createdBy.String
		record.ApprovedBy = approvedBy.String
		record.CreatedAt = createdAt.Format(config.DatabaseTimeLayout)
		record.UpdatedAt = updatedAt.Format(config.DatabaseTimeLayout)

		records = append(records, record)
	}

	return records, rows.Err()
}

// UpdateStatus moves a set of records out of pending in one transaction. The
// update is guarded on status = pending; if any requested id is missing or
// already decided, nothing is committed and the caller gets an error naming
// the shortfall. The rejection reason is stored on reject and cleared on
// approve.
func (r *recordRepo) UpdateStatus(ctx context.Context, req *models.UpdateStatusRequest) error {
	span, ctx := jaeger.StartSpanFromContext(ctx, "record.UpdateStatus", req)
	defer span.Finish()

	if len(req.Ids) == 0 {
		return errors.New("no record ids given")
	}

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

	reason := sql.NullString{String: req.Reason, Valid: req.Status == config.StatusRejected}

	tag, err := tx.Exec(ctx, `
		UPDATE "crud_records"
		SET status = $1, approved_by = $2, rejection_reason = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = ANY($4::uuid[]) AND status = 'pending'`,
		req.Status,
		nullableId(req.ActorId),
		reason,
		pq.Array(req.Ids),
	)
	if err != nil {
		return errors.Wrap(err, "failed to update record status")
	}

	if int(tag.RowsAffected()) != len(req.Ids) {
		err = errors.Errorf("%d of %d records are not pending", len(req.Ids)-int(tag.RowsAffected()), len(req.Ids))
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	return nil
}

// Update replaces a record's data and sends it back through review: any edit
// resets the status to pending and clears the previous decision.
func (r *recordRepo) Update(ctx context.Context, req *models.UpdateRecordRequest) (*models.Record, error) {
	span, ctx := jaeger.StartSpanFromContext(ctx, "record.Update", req)
	defer span.Finish()

	pool, err := conn(req.TenantId)
	if err != nil {
		return nil, err
	}

	dataJson, err := json.Marshal(req.Data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal record data")
	}

	row := pool.QueryRow(ctx, `
		UPDATE "crud_records"
		SET data = $2, status = 'pending', rejection_reason = NULL, approved_by = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING id, crud_table_id, data, status, rejection_reason, created_by, approved_by, created_at, updated_at`,
		req.Id,
		dataJson,
	)

	record, err := scanRecord(row.Scan)
	if err != nil {
		if errors.Cause(err).Error() == config.ErrNoRows {
			return nil, errors.New("record not found")
		}
		return nil, err
	}

	return record, nil
}

func (r *recordRepo) Delete(ctx context.Context, req *models.RecordPrimaryKey) error {
	span, ctx := jaeger.StartSpanFromContext(ctx, "record.Delete", req)
	defer span.Finish()

	pool, err := conn(req.TenantId)
	if err != nil {
		return err
	}

	tag, err := pool.Exec(ctx, `DELETE FROM "crud_records" WHERE id = $1`, req.Id)
	if err != nil {
		return errors.Wrap(err, "failed to delete record")
	}

	if tag.RowsAffected() == 0 {
		return errors.New("record not found")
	}

	return nil
}

// buildRecordsInsert renders one multi-values insert for a chunk of rows.
func buildRecordsInsert(tableId, createdBy string, rows []map[string]any) (string, []any, error) {
	var (
		values = make([]string, 0, len(rows))
		args   = make([]any, 0, len(rows)*3+2)
	)

	args = append(args, tableId, nullableId(createdBy))

	for i, data := range rows {
		dataJson, err := json.Marshal(data)
		if err != nil {
			return "", nil, errors.Wrap(err, "failed to marshal record data")
		}

		values = append(values, fmt.Sprintf("($%d, $1, $%d, 'pending', $2)", i*2+3, i*2+4))
		args = append(args, uuid.NewString(), dataJson)
	}

	query := `INSERT INTO "crud_records" (id, crud_table_id, data, status, created_by) VALUES ` +
		strings.Join(values, ", ")

	return query, args, nil
}

// nullableId maps an absent actor to NULL; the uuid columns reject "".
func nullableId(id string) sql.NullString {
	return sql.NullString{String: id, Valid: id != ""}
}

func scanRecord(scan func(dest ...any) error) (*models.Record, error) {
	var (
		record          models.Record
		dataJson        []byte
		rejectionReason sql.NullString
		createdBy       sql.NullString
		approvedBy      sql.NullString
		createdAt       time.Time
		updatedAt       time.Time
	)

	err := scan(
		&record.Id,
		&record.TableId,
		&dataJson,
		&record.Status,
		&rejectionReason,
		&createdBy,
		&approvedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan record")
	}

	if err = json.Unmarshal(dataJson, &record.Data); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal record data")
	}

	record.RejectionReason = rejectionReason.String
	record.CreatedBy = createdBy.String
	record.ApprovedBy = approvedBy.String
	record.CreatedAt = createdAt.Format(config.DatabaseTimeLayout)
	record.UpdatedAt = updatedAt.Format(config.DatabaseTimeLayout)

	return &record, nil
}
