package psqlpool

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/opentracing/opentracing-go"
)

// psql connections per tenant id
var (
	mu       sync.RWMutex
	PsqlPool = make(map[string]*Pool)
)

type Pool struct {
	Db *pgxpool.Pool
}

func (b *Pool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "pgx.QueryRow")
	defer dbSpan.Finish()

	dbSpan.SetTag("sql", sql)
	dbSpan.SetTag("args", args)

	return b.Db.QueryRow(ctx, sql, args...)
}

func (b *Pool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "pgx.Query")
	defer dbSpan.Finish()

	dbSpan.SetTag("sql", sql)
	dbSpan.SetTag("args", args)

	return b.Db.Query(ctx, sql, args...)
}

func (b *Pool) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "pgx.Exec")
	defer dbSpan.Finish()

	dbSpan.SetTag("sql", sql)
	dbSpan.SetTag("args", arguments)

	return b.Db.Exec(ctx, sql, arguments...)
}

func (b *Pool) Begin(ctx context.Context) (pgx.Tx, error) {
	dbSpan, ctx := opentracing.StartSpanFromContext(ctx, "pgx.Begin")
	defer dbSpan.Finish()

	tx, err := b.Db.Begin(ctx)
	if err != nil {
		dbSpan.SetTag("error", true)
		dbSpan.LogKV("error.message", err.Error())
		return nil, err
	}

	return tx, nil
}

func Add(tenantId string, conn *Pool) {
	if tenantId == "" {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	if _, ok := PsqlPool[tenantId]; ok {
		return
	}

	PsqlPool[tenantId] = conn
}

func Get(tenantId string) (conn *Pool) {
	if tenantId == "" {
		return nil
	}

	mu.RLock()
	defer mu.RUnlock()

	return PsqlPool[tenantId]
}

func Remove(tenantId string) {
	if tenantId == "" {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	if conn, ok := PsqlPool[tenantId]; ok {
		conn.Db.Close()
		delete(PsqlPool, tenantId)
	}
}

func Override(tenantId string, conn *Pool) {
	if tenantId == "" {
		return
	}

	mu.Lock()
	defer mu.Unlock()

	if _, ok := PsqlPool[tenantId]; !ok {
		return
	}

	PsqlPool[tenantId] = conn
}
