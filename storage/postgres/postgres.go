package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"munidesk/munidesk_go_module_builder_service/config"
	"munidesk/munidesk_go_module_builder_service/pkg/logger"
	psqlpool "munidesk/munidesk_go_module_builder_service/pool"
	"munidesk/munidesk_go_module_builder_service/storage"
)

type Store struct {
	cfg config.Config
	log logger.LoggerI

	tenant  storage.TenantRepoI
	module  storage.ModuleRepoI
	table   storage.TableRepoI
	field   storage.FieldRepoI
	record  storage.RecordRepoI
	export  storage.ExportRepoI
	watcher storage.WatcherI
}

// NewPostgres connects to the default tenant database, brings its schema up
// to date and registers its connection pool so repositories can resolve it by
// tenant id.
func NewPostgres(ctx context.Context, cfg config.Config, log logger.LoggerI) (storage.StorageI, error) {
	dbUrl := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PostgresUser,
		cfg.PostgresPassword,
		cfg.PostgresHost,
		cfg.PostgresPort,
		cfg.PostgresDatabase,
	)

	poolConfig, err := pgxpool.ParseConfig(dbUrl)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse postgres config")
	}

	poolConfig.MaxConns = cfg.PostgresMaxConnections

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to postgres")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "failed to ping postgres")
	}

	if err := migrateUp(cfg.MigrationsPath, dbUrl); err != nil {
		pool.Close()
		return nil, err
	}

	psqlpool.Add(cfg.DefaultTenantId, &psqlpool.Pool{Db: pool})

	return &Store{
		cfg: cfg,
		log: log,
	}, nil
}

func (s *Store) CloseDB() {
	psqlpool.Remove(s.cfg.DefaultTenantId)
}

func (s *Store) Tenant() storage.TenantRepoI {
	if s.tenant == nil {
		s.tenant = NewTenantRepo(s.cfg, s.log)
	}
	return s.tenant
}

func (s *Store) Module() storage.ModuleRepoI {
	if s.module == nil {
		s.module = NewModuleRepo(s.cfg, s.log)
	}
	return s.module
}

func (s *Store) Table() storage.TableRepoI {
	if s.table == nil {
		s.table = NewTableRepo(s.log)
	}
	return s.table
}

func (s *Store) Field() storage.FieldRepoI {
	if s.field == nil {
		s.field = NewFieldRepo(s.log)
	}
	return s.field
}

func (s *Store) Record() storage.RecordRepoI {
	if s.record == nil {
		s.record = NewRecordRepo(s.cfg, s.log)
	}
	return s.record
}

func (s *Store) Export() storage.ExportRepoI {
	if s.export == nil {
		s.export = NewExportRepo(s.cfg, s.log)
	}
	return s.export
}

func (s *Store) Watcher() storage.WatcherI {
	if s.watcher == nil {
		s.watcher = NewWatcherRepo(s.log)
	}
	return s.watcher
}

// conn resolves the pgx pool registered for the given tenant.
func conn(tenantId string) (*psqlpool.Pool, error) {
	pool := psqlpool.Get(tenantId)
	if pool == nil {
		return nil, errors.Errorf("no database connection registered for tenant %q", tenantId)
	}
	return pool, nil
}
