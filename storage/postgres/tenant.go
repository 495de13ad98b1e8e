package postgres

import (
	"context"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"munidesk/munidesk_go_module_builder_service/config"
	"munidesk/munidesk_go_module_builder_service/models"
	"munidesk/munidesk_go_module_builder_service/pkg/logger"
	psqlpool "munidesk/munidesk_go_module_builder_service/pool"
	"munidesk/munidesk_go_module_builder_service/storage"
)

type tenantRepo struct {
	cfg config.Config
	log logger.LoggerI
}

func NewTenantRepo(cfg config.Config, log logger.LoggerI) storage.TenantRepoI {
	return &tenantRepo{cfg: cfg, log: log}
}

// Register connects to the tenant database, brings its schema up to date
// and adds the pool to the shared registry. Registering an already known
// tenant replaces its pool.
func (r *tenantRepo) Register(ctx context.Context, req *models.RegisterTenantRequest) error {
	dbUrl := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		req.Credentials.Username,
		req.Credentials.Password,
		req.Credentials.Host,
		req.Credentials.Port,
		req.Credentials.Database,
	)

	poolConfig, err := pgxpool.ParseConfig(dbUrl)
	if err != nil {
		return errors.Wrap(err, "failed to parse tenant postgres config")
	}

	poolConfig.MaxConns = r.cfg.PostgresMaxConnections

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return errors.Wrap(err, "failed to connect to tenant database")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return errors.Wrap(err, "failed to ping tenant database")
	}

	if err := migrateUp(r.cfg.MigrationsPath, dbUrl); err != nil {
		pool.Close()
		return err
	}

	// close any previous pool for this tenant before swapping in the new one
	psqlpool.Remove(req.TenantId)
	psqlpool.Add(req.TenantId, &psqlpool.Pool{Db: pool})

	return nil
}

// migrateUp applies pending schema migrations to the database at dbUrl. A
// database already at the latest version is not an error.
func migrateUp(sourcePath, dbUrl string) error {
	m, err := migrate.New(sourcePath, dbUrl)
	if err != nil {
		return errors.Wrap(err, "failed to prepare migrations")
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "failed to migrate database")
	}

	return nil
}

// Deregister closes the tenant pool and drops it from the registry.
func (r *tenantRepo) Deregister(ctx context.Context, req *models.DeregisterTenantRequest) error {
	if pool := psqlpool.Get(req.TenantId); pool == nil {
		return errors.Errorf("tenant %q is not registered", req.TenantId)
	}
	psqlpool.Remove(req.TenantId)
	return nil
}
