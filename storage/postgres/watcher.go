package postgres

import (
	"context"

	"github.com/pkg/errors"

	"munidesk/munidesk_go_module_builder_service/config"
	"munidesk/munidesk_go_module_builder_service/pkg/logger"
	"munidesk/munidesk_go_module_builder_service/storage"
)

type watcherRepo struct {
	log logger.LoggerI
}

func NewWatcherRepo(log logger.LoggerI) storage.WatcherI {
	return &watcherRepo{log: log}
}

// SubscribeModuleChanges holds a dedicated connection on LISTEN and invokes
// cb once per notification from the module-changes trigger. The payload is
// ignored on purpose: subscribers refetch the full module listing rather than
// merging increments. The returned func cancels the subscription; the
// connection is hijacked out of the pool and closed so a still-subscribed
// connection is never handed to another caller.
func (r *watcherRepo) SubscribeModuleChanges(ctx context.Context, tenantId string, cb func()) (func(), error) {
	pool, err := conn(tenantId)
	if err != nil {
		return nil, err
	}

	poolConn, err := pool.Db.Acquire(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to acquire listen connection")
	}

	if _, err := poolConn.Exec(ctx, `LISTEN `+config.ModuleChangesChannel); err != nil {
		poolConn.Release()
		return nil, errors.Wrap(err, "failed to listen on module changes channel")
	}

	listenCtx, cancel := context.WithCancel(ctx)

	go func() {
		defer func() {
			_ = poolConn.Hijack().Close(context.Background())
		}()

		for {
			if _, err := poolConn.Conn().WaitForNotification(listenCtx); err != nil {
				if listenCtx.Err() == nil {
					r.log.Error("module changes listener stopped", logger.Error(err))
				}
				return
			}

			cb()
		}
	}()

	return cancel, nil
}
