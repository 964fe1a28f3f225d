// Package db provides PostgreSQL utilities for the order store.
//
// It wraps [github.com/jackc/pgx/v5/pgxpool] with retrying connection
// setup, a ping health probe, a transaction helper and goose migrations
// from an [io/fs.FS].
//
// # Configuration
//
//	DATABASE_CONN_URL           - PostgreSQL connection URL
//	DATABASE_MAX_OPEN_CONNS     - Maximum open connections (default: 10)
//	DATABASE_MIN_CONNS          - Minimum idle connections (default: 2)
//	DATABASE_HEALTHCHECK_PERIOD - Health check interval (default: 1m)
//	DATABASE_MAX_CONN_IDLE_TIME - Maximum connection idle time (default: 10m)
//	DATABASE_MAX_CONN_LIFETIME  - Maximum connection lifetime (default: 30m)
//	DATABASE_RETRY_ATTEMPTS     - Connection attempts (default: 3)
//	DATABASE_RETRY_INTERVAL     - Base retry interval (default: 5s)
//	DATABASE_MIGRATIONS_TABLE   - Migrations table name (default: schema_migrations)
//
// # Usage
//
//	pool, err := db.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := db.Migrate(ctx, pool, orders.Migrations(), cfg.MigrationsTable, log); err != nil {
//		return err
//	}
//
//	err = db.WithTx(ctx, pool, func(tx pgx.Tx) error {
//		_, err := tx.Exec(ctx, "UPDATE orders SET status = $1 WHERE id = $2", status, id)
//		return err
//	})
//
// Errors are wrapped using [errors.Join] to preserve the original error context.
package db
