package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Shutdown returns a shutdown hook that closes the connection pool.
//
//	server.Run(ctx, handler, server.WithShutdownHook(db.Shutdown(pool)))
func Shutdown(pool *pgxpool.Pool) func(ctx context.Context) error {
	return func(context.Context) error {
		pool.Close()
		return nil
	}
}
