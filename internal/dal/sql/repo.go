package sql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/o-kovalenko/vocab-trainer/internal/dal"
)

type (
	// Client is the statement surface shared by *sql.DB and *sql.Tx.
	Client interface {
		ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
		QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
		QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	}

	Repository struct {
		client          Client
		db              *sql.DB // nil inside a transaction
		staleSessionTTL time.Duration
		log             *slog.Logger
	}
)

func NewRepository(ctx context.Context, db *sql.DB, staleSessionTTL time.Duration, log *slog.Logger) *Repository {
	res := &Repository{client: db, db: db, staleSessionTTL: staleSessionTTL, log: log}
	go res.cleanupStaleSessionsJob(ctx)
	return res
}

func (r *Repository) Transact(ctx context.Context, txFunc func(r dal.Repository) error) error {
	if r.db == nil {
		return txFunc(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // ignore rollback errors

	txRepo := &Repository{client: tx, staleSessionTTL: r.staleSessionTTL, log: r.log}
	if err = txFunc(txRepo); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func (r *Repository) cleanupStaleSessionsJob(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Hour):
			r.log.InfoContext(ctx, "running stale sessions cleanup job")

			query := dal.CleanupStaleSessionsQuery(time.Now().Add(-r.staleSessionTTL))

			sql, args, err := query.ToSql()
			if err != nil {
				r.log.ErrorContext(ctx, "failed to build cleanup query", "error", err)
				continue
			}

			_, err = r.client.ExecContext(ctx, sql, args...)
			if err != nil {
				r.log.ErrorContext(ctx, "failed to run cleanup job", "error", err)
			}
		}
	}
}
