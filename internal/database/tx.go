package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// ErrDriverWarning is returned when the server raised a WARNING inside a
// transaction. The transaction is rolled back instead of committed.
var ErrDriverWarning = errors.New("database raised a warning")

// TxFunc is a unit of work run inside one transaction.
type TxFunc func(ctx context.Context, tx pgx.Tx) error

// Transactor runs units of work. Repositories depend on it instead of the
// pool so they can be tested against a mock.
type Transactor interface {
	WithTx(ctx context.Context, fn TxFunc) error
}

var _ Transactor = (*Database)(nil)

// WithTx runs fn inside a transaction.
//
// The transaction commits only if fn returns nil, did not panic and the
// server raised no warning. Otherwise it is rolled back: fn's error is
// returned unchanged and a panic is re-raised once the rollback is done.
// A rollback failure is logged, never returned in place of the cause.
func (db *Database) WithTx(ctx context.Context, fn TxFunc) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Drop anything left over from the connection's previous user.
	db.takeWarnings(tx)

	defer func() {
		if p := recover(); p != nil {
			db.rollback(ctx, tx, fmt.Errorf("panic: %v", p))
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		db.rollback(ctx, tx, err)
		return err
	}

	if warnings := db.takeWarnings(tx); len(warnings) > 0 {
		err := fmt.Errorf("%w: %s", ErrDriverWarning, strings.Join(warnings, "; "))
		db.rollback(ctx, tx, err)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// rollback ignores cancellation of the request context so a client that
// hung up does not leave the transaction open.
func (db *Database) rollback(ctx context.Context, tx pgx.Tx, cause error) {
	db.log.Warn().Err(cause).Msg("rolling back transaction")

	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		db.log.Error().Err(err).Msg("failed to rollback transaction")
	}
}

func (db *Database) takeWarnings(tx pgx.Tx) []string {
	if db.warnings == nil {
		return nil
	}
	conn := tx.Conn()
	if conn == nil {
		return nil
	}
	return db.warnings.take(conn.PgConn())
}
