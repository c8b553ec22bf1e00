package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/rueda/internal/db"
)

// FailOnNthExecUoW is a real SQLite unit of work whose Nth write, counted from
// 1 across the transaction, returns Err instead of executing. Reads pass
// through. Tests use it to show that a failed store leaves no partial run.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error

	execs atomic.Int32
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	u.execs.Store(0)
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &countingTx{DBTX: tx, uow: u})
	})
}

// Execs reports the writes attempted by the last transaction.
func (u *FailOnNthExecUoW) Execs() int { return int(u.execs.Load()) }

type countingTx struct {
	db.DBTX
	uow *FailOnNthExecUoW
}

func (c *countingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if c.uow.execs.Add(1) == c.uow.FailOn {
		return nil, c.uow.Err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
