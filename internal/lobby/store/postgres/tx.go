package postgres

import (
	"context"
	"database/sql"
	"time"

	"frontdesk/internal/lobby/lock"
	"frontdesk/internal/lobby/ports"
	dErrors "frontdesk/pkg/domain-errors"
)

const defaultTxTimeout = 5 * time.Second

// Tx runs lobby transactions on Postgres. Badge-type scoped transactions are
// serialized with pg_advisory_xact_lock unless an external Locker is set.
type Tx struct {
	db      *sql.DB
	locker  lock.Locker
	timeout time.Duration
}

type TxOption func(*Tx)

// WithLocker serializes badge types through l instead of advisory locks.
func WithLocker(l lock.Locker) TxOption {
	return func(t *Tx) {
		t.locker = l
	}
}

func WithTxTimeout(d time.Duration) TxOption {
	return func(t *Tx) {
		t.timeout = d
	}
}

func NewTx(db *sql.DB, opts ...TxOption) *Tx {
	t := &Tx{db: db, timeout: defaultTxTimeout}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tx) RunInTx(ctx context.Context, scope ports.TxScope, fn func(stores ports.TxStores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	if scope.BadgeType != "" && t.locker != nil {
		release, err := t.locker.Lock(ctx, lock.Key(string(scope.BadgeType)))
		if err != nil {
			return err
		}
		defer release()
	}

	sqlTx, err := t.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return mapTxErr(ctx, "begin", err)
	}
	defer func() {
		_ = sqlTx.Rollback()
	}()

	if scope.BadgeType != "" && t.locker == nil {
		if _, err := sqlTx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lock.Key(string(scope.BadgeType))); err != nil {
			return mapTxErr(ctx, "advisory lock", err)
		}
	}

	stores := ports.TxStores{
		Visitors: &Visitors{db: t.db, q: sqlTx},
		Badges:   &Badges{db: t.db, q: sqlTx},
	}
	if err := fn(stores); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return mapTxErr(ctx, "commit", err)
	}
	return nil
}

func mapTxErr(ctx context.Context, op string, err error) error {
	if ctx.Err() != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction "+op+" timed out")
	}
	return mapErr(op, err)
}

var (
	_ ports.StoreTx      = (*Tx)(nil)
	_ ports.VisitorStore = (*Visitors)(nil)
	_ ports.BadgeStore   = (*Badges)(nil)
)
