// Package postgres is the production store backend. Reservation relies on
// row locks (FOR UPDATE SKIP LOCKED) and every status change is a
// conditional UPDATE, so a lost race surfaces as sentinel.ErrConflict.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	"github.com/lib/pq"

	"frontdesk/internal/lobby/models"
	id "frontdesk/pkg/domain"
	"frontdesk/pkg/platform/sentinel"
	"frontdesk/pkg/platform/tx"
)

const driverName = "pgx"

// Open connects to Postgres through the pgx database/sql driver and verifies
// the connection.
func Open(ctx context.Context, dsn string, maxOpenConns int) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
		db.SetMaxIdleConns(maxOpenConns)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// Visitors persists visitor rows. Calls use the transaction bound to ctx or
// to the store itself when there is one.
type Visitors struct {
	db *sql.DB
	q  tx.Querier
}

func NewVisitors(db *sql.DB) *Visitors {
	return &Visitors{db: db}
}

func (s *Visitors) conn(ctx context.Context) tx.Querier {
	if s.q != nil {
		return s.q
	}
	return tx.Conn(ctx, s.db)
}

const visitorColumns = `id, visitor_code, name, host_id, floor_number, floor_name, guest_code,
	badge_id, status, visit_date, visit_time, check_in_time, check_out_time, created_at, updated_at`

func (s *Visitors) FindByID(ctx context.Context, visitorID id.VisitorID) (*models.Visitor, error) {
	row := s.conn(ctx).QueryRowContext(ctx,
		`SELECT `+visitorColumns+` FROM visitors WHERE id = $1`, uuid.UUID(visitorID))
	v, err := scanVisitor(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, mapErr("find visitor", err)
	}
	return v, nil
}

func (s *Visitors) List(ctx context.Context, filter models.VisitorFilter) ([]*models.Visitor, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, st := range filter.Statuses {
			statuses[i] = string(st)
		}
		where = append(where, "status = ANY("+arg(pq.Array(statuses))+"::text[])")
	}
	if filter.HostID != nil {
		where = append(where, "host_id = "+arg(uuid.UUID(*filter.HostID)))
	}
	if filter.VisitDate != nil {
		where = append(where, "visit_date = "+arg(filter.VisitDate.Format(time.DateOnly))+"::date")
	}
	if q := strings.TrimSpace(filter.Search); q != "" {
		p := arg(q)
		where = append(where, "(strpos(lower(name), lower("+p+")) > 0 OR lower(visitor_code) = lower("+p+"))")
	}

	query := `SELECT ` + visitorColumns + ` FROM visitors`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at, visitor_code"

	rows, err := s.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapErr("list visitors", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*models.Visitor
	for rows.Next() {
		v, err := scanVisitor(rows)
		if err != nil {
			return nil, mapErr("scan visitor", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr("list visitors", err)
	}
	return out, nil
}

func (s *Visitors) Create(ctx context.Context, v *models.Visitor) error {
	_, err := s.conn(ctx).ExecContext(ctx, `
		INSERT INTO visitors (`+visitorColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		uuid.UUID(v.ID), v.VisitorCode, v.Name, uuid.UUID(v.HostID), nullInt(v.FloorNumber), v.FloorName, v.GuestCode,
		nullBadgeID(v.BadgeID), string(v.Status), nullDate(v.VisitDate), v.VisitTime, v.CheckInTime, v.CheckOutTime,
		v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return mapErr("create visitor", err)
	}
	return nil
}

func (s *Visitors) UpdateIfStatus(ctx context.Context, v *models.Visitor, expected models.VisitorStatus) error {
	q := s.conn(ctx)
	res, err := q.ExecContext(ctx, `
		UPDATE visitors SET
			name = $3, host_id = $4, floor_number = $5, floor_name = $6, guest_code = $7,
			badge_id = $8, status = $9, visit_date = $10, visit_time = $11,
			check_in_time = $12, check_out_time = $13, updated_at = $14
		WHERE id = $1 AND status = $2`,
		uuid.UUID(v.ID), string(expected),
		v.Name, uuid.UUID(v.HostID), nullInt(v.FloorNumber), v.FloorName, v.GuestCode,
		nullBadgeID(v.BadgeID), string(v.Status), nullDate(v.VisitDate), v.VisitTime,
		v.CheckInTime, v.CheckOutTime, v.UpdatedAt,
	)
	if err != nil {
		return mapErr("update visitor", err)
	}
	return missedUpdate(ctx, q, res, "visitors", uuid.UUID(v.ID))
}

// Badges persists the badge inventory.
type Badges struct {
	db *sql.DB
	q  tx.Querier
}

func NewBadges(db *sql.DB) *Badges {
	return &Badges{db: db}
}

func (s *Badges) conn(ctx context.Context) tx.Querier {
	if s.q != nil {
		return s.q
	}
	return tx.Conn(ctx, s.db)
}

const badgeColumns = `id, number, type, status, current_visitor_id, updated_at`

func (s *Badges) FindByID(ctx context.Context, badgeID id.BadgeID) (*models.Badge, error) {
	row := s.conn(ctx).QueryRowContext(ctx,
		`SELECT `+badgeColumns+` FROM badges WHERE id = $1`, uuid.UUID(badgeID))
	b, err := scanBadge(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, mapErr("find badge", err)
	}
	return b, nil
}

// FindAvailable locks the lowest-numbered available badge of badgeType for
// the rest of the enclosing transaction. Rows already locked by a concurrent
// reservation are skipped rather than waited on.
func (s *Badges) FindAvailable(ctx context.Context, badgeType models.BadgeType) (*models.Badge, error) {
	row := s.conn(ctx).QueryRowContext(ctx, `
		SELECT `+badgeColumns+` FROM badges
		WHERE type = $1 AND status = 'available'
		ORDER BY number
		LIMIT 1
		FOR UPDATE SKIP LOCKED`, string(badgeType))
	b, err := scanBadge(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, mapErr("find available badge", err)
	}
	return b, nil
}

func (s *Badges) List(ctx context.Context) ([]*models.Badge, error) {
	rows, err := s.conn(ctx).QueryContext(ctx, `SELECT `+badgeColumns+` FROM badges ORDER BY number`)
	if err != nil {
		return nil, mapErr("list badges", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*models.Badge
	for rows.Next() {
		b, err := scanBadge(rows)
		if err != nil {
			return nil, mapErr("scan badge", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, mapErr("list badges", err)
	}
	return out, nil
}

func (s *Badges) Create(ctx context.Context, b *models.Badge) error {
	_, err := s.conn(ctx).ExecContext(ctx, `
		INSERT INTO badges (`+badgeColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.UUID(b.ID), b.Number, string(b.Type), string(b.Status), nullVisitorID(b.CurrentVisitorID), b.UpdatedAt,
	)
	if err != nil {
		return mapErr("create badge", err)
	}
	return nil
}

func (s *Badges) UpdateIfStatus(ctx context.Context, b *models.Badge, expected models.BadgeStatus) error {
	q := s.conn(ctx)
	res, err := q.ExecContext(ctx, `
		UPDATE badges SET status = $3, current_visitor_id = $4, updated_at = $5
		WHERE id = $1 AND status = $2`,
		uuid.UUID(b.ID), string(expected), string(b.Status), nullVisitorID(b.CurrentVisitorID), b.UpdatedAt,
	)
	if err != nil {
		return mapErr("update badge", err)
	}
	return missedUpdate(ctx, q, res, "badges", uuid.UUID(b.ID))
}

// missedUpdate distinguishes a missing row from a status mismatch when a
// conditional UPDATE touched nothing.
func missedUpdate(ctx context.Context, q tx.Querier, res sql.Result, table string, rowID uuid.UUID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return mapErr("rows affected", err)
	}
	if n > 0 {
		return nil
	}
	var exists bool
	if err := q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = $1)`, rowID).Scan(&exists); err != nil {
		return mapErr("check row", err)
	}
	if !exists {
		return sentinel.ErrNotFound
	}
	return sentinel.ErrConflict
}

type scanner interface {
	Scan(dest ...any) error
}

func scanVisitor(row scanner) (*models.Visitor, error) {
	var (
		v                            models.Visitor
		rowID, hostID                uuid.UUID
		badgeID                      uuid.NullUUID
		floor                        sql.NullInt64
		status                       string
		visitDate, checkIn, checkOut sql.NullTime
	)
	err := row.Scan(&rowID, &v.VisitorCode, &v.Name, &hostID, &floor, &v.FloorName, &v.GuestCode,
		&badgeID, &status, &visitDate, &v.VisitTime, &checkIn, &checkOut, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	v.ID = id.VisitorID(rowID)
	v.HostID = id.HostID(hostID)
	v.Status = models.VisitorStatus(status)
	if floor.Valid {
		n := int(floor.Int64)
		v.FloorNumber = &n
	}
	if badgeID.Valid {
		b := id.BadgeID(badgeID.UUID)
		v.BadgeID = &b
	}
	v.VisitDate = timePtr(visitDate)
	v.CheckInTime = timePtr(checkIn)
	v.CheckOutTime = timePtr(checkOut)
	return &v, nil
}

func scanBadge(row scanner) (*models.Badge, error) {
	var (
		b            models.Badge
		rowID        uuid.UUID
		visitorID    uuid.NullUUID
		bType, state string
	)
	if err := row.Scan(&rowID, &b.Number, &bType, &state, &visitorID, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.ID = id.BadgeID(rowID)
	b.Type = models.BadgeType(bType)
	b.Status = models.BadgeStatus(state)
	if visitorID.Valid {
		v := id.VisitorID(visitorID.UUID)
		b.CurrentVisitorID = &v
	}
	return &b, nil
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}

func nullDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.DateOnly)
}

func nullBadgeID(b *id.BadgeID) uuid.NullUUID {
	if b == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(*b), Valid: true}
}

func nullVisitorID(v *id.VisitorID) uuid.NullUUID {
	if v == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(*v), Valid: true}
}

// Postgres SQLSTATEs that mean "lost a race; retrying may succeed".
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgUniqueViolation      = "23505"
)

func mapErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected, pgUniqueViolation:
			return fmt.Errorf("%s: %w: %w", op, sentinel.ErrConflict, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
