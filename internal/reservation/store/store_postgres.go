package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/domain"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/platform/tx"
)

// PostgresStore persists reservations in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed reservation store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// querier runs statements on the transaction pinned in context when one is
// present, the pool otherwise.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) querier(ctx context.Context) querier {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.db
}

const reservationColumns = `
	id, user_id, space_ids, usage_type, max_attendees,
	start_time, duration_minutes, additional_details,
	category, status, invalidated_at`

const overlapPredicate = `
	status = 'valid'
	AND space_ids && $1
	AND start_time < $3
	AND $2 < start_time + duration_minutes * interval '1 minute'`

// Create inserts the reservation after re-checking for overlaps inside a
// serializable transaction. The eligibility engine already checks overlaps,
// but a concurrent create admitted between its read and this write would
// otherwise double-book; a serialization failure surfaces as ErrOverlap.
func (s *PostgresStore) Create(ctx context.Context, r domain.Reservation) error {
	txn, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("create reservation %s: %w", r.ID, err)
	}
	defer txn.Rollback()

	end := r.EndTime()
	var conflicts int
	err = txn.QueryRowContext(ctx,
		`SELECT count(*) FROM reservations WHERE `+overlapPredicate,
		pq.Array(r.SpaceIDs), r.StartTime, end,
	).Scan(&conflicts)
	if err != nil {
		return createErr(r.ID, err)
	}
	if conflicts > 0 {
		return ErrOverlap
	}

	_, err = txn.ExecContext(ctx, `
		INSERT INTO reservations (`+reservationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		r.ID, r.UserID, pq.Array(r.SpaceIDs), string(r.UsageType), r.MaxAttendees,
		r.StartTime, r.DurationMinutes, r.AdditionalDetails,
		r.Category.String(), string(r.Status), r.InvalidatedAt,
	)
	if err != nil {
		return createErr(r.ID, err)
	}
	if err := txn.Commit(); err != nil {
		return createErr(r.ID, err)
	}
	return nil
}

// createErr maps a serialization failure anywhere in the transaction to
// ErrOverlap; the loser of a concurrent double-book can fail on any
// statement, not just the commit.
func createErr(id string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "40001" {
		return ErrOverlap
	}
	return fmt.Errorf("create reservation %s: %w", id, err)
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (domain.Reservation, error) {
	row := s.querier(ctx).QueryRowContext(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE id = $1`, id)
	r, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Reservation{}, ErrNotFound
		}
		return domain.Reservation{}, fmt.Errorf("find reservation %s: %w", id, err)
	}
	return r, nil
}

func (s *PostgresStore) FindByUser(ctx context.Context, userID string) ([]domain.Reservation, error) {
	return s.query(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE user_id = $1
		ORDER BY start_time, id`, userID)
}

func (s *PostgresStore) FindBySpace(ctx context.Context, spaceID string) ([]domain.Reservation, error) {
	return s.query(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE $1 = ANY(space_ids)
		ORDER BY start_time, id`, spaceID)
}

func (s *PostgresStore) FindOverlapping(ctx context.Context, spaceIDs []string, start time.Time, durationMinutes int) ([]domain.Reservation, error) {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	return s.query(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE `+overlapPredicate+`
		ORDER BY start_time, id`, pq.Array(spaceIDs), start, end)
}

func (s *PostgresStore) ListPotentiallyInvalid(ctx context.Context, olderThan time.Time) ([]domain.Reservation, error) {
	return s.query(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE status = 'potentially_invalid' AND invalidated_at < $1
		ORDER BY start_time, id`, olderThan)
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus, invalidatedAt *time.Time) error {
	res, err := s.querier(ctx).ExecContext(ctx, `
		UPDATE reservations
		SET status = $2, invalidated_at = $3
		WHERE id = $1`, id, string(status), invalidatedAt)
	if err != nil {
		return fmt.Errorf("update reservation %s: %w", id, err)
	}
	return requireRow(res, id)
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.querier(ctx).ExecContext(ctx, `
		DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete reservation %s: %w", id, err)
	}
	return requireRow(res, id)
}

// WithinTx runs fn with a transaction pinned to the context; every store call
// inside fn joins it through querier. Nested calls reuse the outer
// transaction.
func (s *PostgresStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := tx.From(ctx); ok {
		return fn(ctx)
	}
	txn, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reservation tx: %w", err)
	}
	defer txn.Rollback()

	if err := fn(tx.WithTx(ctx, txn)); err != nil {
		return err
	}
	if err := txn.Commit(); err != nil {
		return fmt.Errorf("commit reservation tx: %w", err)
	}
	return nil
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]domain.Reservation, error) {
	rows, err := s.querier(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reservations: %w", err)
	}
	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("query reservations: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query reservations: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (domain.Reservation, error) {
	var (
		f             domain.ReservationFields
		spaceIDs      pq.StringArray
		status        string
		invalidatedAt sql.NullTime
	)
	if err := row.Scan(
		&f.ID, &f.UserID, &spaceIDs, &f.UsageType, &f.MaxAttendees,
		&f.StartTime, &f.DurationMinutes, &f.AdditionalDetails,
		&f.Category, &status, &invalidatedAt,
	); err != nil {
		return domain.Reservation{}, err
	}
	f.SpaceIDs = spaceIDs

	r, err := domain.NewReservation(f)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("stored reservation invalid: %w", err)
	}
	r.Status = domain.ReservationStatus(status)
	if invalidatedAt.Valid {
		at := invalidatedAt.Time
		r.InvalidatedAt = &at
	}
	return r, nil
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reservation %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
