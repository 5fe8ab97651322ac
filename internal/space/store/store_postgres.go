package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/domain"
)

// PostgresStore persists spaces in PostgreSQL. Rows are rehydrated through the
// domain factory so invalid data cannot leak past the store.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed space store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const spaceColumns = `
	id, real_id, name, floor, capacity, space_type,
	is_reservable, reservation_category,
	assignment_type, assignment_targets,
	max_usage_percentage, custom_schedule`

func (s *PostgresStore) Save(ctx context.Context, space domain.Space) error {
	schedule, err := marshalSchedule(space.CustomSchedule)
	if err != nil {
		return fmt.Errorf("save space %s: %w", space.ID, err)
	}

	var category sql.NullString
	if space.ReservationCategory != nil {
		category = sql.NullString{String: space.ReservationCategory.String(), Valid: true}
	}
	var maxUsage sql.NullFloat64
	if space.MaxUsagePercentage != nil {
		maxUsage = sql.NullFloat64{Float64: *space.MaxUsagePercentage, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO spaces (`+spaceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			real_id = EXCLUDED.real_id,
			name = EXCLUDED.name,
			floor = EXCLUDED.floor,
			capacity = EXCLUDED.capacity,
			space_type = EXCLUDED.space_type,
			is_reservable = EXCLUDED.is_reservable,
			reservation_category = EXCLUDED.reservation_category,
			assignment_type = EXCLUDED.assignment_type,
			assignment_targets = EXCLUDED.assignment_targets,
			max_usage_percentage = EXCLUDED.max_usage_percentage,
			custom_schedule = EXCLUDED.custom_schedule`,
		space.ID, space.RealID, space.Name, space.Floor, space.Capacity, space.SpaceType.String(),
		space.IsReservable, category,
		string(space.AssignmentTarget.Type), pq.Array(space.AssignmentTarget.Targets),
		maxUsage, schedule,
	)
	if err != nil {
		return fmt.Errorf("save space %s: %w", space.ID, err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (domain.Space, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+spaceColumns+`
		FROM spaces
		WHERE id = $1`, id)
	space, err := scanSpace(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Space{}, ErrNotFound
		}
		return domain.Space{}, fmt.Errorf("find space %s: %w", id, err)
	}
	return space, nil
}

func (s *PostgresStore) List(ctx context.Context, filter Filter) ([]domain.Space, error) {
	query := `SELECT ` + spaceColumns + ` FROM spaces WHERE 1=1`
	args := make([]any, 0, 3)
	if filter.Floor != nil {
		args = append(args, *filter.Floor)
		query += fmt.Sprintf(" AND floor = $%d", len(args))
	}
	if filter.Category != nil {
		args = append(args, filter.Category.String())
		query += fmt.Sprintf(" AND reservation_category = $%d", len(args))
	}
	if filter.Department != nil {
		args = append(args, string(*filter.Department))
		query += fmt.Sprintf(" AND assignment_type = 'department' AND $%d = ANY(assignment_targets)", len(args))
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list spaces: %w", err)
	}
	defer rows.Close()

	var out []domain.Space
	for rows.Next() {
		space, err := scanSpace(rows)
		if err != nil {
			return nil, fmt.Errorf("list spaces: %w", err)
		}
		out = append(out, space)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list spaces: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSpace(row rowScanner) (domain.Space, error) {
	var (
		f              domain.SpaceFields
		category       sql.NullString
		assignmentType string
		targets        pq.StringArray
		maxUsage       sql.NullFloat64
		schedule       []byte
	)
	if err := row.Scan(
		&f.ID, &f.RealID, &f.Name, &f.Floor, &f.Capacity, &f.SpaceType,
		&f.IsReservable, &category,
		&assignmentType, &targets,
		&maxUsage, &schedule,
	); err != nil {
		return domain.Space{}, err
	}

	if category.Valid {
		f.ReservationCategory = &category.String
	}
	f.AssignmentType = assignmentType
	f.AssignmentTargets = targets
	if maxUsage.Valid {
		f.MaxUsagePercentage = &maxUsage.Float64
	}
	if len(schedule) > 0 {
		var hours domain.OpeningHours
		if err := json.Unmarshal(schedule, &hours); err != nil {
			return domain.Space{}, fmt.Errorf("stored schedule invalid: %w", err)
		}
		f.CustomSchedule = &hours
	}

	space, err := domain.NewSpace(f)
	if err != nil {
		return domain.Space{}, fmt.Errorf("stored space invalid: %w", err)
	}
	return space, nil
}

func marshalSchedule(hours *domain.OpeningHours) ([]byte, error) {
	if hours == nil {
		return nil, nil
	}
	return json.Marshal(hours)
}
