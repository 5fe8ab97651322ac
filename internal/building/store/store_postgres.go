package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/domain"
)

// PostgresStore persists the building defaults in PostgreSQL. The table holds
// a single row; updates overwrite it.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed building config store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetDefaults(ctx context.Context) (domain.BuildingConfig, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT max_occupancy_percentage,
		       weekdays_open, weekdays_close,
		       saturday_open, saturday_close,
		       sunday_open, sunday_close
		FROM building_config
		WHERE id = 1`)

	var (
		occupancy float64
		hours     [6]sql.NullString
	)
	if err := row.Scan(&occupancy, &hours[0], &hours[1], &hours[2], &hours[3], &hours[4], &hours[5]); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.BuildingConfig{}, ErrNotFound
		}
		return domain.BuildingConfig{}, fmt.Errorf("get building config: %w", err)
	}

	opening, err := domain.NewOpeningHours(
		domain.DayHours{Open: hours[0].String, Close: hours[1].String},
		domain.DayHours{Open: hours[2].String, Close: hours[3].String},
		domain.DayHours{Open: hours[4].String, Close: hours[5].String},
	)
	if err != nil {
		return domain.BuildingConfig{}, fmt.Errorf("stored opening hours invalid: %w", err)
	}
	return domain.NewBuildingConfig(occupancy, opening)
}

func (s *PostgresStore) Update(ctx context.Context, config domain.BuildingConfig) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO building_config (
			id, max_occupancy_percentage,
			weekdays_open, weekdays_close,
			saturday_open, saturday_close,
			sunday_open, sunday_close
		) VALUES (1, $1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			max_occupancy_percentage = EXCLUDED.max_occupancy_percentage,
			weekdays_open = EXCLUDED.weekdays_open,
			weekdays_close = EXCLUDED.weekdays_close,
			saturday_open = EXCLUDED.saturday_open,
			saturday_close = EXCLUDED.saturday_close,
			sunday_open = EXCLUDED.sunday_open,
			sunday_close = EXCLUDED.sunday_close`,
		config.MaxOccupancyPercentage,
		nullString(config.OpeningHours.Weekdays.Open), nullString(config.OpeningHours.Weekdays.Close),
		nullString(config.OpeningHours.Saturday.Open), nullString(config.OpeningHours.Saturday.Close),
		nullString(config.OpeningHours.Sunday.Open), nullString(config.OpeningHours.Sunday.Close),
	)
	if err != nil {
		return fmt.Errorf("update building config: %w", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
