//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/domain"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/platform/postgres"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/reservation/store"
	userstore "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/user/store"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/testutil/containers"
)

type PostgresReservationSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *store.PostgresStore
}

func TestPostgresReservationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresReservationSuite))
}

func (s *PostgresReservationSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.Require().NoError(postgres.Migrate(context.Background(), s.pg.DB))
	s.store = store.NewPostgres(s.pg.DB)
}

func (s *PostgresReservationSuite) SetupTest() {
	ctx := context.Background()
	_, err := s.pg.DB.Exec("TRUNCATE reservations, users CASCADE")
	s.Require().NoError(err)

	users := userstore.NewPostgres(s.pg.DB)
	user, err := domain.NewUser(domain.UserFields{
		ID:       "user-1",
		Name:     "Ana García",
		Email:    "ana@unizar.es",
		Password: "hashed-password",
		Roles:    []string{"estudiante"},
	})
	s.Require().NoError(err)
	s.Require().NoError(users.Save(ctx, user))
}

func (s *PostgresReservationSuite) TestCreateAndFind() {
	ctx := context.Background()
	start := time.Date(2025, 5, 12, 10, 0, 0, 0, time.UTC)
	r := makeReservation(s.T(), "res-1", "space-1", start, 60)

	s.Require().NoError(s.store.Create(ctx, r))

	found, err := s.store.FindByID(ctx, "res-1")
	s.Require().NoError(err)
	s.Equal(r.SpaceIDs, found.SpaceIDs)
	s.Equal(domain.StatusValid, found.Status)
	s.True(found.StartTime.Equal(start))

	byUser, err := s.store.FindByUser(ctx, "user-1")
	s.Require().NoError(err)
	s.Len(byUser, 1)

	bySpace, err := s.store.FindBySpace(ctx, "space-1")
	s.Require().NoError(err)
	s.Len(bySpace, 1)
}

func (s *PostgresReservationSuite) TestCreateRefusesOverlap() {
	ctx := context.Background()
	start := time.Date(2025, 5, 12, 10, 0, 0, 0, time.UTC)

	s.Require().NoError(s.store.Create(ctx, makeReservation(s.T(), "res-1", "space-1", start, 60)))

	err := s.store.Create(ctx, makeReservation(s.T(), "res-2", "space-1", start.Add(30*time.Minute), 60))
	s.ErrorIs(err, store.ErrOverlap)

	// Touching windows coexist.
	s.NoError(s.store.Create(ctx, makeReservation(s.T(), "res-3", "space-1", start.Add(time.Hour), 60)))
}

func (s *PostgresReservationSuite) TestConcurrentCreateAdmitsExactlyOne() {
	ctx := context.Background()
	start := time.Date(2025, 5, 12, 10, 0, 0, 0, time.UTC)

	var g errgroup.Group
	results := make([]error, 2)
	for i := range results {
		id := []string{"res-a", "res-b"}[i]
		i := i
		g.Go(func() error {
			results[i] = s.store.Create(ctx, makeReservation(s.T(), id, "space-1", start, 60))
			return nil
		})
	}
	s.Require().NoError(g.Wait())

	var failures int
	for _, err := range results {
		if err != nil {
			s.ErrorIs(err, store.ErrOverlap)
			failures++
		}
	}
	s.Equal(1, failures)
}

func (s *PostgresReservationSuite) TestStatusLifecycle() {
	ctx := context.Background()
	start := time.Date(2025, 5, 12, 10, 0, 0, 0, time.UTC)
	s.Require().NoError(s.store.Create(ctx, makeReservation(s.T(), "res-1", "space-1", start, 60)))

	flagged := time.Now().Add(-48 * time.Hour).Truncate(time.Microsecond)
	s.Require().NoError(s.store.UpdateStatus(ctx, "res-1", domain.StatusPotentiallyInvalid, &flagged))

	found, err := s.store.FindByID(ctx, "res-1")
	s.Require().NoError(err)
	s.Equal(domain.StatusPotentiallyInvalid, found.Status)
	s.Require().NotNil(found.InvalidatedAt)
	s.True(found.InvalidatedAt.Equal(flagged))

	overdue, err := s.store.ListPotentiallyInvalid(ctx, time.Now().Add(-24*time.Hour))
	s.Require().NoError(err)
	s.Len(overdue, 1)

	// A flagged reservation frees its slot.
	s.NoError(s.store.Create(ctx, makeReservation(s.T(), "res-2", "space-1", start, 60)))

	s.Require().NoError(s.store.Delete(ctx, "res-1"))
	s.ErrorIs(s.store.Delete(ctx, "res-1"), store.ErrNotFound)
}
