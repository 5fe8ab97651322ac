package reservation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/domain"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/eligibility"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/reservation"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/reservation/store"
	dErrors "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/domain-errors"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/requestcontext"
)

// stubChecker admits everything unless a rejection is set.
type stubChecker struct {
	rejection *eligibility.Rejection
	lastReq   eligibility.CanReserveRequest
}

func (c *stubChecker) CanReserve(ctx context.Context, req eligibility.CanReserveRequest) (*eligibility.Rejection, error) {
	c.lastReq = req
	return c.rejection, nil
}

func asUser(userID string, roles ...string) context.Context {
	ctx := requestcontext.WithUserID(context.Background(), userID)
	return requestcontext.WithUserRoles(ctx, roles)
}

func validCreateInput(userID string) reservation.CreateInput {
	return reservation.CreateInput{
		UserID:          userID,
		SpaceIDs:        []string{"space-1"},
		UsageType:       "docencia",
		MaxAttendees:    20,
		StartTime:       time.Date(2025, 5, 12, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 90,
		Category:        "aula",
	}
}

func TestCreateAdmitted(t *testing.T) {
	checker := &stubChecker{}
	svc := reservation.New(store.NewInMemory(), checker)
	ctx := asUser("user-1")

	created, err := svc.Create(ctx, validCreateInput("user-1"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.StatusValid, created.Status)
	assert.Equal(t, "user-1", checker.lastReq.UserID)
	assert.Equal(t, []string{"space-1"}, checker.lastReq.SpaceIDs)
}

func TestCreateRefusedByAdmission(t *testing.T) {
	checker := &stubChecker{rejection: &eligibility.Rejection{
		Code:    eligibility.CapacityExceeded,
		Message: "requested attendees exceed the usable capacity",
	}}
	st := store.NewInMemory()
	svc := reservation.New(st, checker)
	ctx := asUser("user-1")

	_, err := svc.Create(ctx, validCreateInput("user-1"))
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeForbidden, dErrors.GetCode(err))
	assert.Contains(t, dErrors.Message(err), "CAPACITY_EXCEEDED")

	// Nothing persisted.
	all, err := st.FindByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateSurfacesStoreConflict(t *testing.T) {
	checker := &stubChecker{}
	st := store.NewInMemory()
	svc := reservation.New(st, checker)
	ctx := asUser("user-1")

	_, err := svc.Create(ctx, validCreateInput("user-1"))
	require.NoError(t, err)

	// Same window, same space: the store closes the race.
	_, err = svc.Create(ctx, validCreateInput("user-1"))
	assert.ErrorIs(t, err, store.ErrOverlap)
}

func TestGetEnforcesOwnership(t *testing.T) {
	checker := &stubChecker{}
	svc := reservation.New(store.NewInMemory(), checker)

	created, err := svc.Create(asUser("user-1"), validCreateInput("user-1"))
	require.NoError(t, err)

	_, err = svc.Get(asUser("user-1"), created.ID)
	assert.NoError(t, err)

	_, err = svc.Get(asUser("user-2"), created.ID)
	assert.Equal(t, dErrors.CodeForbidden, dErrors.GetCode(err))

	_, err = svc.Get(asUser("user-2", "gerente"), created.ID)
	assert.NoError(t, err)
}

func TestListByUserRestrictsNonGerente(t *testing.T) {
	checker := &stubChecker{}
	svc := reservation.New(store.NewInMemory(), checker)

	_, err := svc.ListByUser(asUser("user-2"), "user-1")
	assert.Equal(t, dErrors.CodeForbidden, dErrors.GetCode(err))

	_, err = svc.ListByUser(asUser("user-1"), "user-1")
	assert.NoError(t, err)

	_, err = svc.ListByUser(asUser("user-2", "gerente"), "user-1")
	assert.NoError(t, err)
}

func TestCancel(t *testing.T) {
	checker := &stubChecker{}
	st := store.NewInMemory()
	svc := reservation.New(st, checker)

	created, err := svc.Create(asUser("user-1"), validCreateInput("user-1"))
	require.NoError(t, err)

	err = svc.Cancel(asUser("user-2"), created.ID)
	assert.Equal(t, dErrors.CodeForbidden, dErrors.GetCode(err))

	require.NoError(t, svc.Cancel(asUser("user-1"), created.ID))
	assert.ErrorIs(t, svc.Cancel(asUser("user-1"), created.ID), store.ErrNotFound)
}

func TestCancelByGerente(t *testing.T) {
	checker := &stubChecker{}
	svc := reservation.New(store.NewInMemory(), checker)

	created, err := svc.Create(asUser("user-1"), validCreateInput("user-1"))
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(asUser("gerente-1", "gerente"), created.ID))
}
