package eligibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/domain"
)

func mustUser(t *testing.T, roles []string, department *string) domain.User {
	t.Helper()
	user, err := domain.NewUser(domain.UserFields{
		ID:         "u-1",
		Name:       "Ana García",
		Email:      "ana@unizar.es",
		Password:   "secreta123",
		Roles:      roles,
		Department: department,
	})
	require.NoError(t, err)
	return user
}

func mustSpace(t *testing.T, f domain.SpaceFields) domain.Space {
	t.Helper()
	if f.ID == "" {
		f.ID = "s-1"
	}
	if f.RealID == "" {
		f.RealID = "CRE.1200.01.050"
	}
	if f.Name == "" {
		f.Name = "Sala de pruebas"
	}
	if f.Capacity == 0 {
		f.Capacity = 30
	}
	space, err := domain.NewSpace(f)
	require.NoError(t, err)
	return space
}

func defaultBuilding(t *testing.T) domain.BuildingConfig {
	t.Helper()
	hours, err := domain.NewOpeningHours(
		domain.DayHours{Open: "08:00", Close: "21:30"},
		domain.DayHours{Open: "09:00", Close: "14:00"},
		domain.DayHours{},
	)
	require.NoError(t, err)
	building, err := domain.NewBuildingConfig(100, hours)
	require.NoError(t, err)
	return building
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}

func TestEvaluate_SpaceReservability(t *testing.T) {
	user := mustUser(t, []string{"gerente"}, nil)
	space := mustSpace(t, domain.SpaceFields{
		SpaceType:      "despacho",
		IsReservable:   false,
		AssignmentType: "person",
		AssignmentTargets: []string{
			"u-9",
		},
	})

	rejection := Evaluate(user, space, defaultBuilding(t), nil, Request{
		Category:        domain.CategoryDespacho,
		MaxAttendees:    1,
		StartTime:       at(t, "2025-06-26T10:00:00Z"),
		DurationMinutes: 60,
	})
	require.NotNil(t, rejection)
	require.Equal(t, SpaceNotReservable, rejection.Code)
}

func TestEvaluate_StudentRules(t *testing.T) {
	student := mustUser(t, []string{"estudiante"}, nil)
	building := defaultBuilding(t)

	t.Run("student requesting aula is forbidden", func(t *testing.T) {
		aula := mustSpace(t, domain.SpaceFields{
			SpaceType:           "aula",
			IsReservable:        true,
			ReservationCategory: strPtr("aula"),
			AssignmentType:      "eina",
		})
		rejection := Evaluate(student, aula, building, nil, Request{
			Category:        domain.CategoryAula,
			MaxAttendees:    10,
			StartTime:       at(t, "2025-06-26T10:00:00Z"),
			DurationMinutes: 60,
		})
		require.NotNil(t, rejection)
		require.Equal(t, RoleCategoryForbidden, rejection.Code)
	})

	t.Run("student in sala común within capacity is admitted", func(t *testing.T) {
		sala := mustSpace(t, domain.SpaceFields{
			SpaceType:           "sala común",
			IsReservable:        true,
			ReservationCategory: strPtr("sala común"),
			AssignmentType:      "eina",
			Capacity:            15,
		})
		rejection := Evaluate(student, sala, building, nil, Request{
			Category:        domain.CategorySalaComun,
			MaxAttendees:    10,
			StartTime:       at(t, "2025-06-26T10:00:00Z"),
			DurationMinutes: 60,
		})
		require.Nil(t, rejection)
	})
}

func TestEvaluate_LabTechnicianDepartmentMembership(t *testing.T) {
	tech := mustUser(t, []string{"técnico de laboratorio"},
		strPtr("informática e ingeniería de sistemas"))
	building := defaultBuilding(t)

	lab := func(department string) domain.Space {
		return mustSpace(t, domain.SpaceFields{
			SpaceType:           "laboratorio",
			IsReservable:        true,
			ReservationCategory: strPtr("laboratorio"),
			AssignmentType:      "department",
			AssignmentTargets:   []string{department},
		})
	}
	req := Request{
		Category:        domain.CategoryLaboratorio,
		MaxAttendees:    5,
		StartTime:       at(t, "2025-06-26T10:00:00Z"),
		DurationMinutes: 60,
	}

	t.Run("own department lab is admitted", func(t *testing.T) {
		rejection := Evaluate(tech, lab("informática e ingeniería de sistemas"), building, nil, req)
		require.Nil(t, rejection)
	})

	t.Run("other department lab is refused", func(t *testing.T) {
		rejection := Evaluate(tech, lab("ingeniería electrónica y comunicaciones"), building, nil, req)
		require.NotNil(t, rejection)
		require.Equal(t, RoleDeptMismatch, rejection.Code)
	})

	t.Run("technician may never reserve aula", func(t *testing.T) {
		aula := mustSpace(t, domain.SpaceFields{
			SpaceType:           "aula",
			IsReservable:        true,
			ReservationCategory: strPtr("aula"),
			AssignmentType:      "eina",
		})
		aulaReq := req
		aulaReq.Category = domain.CategoryAula
		rejection := Evaluate(tech, aula, building, nil, aulaReq)
		require.NotNil(t, rejection)
		require.Equal(t, RoleCategoryForbidden, rejection.Code)
	})
}

func TestEvaluate_ResearcherLabMembership(t *testing.T) {
	building := defaultBuilding(t)
	lab := mustSpace(t, domain.SpaceFields{
		SpaceType:           "laboratorio",
		IsReservable:        true,
		ReservationCategory: strPtr("laboratorio"),
		AssignmentType:      "department",
		AssignmentTargets:   []string{"ingeniería electrónica y comunicaciones"},
	})
	req := Request{
		Category:        domain.CategoryLaboratorio,
		MaxAttendees:    4,
		StartTime:       at(t, "2025-06-26T10:00:00Z"),
		DurationMinutes: 30,
	}

	t.Run("docente-investigador outside the department is refused", func(t *testing.T) {
		docente := mustUser(t, []string{"docente-investigador"},
			strPtr("informática e ingeniería de sistemas"))
		rejection := Evaluate(docente, lab, building, nil, req)
		require.NotNil(t, rejection)
		require.Equal(t, RoleDeptMismatch, rejection.Code)
	})

	t.Run("investigador contratado without department is refused", func(t *testing.T) {
		investigador := mustUser(t, []string{"investigador contratado"}, nil)
		rejection := Evaluate(investigador, lab, building, nil, req)
		require.NotNil(t, rejection)
		require.Equal(t, RoleDeptMismatch, rejection.Code)
	})

	t.Run("member of the department is admitted", func(t *testing.T) {
		investigador := mustUser(t, []string{"investigador contratado"},
			strPtr("ingeniería electrónica y comunicaciones"))
		require.Nil(t, Evaluate(investigador, lab, building, nil, req))
	})
}

func TestEvaluate_Capacity(t *testing.T) {
	// Scenario D: capacity 40 at 80% allows 32 attendees.
	gerente := mustUser(t, []string{"gerente"}, nil)
	aula := mustSpace(t, domain.SpaceFields{
		SpaceType:           "aula",
		IsReservable:        true,
		ReservationCategory: strPtr("aula"),
		AssignmentType:      "eina",
		Capacity:            40,
		MaxUsagePercentage:  floatPtr(80),
	})
	req := Request{
		Category:        domain.CategoryAula,
		StartTime:       at(t, "2025-06-26T10:00:00Z"),
		DurationMinutes: 60,
	}

	req.MaxAttendees = 33
	rejection := Evaluate(gerente, aula, defaultBuilding(t), nil, req)
	require.NotNil(t, rejection)
	require.Equal(t, CapacityExceeded, rejection.Code)

	req.MaxAttendees = 32
	require.Nil(t, Evaluate(gerente, aula, defaultBuilding(t), nil, req))
}

func TestEvaluate_CapacityUsesBuildingDefault(t *testing.T) {
	gerente := mustUser(t, []string{"gerente"}, nil)
	aula := mustSpace(t, domain.SpaceFields{
		SpaceType:           "aula",
		IsReservable:        true,
		ReservationCategory: strPtr("aula"),
		AssignmentType:      "eina",
		Capacity:            40,
	})
	hours, err := domain.NewOpeningHours(domain.DayHours{Open: "08:00", Close: "20:00"}, domain.DayHours{}, domain.DayHours{})
	require.NoError(t, err)
	building, err := domain.NewBuildingConfig(50, hours)
	require.NoError(t, err)

	rejection := Evaluate(gerente, aula, building, nil, Request{
		Category:        domain.CategoryAula,
		MaxAttendees:    21,
		StartTime:       at(t, "2025-06-26T10:00:00Z"),
		DurationMinutes: 60,
	})
	require.NotNil(t, rejection)
	require.Equal(t, CapacityExceeded, rejection.Code)
}

func TestEvaluate_TimeConflict(t *testing.T) {
	// Scenario E: existing [10:00, 11:00) on the space.
	gerente := mustUser(t, []string{"gerente"}, nil)
	aula := mustSpace(t, domain.SpaceFields{
		SpaceType:           "aula",
		IsReservable:        true,
		ReservationCategory: strPtr("aula"),
		AssignmentType:      "eina",
		Capacity:            40,
	})
	existing, err := domain.NewReservation(domain.ReservationFields{
		ID:              "r-1",
		UserID:          "u-2",
		SpaceIDs:        []string{aula.ID},
		UsageType:       "docencia",
		MaxAttendees:    10,
		StartTime:       at(t, "2025-06-26T10:00:00Z"),
		DurationMinutes: 60,
		Category:        "aula",
	})
	require.NoError(t, err)

	req := Request{
		Category:        domain.CategoryAula,
		MaxAttendees:    10,
		StartTime:       at(t, "2025-06-26T10:30:00Z"),
		DurationMinutes: 60,
	}
	rejection := Evaluate(gerente, aula, defaultBuilding(t), []domain.Reservation{existing}, req)
	require.NotNil(t, rejection)
	require.Equal(t, TimeConflict, rejection.Code)

	// Touching the boundary is not a conflict.
	req.StartTime = at(t, "2025-06-26T11:00:00Z")
	require.Nil(t, Evaluate(gerente, aula, defaultBuilding(t), []domain.Reservation{existing}, req))
}

func TestRevalidate_SkipsTimeOverlap(t *testing.T) {
	// A reservation keeps its own slot: revalidation ignores the window and
	// only replays role, despacho, and capacity rules.
	student := mustUser(t, []string{"estudiante"}, nil)
	sala := mustSpace(t, domain.SpaceFields{
		SpaceType:           "sala común",
		IsReservable:        true,
		ReservationCategory: strPtr("sala común"),
		AssignmentType:      "eina",
		Capacity:            15,
	})
	res, err := domain.NewReservation(domain.ReservationFields{
		ID:              "r-1",
		UserID:          student.ID,
		SpaceIDs:        []string{sala.ID},
		UsageType:       "otro",
		MaxAttendees:    10,
		StartTime:       at(t, "2025-06-26T10:00:00Z"),
		DurationMinutes: 60,
		Category:        "sala común",
	})
	require.NoError(t, err)

	require.Nil(t, Revalidate(student, sala, defaultBuilding(t), res))

	t.Run("capacity tightening breaks the reservation", func(t *testing.T) {
		tightened, err := sala.Apply(domain.SpaceUpdate{MaxUsagePercentage: floatPtr(50)})
		require.NoError(t, err)
		rejection := Revalidate(student, tightened, defaultBuilding(t), res)
		require.NotNil(t, rejection)
		require.Equal(t, CapacityExceeded, rejection.Code)
	})

	t.Run("role change breaks a category the new role forbids", func(t *testing.T) {
		aulaRes := res
		aulaRes.Category = domain.CategoryAula
		rejection := Revalidate(student, sala, defaultBuilding(t), aulaRes)
		require.NotNil(t, rejection)
		require.Equal(t, RoleCategoryForbidden, rejection.Code)
	})
}
