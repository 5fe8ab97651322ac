package eligibility

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/domain"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/eligibility/mocks"
	dErrors "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/domain-errors"
	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	users        *mocks.MockUserReader
	spaces       *mocks.MockSpaceReader
	reservations *mocks.MockReservationReader
	building     *mocks.MockBuildingProvider
	service      *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.users = mocks.NewMockUserReader(s.ctrl)
	s.spaces = mocks.NewMockSpaceReader(s.ctrl)
	s.reservations = mocks.NewMockReservationReader(s.ctrl)
	s.building = mocks.NewMockBuildingProvider(s.ctrl)

	var err error
	s.service, err = NewService(s.users, s.spaces, s.reservations, s.building)
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestNewService() {
	_, err := NewService(nil, s.spaces, s.reservations, s.building)
	s.Error(err)
}

func (s *ServiceSuite) testStudent() domain.User {
	user, err := domain.NewUser(domain.UserFields{
		ID:       "u-1",
		Name:     "Ana García",
		Email:    "ana@unizar.es",
		Password: "secreta123",
		Roles:    []string{"estudiante"},
	})
	s.Require().NoError(err)
	return user
}

func (s *ServiceSuite) testSala() domain.Space {
	category := "sala común"
	space, err := domain.NewSpace(domain.SpaceFields{
		ID:                  "s-1",
		RealID:              "CRE.1200.00.010",
		Name:                "Sala común planta baja",
		Capacity:            15,
		SpaceType:           "sala común",
		IsReservable:        true,
		ReservationCategory: &category,
		AssignmentType:      "eina",
	})
	s.Require().NoError(err)
	return space
}

func (s *ServiceSuite) testBuilding() domain.BuildingConfig {
	hours, err := domain.NewOpeningHours(
		domain.DayHours{Open: "08:00", Close: "21:30"},
		domain.DayHours{}, domain.DayHours{},
	)
	s.Require().NoError(err)
	building, err := domain.NewBuildingConfig(100, hours)
	s.Require().NoError(err)
	return building
}

func (s *ServiceSuite) TestCanReserve() {
	ctx := context.Background()
	start := time.Date(2025, 6, 26, 10, 0, 0, 0, time.UTC)
	req := CanReserveRequest{
		UserID:          "u-1",
		SpaceIDs:        []string{"s-1"},
		Category:        "sala común",
		MaxAttendees:    10,
		StartTime:       start,
		DurationMinutes: 60,
	}

	s.Run("admits a valid request", func() {
		s.users.EXPECT().FindByID(gomock.Any(), "u-1").Return(s.testStudent(), nil)
		s.spaces.EXPECT().FindByID(gomock.Any(), "s-1").Return(s.testSala(), nil)
		s.building.EXPECT().GetDefaults(gomock.Any()).Return(s.testBuilding(), nil)
		s.reservations.EXPECT().FindOverlapping(gomock.Any(), []string{"s-1"}, start, 60).Return(nil, nil)

		rejection, err := s.service.CanReserve(ctx, req)
		s.NoError(err)
		s.Nil(rejection)
	})

	s.Run("returns the rejection as a value", func() {
		forbidden := req
		forbidden.Category = "aula"
		aula := s.testSala()
		category := domain.CategoryAula
		aula.SpaceType = domain.SpaceTypeAula
		aula.ReservationCategory = &category

		s.users.EXPECT().FindByID(gomock.Any(), "u-1").Return(s.testStudent(), nil)
		s.spaces.EXPECT().FindByID(gomock.Any(), "s-1").Return(aula, nil)
		s.building.EXPECT().GetDefaults(gomock.Any()).Return(s.testBuilding(), nil)
		s.reservations.EXPECT().FindOverlapping(gomock.Any(), []string{"s-1"}, start, 60).Return(nil, nil)

		rejection, err := s.service.CanReserve(ctx, forbidden)
		s.NoError(err)
		s.Require().NotNil(rejection)
		s.Equal(RoleCategoryForbidden, rejection.Code)
	})

	s.Run("unknown category is an input error", func() {
		bad := req
		bad.Category = "gimnasio"
		_, err := s.service.CanReserve(ctx, bad)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("store failure travels on the error path", func() {
		s.users.EXPECT().FindByID(gomock.Any(), "u-1").Return(domain.User{}, dErrors.New(dErrors.CodeNotFound, "user not found")).AnyTimes()
		s.spaces.EXPECT().FindByID(gomock.Any(), "s-1").Return(s.testSala(), nil).AnyTimes()
		s.building.EXPECT().GetDefaults(gomock.Any()).Return(s.testBuilding(), nil).AnyTimes()
		s.reservations.EXPECT().FindOverlapping(gomock.Any(), []string{"s-1"}, start, 60).Return(nil, nil).AnyTimes()

		rejection, err := s.service.CanReserve(ctx, req)
		s.Nil(rejection)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestRevalidateForUser() {
	now := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)
	student := s.testStudent()
	sala := s.testSala()

	res, err := domain.NewReservation(domain.ReservationFields{
		ID:              "r-1",
		UserID:          student.ID,
		SpaceIDs:        []string{sala.ID},
		UsageType:       "otro",
		MaxAttendees:    10,
		StartTime:       time.Date(2025, 7, 2, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Category:        "aula",
	})
	s.Require().NoError(err)

	s.Run("flips a reservation the rules no longer admit", func() {
		s.reservations.EXPECT().FindByUser(gomock.Any(), student.ID).Return([]domain.Reservation{res}, nil)
		s.building.EXPECT().GetDefaults(gomock.Any()).Return(s.testBuilding(), nil)
		s.users.EXPECT().FindByID(gomock.Any(), student.ID).Return(student, nil)
		s.spaces.EXPECT().FindByID(gomock.Any(), sala.ID).Return(sala, nil)
		s.reservations.EXPECT().UpdateStatus(gomock.Any(), "r-1", domain.StatusPotentiallyInvalid, &now).Return(nil)

		s.NoError(s.service.RevalidateForUser(ctx, student.ID))
	})

	s.Run("skips reservations already flagged", func() {
		flagged := res.MarkPotentiallyInvalid(now)
		s.reservations.EXPECT().FindByUser(gomock.Any(), student.ID).Return([]domain.Reservation{flagged}, nil)
		s.building.EXPECT().GetDefaults(gomock.Any()).Return(s.testBuilding(), nil)

		s.NoError(s.service.RevalidateForUser(ctx, student.ID))
	})

	s.Run("leaves healthy reservations untouched", func() {
		healthy := res
		healthy.Category = domain.CategorySalaComun
		s.reservations.EXPECT().FindByUser(gomock.Any(), student.ID).Return([]domain.Reservation{healthy}, nil)
		s.building.EXPECT().GetDefaults(gomock.Any()).Return(s.testBuilding(), nil)
		s.users.EXPECT().FindByID(gomock.Any(), student.ID).Return(student, nil)
		s.spaces.EXPECT().FindByID(gomock.Any(), sala.ID).Return(sala, nil)

		s.NoError(s.service.RevalidateForUser(ctx, student.ID))
	})
}

func (s *ServiceSuite) TestRevalidateForSpace() {
	now := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)
	student := s.testStudent()
	sala := s.testSala()

	res, err := domain.NewReservation(domain.ReservationFields{
		ID:              "r-2",
		UserID:          student.ID,
		SpaceIDs:        []string{sala.ID},
		UsageType:       "otro",
		MaxAttendees:    14,
		StartTime:       time.Date(2025, 7, 2, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Category:        "sala común",
	})
	s.Require().NoError(err)

	// The space's usage cap was tightened after the reservation was admitted.
	half := 50.0
	tightened, err := sala.Apply(domain.SpaceUpdate{MaxUsagePercentage: &half})
	s.Require().NoError(err)

	s.reservations.EXPECT().FindBySpace(gomock.Any(), sala.ID).Return([]domain.Reservation{res}, nil)
	s.building.EXPECT().GetDefaults(gomock.Any()).Return(s.testBuilding(), nil)
	s.users.EXPECT().FindByID(gomock.Any(), student.ID).Return(student, nil)
	s.spaces.EXPECT().FindByID(gomock.Any(), sala.ID).Return(tightened, nil)
	s.reservations.EXPECT().UpdateStatus(gomock.Any(), "r-2", domain.StatusPotentiallyInvalid, &now).Return(nil)

	s.NoError(s.service.RevalidateForSpace(ctx, sala.ID))
}
