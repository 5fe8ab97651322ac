package domain

import (
	"strings"

	dErrors "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/domain-errors"
)

// Space is a physical room in the building. Instances only exist after full
// validation; updates merge onto the current fields and re-run the same
// construction checks, never mutating in place.
type Space struct {
	ID                  string
	RealID              string
	Name                string
	Floor               int
	Capacity            int
	SpaceType           SpaceType
	IsReservable        bool
	ReservationCategory *ReservationCategory
	AssignmentTarget    AssignmentTarget
	MaxUsagePercentage  *float64
	CustomSchedule      *OpeningHours
}

// SpaceFields is the raw input to the space factory. Enum fields arrive as
// strings so callers at trust boundaries never hand-build value objects.
type SpaceFields struct {
	ID                  string
	RealID              string
	Name                string
	Floor               int
	Capacity            int
	SpaceType           string
	IsReservable        bool
	ReservationCategory *string
	AssignmentType      string
	AssignmentTargets   []string
	MaxUsagePercentage  *float64
	CustomSchedule      *OpeningHours
}

// categoryAssignmentRule maps each category to the assignment types it admits.
var categoryAssignmentRule = map[ReservationCategory][]AssignmentType{
	CategoryAula:        {AssignmentEINA},
	CategorySalaComun:   {AssignmentEINA},
	CategoryDespacho:    {AssignmentPerson, AssignmentDepartment},
	CategorySeminario:   {AssignmentDepartment, AssignmentEINA},
	CategoryLaboratorio: {AssignmentDepartment, AssignmentEINA},
}

// categorySpaceTypeRule maps each space type to the categories it admits.
var categorySpaceTypeRule = map[SpaceType][]ReservationCategory{
	SpaceTypeAula:        {CategoryAula, CategorySeminario, CategoryLaboratorio, CategorySalaComun},
	SpaceTypeSeminario:   {CategoryAula, CategorySeminario, CategoryLaboratorio, CategorySalaComun},
	SpaceTypeLaboratorio: {CategoryAula, CategoryLaboratorio},
	SpaceTypeDespacho:    {CategoryDespacho},
	SpaceTypeSalaComun:   {CategoryAula, CategorySeminario, CategorySalaComun},
}

// NewSpace validates the raw fields in rule order, stopping at the first
// failure, and returns a fully constructed aggregate.
func NewSpace(f SpaceFields) (Space, error) {
	if f.ID == "" {
		return Space{}, dErrors.New(dErrors.CodeInvalidInput, "space id is required")
	}
	if strings.TrimSpace(f.Name) == "" {
		return Space{}, dErrors.New(dErrors.CodeInvalidInput, "space name is required")
	}
	if f.Capacity <= 0 {
		return Space{}, dErrors.New(dErrors.CodeInvalidInput, "space capacity must be positive")
	}
	if f.RealID == "" {
		return Space{}, dErrors.New(dErrors.CodeInvalidInput, "space real id is required")
	}
	if f.MaxUsagePercentage != nil && (*f.MaxUsagePercentage < 0 || *f.MaxUsagePercentage > 100) {
		return Space{}, dErrors.New(dErrors.CodeInvalidInput,
			"max usage percentage must be between 0 and 100")
	}

	spaceType, err := ParseSpaceType(f.SpaceType)
	if err != nil {
		return Space{}, err
	}
	assignment, err := NewAssignmentTarget(AssignmentType(f.AssignmentType), f.AssignmentTargets)
	if err != nil {
		return Space{}, err
	}
	var category *ReservationCategory
	if f.ReservationCategory != nil {
		c, err := ParseReservationCategory(*f.ReservationCategory)
		if err != nil {
			return Space{}, err
		}
		category = &c
	}

	if f.IsReservable && category == nil {
		return Space{}, dErrors.New(dErrors.CodeInvalidInput,
			"a reservable space requires a reservation category")
	}
	if spaceType == SpaceTypeDespacho && f.IsReservable {
		return Space{}, dErrors.New(dErrors.CodeInvalidInput,
			"a despacho can never be reservable")
	}
	if category != nil {
		if !allowedAssignment(*category, assignment.Type) {
			return Space{}, dErrors.New(dErrors.CodeInvalidInput,
				"category "+category.String()+" is incompatible with assignment type "+string(assignment.Type))
		}
		if !allowedCategory(spaceType, *category) {
			return Space{}, dErrors.New(dErrors.CodeInvalidInput,
				"category "+category.String()+" is incompatible with space type "+spaceType.String())
		}
	}

	return Space{
		ID:                  f.ID,
		RealID:              f.RealID,
		Name:                strings.TrimSpace(f.Name),
		Floor:               f.Floor,
		Capacity:            f.Capacity,
		SpaceType:           spaceType,
		IsReservable:        f.IsReservable,
		ReservationCategory: category,
		AssignmentTarget:    assignment,
		MaxUsagePercentage:  f.MaxUsagePercentage,
		CustomSchedule:      f.CustomSchedule,
	}, nil
}

func allowedAssignment(category ReservationCategory, kind AssignmentType) bool {
	for _, allowed := range categoryAssignmentRule[category] {
		if allowed == kind {
			return true
		}
	}
	return false
}

func allowedCategory(spaceType SpaceType, category ReservationCategory) bool {
	allowed, ok := categorySpaceTypeRule[spaceType]
	if !ok {
		// "otro" spaces have no reservation profile; any category set on them
		// is rejected here rather than silently admitted.
		return false
	}
	for _, c := range allowed {
		if c == category {
			return true
		}
	}
	return false
}

// Fields exports the aggregate back into raw factory input. Updates merge a
// partial draft onto this and re-run NewSpace, so no merged state bypasses
// validation.
func (s Space) Fields() SpaceFields {
	f := SpaceFields{
		ID:                 s.ID,
		RealID:             s.RealID,
		Name:               s.Name,
		Floor:              s.Floor,
		Capacity:           s.Capacity,
		SpaceType:          s.SpaceType.String(),
		IsReservable:       s.IsReservable,
		AssignmentType:     string(s.AssignmentTarget.Type),
		AssignmentTargets:  s.AssignmentTarget.Targets,
		MaxUsagePercentage: s.MaxUsagePercentage,
		CustomSchedule:     s.CustomSchedule,
	}
	if s.ReservationCategory != nil {
		c := s.ReservationCategory.String()
		f.ReservationCategory = &c
	}
	return f
}

// SpaceUpdate is the typed draft of a space edit. Only the mutable fields are
// present; nil pointers leave the current value untouched, Clear flags reset
// a nullable field to inherit the building default.
type SpaceUpdate struct {
	IsReservable            *bool
	ReservationCategory     *string
	ClearCategory           bool
	AssignmentType          *string
	AssignmentTargets       []string
	MaxUsagePercentage      *float64
	ClearMaxUsagePercentage bool
	CustomSchedule          *OpeningHours
	ClearCustomSchedule     bool
}

// Apply merges the draft onto the space and re-runs full construction
// validation, returning the replacement aggregate.
func (s Space) Apply(u SpaceUpdate) (Space, error) {
	f := s.Fields()
	if u.IsReservable != nil {
		f.IsReservable = *u.IsReservable
	}
	if u.ClearCategory {
		f.ReservationCategory = nil
	} else if u.ReservationCategory != nil {
		f.ReservationCategory = u.ReservationCategory
	}
	if u.AssignmentType != nil {
		f.AssignmentType = *u.AssignmentType
		f.AssignmentTargets = u.AssignmentTargets
	}
	if u.ClearMaxUsagePercentage {
		f.MaxUsagePercentage = nil
	} else if u.MaxUsagePercentage != nil {
		f.MaxUsagePercentage = u.MaxUsagePercentage
	}
	if u.ClearCustomSchedule {
		f.CustomSchedule = nil
	} else if u.CustomSchedule != nil {
		f.CustomSchedule = u.CustomSchedule
	}
	return NewSpace(f)
}

// AssignedToDepartment reports whether the space is assigned to the given
// department.
func (s Space) AssignedToDepartment(d Department) bool {
	return s.AssignmentTarget.Type == AssignmentDepartment && s.AssignmentTarget.Contains(string(d))
}
