// Package eligibility holds the cross-aggregate rule engine that decides
// whether a user may hold a reservation of a given category, size, and time
// window in a given space. The rules live in pure functions - no I/O, no side
// effects - so they stay centralized and testable; the Service wires them to
// stores.
package eligibility

import (
	"math"
	"time"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/domain"
)

// RejectionCode enumerates the machine-readable reasons a request is refused.
type RejectionCode string

const (
	SpaceNotReservable    RejectionCode = "SPACE_NOT_RESERVABLE"
	RoleCategoryForbidden RejectionCode = "ROLE_CATEGORY_FORBIDDEN"
	RoleDeptMismatch      RejectionCode = "ROLE_DEPARTMENT_MISMATCH"
	DespachoNotReservable RejectionCode = "DESPACHO_NOT_RESERVABLE"
	CapacityExceeded      RejectionCode = "CAPACITY_EXCEEDED"
	TimeConflict          RejectionCode = "TIME_CONFLICT"
)

// Rejection is a refused admission. It is a normal business outcome, not an
// error: infrastructure failures travel on the error path instead.
type Rejection struct {
	Code    RejectionCode
	Message string
}

func reject(code RejectionCode, message string) *Rejection {
	return &Rejection{Code: code, Message: message}
}

// Request carries the reservation parameters under evaluation.
type Request struct {
	Category        domain.ReservationCategory
	MaxAttendees    int
	StartTime       time.Time
	DurationMinutes int
}

// EndTime derives the exclusive end of the requested window.
func (r Request) EndTime() time.Time {
	return r.StartTime.Add(time.Duration(r.DurationMinutes) * time.Minute)
}

// Evaluate runs the full admission rule chain for a new reservation request
// against one space. The chain short-circuits on the first failure; order
// matters because later rules assume earlier ones (capacity arithmetic needs
// the resolved usage percentage, overlap assumes an admitted category).
// Existing must hold every reservation already bound to the space.
// A nil result admits the request.
func Evaluate(user domain.User, space domain.Space, building domain.BuildingConfig, existing []domain.Reservation, req Request) *Rejection {
	if !space.IsReservable {
		return reject(SpaceNotReservable, "space "+space.ID+" is not reservable")
	}
	if r := checkRoleCategory(user, space, req.Category); r != nil {
		return r
	}
	if r := checkDespacho(space, req.Category); r != nil {
		return r
	}
	if r := checkCapacity(space, building, req.MaxAttendees); r != nil {
		return r
	}
	return checkOverlap(existing, req.StartTime, req.EndTime())
}

// Revalidate re-runs the role, despacho, and capacity rules for a reservation
// that already holds its slot. Time overlap is skipped: user and space edits
// cannot move a window, and the reservation's own slot would always collide
// with itself.
func Revalidate(user domain.User, space domain.Space, building domain.BuildingConfig, res domain.Reservation) *Rejection {
	if r := checkRoleCategory(user, space, res.Category); r != nil {
		return r
	}
	if r := checkDespacho(space, res.Category); r != nil {
		return r
	}
	return checkCapacity(space, building, res.MaxAttendees)
}

// checkRoleCategory applies the role-specific authorization matrix. Every tag
// the user holds must admit the requested category; the switch is exhaustive
// over the closed RoleTag set so a new role forces a review here.
func checkRoleCategory(user domain.User, space domain.Space, category domain.ReservationCategory) *Rejection {
	for _, tag := range user.Role.Tags() {
		switch tag {
		case domain.RoleEstudiante:
			if category != domain.CategorySalaComun {
				return reject(RoleCategoryForbidden,
					"estudiante may only reserve sala común spaces")
			}
		case domain.RoleTecnicoLaboratorio:
			if category == domain.CategoryAula {
				return reject(RoleCategoryForbidden,
					"técnico de laboratorio may not reserve aula spaces")
			}
			if category == domain.CategoryLaboratorio {
				if r := checkDepartmentMembership(user, space); r != nil {
					return r
				}
			}
		case domain.RoleInvestigadorContratado, domain.RoleDocenteInvestigador:
			if category == domain.CategoryLaboratorio {
				if r := checkDepartmentMembership(user, space); r != nil {
					return r
				}
			}
		case domain.RoleConserje, domain.RoleGerente:
			// No category-specific restriction; the general rules below
			// still apply.
		}
	}
	return nil
}

// checkDepartmentMembership enforces that laboratorio requests come from a
// member of the department the space is assigned to.
func checkDepartmentMembership(user domain.User, space domain.Space) *Rejection {
	if user.Department == nil || !space.AssignedToDepartment(*user.Department) {
		return reject(RoleDeptMismatch,
			"laboratorio reservations require membership of the space's department")
	}
	return nil
}

// checkDespacho refuses despacho-on-despacho requests. Space construction
// already forbids reservable despachos; this guards the engine independently.
func checkDespacho(space domain.Space, category domain.ReservationCategory) *Rejection {
	if category == domain.CategoryDespacho &&
		space.ReservationCategory != nil && *space.ReservationCategory == domain.CategoryDespacho {
		return reject(DespachoNotReservable, "despachos cannot be reserved")
	}
	return nil
}

// checkCapacity compares the attendee count against the effective usage limit.
func checkCapacity(space domain.Space, building domain.BuildingConfig, maxAttendees int) *Rejection {
	percentage := domain.EffectiveUsagePercentage(space, building)
	allowed := int(math.Floor(float64(space.Capacity) * percentage / 100))
	if maxAttendees > allowed {
		return reject(CapacityExceeded,
			"requested attendees exceed the space's effective capacity")
	}
	return nil
}

// checkOverlap refuses the request when any existing reservation shares an
// instant with the half-open window [start, end).
func checkOverlap(existing []domain.Reservation, start, end time.Time) *Rejection {
	for _, res := range existing {
		if res.Overlaps(start, end) {
			return reject(TimeConflict,
				"the requested window conflicts with reservation "+res.ID)
		}
	}
	return nil
}
