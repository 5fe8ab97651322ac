package domain

import (
	"slices"

	dErrors "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/domain-errors"
	platformstrings "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/platform/strings"
)

// AssignmentType discriminates who a space is assigned to.
type AssignmentType string

const (
	// AssignmentEINA marks a space managed by the school at large.
	AssignmentEINA AssignmentType = "eina"
	// AssignmentDepartment marks a space assigned to a single department.
	AssignmentDepartment AssignmentType = "department"
	// AssignmentPerson marks a space assigned to one or more users.
	AssignmentPerson AssignmentType = "person"
)

// AssignmentTarget is the tagged union of assignment variants. Targets holds
// the department name for department assignments and user IDs for person
// assignments; it is empty for EINA assignments.
type AssignmentTarget struct {
	Type    AssignmentType
	Targets []string
}

// NewAssignmentTarget validates the variant-specific rules at construction.
func NewAssignmentTarget(kind AssignmentType, targets []string) (AssignmentTarget, error) {
	targets = platformstrings.DedupeAndTrim(targets)
	switch kind {
	case AssignmentEINA:
		if len(targets) != 0 {
			return AssignmentTarget{}, dErrors.New(dErrors.CodeInvalidInput,
				"eina assignment takes no targets")
		}
	case AssignmentDepartment:
		if len(targets) != 1 {
			return AssignmentTarget{}, dErrors.New(dErrors.CodeInvalidInput,
				"department assignment requires exactly one department")
		}
		if _, err := ParseDepartment(targets[0]); err != nil {
			return AssignmentTarget{}, err
		}
	case AssignmentPerson:
		if len(targets) == 0 {
			return AssignmentTarget{}, dErrors.New(dErrors.CodeInvalidInput,
				"person assignment requires at least one user id")
		}
	default:
		return AssignmentTarget{}, dErrors.New(dErrors.CodeInvalidInput,
			"unknown assignment type: "+string(kind))
	}
	return AssignmentTarget{Type: kind, Targets: targets}, nil
}

// Contains reports whether the target list includes the given value.
func (a AssignmentTarget) Contains(value string) bool {
	return slices.Contains(a.Targets, value)
}

// Equal reports structural equality, target order included.
func (a AssignmentTarget) Equal(other AssignmentTarget) bool {
	return a.Type == other.Type && slices.Equal(a.Targets, other.Targets)
}
