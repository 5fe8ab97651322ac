package domain

import (
	"slices"

	dErrors "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/domain-errors"
)

// RoleTag identifies one of the closed set of roles a user can hold in the
// building. Construct via ParseRoleTag at trust boundaries; direct casting
// bypasses validation.
type RoleTag string

const (
	RoleEstudiante             RoleTag = "estudiante"
	RoleInvestigadorContratado RoleTag = "investigador contratado"
	RoleDocenteInvestigador    RoleTag = "docente-investigador"
	RoleConserje               RoleTag = "conserje"
	RoleTecnicoLaboratorio     RoleTag = "técnico de laboratorio"
	RoleGerente                RoleTag = "gerente"
)

var validRoleTags = map[RoleTag]bool{
	RoleEstudiante:             true,
	RoleInvestigadorContratado: true,
	RoleDocenteInvestigador:    true,
	RoleConserje:               true,
	RoleTecnicoLaboratorio:     true,
	RoleGerente:                true,
}

// ParseRoleTag constructs a RoleTag from external input.
func ParseRoleTag(s string) (RoleTag, error) {
	tag := RoleTag(s)
	if !validRoleTags[tag] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown role: "+s)
	}
	return tag, nil
}

// Role is the validated set of role tags held by a user.
// Invariant: one tag, or exactly the gerente + docente-investigador pair.
type Role struct {
	tags []RoleTag
}

// NewRole validates and constructs a Role from tags.
func NewRole(tags ...RoleTag) (Role, error) {
	if len(tags) == 0 {
		return Role{}, dErrors.New(dErrors.CodeInvalidInput, "role requires at least one tag")
	}
	if len(tags) > 2 {
		return Role{}, dErrors.New(dErrors.CodeInvalidInput, "role allows at most two tags")
	}
	for _, tag := range tags {
		if !validRoleTags[tag] {
			return Role{}, dErrors.New(dErrors.CodeInvalidInput, "unknown role: "+string(tag))
		}
	}
	if len(tags) == 2 {
		if tags[0] == tags[1] {
			return Role{}, dErrors.New(dErrors.CodeInvalidInput, "duplicate role tag: "+string(tags[0]))
		}
		pair := map[RoleTag]bool{tags[0]: true, tags[1]: true}
		if !pair[RoleGerente] || !pair[RoleDocenteInvestigador] {
			return Role{}, dErrors.New(dErrors.CodeInvalidInput,
				"only gerente and docente-investigador may be combined")
		}
	}
	return Role{tags: slices.Clone(tags)}, nil
}

// ParseRole constructs a Role from raw tag names.
func ParseRole(names []string) (Role, error) {
	tags := make([]RoleTag, 0, len(names))
	for _, name := range names {
		tag, err := ParseRoleTag(name)
		if err != nil {
			return Role{}, err
		}
		tags = append(tags, tag)
	}
	return NewRole(tags...)
}

// Has reports whether the role includes the given tag.
func (r Role) Has(tag RoleTag) bool {
	return slices.Contains(r.tags, tag)
}

// Tags returns a copy of the role's tags.
func (r Role) Tags() []RoleTag {
	return slices.Clone(r.tags)
}

// Strings returns the tags as raw names, for serialization.
func (r Role) Strings() []string {
	out := make([]string, len(r.tags))
	for i, tag := range r.tags {
		out[i] = string(tag)
	}
	return out
}

// Equal reports structural equality ignoring tag order.
func (r Role) Equal(other Role) bool {
	if len(r.tags) != len(other.tags) {
		return false
	}
	for _, tag := range r.tags {
		if !other.Has(tag) {
			return false
		}
	}
	return true
}

// DepartmentEligible reports whether a user holding this role may belong to a
// department. Estudiante and conserje never may; gerente only when paired
// with docente-investigador.
func (r Role) DepartmentEligible() bool {
	for _, tag := range r.tags {
		switch tag {
		case RoleEstudiante, RoleConserje:
			return false
		case RoleGerente:
			if !r.Has(RoleDocenteInvestigador) {
				return false
			}
		}
	}
	return true
}
