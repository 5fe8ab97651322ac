package domain

import (
	"strings"

	dErrors "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/domain-errors"
)

// User is a person who can hold reservations. Password is opaque at this
// level: the factory only enforces a minimum length, hashing is the auth
// service's concern.
type User struct {
	ID         string
	Name       string
	Email      string
	Password   string
	Role       Role
	Department *Department
}

// UserFields is the raw input to the user factory.
type UserFields struct {
	ID         string
	Name       string
	Email      string
	Password   string
	Roles      []string
	Department *string
}

// NewUser validates the raw fields and constructs the aggregate. Updates go
// through the same path: merge the draft, rebuild, replace.
func NewUser(f UserFields) (User, error) {
	if f.ID == "" {
		return User{}, dErrors.New(dErrors.CodeInvalidInput, "user id is required")
	}
	if strings.TrimSpace(f.Name) == "" {
		return User{}, dErrors.New(dErrors.CodeInvalidInput, "user name is required")
	}
	if strings.TrimSpace(f.Email) == "" {
		return User{}, dErrors.New(dErrors.CodeInvalidInput, "user email is required")
	}
	if len(f.Password) < 8 {
		return User{}, dErrors.New(dErrors.CodeInvalidInput, "password must be at least 8 characters")
	}
	role, err := ParseRole(f.Roles)
	if err != nil {
		return User{}, err
	}
	var department *Department
	if f.Department != nil {
		d, err := ParseDepartment(*f.Department)
		if err != nil {
			return User{}, err
		}
		if !role.DepartmentEligible() {
			return User{}, dErrors.New(dErrors.CodeInvalidInput,
				"role does not admit a department")
		}
		department = &d
	}
	return User{
		ID:         f.ID,
		Name:       strings.TrimSpace(f.Name),
		Email:      strings.TrimSpace(f.Email),
		Password:   f.Password,
		Role:       role,
		Department: department,
	}, nil
}

// Fields exports the aggregate back into raw factory input for draft merging.
func (u User) Fields() UserFields {
	f := UserFields{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Password: u.Password,
		Roles:    u.Role.Strings(),
	}
	if u.Department != nil {
		d := u.Department.String()
		f.Department = &d
	}
	return f
}

// UserUpdate is the typed draft of a user edit.
type UserUpdate struct {
	Name            *string
	Email           *string
	Password        *string
	Roles           []string
	Department      *string
	ClearDepartment bool
}

// Apply merges the draft onto the user and re-runs full construction
// validation, returning the replacement aggregate.
func (u User) Apply(update UserUpdate) (User, error) {
	f := u.Fields()
	if update.Name != nil {
		f.Name = *update.Name
	}
	if update.Email != nil {
		f.Email = *update.Email
	}
	if update.Password != nil {
		f.Password = *update.Password
	}
	if update.Roles != nil {
		f.Roles = update.Roles
	}
	if update.ClearDepartment {
		f.Department = nil
	} else if update.Department != nil {
		f.Department = update.Department
	}
	return NewUser(f)
}
