package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/domain"
)

func validUser() domain.UserFields {
	return domain.UserFields{
		ID:       "user-1",
		Name:     "Ana García",
		Email:    "ana@unizar.es",
		Password: "s3cret-password",
		Roles:    []string{"docente-investigador"},
	}
}

func TestNewUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		user, err := domain.NewUser(validUser())
		require.NoError(t, err)
		assert.Equal(t, "Ana García", user.Name)
		assert.True(t, user.Role.Has(domain.RoleDocenteInvestigador))
	})

	t.Run("short password", func(t *testing.T) {
		f := validUser()
		f.Password = "short"
		_, err := domain.NewUser(f)
		require.Error(t, err)
	})

	t.Run("department requires an eligible role", func(t *testing.T) {
		f := validUser()
		f.Department = strPtr("informática e ingeniería de sistemas")
		_, err := domain.NewUser(f)
		require.NoError(t, err)

		f.Roles = []string{"estudiante"}
		_, err = domain.NewUser(f)
		require.Error(t, err)

		f.Roles = []string{"conserje"}
		_, err = domain.NewUser(f)
		require.Error(t, err)
	})

	t.Run("unknown department", func(t *testing.T) {
		f := validUser()
		f.Department = strPtr("matemática aplicada")
		_, err := domain.NewUser(f)
		require.Error(t, err)
	})
}

func TestUserApply(t *testing.T) {
	user, err := domain.NewUser(validUser())
	require.NoError(t, err)

	t.Run("role change is revalidated against department", func(t *testing.T) {
		withDept, err := user.Apply(domain.UserUpdate{
			Department: strPtr("ingeniería electrónica y comunicaciones"),
		})
		require.NoError(t, err)
		require.NotNil(t, withDept.Department)

		// Downgrading to estudiante while a department is set must fail.
		_, err = withDept.Apply(domain.UserUpdate{Roles: []string{"estudiante"}})
		require.Error(t, err)

		// Clearing the department in the same draft makes it valid.
		downgraded, err := withDept.Apply(domain.UserUpdate{
			Roles:           []string{"estudiante"},
			ClearDepartment: true,
		})
		require.NoError(t, err)
		assert.Nil(t, downgraded.Department)
	})

	t.Run("original is untouched", func(t *testing.T) {
		_, err := user.Apply(domain.UserUpdate{Name: strPtr("Otro Nombre")})
		require.NoError(t, err)
		assert.Equal(t, "Ana García", user.Name)
	})
}
