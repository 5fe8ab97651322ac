package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/internal/domain"
	dErrors "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/domain-errors"
)

func TestNewRole(t *testing.T) {
	t.Run("single tag", func(t *testing.T) {
		role, err := domain.NewRole(domain.RoleEstudiante)
		require.NoError(t, err)
		assert.True(t, role.Has(domain.RoleEstudiante))
		assert.False(t, role.Has(domain.RoleGerente))
	})

	t.Run("gerente plus docente-investigador is the only pair", func(t *testing.T) {
		role, err := domain.NewRole(domain.RoleGerente, domain.RoleDocenteInvestigador)
		require.NoError(t, err)
		assert.True(t, role.Has(domain.RoleGerente))
		assert.True(t, role.Has(domain.RoleDocenteInvestigador))

		_, err = domain.NewRole(domain.RoleEstudiante, domain.RoleConserje)
		require.Error(t, err)
		assert.Equal(t, dErrors.CodeInvalidInput, dErrors.GetCode(err))
	})

	t.Run("pair order does not matter", func(t *testing.T) {
		a, err := domain.NewRole(domain.RoleGerente, domain.RoleDocenteInvestigador)
		require.NoError(t, err)
		b, err := domain.NewRole(domain.RoleDocenteInvestigador, domain.RoleGerente)
		require.NoError(t, err)
		assert.True(t, a.Equal(b))
	})

	t.Run("no tags", func(t *testing.T) {
		_, err := domain.NewRole()
		require.Error(t, err)
	})

	t.Run("duplicate tag", func(t *testing.T) {
		_, err := domain.NewRole(domain.RoleGerente, domain.RoleGerente)
		require.Error(t, err)
	})
}

func TestParseRole(t *testing.T) {
	role, err := domain.ParseRole([]string{"técnico de laboratorio"})
	require.NoError(t, err)
	assert.True(t, role.Has(domain.RoleTecnicoLaboratorio))

	_, err = domain.ParseRole([]string{"decano"})
	require.Error(t, err)
}

func TestDepartmentEligible(t *testing.T) {
	cases := []struct {
		name     string
		tags     []domain.RoleTag
		eligible bool
	}{
		{"estudiante never", []domain.RoleTag{domain.RoleEstudiante}, false},
		{"conserje never", []domain.RoleTag{domain.RoleConserje}, false},
		{"docente-investigador", []domain.RoleTag{domain.RoleDocenteInvestigador}, true},
		{"investigador contratado", []domain.RoleTag{domain.RoleInvestigadorContratado}, true},
		{"técnico de laboratorio", []domain.RoleTag{domain.RoleTecnicoLaboratorio}, true},
		{"gerente alone never", []domain.RoleTag{domain.RoleGerente}, false},
		{"gerente with docente", []domain.RoleTag{domain.RoleGerente, domain.RoleDocenteInvestigador}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			role, err := domain.NewRole(tc.tags...)
			require.NoError(t, err)
			assert.Equal(t, tc.eligible, role.DepartmentEligible())
		})
	}
}

func TestParseReservationCategoryIdempotent(t *testing.T) {
	for _, raw := range []string{"aula", "seminario", "laboratorio", "despacho", "sala común"} {
		category, err := domain.ParseReservationCategory(raw)
		require.NoError(t, err)
		again, err := domain.ParseReservationCategory(category.String())
		require.NoError(t, err)
		assert.Equal(t, category, again)
	}

	_, err := domain.ParseReservationCategory("otro")
	require.Error(t, err, "otro is a space type, not a reservation category")
}
