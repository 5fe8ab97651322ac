package domain

import dErrors "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/domain-errors"

// Department is one of the two departments hosted in the building.
type Department string

const (
	DepartmentInformatica Department = "informática e ingeniería de sistemas"
	DepartmentElectronica Department = "ingeniería electrónica y comunicaciones"
)

var validDepartments = map[Department]bool{
	DepartmentInformatica: true,
	DepartmentElectronica: true,
}

// ParseDepartment constructs a Department from external input.
func ParseDepartment(s string) (Department, error) {
	d := Department(s)
	if !validDepartments[d] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown department: "+s)
	}
	return d, nil
}

func (d Department) String() string {
	return string(d)
}
