package domain

import dErrors "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/domain-errors"

// SpaceType classifies the physical kind of a space.
type SpaceType string

const (
	SpaceTypeAula        SpaceType = "aula"
	SpaceTypeSeminario   SpaceType = "seminario"
	SpaceTypeLaboratorio SpaceType = "laboratorio"
	SpaceTypeDespacho    SpaceType = "despacho"
	SpaceTypeSalaComun   SpaceType = "sala común"
	SpaceTypeOtro        SpaceType = "otro"
)

var validSpaceTypes = map[SpaceType]bool{
	SpaceTypeAula:        true,
	SpaceTypeSeminario:   true,
	SpaceTypeLaboratorio: true,
	SpaceTypeDespacho:    true,
	SpaceTypeSalaComun:   true,
	SpaceTypeOtro:        true,
}

// ParseSpaceType constructs a SpaceType from external input.
func ParseSpaceType(s string) (SpaceType, error) {
	t := SpaceType(s)
	if !validSpaceTypes[t] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown space type: "+s)
	}
	return t, nil
}

func (t SpaceType) String() string {
	return string(t)
}
