package domain

import dErrors "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/domain-errors"

// ReservationCategory determines which reservation rules apply to a space.
// It mirrors SpaceType minus "otro": a space categorized for reservations
// always behaves as one of the five reservable kinds.
type ReservationCategory string

const (
	CategoryAula        ReservationCategory = "aula"
	CategorySeminario   ReservationCategory = "seminario"
	CategoryLaboratorio ReservationCategory = "laboratorio"
	CategoryDespacho    ReservationCategory = "despacho"
	CategorySalaComun   ReservationCategory = "sala común"
)

var validCategories = map[ReservationCategory]bool{
	CategoryAula:        true,
	CategorySeminario:   true,
	CategoryLaboratorio: true,
	CategoryDespacho:    true,
	CategorySalaComun:   true,
}

// ParseReservationCategory constructs a category from a raw name. Feeding a
// category's own String back in yields an equal value, so re-wrapping an
// existing instance is idempotent.
func ParseReservationCategory(s string) (ReservationCategory, error) {
	c := ReservationCategory(s)
	if !validCategories[c] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown reservation category: "+s)
	}
	return c, nil
}

func (c ReservationCategory) String() string {
	return string(c)
}
