package domain

import (
	"time"

	dErrors "github.com/UNIZAR-30249-2025-GRUPO3/Back-end-sub000/pkg/domain-errors"
)

// DayHours holds the opening window for a day group. Empty strings mean the
// building is closed for that group.
type DayHours struct {
	Open  string
	Close string
}

// IsClosed reports whether the day group has no opening window.
func (d DayHours) IsClosed() bool {
	return d.Open == "" && d.Close == ""
}

func (d DayHours) validate() error {
	if d.IsClosed() {
		return nil
	}
	open, err := time.Parse("15:04", d.Open)
	if err != nil {
		return dErrors.New(dErrors.CodeInvalidInput, "opening time must be HH:MM: "+d.Open)
	}
	close, err := time.Parse("15:04", d.Close)
	if err != nil {
		return dErrors.New(dErrors.CodeInvalidInput, "closing time must be HH:MM: "+d.Close)
	}
	if !open.Before(close) {
		return dErrors.New(dErrors.CodeInvalidInput, "opening time must precede closing time")
	}
	return nil
}

// OpeningHours groups the building's opening windows by day class.
type OpeningHours struct {
	Weekdays DayHours
	Saturday DayHours
	Sunday   DayHours
}

// NewOpeningHours validates each day group's window.
func NewOpeningHours(weekdays, saturday, sunday DayHours) (OpeningHours, error) {
	hours := OpeningHours{Weekdays: weekdays, Saturday: saturday, Sunday: sunday}
	for _, day := range []DayHours{weekdays, saturday, sunday} {
		if err := day.validate(); err != nil {
			return OpeningHours{}, err
		}
	}
	return hours, nil
}

// BuildingConfig holds the building-wide defaults spaces inherit when their
// own overrides are unset. There is exactly one per building; administrative
// updates replace the whole value.
type BuildingConfig struct {
	MaxOccupancyPercentage float64
	OpeningHours           OpeningHours
}

// NewBuildingConfig validates the occupancy default and opening hours.
func NewBuildingConfig(maxOccupancy float64, hours OpeningHours) (BuildingConfig, error) {
	if maxOccupancy < 0 || maxOccupancy > 100 {
		return BuildingConfig{}, dErrors.New(dErrors.CodeInvalidInput,
			"max occupancy percentage must be between 0 and 100")
	}
	return BuildingConfig{MaxOccupancyPercentage: maxOccupancy, OpeningHours: hours}, nil
}

// EffectiveUsagePercentage resolves the usage limit for a space: its own
// override when set, the building default otherwise. Pure; mutates neither
// input.
func EffectiveUsagePercentage(space Space, building BuildingConfig) float64 {
	if space.MaxUsagePercentage != nil {
		return *space.MaxUsagePercentage
	}
	return building.MaxOccupancyPercentage
}

// EffectiveSchedule resolves the opening hours for a space the same way.
func EffectiveSchedule(space Space, building BuildingConfig) OpeningHours {
	if space.CustomSchedule != nil {
		return *space.CustomSchedule
	}
	return building.OpeningHours
}
