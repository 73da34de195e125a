package kernel

import (
	"errors"
	"fmt"
	"math"

	"foodorders/internal/pkg/errs"
	"foodorders/internal/pkg/guard"
)

const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0

	// ArrivalTolerance is the per-axis distance, in degrees, under which a
	// moving point is considered to have reached its target.
	ArrivalTolerance = 0.0001
)

// ErrLocationIsNotConstructed is returned when validating a zero-value Location.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation")

// Location is a geographic point in decimal degrees. It is an immutable value
// object; the zero value is invalid.
//
// Example:
//
//	restaurant, err := kernel.NewLocation(19.4326, -99.1332)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(restaurant) // Location(19.432600,-99.133200)
type Location struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewLocation validates latitude in [-90, 90] and longitude in [-180, 180].
// Both coordinates are checked and all violations are returned joined.
func NewLocation(lat, lng float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLat(lat), loc.setLng(lng)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// MustNewLocation is NewLocation for compile-time constants. It panics on
// invalid input.
func MustNewLocation(lat, lng float64) Location {
	loc, err := NewLocation(lat, lng)
	if err != nil {
		panic(err)
	}
	return loc
}

func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) Latitude() float64 {
	return l.lat
}

func (l Location) Longitude() float64 {
	return l.lng
}

func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f)", l.lat, l.lng)
}

// IsEqual compares two locations. Both must be constructed.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.lat == other.lat && l.lng == other.lng, nil
}

// Distance returns the straight-line distance in degrees. It is a planar
// approximation, good enough for the short hops of a delivery simulation.
func (l Location) Distance(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	return math.Hypot(l.lat-other.lat, l.lng-other.lng), nil
}

// MoveTowards returns the point that covers fraction of the remaining way to
// target. When the result lies within ArrivalTolerance of target on both
// axes, target itself is returned.
func (l Location) MoveTowards(target Location, fraction float64) (Location, error) {
	if err := errors.Join(l.Validate(), target.Validate()); err != nil {
		return Location{}, err
	}
	if fraction <= 0 || fraction > 1 {
		return Location{}, errs.NewValueIsOutOfRangeError("fraction", fraction, 0, 1)
	}

	lat := l.lat + (target.lat-l.lat)*fraction
	lng := l.lng + (target.lng-l.lng)*fraction

	if math.Abs(lat-target.lat) < ArrivalTolerance && math.Abs(lng-target.lng) < ArrivalTolerance {
		return target, nil
	}

	return NewLocation(lat, lng)
}

func (l *Location) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", lat, LatitudeMin, LatitudeMax)
	}

	l.lat = lat
	return nil
}

func (l *Location) setLng(lng float64) error {
	if math.IsNaN(lng) || lng < LongitudeMin || lng > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", lng, LongitudeMin, LongitudeMax)
	}

	l.lng = lng
	return nil
}
