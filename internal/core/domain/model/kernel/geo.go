package kernel

import (
	"errors"
	"fmt"

	"localshop/internal/pkg/errs"
	"localshop/internal/pkg/guard"
)

const (
	// GeoLatMin is the minimum valid latitude in degrees.
	GeoLatMin = -90.0
	// GeoLatMax is the maximum valid latitude in degrees.
	GeoLatMax = 90.0
	// GeoLngMin is the minimum valid longitude in degrees.
	GeoLngMin = -180.0
	// GeoLngMax is the maximum valid longitude in degrees.
	GeoLngMax = 180.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. GeoPoints must be created using the NewGeoPoint
// constructor to ensure validity.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a geographic position reported by a delivery agent.
// GeoPoint is an immutable value object that ensures latitude and longitude
// are always within valid bounds. The zero value of GeoPoint is invalid and
// will fail validation - use the constructor to create instances.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(12.1, 77.2)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Agent at: %s", point) // Output: GeoPoint(12.100000,77.200000)
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with the specified coordinates.
// Latitude must be within [GeoLatMin..GeoLatMax] and longitude within
// [GeoLngMin..GeoLngMax]. Returns an error if either is out of bounds.
func NewGeoPoint(lat float64, lng float64) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(point.setLat(lat), point.setLng(lng)); err != nil {
		return GeoPoint{}, err
	}

	return point, nil
}

// Validate checks if the GeoPoint was properly constructed using the constructor.
// The zero value of GeoPoint is invalid and will fail this validation.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lng returns the longitude in degrees.
func (p GeoPoint) Lng() float64 {
	return p.lng
}

// String returns a human-readable string representation of the GeoPoint.
// This method implements the fmt.Stringer interface.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.lat, p.lng)
}

// IsEqual compares two points for equality.
// Two points are equal if they have the same latitude and longitude.
// Both points must be properly constructed for the comparison to succeed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.lat == other.lat && p.lng == other.lng, nil
}

// setLat sets the latitude with validation.
// Note: We intentionally use a pointer receiver here while other methods use
// value receivers, so that private setters can self-encapsulate validation
// during object construction.
func (p *GeoPoint) setLat(lat float64) error {
	if lat < GeoLatMin || lat > GeoLatMax {
		return errs.NewValueIsOutOfRangeError("lat", lat, GeoLatMin, GeoLatMax)
	}

	p.lat = lat
	return nil
}

// setLng sets the longitude with validation.
// Note: We intentionally use a pointer receiver here while other methods use
// value receivers, so that private setters can self-encapsulate validation
// during object construction.
func (p *GeoPoint) setLng(lng float64) error {
	if lng < GeoLngMin || lng > GeoLngMax {
		return errs.NewValueIsOutOfRangeError("lng", lng, GeoLngMin, GeoLngMax)
	}

	p.lng = lng
	return nil
}
