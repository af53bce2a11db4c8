package kernel

import (
	"errors"
	"fmt"
	"math"

	"deliveryoracle/internal/pkg/errs"
	"deliveryoracle/internal/pkg/guard"
)

// EarthRadiusM is the mean Earth radius in meters used for
// great-circle distance calculations.
const EarthRadiusM = 6371000.0

// Latitude/longitude bounds in degrees for a valid WGS84 coordinate.
const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an
// improperly initialized GeoPoint. GeoPoints must be created via the
// NewGeoPoint constructor to ensure coordinate validity.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a WGS84 position in decimal degrees.
// GeoPoint is an immutable value object: once constructed its
// coordinates never change, which backs the shipment invariant that
// pickup and drop coordinates are fixed for the lifetime of a shipment.
// The zero value of GeoPoint is invalid - use NewGeoPoint to create instances.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(52.5200, 13.4050)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Position: %s", point) // Output: GeoPoint(52.520000,13.405000)
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint from latitude and longitude in degrees.
// Latitude must lie in [-90, 90] and longitude in [-180, 180]; both must
// be finite numbers. Returns a validation error otherwise.
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(point.setLatitude(latitude), point.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return point, nil
}

// Validate checks that the GeoPoint was created via NewGeoPoint.
// The zero value fails with ErrGeoPointIsNotConstructed.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in decimal degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// String returns a human-readable representation of the point.
// Implements the fmt.Stringer interface.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.latitude, p.longitude)
}

// IsEqual compares two points for coordinate equality.
// Both points must be properly constructed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.latitude == other.latitude && p.longitude == other.longitude, nil
}

// DistanceTo calculates the great-circle (haversine) distance to another
// point in meters, using a spherical Earth of radius EarthRadiusM.
// Both points must be properly constructed.
//
// Example:
//
//	equator, _ := kernel.NewGeoPoint(0, 0)
//	oneDegreeEast, _ := kernel.NewGeoPoint(0, 1)
//	d, _ := equator.DistanceTo(oneDegreeEast) // ~111195 m
func (p GeoPoint) DistanceTo(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := p.latitude * math.Pi / 180.0
	lat2 := other.latitude * math.Pi / 180.0
	dLat := (other.latitude - p.latitude) * math.Pi / 180.0
	dLon := (other.longitude - p.longitude) * math.Pi / 180.0

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	a := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	c := 2 * math.Asin(math.Sqrt(a))

	return EarthRadiusM * c, nil
}

// setLatitude sets the latitude with validation.
// Note: pointer receiver for self-encapsulated validation during construction.
func (p *GeoPoint) setLatitude(latitude float64) error {
	if math.IsNaN(latitude) || latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}

	p.latitude = latitude
	return nil
}

// setLongitude sets the longitude with validation.
// Note: pointer receiver for self-encapsulated validation during construction.
func (p *GeoPoint) setLongitude(longitude float64) error {
	if math.IsNaN(longitude) || longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	p.longitude = longitude
	return nil
}
