package services

import (
	"math"

	"deliveryoracle/internal/core/domain/model/kernel"
)

// DefaultGeofenceRadiusM is the tolerance radius applied when the caller
// supplies no radius or a non-positive one.
const DefaultGeofenceRadiusM = 200.0

// GeofenceEvaluation is the outcome of classifying a reported position
// against a reference coordinate.
type GeofenceEvaluation struct {
	// Determinate is false when either coordinate was absent and no
	// classification could be made. The caller decides the resulting
	// status code.
	Determinate bool

	// Distance is the great-circle distance in meters. Only meaningful
	// when Determinate and Finite are both true.
	Distance float64

	// Finite is false when the distance computation produced a
	// non-finite value (malformed input). A non-finite distance is
	// always treated as outside the geofence.
	Finite bool

	// Within reports whether the reported position lies inside the
	// effective radius.
	Within bool

	// Radius is the effective radius in meters that was applied.
	Radius float64
}

// GeofenceEvaluator is a domain service that classifies a reported
// courier position as inside or outside a circular tolerance zone
// around a reference coordinate.
//
// Business rules:
//   - A non-positive or absent radius falls back to DefaultGeofenceRadiusM
//   - A missing coordinate yields an indeterminate result, not an error
//   - A non-finite distance is always classified as outside
type GeofenceEvaluator struct{}

// NewGeofenceEvaluator creates a GeofenceEvaluator instance.
func NewGeofenceEvaluator() GeofenceEvaluator {
	return GeofenceEvaluator{}
}

// EffectiveRadius resolves the radius to apply: the supplied value when
// positive, DefaultGeofenceRadiusM otherwise.
func (GeofenceEvaluator) EffectiveRadius(radiusM float64) float64 {
	if radiusM > 0 {
		return radiusM
	}
	return DefaultGeofenceRadiusM
}

// Evaluate classifies reported against reference within radiusM meters.
// Either coordinate being nil produces an indeterminate evaluation.
func (g GeofenceEvaluator) Evaluate(reference, reported *kernel.GeoPoint, radiusM float64) GeofenceEvaluation {
	radius := g.EffectiveRadius(radiusM)

	if reference == nil || reported == nil {
		return GeofenceEvaluation{Determinate: false, Radius: radius}
	}

	distance, err := reference.DistanceTo(*reported)
	if err != nil {
		return GeofenceEvaluation{Determinate: false, Radius: radius}
	}

	if math.IsNaN(distance) || math.IsInf(distance, 0) {
		return GeofenceEvaluation{
			Determinate: true,
			Finite:      false,
			Within:      false,
			Radius:      radius,
		}
	}

	return GeofenceEvaluation{
		Determinate: true,
		Finite:      true,
		Distance:    distance,
		Within:      distance <= radius,
		Radius:      radius,
	}
}
