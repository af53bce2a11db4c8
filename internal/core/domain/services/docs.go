// Package services provides domain services for milestone verification that
// don't naturally belong to a single aggregate root.
//
// The package includes:
//   - GeofenceEvaluator: classifies a reported courier position against a
//     reference coordinate within a circular tolerance zone
//   - ChainOrderResolver: resolves the numeric on-chain order identifier
//     with explicit-request over order-metadata precedence
//
// Both services are pure: they perform no I/O and hold no state, which
// keeps geofence and chain-id semantics independently testable from the
// milestone orchestration that uses them.
package services
