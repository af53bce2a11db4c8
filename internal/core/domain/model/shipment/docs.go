// Package shipment provides domain entities and business logic for shipment
// lifecycle management in the delivery oracle. It implements the Shipment
// aggregate root together with the milestone and status state machines.
//
// The package includes:
//   - Shipment: The aggregate root holding identity, parties, coordinates and lifecycle
//   - Status: A monotonic forward state machine over the shipment lifecycle
//   - Milestone: Courier-reported physical events and their status mappings
//
// Key business rules:
//   - Pickup and drop coordinates are immutable once set; only status and
//     the assigned courier mutate after creation
//   - Status follows Created -> ReadyForPickup -> InTransit -> {Delivered, Cancelled},
//     with Delivered and Cancelled terminal; stages may be skipped but
//     never revisited
//   - Wallet identifiers are stored in canonical lower-case form
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package shipment
