// Package order provides the purchase-order side of the delivery oracle's
// domain model. It implements the Order aggregate with the milestone-driven
// status machine and the typed metadata view.
//
// The package includes:
//   - Order: The aggregate root holding identity, parties, status and metadata
//   - Status: A state machine with terminal-state regression protection and
//     a table-driven status-to-timestamp-column mapping
//   - Metadata: The typed order metadata (chain order id, line items, drop
//     metadata URI), parsed once at the persistence boundary
//
// Key business rules:
//   - A milestone update must never regress an order to an earlier
//     lifecycle stage; Delivered, Resolved and Cancelled are terminal
//   - Wallet identifiers are stored in canonical lower-case form
//   - Metadata parsing is lenient: a malformed blob yields empty metadata
//     instead of blocking milestone processing
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
