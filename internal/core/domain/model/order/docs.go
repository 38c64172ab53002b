// Package order provides the Order aggregate and its lifecycle state machine
// for the food-delivery marketplace.
//
// The package includes:
//   - Order: the aggregate root owning items, money invariants, rider assignment and status
//   - Status: the closed set of lifecycle states
//   - Role, Actor: the caller identity the state machine authorizes against
//   - the role transition table (transitions.go)
//   - PlacedEvent, StatusChangedEvent, RiderAssignedEvent: domain events for the outbox
//   - Number: the ORD-YYYYMMDD-NNN order number
//
// Key business rules:
//   - restaurant owner: pending -> confirmed -> preparing -> ready
//   - assigned rider: ready -> out_for_delivery -> delivered
//   - ordering customer: any non-terminal status -> cancelled
//   - delivered and cancelled are terminal
//   - delivering with a rider credits the rider 80% of the delivery fee
package order
