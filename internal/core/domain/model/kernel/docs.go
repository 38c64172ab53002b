// Package kernel provides the value objects shared by every aggregate of the
// order core:
//   - UUID: identifiers, random or derived, with text marshaling for event payloads
//   - Money: non-negative amounts in minor units with exact two-decimal arithmetic
//   - DomainEvent / EventSource: the contract between aggregates and the outbox
package kernel
