// Package eventhandlers reacts to order domain events after they were
// committed to the outbox.
//
// Every event is fanned out into notifications. Two status changes also
// chain into the dispatch engine:
//   - moved to ready without a rider: one auto assignment attempt for that order
//   - moved to delivered: the rider is free again, so one backlog order is drained
//
// Notification failures are returned so the outbox retries the event.
// Dispatch chaining failures are logged only; assignments are not retried
// automatically.
package eventhandlers
