// Package services provides domain services that coordinate several aggregates
// of the food-delivery core.
//
// The package includes:
//   - RiderDispatcher: least-active-load rider selection and assignment
//   - NotificationPlanner: maps order events to per-recipient notifications
package services
