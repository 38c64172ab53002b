// Package errs provides the error classes shared by every layer of the service.
//
// Each class follows the same shape:
//   - a sentinel error variable (e.g. ErrObjectNotFound)
//   - a struct type carrying the details
//   - constructors with and without a cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// The classes map onto the failure taxonomy of the order core:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - ObjectNotFoundError: a referenced entity is absent
//   - ForbiddenError: the caller lacks ownership, assignment or role
//   - ConflictError: state changed concurrently or the transition is not allowed
//   - UnavailableError: no capacity (no riders, restaurant closed)
//
// Anything that does not unwrap to one of the sentinels is treated as an
// internal failure by the transport adapters.
package errs
