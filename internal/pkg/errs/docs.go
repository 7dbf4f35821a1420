// Package errs provides standardized error types for the fulfillment engine.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrValueIsRequired)
//   - A struct type carrying error details
//   - Constructor functions with and without a cause
//   - Error() for formatting and Unwrap() for errors.Is support
//
// Domain-specific error kinds (invalid delivery zone, illegal state transition,
// task already claimed, and so on) are package-level sentinels in the packages
// that own them; this package only carries the generic validation and lookup
// failures shared by every layer.
package errs
