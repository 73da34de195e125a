// Package errs provides the standardized error types used across the order
// lifecycle service.
//
// The package includes:
//   - ValueIsRequiredError: a mandatory value is missing
//   - ValueIsInvalidError: a value is present but unusable
//   - ValueIsOutOfRangeError: a value falls outside its allowed bounds
//   - ObjectNotFoundError: a lookup by identifier matched nothing
//
// Every error type pairs a sentinel (ErrValueIsRequired, ...) with a struct
// carrying the parameter name and an optional cause. Unwrap returns the
// sentinel, so callers classify errors with errors.Is and read the details
// with errors.As. IsValidation groups the three input validation kinds, which
// the HTTP adapter maps to 400 Bad Request.
package errs
