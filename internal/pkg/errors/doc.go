// Package errors defines AppError, the error type every layer of the
// calculator returns, and maps it to HTTP status codes.
//
// # Codes
//
//   - MISSING_FIELD: a required dimension was not supplied (400)
//   - INVALID_FIELD: a dimension is zero, negative, NaN or infinite (400)
//   - BAD_REQUEST: the body could not be decoded (400)
//   - NOT_FOUND: no such route (404)
//   - RATE_LIMITED: the client exceeded its request budget (429)
//   - INTERNAL_ERROR: the computation produced a non-finite value (500)
//
// Callers inspect errors with the Is* helpers, which see through
// fmt.Errorf wrapping:
//
//	if apperrors.IsMissingField(err) {
//	    ...
//	}
package errors
