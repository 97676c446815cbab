// Package validator checks shape dimensions with go-playground/validator.
//
// The positive_finite tag accepts only finite values strictly greater than
// zero. Validate returns ValidationErrors, one entry per failing field,
// named by its json tag.
package validator
