// Package dto holds the HTTP request and error body shapes.
//
// ParseBody accepts JSON and form encoded bodies; WriteError renders any
// error as {"detail", "code", "fields"} with the status from apperrors.
package dto
