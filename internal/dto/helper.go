package dto

import (
	"encoding/json"
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/shapecalc/shapecalc/internal/pkg/errors"
)

// ErrorResponse represents the error body returned by every endpoint
type ErrorResponse struct {
	Detail string   `json:"detail"`
	Code   string   `json:"code,omitempty"`
	Fields []string `json:"fields,omitempty"`
}

// NewErrorResponse builds the error body for err
func NewErrorResponse(err error) ErrorResponse {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		return ErrorResponse{
			Detail: appErr.Message,
			Code:   appErr.Code,
			Fields: appErr.Fields,
		}
	}
	return ErrorResponse{
		Detail: err.Error(),
		Code:   apperrors.CodeInternal,
	}
}

// WriteError writes err as a JSON error body with its mapped status code
func WriteError(c *fiber.Ctx, err error) error {
	return c.Status(apperrors.GetStatusCode(err)).JSON(NewErrorResponse(err))
}

// ParseBody parses a JSON or form request body into v. A body without a
// Content-Type is decoded as JSON.
// Numbers too large for float64 yield INVALID_FIELD; any other decode
// failure yields BAD_REQUEST.
func ParseBody(c *fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return nil
	}

	var err error
	if len(c.Request().Header.ContentType()) == 0 {
		err = c.App().Config().JSONDecoder(c.Body(), v)
	} else {
		err = c.BodyParser(v)
	}
	if err == nil {
		return nil
	}

	if appErr := outOfRange(err); appErr != nil {
		return appErr
	}
	return apperrors.BadRequest("Invalid request body: " + err.Error()).WithError(err)
}

// outOfRange maps a JSON number that overflows a float field to INVALID_FIELD
func outOfRange(err error) *apperrors.AppError {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) || typeErr.Type == nil {
		return nil
	}
	if k := typeErr.Type.Kind(); k != reflect.Float64 && k != reflect.Float32 {
		return nil
	}
	literal, ok := strings.CutPrefix(typeErr.Value, "number ")
	if !ok || typeErr.Field == "" {
		return nil
	}

	// ParseFloat returns ±Inf alongside its range error
	value, _ := strconv.ParseFloat(literal, 64)
	return apperrors.InvalidField(typeErr.Field, value).WithError(err)
}
