package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "github.com/ParthChaturvedi07/InvestorSarthi/internal/errors"
	"github.com/ParthChaturvedi07/InvestorSarthi/internal/model"
)

// domainError maps a domain error to an echo HTTP error with the standard body.
func domainError(err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// validationError turns validator failures into a 400 listing every failing
// field. Non-validator errors (e.g. malformed JSON) get a plain message.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Message: err.Error(),
			Code:    "VALIDATION_FAILED",
		})
	}

	resp := apperrors.ValidationErrorResponse{}
	for _, fe := range verrs {
		resp.Errors = append(resp.Errors, apperrors.FieldError{
			Field:   jsonFieldName(fe.Field()),
			Message: fieldMessage(fe),
		})
	}
	return echo.NewHTTPError(http.StatusBadRequest, resp)
}

func jsonFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func fieldMessage(fe validator.FieldError) string {
	name := jsonFieldName(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "min":
		if fe.Kind().String() == "string" && fe.Param() == "1" {
			return fmt.Sprintf("%s cannot be empty", name)
		}
		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", name)
	case "oneof":
		if name == "type" {
			return fmt.Sprintf("type must be %s, %s, or %s", model.TypeCommercial, model.TypeResidential, model.TypePlot)
		}
		return fmt.Sprintf("%s must be one of %s", name, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}
