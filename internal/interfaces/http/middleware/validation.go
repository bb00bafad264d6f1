package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/surgishop/backend/internal/interfaces/http/dto"
)

// maxFacilityTypeLen matches the facility_type column width
const maxFacilityTypeLen = 140

// SetupValidator configures gin's validator with JSON field names and custom tags
func SetupValidator() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("middleware: unexpected validator engine")
	}
	return RegisterValidations(v)
}

// RegisterValidations installs the custom tags on v
func RegisterValidations(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})
	// Unmapped labels are accepted and simply carry no limit
	return v.RegisterValidation("facility_type", validateFacilityType)
}

func validateFacilityType(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if s == "" || len(s) > maxFacilityTypeLen {
		return false
	}
	return strings.IndexFunc(s, unicode.IsControl) < 0
}

// fieldMessages renders a rejected tag for API clients. Tags without an
// entry read "Invalid value".
var fieldMessages = map[string]func(e validator.FieldError) string{
	"required":      func(validator.FieldError) string { return "This field is required" },
	"uuid":          func(validator.FieldError) string { return "Invalid UUID format" },
	"facility_type": func(validator.FieldError) string { return "Invalid facility type" },
	"oneof":         func(e validator.FieldError) string { return "Must be one of: " + e.Param() },
	"gte":           func(e validator.FieldError) string { return "Must be greater than or equal to " + e.Param() },
	"min":           func(e validator.FieldError) string { return "Must be at least " + e.Param() + lengthUnit(e) },
	"max":           func(e validator.FieldError) string { return "Must be at most " + e.Param() + lengthUnit(e) },
}

// lengthUnit qualifies min and max bounds on strings, which count characters.
func lengthUnit(e validator.FieldError) string {
	if e.Kind() == reflect.String {
		return " characters"
	}
	return ""
}

func fieldMessage(e validator.FieldError) string {
	if render, ok := fieldMessages[e.Tag()]; ok {
		return render(e)
	}
	return "Invalid value"
}

// FormatValidationErrors builds the 400 body for a binding error. Errors that
// are not field validation failures, such as malformed JSON, carry no details.
func FormatValidationErrors(err error, requestID string) dto.Response {
	var fieldErrs validator.ValidationErrors
	var details []dto.ValidationDetail
	if errors.As(err, &fieldErrs) {
		details = make([]dto.ValidationDetail, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, dto.ValidationDetail{Field: fe.Field(), Message: fieldMessage(fe)})
		}
	}
	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// HandleValidationError writes a 400 for a binding error
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, GetRequestID(c)))
}
