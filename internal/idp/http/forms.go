package http

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/aussiebroadwan/signup/pkg/authsdk"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	// Report fields by their form names.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.ToLower(f.Name)
	})
}

// parseForm parses the request body and fails with invalid_request when it is
// not a form.
func parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		authsdk.ErrInvalidFormBody.WriteError(w)
		return false
	}
	return true
}

// validRequest validates req and writes an invalid_parameter error describing
// the first failing field.
func validRequest(w http.ResponseWriter, req any) bool {
	err := validate.Struct(req)
	if err == nil {
		return true
	}

	desc := "invalid request"
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		desc = describe(verrs[0])
	}
	authsdk.NewAPIError(http.StatusBadRequest, authsdk.ErrorCodeInvalidParameter, desc).WriteError(w)
	return false
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s is not a valid address", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
