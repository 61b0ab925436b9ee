package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	FailedField string `json:"failed_field"`
	Tag         string `json:"tag"`
	Value       string `json:"value"`
}

var ErrInvalid = errors.New("invalid input")

var validate = validator.New(validator.WithRequiredStructEnabled())

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errs []*ErrorResponse

	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []*ErrorResponse{{FailedField: "", Tag: "invalid", Value: err.Error()}}
	}

	for _, fe := range validationErrs {
		errs = append(errs, &ErrorResponse{
			FailedField: fe.StructNamespace(),
			Tag:         fe.Tag(),
			Value:       fe.Param(),
		})
	}

	return errs
}

// Message joins failed fields into one human readable line, "" when data is valid.
func Message(data interface{}) string {
	errs := ValidateStruct(data)
	if len(errs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		if e.Value != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", e.FailedField, e.Tag, e.Value))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", e.FailedField, e.Tag))
	}

	return strings.Join(parts, "; ")
}

// Error is a rejected input. It matches ErrInvalid and its text carries
// only the client facing message, whatever it is wrapped in.
type Error struct {
	Msg string
}

func (e *Error) Error() string {
	return ErrInvalid.Error() + ": " + e.Msg
}

func (e *Error) Unwrap() error {
	return ErrInvalid
}

// Invalid reports input rejected outside of struct tags.
func Invalid(format string, args ...any) error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

// Validate returns an *Error with the Message of data, nil when data is valid.
func Validate(data interface{}) error {
	if msg := Message(data); msg != "" {
		return &Error{Msg: msg}
	}
	return nil
}
