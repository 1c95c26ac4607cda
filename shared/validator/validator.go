package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"dinebook/shared/failure"
	"dinebook/shared/schedule"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

func registerClockValidation(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)

	return ok && schedule.IsClock(value)
}

func registerDateValidation(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)

	return ok && schedule.IsDate(value)
}

// jsonFieldName reports fields by their wire name, e.g. party_size.
func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	return name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	err := validate.RegisterValidation("empty", func(fl val.FieldLevel) bool {
		empty := fl.Field().IsZero()

		return empty
	})
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("clock", registerClockValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("date", registerDateValidation)
	if err != nil {
		panic(err)
	}
}

// Validate decodes a JSON body into data, rejecting unknown fields, then
// validates it. Every failure is a ValidationError naming the first bad field.
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	err := decoder.Decode(data)
	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
