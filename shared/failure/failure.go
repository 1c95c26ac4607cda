package failure

import (
	"dinebook/shared/constant"
	"errors"
	"fmt"
	"net/http"

	"github.com/lib/pq"
)

// Kind classifies a Failure independently of its HTTP code.
type Kind string

const (
	KindValidation         Kind = "ValidationError"
	KindNotFound           Kind = "NotFound"
	KindSlotUnavailable    Kind = "SlotUnavailable"
	KindTableUnsuitable    Kind = "TableUnsuitable"
	KindSchedulingConflict Kind = "SchedulingConflict"
	KindAuthorization      Kind = "AuthorizationError"
	KindDuplicateResource  Kind = "DuplicateResource"
	KindStorage            Kind = "StorageError"
	KindUnauthorized       Kind = "Unauthorized"
	KindConflict           Kind = "Conflict"
	KindUnimplemented      Kind = "Unimplemented"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Kind: KindValidation, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Kind: KindValidation, Message: "invalid limit parameter"}
var ForbiddenError = &Failure{Code: http.StatusForbidden, Kind: KindAuthorization, Message: "You don't have the required permissions"}
var ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Kind: KindAuthorization, Message: "You don't have permission to access this resource"}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Kind:    KindValidation,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindValidation,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Kind:    KindUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Kind:    KindStorage,
			Message: err.Error(),
		}
	}

	return nil
}

// Unimplemented returns a new Failure with code for unimplemented method.
func Unimplemented(methodName string) error {
	return &Failure{
		Code:    http.StatusNotImplemented,
		Kind:    KindUnimplemented,
		Message: methodName,
	}
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindConflict,
		Message: message,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Kind:    KindAuthorization,
		Message: msg,
	}
}

func SlotUnavailable(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindSlotUnavailable,
		Message: msg,
	}
}

func TableUnsuitable(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindTableUnsuitable,
		Message: msg,
	}
}

func SchedulingConflict(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindSchedulingConflict,
		Message: msg,
	}
}

func Duplicate(msg string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindDuplicateResource,
		Message: msg,
	}
}

// FromStorage classifies a data-store error. Constraint violations become
// terminal failures; anything else is a retryable StorageError.
func FromStorage(err error, entity string) error {
	if err == nil {
		return nil
	}

	var fail *Failure
	if errors.As(err, &fail) {
		return fail
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case constant.PqErrorCodeUniqueViolation:
			return Duplicate(fmt.Sprintf("%s already exists", entity))
		case constant.PqErrorCodeExclusionViolation:
			return SchedulingConflict(fmt.Sprintf("%s overlaps an existing %s", entity, entity))
		case constant.PqErrorCodeFkViolation:
			return Conflict(fmt.Sprintf("%s is referenced by or references a missing record", entity))
		case constant.PqErrorCodeCheckViolation:
			return BadRequestFromString(fmt.Sprintf("%s violates a storage constraint", entity))
		}
	}

	return &Failure{
		Code:    http.StatusInternalServerError,
		Kind:    KindStorage,
		Message: err.Error(),
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// IsFailure reports whether err wraps a classified *Failure.
func IsFailure(err error) bool {
	var fail *Failure

	return errors.As(err, &fail)
}

// GetKind returns the Kind of err. Unclassified errors are StorageError.
func GetKind(err error) Kind {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind
	}

	return KindStorage
}

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}

	return GetKind(err) == kind
}

// IsRetryable reports whether a caller may retry the request verbatim.
func IsRetryable(err error) bool {
	return Is(err, KindStorage)
}
