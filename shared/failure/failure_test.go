package failure_test

import (
	"dinebook/shared/failure"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "party size exceeds table capacity",
	}

	if f.Error() != "party size exceeds table capacity" {
		t.Errorf("expected error message to be preserved, got %s", f.Error())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		kind failure.Kind
	}{
		{name: "bad request from string", err: failure.BadRequestFromString("bad"), code: http.StatusBadRequest, kind: failure.KindValidation},
		{name: "bad request", err: failure.BadRequest(errors.New("bad")), code: http.StatusBadRequest, kind: failure.KindValidation},
		{name: "unauthorized", err: failure.Unauthorized("token expired"), code: http.StatusUnauthorized, kind: failure.KindUnauthorized},
		{name: "internal", err: failure.InternalError(errors.New("db down")), code: http.StatusInternalServerError, kind: failure.KindStorage},
		{name: "unimplemented", err: failure.Unimplemented("Export"), code: http.StatusNotImplemented, kind: failure.KindUnimplemented},
		{name: "not found", err: failure.NotFound("table not found"), code: http.StatusNotFound, kind: failure.KindNotFound},
		{name: "conflict", err: failure.Conflict("table is referenced"), code: http.StatusConflict, kind: failure.KindConflict},
		{name: "forbidden", err: failure.Forbidden("not your reservation"), code: http.StatusForbidden, kind: failure.KindAuthorization},
		{name: "slot unavailable", err: failure.SlotUnavailable("slot closed"), code: http.StatusBadRequest, kind: failure.KindSlotUnavailable},
		{name: "table unsuitable", err: failure.TableUnsuitable("too small"), code: http.StatusBadRequest, kind: failure.KindTableUnsuitable},
		{name: "scheduling conflict", err: failure.SchedulingConflict("overlap"), code: http.StatusBadRequest, kind: failure.KindSchedulingConflict},
		{name: "duplicate", err: failure.Duplicate("table number taken"), code: http.StatusConflict, kind: failure.KindDuplicateResource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failure.GetCode(tt.err); got != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, got)
			}

			if got := failure.GetKind(tt.err); got != tt.kind {
				t.Errorf("expected kind %s, got %s", tt.kind, got)
			}
		})
	}
}

func TestNilInputs(t *testing.T) {
	if failure.BadRequest(nil) != nil {
		t.Error("expected BadRequest(nil) to be nil")
	}

	if failure.InternalError(nil) != nil {
		t.Error("expected InternalError(nil) to be nil")
	}

	if failure.FromStorage(nil, "reservation") != nil {
		t.Error("expected FromStorage(nil) to be nil")
	}
}

func TestFromStorage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind failure.Kind
		code int
	}{
		{
			name: "unique violation",
			err:  fmt.Errorf("failed to insert data (review): %w", &pq.Error{Code: "23505"}),
			kind: failure.KindDuplicateResource,
			code: http.StatusConflict,
		},
		{
			name: "exclusion violation",
			err:  fmt.Errorf("failed to insert data (reservation): %w", &pq.Error{Code: "23P01"}),
			kind: failure.KindSchedulingConflict,
			code: http.StatusBadRequest,
		},
		{
			name: "foreign key violation",
			err:  &pq.Error{Code: "23503"},
			kind: failure.KindConflict,
			code: http.StatusConflict,
		},
		{
			name: "check violation",
			err:  &pq.Error{Code: "23514"},
			kind: failure.KindValidation,
			code: http.StatusBadRequest,
		},
		{
			name: "connection error",
			err:  errors.New("dial tcp: connection refused"),
			kind: failure.KindStorage,
			code: http.StatusInternalServerError,
		},
		{
			name: "already classified",
			err:  fmt.Errorf("wrapped: %w", failure.TableUnsuitable("too small")),
			kind: failure.KindTableUnsuitable,
			code: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := failure.FromStorage(tt.err, "reservation")

			if failure.GetKind(got) != tt.kind {
				t.Errorf("expected kind %s, got %s", tt.kind, failure.GetKind(got))
			}

			if failure.GetCode(got) != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, failure.GetCode(got))
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{name: "storage", err: failure.FromStorage(errors.New("timeout"), "table"), retryable: true},
		{name: "plain error", err: errors.New("unknown"), retryable: true},
		{name: "conflict", err: failure.SchedulingConflict("overlap"), retryable: false},
		{name: "validation", err: failure.BadRequestFromString("bad clock"), retryable: false},
		{name: "authorization", err: failure.ForbiddenError, retryable: false},
		{name: "duplicate", err: failure.Duplicate("dup"), retryable: false},
		{name: "nil", err: nil, retryable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failure.IsRetryable(tt.err); got != tt.retryable {
				t.Errorf("expected retryable=%v, got %v", tt.retryable, got)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    &failure.Failure{Code: http.StatusBadRequest, Message: "test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped failure error",
			input:    fmt.Errorf("outer: %w", failure.NotFound("slot not found")),
			expected: http.StatusNotFound,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.GetCode(tt.input)
			if result != tt.expected {
				t.Errorf("expected code to be %d, got %d", tt.expected, result)
			}
		})
	}
}
