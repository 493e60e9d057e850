package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrap(t *testing.T) {
	cause := errors.New("database connection failed")
	wrapped := Wrap(cause, CodeInternal, "internal error", http.StatusInternalServerError)

	if !errors.Is(wrapped, cause) {
		t.Errorf("expected wrapped error to unwrap to cause")
	}
	if wrapped.Error() != "INTERNAL_ERROR: internal error (caused by: database connection failed)" {
		t.Errorf("unexpected Error(): %q", wrapped.Error())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name      string
		err       *AppError
		code      string
		status    int
		retryable bool
	}{
		{"not found", NotFound("Booking"), CodeNotFound, http.StatusNotFound, false},
		{"validation", Validation("bad", nil), CodeValidation, http.StatusUnprocessableEntity, false},
		{"invalid input", InvalidInput("bad"), CodeInvalidInput, http.StatusBadRequest, false},
		{"unauthorized", Unauthorized("no"), CodeUnauthorized, http.StatusUnauthorized, false},
		{"forbidden", Forbidden("no"), CodeForbidden, http.StatusForbidden, false},
		{"conflict", Conflict("dup"), CodeConflict, http.StatusConflict, false},
		{"internal", Internal("boom", nil), CodeInternal, http.StatusInternalServerError, false},
		{"timeout", Timeout("slow"), CodeTimeout, http.StatusGatewayTimeout, false},
		{"unavailable", Unavailable("Redis"), CodeUnavailable, http.StatusServiceUnavailable, false},
		{"rate limited", RateLimited("slow down"), CodeRateLimited, http.StatusTooManyRequests, true},
		{"invalid schedule", InvalidSchedule("bad"), CodeInvalidSchedule, http.StatusUnprocessableEntity, false},
		{"invalid slot request", InvalidSlotRequest("past"), CodeInvalidSlotRequest, http.StatusBadRequest, false},
		{"staff closed", StaffClosed("sunday"), CodeStaffClosed, http.StatusUnprocessableEntity, false},
		{"slot unavailable", SlotUnavailable("taken"), CodeSlotUnavailable, http.StatusConflict, false},
		{"invalid transition", InvalidTransition("completed", "scheduled"), CodeInvalidTransition, http.StatusConflict, false},
		{"concurrent conflict", ConcurrentConflict("busy"), CodeConcurrentConflict, http.StatusConflict, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("code = %s, want %s", tt.err.Code, tt.code)
			}
			if tt.err.StatusCode() != tt.status {
				t.Errorf("status = %d, want %d", tt.err.StatusCode(), tt.status)
			}
			if tt.err.Retryable != tt.retryable {
				t.Errorf("retryable = %v, want %v", tt.err.Retryable, tt.retryable)
			}
		})
	}
}

func TestNotFoundWithID(t *testing.T) {
	err := NotFoundWithID("Staff", "abc")

	if err.Message != "Staff not found" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.Details["id"] != "abc" || err.Details["resource"] != "Staff" {
		t.Errorf("unexpected details %v", err.Details)
	}
}

func TestInvalidTransition_Details(t *testing.T) {
	err := InvalidTransition("cancelled", "confirmed")

	if err.Details["from"] != "cancelled" || err.Details["to"] != "confirmed" {
		t.Errorf("unexpected details %v", err.Details)
	}
}

func TestZeroStatusDefaultsToInternal(t *testing.T) {
	err := &AppError{Code: CodeInternal}
	if err.StatusCode() != http.StatusInternalServerError {
		t.Errorf("StatusCode() = %d", err.StatusCode())
	}
}

func TestAsAppError(t *testing.T) {
	appErr := SlotUnavailable("taken")
	if AsAppError(appErr) != appErr {
		t.Errorf("AsAppError() should return the same AppError")
	}

	wrapped := fmt.Errorf("create booking: %w", appErr)
	if AsAppError(wrapped) != appErr {
		t.Errorf("AsAppError() should find AppError through wrapping")
	}
	if !IsAppError(wrapped) {
		t.Errorf("IsAppError() should see through wrapping")
	}
	if !HasCode(wrapped, CodeSlotUnavailable) {
		t.Errorf("HasCode() should match wrapped code")
	}

	plain := errors.New("plain")
	result := AsAppError(plain)
	if result.Code != CodeInternal || result.Err != plain {
		t.Errorf("AsAppError() should wrap plain error as internal, got %+v", result)
	}
	if IsAppError(plain) || HasCode(plain, CodeInternal) {
		t.Errorf("plain error must not be reported as AppError")
	}
}

func TestAppError_ToJSON(t *testing.T) {
	data := ConcurrentConflict("slot is being booked").ToJSON()

	var resp ErrorResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("ToJSON() produced invalid JSON: %v", err)
	}
	if resp.Code != CodeConcurrentConflict || !resp.Retryable {
		t.Errorf("unexpected response %+v", resp)
	}
}
