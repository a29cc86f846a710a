package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestReason(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantReason string
		wantStatus int
	}{
		{"not found", NotFound("campaign", "c1"), ReasonNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get: %w", NotFound("payout", "p1")), ReasonNotFound, http.StatusNotFound},
		{"validation", Validation("feedback", "required"), ReasonValidation, http.StatusBadRequest},
		{"persistence", Persistence("update submission", errors.New("conn reset")), ReasonPersistence, http.StatusBadGateway},
		{"other", errors.New("boom"), ReasonInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reason(tt.err); got != tt.wantReason {
				t.Errorf("Reason() = %q, want %q", got, tt.wantReason)
			}
			if got := HTTPStatus(tt.err); got != tt.wantStatus {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.wantStatus)
			}
		})
	}
}

func TestPersistenceKeepsCause(t *testing.T) {
	cause := errors.New("timeout")
	err := Persistence("list payouts", cause)
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be preserved, got %v", err)
	}
	if Persistence("noop", nil) != nil {
		t.Error("expected nil for nil cause")
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := Validation("feedback", "required for needs_changes")
	want := "validation error: feedback: required for needs_changes"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
