package validation

import (
	"testing"
)

type sample struct {
	Name  string `validate:"required"`
	Email string `validate:"omitempty,email"`
	Code  string `validate:"omitempty,min=3"`
}

func TestStructReportsReadableMessages(t *testing.T) {
	errs := Struct(&sample{})
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Field != "Name" || errs[0].Message != "Name is required" {
		t.Errorf("unexpected error: %+v", errs[0])
	}

	errs = Struct(&sample{Name: "ok", Email: "not-an-email", Code: "ab"})
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errs), errs)
	}
	joined := errs.Error()
	if joined != errs[0].Message+", "+errs[1].Message {
		t.Errorf("expected comma-joined messages, got %q", joined)
	}
}

func TestStructPassesValidInput(t *testing.T) {
	if errs := Struct(&sample{Name: "fine", Email: "a@b.co", Code: "abc"}); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}
