package forms

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestValidationErrors(t *testing.T) {
	v := ValidationErrors{}
	v.Required("title", "  ", "Title is required")
	v.Required("year", "2024", "Year is required")
	v.Email("email", "nope")

	if len(v) != 2 {
		t.Fatalf("Expected 2 errors, got %v", v)
	}
	if v.Error() != "invalid fields: email, title" {
		t.Errorf("Unexpected message %q", v.Error())
	}

	var target ValidationErrors
	if !errors.As(v.Err(), &target) {
		t.Error("Err should return the ValidationErrors")
	}
	if (ValidationErrors{}).Err() != nil {
		t.Error("Empty ValidationErrors should be nil error")
	}
}

func TestEmail(t *testing.T) {
	v := ValidationErrors{}
	v.Email("ok", "ruth@example.com")
	v.Email("blank", "")
	if _, ok := v["ok"]; ok {
		t.Error("Valid email rejected")
	}
	if v["blank"] != "Email is required" {
		t.Errorf("Unexpected message %q", v["blank"])
	}
}

func TestDelay(t *testing.T) {
	if err := Delay(context.Background(), 0); err != nil {
		t.Errorf("Zero delay failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Delay(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
