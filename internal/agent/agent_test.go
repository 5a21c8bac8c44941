package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kdimtricp/acholiflixx/internal/forms"
)

func validApplication() Application {
	return Application{
		FullName: "Akello Ruth",
		Email:    "ruth@example.com",
		Phone:    "0771234567",
		District: "Gulu",
	}
}

func TestApplicationValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Application)
		field  string
	}{
		{"valid", func(a *Application) {}, ""},
		{"missing name", func(a *Application) { a.FullName = " " }, "full_name"},
		{"missing email", func(a *Application) { a.Email = "" }, "email"},
		{"bad email", func(a *Application) { a.Email = "ruth" }, "email"},
		{"missing phone", func(a *Application) { a.Phone = "" }, "phone"},
		{"missing district", func(a *Application) { a.District = "" }, "district"},
		{"optional fields empty", func(a *Application) { a.Location, a.Experience, a.Motivation = "", "", "" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := validApplication()
			tt.modify(&app)
			err := app.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("Expected valid, got %v", err)
				}
				return
			}
			var verrs forms.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Expected ValidationErrors, got %v", err)
			}
			if _, ok := verrs[tt.field]; !ok || len(verrs) != 1 {
				t.Errorf("Expected only %s to fail, got %v", tt.field, verrs)
			}
		})
	}
}

type countingCRM struct {
	calls int
}

func (c *countingCRM) Register(ctx context.Context, app Application) error {
	c.calls++
	return nil
}

func TestServiceSubmit(t *testing.T) {
	crm := &countingCRM{}
	svc := NewService(crm, nil, nil)

	id, err := svc.Submit(context.Background(), validApplication())
	if err != nil || id == "" {
		t.Fatalf("Submit failed: %q, %v", id, err)
	}

	if _, err := svc.Submit(context.Background(), Application{}); err == nil {
		t.Error("Expected validation error")
	}
	if crm.calls != 1 {
		t.Errorf("Invalid applications must not reach the CRM, got %d calls", crm.calls)
	}
}

func TestSimulatedCRM_Cancel(t *testing.T) {
	svc := NewService(SimulatedCRM{Delay: time.Hour}, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := svc.Submit(ctx, validApplication())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got %v", err)
	}
}
