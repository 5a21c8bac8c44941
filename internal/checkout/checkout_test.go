package checkout

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/kdimtricp/acholiflixx/internal/forms"
)

func TestFormatUGX(t *testing.T) {
	tests := map[int64]string{
		0:       "UGX 0",
		999:     "UGX 999",
		1300:    "UGX 1,300",
		7500:    "UGX 7,500",
		100000:  "UGX 100,000",
		194000:  "UGX 194,000",
		1234567: "UGX 1,234,567",
		-2500:   "UGX -2,500",
	}
	for in, want := range tests {
		if got := FormatUGX(in); got != want {
			t.Errorf("FormatUGX(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestPlans(t *testing.T) {
	if len(Plans) != 9 {
		t.Fatalf("Expected 9 plans, got %d", len(Plans))
	}
	week, ok := FindPlan("1week")
	if !ok || week.Price != 7500 || week.Validity != "1 week" || week.Badge() != "Popular" {
		t.Errorf("Unexpected weekly plan: %+v", week)
	}
	year, _ := FindPlan("1year")
	if year.Badge() != "Best Value" {
		t.Errorf("Expected Best Value badge, got %q", year.Badge())
	}
	threeWeeks, _ := FindPlan("3weeks")
	if threeWeeks.Badge() != "Save 33%" {
		t.Errorf("Expected savings badge, got %q", threeWeeks.Badge())
	}
	if _, ok := FindPlan("crypto"); ok {
		t.Error("Unexpected plan found")
	}
	if _, ok := FindPaymentOption("crypto"); ok {
		t.Error("Crypto is not offered")
	}
}

func TestDetailsValidate(t *testing.T) {
	tests := []struct {
		name    string
		method  PaymentMethod
		details Details
		fields  []string
	}{
		{"mobile money ok", MethodMobileMoney, Details{Phone: "0771234567"}, nil},
		{"mobile money missing phone", MethodMobileMoney, Details{Email: "a@b.co"}, []string{"phone"}},
		{"card ok", MethodCard, Details{CardNumber: "4111 1111 1111 1111", CardExpiry: "12/29", CardCVC: "123"}, nil},
		{"card missing all", MethodCard, Details{}, []string{"card_number", "card_expiry", "card_cvc"}},
		{"paypal ok", MethodPayPal, Details{Email: "me@paypal.com"}, nil},
		{"pesapal bad email", MethodPesapal, Details{Email: "not-an-email"}, []string{"email"}},
		{"bank blank email", MethodBank, Details{Email: "  "}, []string{"email"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.details.Validate(tt.method)
			if len(tt.fields) == 0 {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			var verrs forms.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Expected ValidationErrors, got %v", err)
			}
			if len(verrs) != len(tt.fields) {
				t.Errorf("Expected %d field errors, got %v", len(tt.fields), verrs)
			}
			for _, f := range tt.fields {
				if _, ok := verrs[f]; !ok {
					t.Errorf("Expected error for %s", f)
				}
			}
		})
	}

	if err := (Details{}).Validate("crypto"); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("Expected ErrUnknownMethod, got %v", err)
	}
}

func TestSession_Steps(t *testing.T) {
	now := time.Now()
	s := newSession("s1", now)

	if err := s.Continue(now); !errors.Is(err, ErrNoPlan) {
		t.Fatalf("Expected ErrNoPlan, got %v", err)
	}
	if err := s.SelectPlan("nope"); !errors.Is(err, ErrUnknownPlan) {
		t.Fatalf("Expected ErrUnknownPlan, got %v", err)
	}
	if err := s.SelectMethod(MethodCard); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("Expected ErrWrongStep, got %v", err)
	}

	if err := s.SelectPlan("2days"); err != nil {
		t.Fatalf("SelectPlan failed: %v", err)
	}
	if err := s.Continue(now); err != nil {
		t.Fatalf("Continue failed: %v", err)
	}
	if v := s.View(); v.Step != StepPayment || v.Plan.ID != "2days" {
		t.Fatalf("Unexpected view: %+v", v)
	}

	if err := s.Continue(now); !errors.Is(err, ErrNoPaymentMethod) {
		t.Fatalf("Expected ErrNoPaymentMethod, got %v", err)
	}
	if err := s.SelectMethod(MethodBank); err != nil {
		t.Fatalf("SelectMethod failed: %v", err)
	}
	if err := s.Continue(now); err != nil {
		t.Fatalf("Continue failed: %v", err)
	}

	v := s.View()
	if v.Step != StepDetails || v.StepPercent() != 100 {
		t.Errorf("Expected step 3 at 100%%, got %d at %d%%", v.Step, v.StepPercent())
	}
	if !regexp.MustCompile(`^AF-2DAYS-[0-9A-Z]{6}$`).MatchString(v.Reference) {
		t.Errorf("Unexpected bank reference %q", v.Reference)
	}

	if err := s.Back(); err != nil {
		t.Fatalf("Back failed: %v", err)
	}
	if v := s.View(); v.Step != StepPayment || v.Method.ID != MethodBank {
		t.Errorf("Back should keep selections, got %+v", v)
	}
	s.Back()
	s.Back()
	if v := s.View(); v.Step != StepPlan {
		t.Errorf("Back should stop at step 1, got %d", v.Step)
	}
}

func TestBankReference(t *testing.T) {
	ref := BankReference("1week", time.UnixMilli(1735689600000))
	if !regexp.MustCompile(`^AF-1WEEK-[0-9A-Z]{6}$`).MatchString(ref) {
		t.Errorf("Unexpected reference %q", ref)
	}
}

func walkToDetails(t *testing.T, svc *Service, plan string, method PaymentMethod) *Session {
	t.Helper()
	s := svc.Start()
	if err := s.SelectPlan(plan); err != nil {
		t.Fatalf("SelectPlan: %v", err)
	}
	if err := svc.Continue(s); err != nil {
		t.Fatalf("Continue: %v", err)
	}
	if err := s.SelectMethod(method); err != nil {
		t.Fatalf("SelectMethod: %v", err)
	}
	if err := svc.Continue(s); err != nil {
		t.Fatalf("Continue: %v", err)
	}
	return s
}

func TestService_SubmitWeeklyMobileMoney(t *testing.T) {
	svc := NewService(SimulatedGateway{}, nil, nil)
	s := walkToDetails(t, svc, "1week", MethodMobileMoney)

	receipt, err := svc.Submit(context.Background(), s, Details{Phone: "0771234567"})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if receipt.Amount != "UGX 7,500" || receipt.Validity != "1 week" {
		t.Errorf("Unexpected receipt: %+v", receipt)
	}
	if receipt.Method != "Mobile Money" || receipt.PlanLabel != "Weekly" {
		t.Errorf("Unexpected receipt: %+v", receipt)
	}
	if _, err := svc.Get(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Error("Completed session should be discarded")
	}
	if _, err := svc.Submit(context.Background(), s, Details{Phone: "0771234567"}); !errors.Is(err, ErrAlreadyCompleted) {
		t.Errorf("Expected ErrAlreadyCompleted, got %v", err)
	}
}

func TestService_SubmitInvalidKeepsSession(t *testing.T) {
	svc := NewService(SimulatedGateway{}, nil, nil)
	s := walkToDetails(t, svc, "1month", MethodCard)

	_, err := svc.Submit(context.Background(), s, Details{CardNumber: "4111"})
	var verrs forms.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if v := s.View(); v.Complete || v.Processing || v.Details.CardNumber != "4111" {
		t.Errorf("Unexpected view after invalid submit: %+v", v)
	}
	if _, err := svc.Get(s.ID); err != nil {
		t.Errorf("Session should survive validation errors: %v", err)
	}
}

func TestService_SubmitWrongStep(t *testing.T) {
	svc := NewService(SimulatedGateway{}, nil, nil)
	s := svc.Start()
	if _, err := svc.Submit(context.Background(), s, Details{}); !errors.Is(err, ErrWrongStep) {
		t.Errorf("Expected ErrWrongStep, got %v", err)
	}
}

func TestService_SubmitCancelled(t *testing.T) {
	svc := NewService(SimulatedGateway{Delay: time.Hour}, nil, nil)
	s := walkToDetails(t, svc, "6hrs", MethodPayPal)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Submit(ctx, s, Details{Email: "me@example.com"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if v := s.View(); v.Processing || v.Complete {
		t.Errorf("Cancelled payment should leave the session open: %+v", v)
	}
}

func TestService_ResumeAndReap(t *testing.T) {
	svc := NewService(SimulatedGateway{}, nil, nil)
	s := svc.Start()

	if got := svc.Resume(s.ID); got != s {
		t.Error("Resume should return the existing session")
	}
	if got := svc.Resume("unknown"); got == s {
		t.Error("Resume of unknown id should start a new session")
	}
	if svc.Len() != 2 {
		t.Fatalf("Expected 2 sessions, got %d", svc.Len())
	}

	if n := svc.Reap(time.Now().Add(time.Hour), time.Minute); n != 2 {
		t.Errorf("Expected 2 reaped sessions, got %d", n)
	}
}
