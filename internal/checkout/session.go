package checkout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/kdimtricp/acholiflixx/internal/forms"
)

type Step int

const (
	StepPlan Step = iota + 1
	StepPayment
	StepDetails
)

var (
	ErrUnknownPlan      = errors.New("unknown plan")
	ErrUnknownMethod    = errors.New("unknown payment method")
	ErrNoPlan           = errors.New("no plan selected")
	ErrNoPaymentMethod  = errors.New("no payment method selected")
	ErrWrongStep        = errors.New("action not allowed at this step")
	ErrProcessing       = errors.New("payment already processing")
	ErrAlreadyCompleted = errors.New("checkout already completed")
)

// Details are the payment fields of step 3. Which ones are required
// depends on the payment method.
type Details struct {
	Phone      string
	CardNumber string
	CardExpiry string
	CardCVC    string
	Email      string
}

func (d Details) Validate(method PaymentMethod) error {
	errs := forms.ValidationErrors{}

	switch method {
	case MethodMobileMoney:
		errs.Required("phone", d.Phone, "Phone number is required")
	case MethodCard:
		errs.Required("card_number", d.CardNumber, "Card number is required")
		errs.Required("card_expiry", d.CardExpiry, "Expiry date is required")
		errs.Required("card_cvc", d.CardCVC, "CVC is required")
	case MethodPesapal, MethodPayPal, MethodBank:
		errs.Email("email", d.Email)
	default:
		return ErrUnknownMethod
	}
	return errs.Err()
}

// Session is one checkout in progress: plan, payment method and the
// current step. It is discarded once completed or abandoned.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	step       Step
	planID     string
	method     PaymentMethod
	details    Details
	reference  string
	processing bool
	complete   bool
	lastSeen   time.Time
}

// View is a consistent copy of a session for rendering.
type View struct {
	ID         string
	Step       Step
	Plan       Plan
	HasPlan    bool
	Method     PaymentOption
	HasMethod  bool
	Details    Details
	Reference  string
	Processing bool
	Complete   bool
}

func (v View) Amount() string {
	return FormatUGX(v.Plan.Price)
}

// StepPercent drives the progress bar at the top of the checkout.
func (v View) StepPercent() int {
	return int(v.Step) * 100 / 3
}

func newSession(id string, now time.Time) *Session {
	return &Session{ID: id, CreatedAt: now, step: StepPlan, lastSeen: now}
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() View {
	v := View{
		ID:         s.ID,
		Step:       s.step,
		Details:    s.details,
		Reference:  s.reference,
		Processing: s.processing,
		Complete:   s.complete,
	}
	v.Plan, v.HasPlan = FindPlan(s.planID)
	v.Method, v.HasMethod = FindPaymentOption(s.method)
	return v
}

func (s *Session) guardLocked() error {
	if s.complete {
		return ErrAlreadyCompleted
	}
	if s.processing {
		return ErrProcessing
	}
	return nil
}

func (s *Session) SelectPlan(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardLocked(); err != nil {
		return err
	}
	if s.step != StepPlan {
		return ErrWrongStep
	}
	if _, ok := FindPlan(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPlan, id)
	}
	s.planID = id
	return nil
}

func (s *Session) SelectMethod(method PaymentMethod) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardLocked(); err != nil {
		return err
	}
	if s.step != StepPayment {
		return ErrWrongStep
	}
	if _, ok := FindPaymentOption(method); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	s.method = method
	return nil
}

// Continue advances one step. Leaving step 1 needs a plan and leaving
// step 2 needs a payment method.
func (s *Session) Continue(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardLocked(); err != nil {
		return err
	}

	switch s.step {
	case StepPlan:
		if s.planID == "" {
			return ErrNoPlan
		}
		s.step = StepPayment
	case StepPayment:
		if s.method == "" {
			return ErrNoPaymentMethod
		}
		s.step = StepDetails
		if s.method == MethodBank {
			s.reference = BankReference(s.planID, now)
		}
	default:
		return ErrWrongStep
	}
	return nil
}

// Back returns to the previous step, keeping the selections made so far.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guardLocked(); err != nil {
		return err
	}
	if s.step > StepPlan {
		s.step--
	}
	return nil
}

// BankReference is the transfer reference shown for bank payments:
// AF-<PLAN>-<last 6 base36 digits of the millisecond clock>.
func BankReference(planID string, now time.Time) string {
	stamp := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	if len(stamp) > 6 {
		stamp = stamp[len(stamp)-6:]
	}
	return fmt.Sprintf("AF-%s-%s", strings.ToUpper(planID), stamp)
}
