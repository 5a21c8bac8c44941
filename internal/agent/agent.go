package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/kdimtricp/acholiflixx/internal/events"
	"github.com/kdimtricp/acholiflixx/internal/forms"
)

type Application struct {
	FullName   string
	Email      string
	Phone      string
	District   string
	Location   string
	Experience string
	Motivation string
}

func (a Application) Validate() error {
	errs := forms.ValidationErrors{}
	errs.Required("full_name", a.FullName, "Full name is required")
	errs.Email("email", a.Email)
	errs.Required("phone", a.Phone, "Phone number is required")
	errs.Required("district", a.District, "District is required")
	return errs.Err()
}

// CRM stands in for the partner-management system applications will go to.
type CRM interface {
	Register(ctx context.Context, app Application) error
}

// SimulatedCRM accepts every application after Delay and keeps nothing.
type SimulatedCRM struct {
	Delay time.Duration
}

func (c SimulatedCRM) Register(ctx context.Context, app Application) error {
	return forms.Delay(ctx, c.Delay)
}

type Service struct {
	crm       CRM
	publisher events.Publisher
	logger    hclog.Logger
}

func NewService(crm CRM, publisher events.Publisher, logger hclog.Logger) *Service {
	if publisher == nil {
		publisher = events.NewLogPublisher(nil)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Service{crm: crm, publisher: publisher, logger: logger}
}

// Submit validates and registers an application. The returned id only
// correlates log lines and events; no record is kept.
func (s *Service) Submit(ctx context.Context, app Application) (string, error) {
	if err := app.Validate(); err != nil {
		return "", err
	}

	id := uuid.New().String()
	if err := s.crm.Register(ctx, app); err != nil {
		return "", fmt.Errorf("registering agent: %w", err)
	}

	s.logger.Info("agent application submitted", "application", id, "district", app.District)
	if err := s.publisher.Publish(ctx, events.TopicAgent, map[string]string{
		"application_id": id,
		"district":       app.District,
	}); err != nil {
		s.logger.Warn("publishing agent event", "error", err)
	}
	return id, nil
}

type Benefit struct {
	Title       string
	Description string
}

var Benefits = []Benefit{
	{"Earn Commission", "Earn up to 25% commission on every subscription you sell. The more you sell, the more you earn."},
	{"Bonus Rewards", "Hit monthly targets and unlock bonus rewards including free premium access and cash bonuses."},
	{"Growth Tools", "Get access to marketing materials, referral links, and a personal agent dashboard to track sales."},
	{"Build Your Network", "Grow your customer base in your community. Help your people access Acholi cultural content."},
	{"Weekly Payouts", "Receive your earnings every week via Mobile Money, bank transfer, or Pesapal."},
	{"Agent Tiers", "Progress from Bronze to Gold agent status with increasing commission rates and exclusive perks."},
}

type Step struct {
	Number      int
	Title       string
	Description string
}

var HowItWorks = []Step{
	{1, "Register", "Fill out the agent registration form below with your details."},
	{2, "Get Approved", "Our team reviews your application within 24-48 hours."},
	{3, "Start Selling", "Receive your agent code and start selling subscriptions in your area."},
	{4, "Earn Money", "Track your sales and receive weekly payouts for all successful subscriptions."},
}
