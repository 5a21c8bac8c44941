package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/kdimtricp/acholiflixx/internal/events"
	"github.com/kdimtricp/acholiflixx/internal/forms"
)

var ErrSessionNotFound = errors.New("checkout session not found")

// Charge is what the gateway is asked to collect.
type Charge struct {
	SessionID string
	Plan      Plan
	Method    PaymentMethod
	Details   Details
	Reference string
}

type Receipt struct {
	SessionID string
	PlanLabel string
	Validity  string
	Amount    string
	Method    string
	Reference string
}

// PaymentGateway stands in for the payment provider integration.
type PaymentGateway interface {
	Charge(ctx context.Context, charge Charge) error
}

// SimulatedGateway accepts every charge after Delay. Nothing is collected
// and nothing is stored.
type SimulatedGateway struct {
	Delay time.Duration
}

func (g SimulatedGateway) Charge(ctx context.Context, charge Charge) error {
	return forms.Delay(ctx, g.Delay)
}

type Service struct {
	gateway   PaymentGateway
	publisher events.Publisher
	logger    hclog.Logger
	now       func() time.Time

	sessions   map[string]*Session
	sessionsMu sync.RWMutex
}

func NewService(gateway PaymentGateway, publisher events.Publisher, logger hclog.Logger) *Service {
	if publisher == nil {
		publisher = events.NewLogPublisher(nil)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Service{
		gateway:   gateway,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
		sessions:  make(map[string]*Session),
	}
}

func (s *Service) Start() *Session {
	session := newSession(uuid.New().String(), s.now())

	s.sessionsMu.Lock()
	s.sessions[session.ID] = session
	s.sessionsMu.Unlock()
	return session
}

func (s *Service) Get(id string) (*Session, error) {
	s.sessionsMu.RLock()
	session, ok := s.sessions[id]
	s.sessionsMu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	session.mu.Lock()
	session.lastSeen = s.now()
	session.mu.Unlock()
	return session, nil
}

// Resume returns the session for id, or a fresh one when id is empty or
// no longer known.
func (s *Service) Resume(id string) *Session {
	if id != "" {
		if session, err := s.Get(id); err == nil {
			return session
		}
	}
	return s.Start()
}

func (s *Service) Discard(id string) {
	s.sessionsMu.Lock()
	delete(s.sessions, id)
	s.sessionsMu.Unlock()
}

// Continue advances the session using the service clock.
func (s *Service) Continue(session *Session) error {
	return session.Continue(s.now())
}

// Submit validates the payment details, hands the charge to the gateway
// and completes the session. The session is discarded once complete.
func (s *Service) Submit(ctx context.Context, session *Session, details Details) (Receipt, error) {
	session.mu.Lock()
	if err := session.guardLocked(); err != nil {
		session.mu.Unlock()
		return Receipt{}, err
	}
	if session.step != StepDetails {
		session.mu.Unlock()
		return Receipt{}, ErrWrongStep
	}
	plan, ok := FindPlan(session.planID)
	if !ok {
		session.mu.Unlock()
		return Receipt{}, ErrNoPlan
	}
	option, ok := FindPaymentOption(session.method)
	if !ok {
		session.mu.Unlock()
		return Receipt{}, ErrNoPaymentMethod
	}
	session.details = details
	if err := details.Validate(session.method); err != nil {
		session.mu.Unlock()
		return Receipt{}, err
	}
	session.processing = true
	charge := Charge{
		SessionID: session.ID,
		Plan:      plan,
		Method:    session.method,
		Details:   details,
		Reference: session.reference,
	}
	session.mu.Unlock()

	err := s.gateway.Charge(ctx, charge)

	session.mu.Lock()
	session.processing = false
	if err != nil {
		session.mu.Unlock()
		s.logger.Warn("payment failed", "session", session.ID, "error", err)
		return Receipt{}, fmt.Errorf("charging %s: %w", plan.ID, err)
	}
	session.complete = true
	session.mu.Unlock()

	s.Discard(session.ID)
	s.logger.Info("subscription activated", "session", session.ID, "plan", plan.ID, "method", option.ID)

	if err := s.publisher.Publish(ctx, events.TopicSubscription, map[string]string{
		"session_id": session.ID,
		"plan":       plan.ID,
		"method":     string(option.ID),
	}); err != nil {
		s.logger.Warn("publishing subscription event", "error", err)
	}

	return Receipt{
		SessionID: session.ID,
		PlanLabel: plan.Label,
		Validity:  plan.Validity,
		Amount:    FormatUGX(plan.Price),
		Method:    option.Name,
		Reference: charge.Reference,
	}, nil
}

// Reap drops sessions untouched for longer than ttl.
func (s *Service) Reap(now time.Time, ttl time.Duration) int {
	cutoff := now.Add(-ttl)

	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()

	n := 0
	for id, session := range s.sessions {
		session.mu.Lock()
		idle := session.lastSeen.Before(cutoff) && !session.processing
		session.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

func (s *Service) Len() int {
	s.sessionsMu.RLock()
	defer s.sessionsMu.RUnlock()
	return len(s.sessions)
}

// Run reaps abandoned checkouts every ttl/4 until ctx is done.
func (s *Service) Run(ctx context.Context, ttl time.Duration) {
	interval := ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.Reap(now, ttl); n > 0 {
				s.logger.Debug("reaped abandoned checkouts", "count", n)
			}
		}
	}
}
