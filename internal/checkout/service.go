package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	apperrors "github.com/ZanzyTHEbar/calm-profile/internal/errors"
	"github.com/ZanzyTHEbar/calm-profile/internal/monitoring"
	"github.com/ZanzyTHEbar/calm-profile/internal/resilience"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

// Completed is a paid checkout reported by the webhook
type Completed struct {
	SessionID    string
	AssessmentID string
	Email        string
	Amount       int64
	Currency     string
}

// Options configures the checkout service
type Options struct {
	FrontendURL   string
	WebhookSecret string
	Retry         resilience.RetryConfig
	Breaker       resilience.CircuitBreakerConfig
}

// Service creates checkout sessions through a provider guarded by a circuit
// breaker and retries, and verifies payment webhooks.
type Service struct {
	provider      Provider
	executor      *resilience.Executor
	frontendURL   string
	webhookSecret string
	metrics       *monitoring.Metrics
	logger        *monitoring.Logger
}

// NewService wires a provider with resilience and observability
func NewService(provider Provider, opts Options, metrics *monitoring.Metrics, logger *monitoring.Logger) *Service {
	if opts.Retry.MaxAttempts == 0 {
		opts.Retry = resilience.DefaultRetryConfig()
	}
	opts.Retry.RetryableErrors = isUpstreamFailure
	opts.Breaker.IsFailure = isUpstreamFailure
	if metrics != nil {
		opts.Breaker.OnStateChange = func(_, to resilience.CircuitBreakerState) {
			switch to {
			case resilience.StateOpen:
				metrics.IncrementCircuitBreakerOpen()
			case resilience.StateClosed:
				metrics.IncrementCircuitBreakerClose()
			}
		}
	}

	return &Service{
		provider:      provider,
		executor:      resilience.NewExecutor(resilience.NewCircuitBreaker(opts.Breaker), opts.Retry),
		frontendURL:   opts.FrontendURL,
		webhookSecret: opts.WebhookSecret,
		metrics:       metrics,
		logger:        logger,
	}
}

// ProviderName returns the configured provider
func (s *Service) ProviderName() string {
	return s.provider.Name()
}

// BreakerStats returns the circuit breaker state
func (s *Service) BreakerStats() map[string]interface{} {
	return s.executor.Breaker.Stats()
}

// CreateCheckout starts a checkout for the report of assessmentID
func (s *Service) CreateCheckout(ctx context.Context, assessmentID, email string) (*Session, error) {
	req := SessionRequest{
		AssessmentID: assessmentID,
		Email:        email,
		SuccessURL:   s.frontendURL + "/thank-you/?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:    s.frontendURL + "/assessment",
	}

	start := time.Now()
	var session *Session
	err := s.executor.Execute(ctx, func() error {
		var err error
		session, err = s.provider.CreateSession(ctx, req)
		return err
	})

	if s.metrics != nil {
		s.metrics.RecordExternalAPIRequest(s.provider.Name(), err == nil)
	}
	if s.logger != nil {
		s.logger.ExternalAPILogger(s.provider.Name(), "create_checkout_session", time.Since(start), err)
	}

	if err != nil {
		return nil, apperrors.NewPaymentError(s.provider.Name(), err)
	}

	if s.metrics != nil {
		s.metrics.IncrementCheckout()
	}
	return session, nil
}

// ParseWebhook verifies a Stripe webhook and returns the completed checkout
// it reports. Other event types return nil without error.
func (s *Service) ParseWebhook(payload []byte, signature string) (*Completed, error) {
	if s.webhookSecret == "" {
		return nil, apperrors.NewConfigurationError("webhook secret is not configured", nil)
	}

	event, err := webhook.ConstructEvent(payload, signature, s.webhookSecret)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Invalid webhook signature", err)
	}

	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		return nil, nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, apperrors.NewValidationError("Malformed checkout session", err.Error())
	}

	assessmentID := session.Metadata["assessment_id"]
	if assessmentID == "" {
		assessmentID = session.ClientReferenceID
	}
	if assessmentID == "" {
		return nil, apperrors.NewValidationError("Checkout session has no assessment", fmt.Sprintf("session %s", session.ID))
	}

	email := session.CustomerEmail
	if session.CustomerDetails != nil && session.CustomerDetails.Email != "" {
		email = session.CustomerDetails.Email
	}

	if s.metrics != nil {
		s.metrics.IncrementPaymentCompleted()
	}

	return &Completed{
		SessionID:    session.ID,
		AssessmentID: assessmentID,
		Email:        email,
		Amount:       session.AmountTotal,
		Currency:     string(session.Currency),
	}, nil
}
