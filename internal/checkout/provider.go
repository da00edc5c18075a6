package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Product being sold: the diagnostic report for one assessment
const (
	ProductName        = "calm.profile diagnostic report"
	ProductDescription = "12-page operational assessment pdf + 30-min debrief"
	PriceCents         = int64(49500)
	Currency           = "usd"
)

// SessionRequest describes a checkout for one assessment
type SessionRequest struct {
	AssessmentID string
	Email        string
	SuccessURL   string
	CancelURL    string
}

// Session is a created checkout session
type Session struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Provider creates hosted checkout sessions
type Provider interface {
	Name() string
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)
}

// StripeProvider creates Stripe Checkout sessions
type StripeProvider struct {
	client *client.API
}

// NewStripeProvider creates a provider for secretKey. backends may be nil to
// use the default Stripe endpoints.
func NewStripeProvider(secretKey string, backends *stripe.Backends) *StripeProvider {
	sc := &client.API{}
	sc.Init(secretKey, backends)
	return &StripeProvider{client: sc}
}

func (p *StripeProvider) Name() string { return "stripe" }

// CreateSession creates a one-off payment session for the report
func (p *StripeProvider) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(ProductName),
						Description: stripe.String(ProductDescription),
					},
					UnitAmount: stripe.Int64(PriceCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		CustomerEmail:     stripe.String(req.Email),
		ClientReferenceID: stripe.String(req.AssessmentID),
		Metadata: map[string]string{
			"assessment_id": req.AssessmentID,
			"email":         req.Email,
		},
	}
	params.Context = ctx

	session, err := p.client.CheckoutSessions.New(params)
	if err != nil {
		return nil, err
	}

	return &Session{ID: session.ID, URL: session.URL}, nil
}

// StubProvider returns a local thank-you link instead of a real checkout.
// Used when no Stripe key is configured.
type StubProvider struct {
	FrontendURL string
}

func (p *StubProvider) Name() string { return "stub" }

// CreateSession returns the thank-you page with a mock session id
func (p *StubProvider) CreateSession(_ context.Context, req SessionRequest) (*Session, error) {
	id := req.AssessmentID
	if id == "" {
		id = "dev"
	}
	sessionID := "mock_" + id
	return &Session{
		ID:  sessionID,
		URL: fmt.Sprintf("%s/thank-you/?session_id=%s", p.FrontendURL, sessionID),
	}, nil
}

// isUpstreamFailure reports whether err should count against the breaker and
// be retried: network errors, rate limiting and 5xx responses. Card and
// request errors are final.
func isUpstreamFailure(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		status := stripeErr.HTTPStatusCode
		return status == 0 || status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
	}

	return true
}
