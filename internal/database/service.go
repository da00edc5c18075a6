package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ZanzyTHEbar/calm-profile/internal/assessment"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for a report token that fails verification or
// belongs to another assessment.
var ErrInvalidToken = errors.New("invalid report token")

const reportTokenTTL = 30 * 24 * time.Hour

// AssessmentService scores submissions, stores them and guards access to
// stored reports.
type AssessmentService struct {
	repo      *Repository
	scorer    *assessment.Scorer
	jwtSecret []byte
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(repo *Repository, scorer *assessment.Scorer, jwtSecret string) *AssessmentService {
	return &AssessmentService{
		repo:      repo,
		scorer:    scorer,
		jwtSecret: []byte(jwtSecret),
	}
}

// Submission is the result of scoring and storing one questionnaire
type Submission struct {
	Assessment  *Assessment
	ReportToken string
}

// Submit scores raw responses, persists the result and issues a report token.
// Scoring errors are returned unwrapped so callers can match the engine sentinels.
func (s *AssessmentService) Submit(ctx context.Context, raw map[string]any, c assessment.Context, email string) (*Submission, error) {
	rv, err := assessment.ParseResponses(raw)
	if err != nil {
		return nil, err
	}

	profile, err := s.scorer.ScoreVector(rv, c)
	if err != nil {
		return nil, err
	}

	a := NewAssessment(profile, rv, email)
	if err := s.repo.CreateAssessment(ctx, a); err != nil {
		return nil, err
	}

	token, err := s.IssueReportToken(a.ID)
	if err != nil {
		return nil, err
	}

	return &Submission{Assessment: a, ReportToken: token}, nil
}

// GetAuthorized returns the stored assessment when token grants access to id
func (s *AssessmentService) GetAuthorized(ctx context.Context, id, token string) (*Assessment, error) {
	if err := s.Authorize(id, token); err != nil {
		return nil, err
	}
	return s.repo.GetAssessment(ctx, id)
}

// Authorize checks that token was issued for id
func (s *AssessmentService) Authorize(id, token string) error {
	tokenID, err := s.ValidateReportToken(token)
	if err != nil {
		return err
	}
	if tokenID != id {
		return ErrInvalidToken
	}
	return nil
}

// IssueReportToken signs a report token for an assessment
func (s *AssessmentService) IssueReportToken(assessmentID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"assessment_id": assessmentID,
		"exp":           now.Add(reportTokenTTL).Unix(),
		"iat":           now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateReportToken validates a report token and returns the assessment ID
func (s *AssessmentService) ValidateReportToken(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrInvalidToken
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		id, ok := claims["assessment_id"].(string)
		if !ok || id == "" {
			return "", fmt.Errorf("%w: assessment_id not found in token", ErrInvalidToken)
		}
		return id, nil
	}

	return "", ErrInvalidToken
}

// Payments lists the payments recorded for an assessment, newest first
func (s *AssessmentService) Payments(ctx context.Context, id string) ([]Payment, error) {
	return s.repo.ListPayments(ctx, id)
}

// Count returns the number of stored assessments
func (s *AssessmentService) Count(ctx context.Context) (int64, error) {
	return s.repo.CountAssessments(ctx)
}

// AttachCheckoutEmail records the buyer email before redirecting to checkout
func (s *AssessmentService) AttachCheckoutEmail(ctx context.Context, id, email string) error {
	return s.repo.AttachEmail(ctx, id, email)
}

// CompletePayment marks the assessment paid for a completed checkout session
func (s *AssessmentService) CompletePayment(ctx context.Context, assessmentID, sessionID, email, currency string, amount int64) error {
	p := NewPayment(assessmentID, sessionID, email, currency, PaymentPaid, amount)
	return s.repo.MarkPaid(ctx, p)
}

// Scorer returns the scorer backing the service
func (s *AssessmentService) Scorer() *assessment.Scorer {
	return s.scorer
}
