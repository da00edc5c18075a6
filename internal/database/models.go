package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ZanzyTHEbar/calm-profile/internal/assessment"
	"github.com/google/uuid"
)

// Payment states of an assessment
const (
	PaymentUnpaid  = "unpaid"
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// Assessment is one stored, scored questionnaire submission
type Assessment struct {
	ID                 string                     `json:"id" db:"id"`
	Email              string                     `json:"email,omitempty" db:"email"`
	ArchetypePrimary   string                     `json:"archetype_primary" db:"archetype_primary"`
	ArchetypeSecondary string                     `json:"archetype_secondary" db:"archetype_secondary"`
	Confidence         string                     `json:"confidence" db:"confidence"`
	Hybrid             string                     `json:"hybrid,omitempty" db:"hybrid"`
	Margin             float64                    `json:"margin" db:"margin"`
	ArchetypeMix       assessment.Mix             `json:"archetype_mix" db:"archetype_mix"`
	AxisScores         assessment.AxisScores      `json:"axis_scores" db:"axis_scores"`
	OverheadIndex      float64                    `json:"overhead_index" db:"overhead_index"`
	HoursLost          float64                    `json:"hours_lost" db:"hours_lost"`
	HoursTeam          float64                    `json:"hours_team" db:"hours_team"`
	AnnualCost         float64                    `json:"annual_cost" db:"annual_cost"`
	RawResponses       map[string]int             `json:"raw_responses" db:"raw_responses"`
	Context            assessment.ResolvedContext `json:"context" db:"context_data"`
	Profile            assessment.Profile         `json:"profile" db:"profile_data"`
	ModelVersion       string                     `json:"model_version" db:"model_version"`
	PaymentStatus      string                     `json:"payment_status" db:"payment_status"`
	ReportSent         bool                       `json:"report_sent" db:"report_sent"`
	CreatedAt          time.Time                  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time                  `json:"updated_at" db:"updated_at"`
}

// Payment records a completed checkout for an assessment
type Payment struct {
	ID              string    `json:"id" db:"id"`
	AssessmentID    string    `json:"assessment_id" db:"assessment_id"`
	StripeSessionID string    `json:"stripe_session_id" db:"stripe_session_id"`
	Email           string    `json:"email,omitempty" db:"email"`
	Amount          int64     `json:"amount" db:"amount"` // in cents
	Currency        string    `json:"currency" db:"currency"`
	Status          string    `json:"status" db:"status"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// ArchetypeCount is one row of the archetype distribution
type ArchetypeCount struct {
	Archetype       string  `json:"archetype"`
	Count           int64   `json:"count"`
	AverageOverhead float64 `json:"average_overhead"`
	AverageCost     float64 `json:"average_annual_cost"`
}

// NewAssessment builds a record from a scored profile
func NewAssessment(p assessment.Profile, responses assessment.ResponseVector, email string) *Assessment {
	now := time.Now().UTC()
	return &Assessment{
		ID:                 uuid.New().String(),
		Email:              email,
		ArchetypePrimary:   string(p.Classification.Primary),
		ArchetypeSecondary: string(p.Classification.Secondary),
		Confidence:         string(p.Classification.Confidence),
		Hybrid:             p.Classification.Hybrid,
		Margin:             p.Classification.Margin,
		ArchetypeMix:       p.Mix,
		AxisScores:         p.Axes,
		OverheadIndex:      p.Estimate.OverheadIndex,
		HoursLost:          p.Estimate.HoursLostPPW,
		HoursTeam:          p.Estimate.HoursTeam,
		AnnualCost:         p.Estimate.AnnualCost,
		RawResponses:       responses.Map(),
		Context:            p.Estimate.Context,
		Profile:            p,
		ModelVersion:       p.ModelVersion,
		PaymentStatus:      PaymentUnpaid,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// NewPayment creates a payment row with a generated ID
func NewPayment(assessmentID, sessionID, email, currency, status string, amount int64) *Payment {
	return &Payment{
		ID:              uuid.New().String(),
		AssessmentID:    assessmentID,
		StripeSessionID: sessionID,
		Email:           email,
		Amount:          amount,
		Currency:        currency,
		Status:          status,
		CreatedAt:       time.Now().UTC(),
	}
}

func encodeJSON(name string, v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return string(b), nil
}

func decodeJSON(name, raw string, v any) error {
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}
