package types

import (
	"time"

	"github.com/ZanzyTHEbar/calm-profile/internal/assessment"
	"github.com/ZanzyTHEbar/calm-profile/internal/database"
)

// AssessRequest is the body of POST /api/assess
type AssessRequest struct {
	Responses map[string]any     `json:"responses" binding:"required"`
	Context   assessment.Context `json:"context"`
	Email     string             `json:"email,omitempty" binding:"omitempty,email,max=254"`
}

// AssessResponse is a scored profile plus the handle to fetch it again
type AssessResponse struct {
	AssessmentID string             `json:"assessment_id"`
	ReportToken  string             `json:"report_token"`
	Profile      assessment.Profile `json:"profile"`
	CreatedAt    time.Time          `json:"created_at"`
}

// StoredAssessmentResponse is returned by GET /api/assessments/{id}
type StoredAssessmentResponse struct {
	AssessmentID  string             `json:"assessment_id"`
	PaymentStatus string             `json:"payment_status"`
	Payments      []database.Payment `json:"payments"`
	Profile       assessment.Profile `json:"profile"`
	CreatedAt     time.Time          `json:"created_at"`
}

// CheckoutRequest is the body of POST /api/create-checkout
type CheckoutRequest struct {
	Email        string `json:"email" binding:"required,email,max=254"`
	AssessmentID string `json:"assessment_id" binding:"required,uuid"`
}

// CheckoutResponse carries the hosted checkout URL
type CheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id,omitempty"`
}

// QuestionsResponse is the question bank
type QuestionsResponse struct {
	Questions []assessment.Question `json:"questions"`
	Count     int                   `json:"count"`
}

// HealthResponse is returned by GET /api/health
type HealthResponse struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	Version      string    `json:"version"`
	ModelVersion string    `json:"model_version"`
	Database     string    `json:"database"`
	Redis        string    `json:"redis"`
}
