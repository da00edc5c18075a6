package main

import (
	stderrors "errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ZanzyTHEbar/calm-profile/internal/database"
	"github.com/ZanzyTHEbar/calm-profile/internal/errors"
	"github.com/ZanzyTHEbar/calm-profile/internal/privacy"
	"github.com/ZanzyTHEbar/calm-profile/internal/security"
	"github.com/ZanzyTHEbar/calm-profile/internal/stats"
	"github.com/ZanzyTHEbar/calm-profile/internal/types"
	"github.com/gin-gonic/gin"
)

// handleHealth godoc
// @Summary Service health
// @Tags system
// @Produce json
// @Success 200 {object} types.HealthResponse
// @Failure 503 {object} types.HealthResponse
// @Router /api/health [get]
func (s *server) handleHealth(c *gin.Context) {
	resp := types.HealthResponse{
		Status:       "ok",
		Timestamp:    time.Now().UTC(),
		Version:      version,
		ModelVersion: s.scorer.Model().Version,
		Database:     "ok",
		Redis:        "disabled",
	}

	if err := s.db.PingContext(c.Request.Context()); err != nil {
		slog.Error("Database health check failed", "error", err)
		resp.Status = "degraded"
		resp.Database = "unavailable"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	if s.redis.IsEnabled() {
		resp.Redis = "ok"
		if err := s.redis.HealthCheck(c.Request.Context()); err != nil {
			// limiter falls back to memory, so this is not fatal
			resp.Redis = "unavailable"
		}
	}

	c.JSON(http.StatusOK, resp)
}

// handleQuestions godoc
// @Summary Question bank
// @Tags assessment
// @Produce json
// @Success 200 {object} types.QuestionsResponse
// @Router /api/questions [get]
func (s *server) handleQuestions(c *gin.Context) {
	questions := s.scorer.Content().Questions()
	c.JSON(http.StatusOK, types.QuestionsResponse{
		Questions: questions,
		Count:     len(questions),
	})
}

// handleAssess godoc
// @Summary Score a questionnaire
// @Tags assessment
// @Accept json
// @Produce json
// @Param request body types.AssessRequest true "Responses and optional context"
// @Success 200 {object} types.AssessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /api/assess [post]
func (s *server) handleAssess(c *gin.Context) {
	var req types.AssessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.Abort(c, errors.NewBindingError("Invalid request body", err))
		return
	}

	start := time.Now()
	sub, err := s.assessments.Submit(c.Request.Context(), req.Responses, req.Context, req.Email)
	if err != nil {
		errors.Abort(c, err)
		return
	}

	profile := sub.Assessment.Profile
	primary := string(profile.Classification.Primary)
	confidence := string(profile.Classification.Confidence)

	s.metrics.RecordAssessment(primary, confidence, profile.Estimate.Degraded)
	s.logger.AssessmentLogger(sub.Assessment.ID, primary, confidence, profile.ModelVersion, profile.Estimate.Degraded, time.Since(start))
	s.stats.Invalidate()

	c.JSON(http.StatusOK, types.AssessResponse{
		AssessmentID: sub.Assessment.ID,
		ReportToken:  sub.ReportToken,
		Profile:      profile,
		CreatedAt:    sub.Assessment.CreatedAt,
	})
}

// handleGetAssessment godoc
// @Summary Stored assessment
// @Tags assessment
// @Produce json
// @Param id path string true "Assessment ID"
// @Security ReportToken
// @Success 200 {object} types.StoredAssessmentResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/assessments/{id} [get]
func (s *server) handleGetAssessment(c *gin.Context) {
	ctx := c.Request.Context()
	a, err := s.assessments.GetAuthorized(ctx, c.Param("id"), security.BearerToken(c))
	if err != nil {
		errors.Abort(c, err)
		return
	}

	payments, err := s.assessments.Payments(ctx, a.ID)
	if err != nil {
		errors.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, types.StoredAssessmentResponse{
		AssessmentID:  a.ID,
		PaymentStatus: a.PaymentStatus,
		Payments:      payments,
		Profile:       a.Profile,
		CreatedAt:     a.CreatedAt,
	})
}

// handleDeleteAssessment godoc
// @Summary Delete an assessment and its payments
// @Tags privacy
// @Param id path string true "Assessment ID"
// @Security ReportToken
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/assessments/{id} [delete]
func (s *server) handleDeleteAssessment(c *gin.Context) {
	id := c.Param("id")
	if err := s.assessments.Authorize(id, security.BearerToken(c)); err != nil {
		errors.Abort(c, err)
		return
	}

	if err := s.privacy.DeleteAssessment(c.Request.Context(), id); err != nil {
		errors.Abort(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// handleCreateCheckout godoc
// @Summary Start checkout for the diagnostic report
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body types.CheckoutRequest true "Buyer email and assessment"
// @Success 200 {object} types.CheckoutResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /api/create-checkout [post]
func (s *server) handleCreateCheckout(c *gin.Context) {
	var req types.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.Abort(c, errors.NewBindingError("Invalid checkout request", err))
		return
	}

	ctx := c.Request.Context()
	if err := s.assessments.AttachCheckoutEmail(ctx, req.AssessmentID, req.Email); err != nil {
		errors.Abort(c, err)
		return
	}

	session, err := s.checkout.CreateCheckout(ctx, req.AssessmentID, req.Email)
	if err != nil {
		errors.Abort(c, err)
		return
	}

	slog.Info("Checkout session created",
		"assessment", privacy.AnonymizeData(req.AssessmentID),
		"provider", s.checkout.ProviderName(),
	)

	c.JSON(http.StatusOK, types.CheckoutResponse{
		CheckoutURL: session.URL,
		SessionID:   session.ID,
	})
}

// handleStripeWebhook godoc
// @Summary Stripe webhook
// @Tags checkout
// @Accept json
// @Param Stripe-Signature header string true "Webhook signature"
// @Success 200
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/webhook/stripe [post]
func (s *server) handleStripeWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		errors.Abort(c, errors.NewValidationError("Failed to read request body", err.Error()))
		return
	}

	completed, err := s.checkout.ParseWebhook(body, c.GetHeader("Stripe-Signature"))
	if err != nil {
		errors.Abort(c, err)
		return
	}

	if completed != nil {
		err := s.assessments.CompletePayment(c.Request.Context(),
			completed.AssessmentID, completed.SessionID, completed.Email, completed.Currency, completed.Amount)
		switch {
		case stderrors.Is(err, database.ErrNotFound):
			// deleted before payment settled; acknowledge so Stripe stops retrying
			slog.Warn("Payment for unknown assessment", "session_id", completed.SessionID)
		case err != nil:
			errors.Abort(c, err)
			return
		default:
			slog.Info("Payment recorded",
				"assessment", privacy.AnonymizeData(completed.AssessmentID),
				"amount", completed.Amount,
				"currency", completed.Currency,
			)
		}
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// handleArchetypeStats godoc
// @Summary Archetype distribution
// @Tags stats
// @Produce json
// @Param period query string false "daily, weekly, monthly or all_time"
// @Success 200 {object} stats.Distribution
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/stats/archetypes [get]
func (s *server) handleArchetypeStats(c *gin.Context) {
	dist, err := s.stats.Distribution(c.Request.Context(), c.DefaultQuery("period", stats.PeriodAllTime))
	if err != nil {
		errors.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, dist)
}

func (s *server) handleMetrics(c *gin.Context) {
	stored, err := s.assessments.Count(c.Request.Context())
	if err != nil {
		slog.Warn("Failed to count stored assessments", "error", err)
		stored = -1
	}

	c.JSON(http.StatusOK, gin.H{
		"stored_assessments": stored,
		"metrics":            s.metrics.GetStats(),
		"stats_cache":        s.stats.CacheStats(),
		"static_cache":       s.static.Stats(),
		"rate_limit":         s.limiter.GetStats(),
		"database_driver":    s.db.Dialect(),
		"database_pool":      s.db.GetPoolStats(),
		"redis_pool":         s.redis.GetPoolStats(),
		"checkout_breaker":   s.checkout.BreakerStats(),
		"retention":          s.privacy.GetDataRetentionInfo(),
		"compression":        s.compression.GetStats(),
		"timestamp":          time.Now().Format(time.RFC3339),
	})
}
