package privacy

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"
)

// Store is the persistence the privacy service needs
type Store interface {
	DeleteAssessment(ctx context.Context, id string) error
	DeleteUnpaidBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Invalidator is notified after data is removed so derived caches drop it
type Invalidator interface {
	Invalidate()
}

// PrivacyService handles deletion requests and data retention
type PrivacyService struct {
	store         Store
	invalidator   Invalidator
	retentionDays int
	now           func() time.Time
}

// NewService creates a new privacy service. retentionDays <= 0 disables
// retention cleanup.
func NewService(store Store, invalidator Invalidator, retentionDays int) *PrivacyService {
	return &PrivacyService{
		store:         store,
		invalidator:   invalidator,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// AnonymizeData hashes a value for logging
func AnonymizeData(data string) string {
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])[:12]
}

// DeleteAssessment removes an assessment and everything recorded for it
func (ps *PrivacyService) DeleteAssessment(ctx context.Context, id string) error {
	if err := ps.store.DeleteAssessment(ctx, id); err != nil {
		return err
	}
	if ps.invalidator != nil {
		ps.invalidator.Invalidate()
	}

	slog.Info("Assessment data deleted", "assessment", AnonymizeData(id))
	return nil
}

// Cleanup deletes unpaid assessments older than the retention window
func (ps *PrivacyService) Cleanup(ctx context.Context) (int64, error) {
	if ps.retentionDays <= 0 {
		return 0, nil
	}

	cutoff := ps.now().AddDate(0, 0, -ps.retentionDays)
	n, err := ps.store.DeleteUnpaidBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 && ps.invalidator != nil {
		ps.invalidator.Invalidate()
	}

	slog.Info("Data cleanup completed", "cutoff_date", cutoff, "assessments_deleted", n)
	return n, nil
}

// ScheduleCleanup runs Cleanup now and then every interval until ctx is done
func (ps *PrivacyService) ScheduleCleanup(ctx context.Context, interval time.Duration) {
	if ps.retentionDays <= 0 {
		slog.Info("Data retention cleanup disabled")
		return
	}

	slog.Info("Scheduling data cleanup", "retention_days", ps.retentionDays, "interval", interval)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			if _, err := ps.Cleanup(ctx); err != nil && ctx.Err() == nil {
				slog.Error("Data cleanup failed", "error", err)
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// GetDataRetentionInfo describes the retention policy
func (ps *PrivacyService) GetDataRetentionInfo() map[string]interface{} {
	return map[string]interface{}{
		"unpaid_assessment_retention_days": ps.retentionDays,
		"paid_assessment_retention":        "until deleted on request",
		"deletion":                         "DELETE /api/assessments/{id} with the report token",
		"anonymization_method":             "SHA-256",
	}
}
