package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when no assessment matches the id
var ErrNotFound = errors.New("assessment not found")

const (
	stmtInsertAssessment = "insert_assessment"
	stmtGetAssessment    = "get_assessment"
)

const assessmentColumns = `id, email, archetype_primary, archetype_secondary, confidence, hybrid, margin,
	archetype_mix, axis_scores, overhead_index, hours_lost, hours_team, annual_cost,
	raw_responses, context_data, profile_data, model_version, payment_status,
	report_sent, created_at, updated_at`

// Repository handles database operations
type Repository struct {
	db *DB
}

// NewRepository creates a new repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// CreateAssessment inserts a scored assessment
func (r *Repository) CreateAssessment(ctx context.Context, a *Assessment) error {
	mix, err := encodeJSON("archetype mix", a.ArchetypeMix)
	if err != nil {
		return err
	}
	axes, err := encodeJSON("axis scores", a.AxisScores)
	if err != nil {
		return err
	}
	raw, err := encodeJSON("raw responses", a.RawResponses)
	if err != nil {
		return err
	}
	ctxData, err := encodeJSON("context", a.Context)
	if err != nil {
		return err
	}
	profile, err := encodeJSON("profile", a.Profile)
	if err != nil {
		return err
	}

	stmt, err := r.db.GetPreparedStatement(stmtInsertAssessment)
	if err != nil {
		return err
	}

	_, err = stmt.ExecContext(ctx,
		a.ID, a.Email, a.ArchetypePrimary, a.ArchetypeSecondary, a.Confidence, a.Hybrid, a.Margin,
		mix, axes, a.OverheadIndex, a.HoursLost, a.HoursTeam, a.AnnualCost,
		raw, ctxData, profile, a.ModelVersion, a.PaymentStatus,
		a.ReportSent, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create assessment: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssessment(row rowScanner) (*Assessment, error) {
	var a Assessment
	var mix, axes, raw, ctxData, profile string
	err := row.Scan(
		&a.ID, &a.Email, &a.ArchetypePrimary, &a.ArchetypeSecondary, &a.Confidence, &a.Hybrid, &a.Margin,
		&mix, &axes, &a.OverheadIndex, &a.HoursLost, &a.HoursTeam, &a.AnnualCost,
		&raw, &ctxData, &profile, &a.ModelVersion, &a.PaymentStatus,
		&a.ReportSent, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := decodeJSON("archetype mix", mix, &a.ArchetypeMix); err != nil {
		return nil, err
	}
	if err := decodeJSON("axis scores", axes, &a.AxisScores); err != nil {
		return nil, err
	}
	if err := decodeJSON("raw responses", raw, &a.RawResponses); err != nil {
		return nil, err
	}
	if err := decodeJSON("context", ctxData, &a.Context); err != nil {
		return nil, err
	}
	if err := decodeJSON("profile", profile, &a.Profile); err != nil {
		return nil, err
	}

	return &a, nil
}

// GetAssessment loads an assessment by id
func (r *Repository) GetAssessment(ctx context.Context, id string) (*Assessment, error) {
	stmt, err := r.db.GetPreparedStatement(stmtGetAssessment)
	if err != nil {
		return nil, err
	}

	a, err := scanAssessment(stmt.QueryRowContext(ctx, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	return a, nil
}

// AttachEmail records the buyer email and marks the checkout as pending
func (r *Repository) AttachEmail(ctx context.Context, id, email string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE assessments SET email = ?, payment_status = ?, updated_at = ?
		WHERE id = ? AND payment_status <> ?
	`), email, PaymentPending, time.Now().UTC(), id, PaymentPaid)
	if err != nil {
		return fmt.Errorf("failed to attach email: %w", err)
	}
	return r.requireRow(ctx, res, id)
}

// requireRow turns a zero-row update into ErrNotFound unless the row exists
// in a state the update skipped on purpose.
func (r *Repository) requireRow(ctx context.Context, res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n > 0 {
		return nil
	}

	var exists int
	err = r.db.QueryRowContext(ctx, r.db.Rebind(`SELECT 1 FROM assessments WHERE id = ?`), id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// MarkPaid flags the assessment as paid and records the payment. Replayed
// webhooks for the same session are a no-op.
func (r *Repository) MarkPaid(ctx context.Context, p *Payment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existing int
	err = tx.QueryRowContext(ctx, r.db.Rebind(`SELECT COUNT(*) FROM payments WHERE stripe_session_id = ?`), p.StripeSessionID).Scan(&existing)
	if err != nil {
		return fmt.Errorf("failed to check payment: %w", err)
	}
	if existing > 0 {
		return nil
	}

	res, err := tx.ExecContext(ctx, r.db.Rebind(`
		UPDATE assessments SET payment_status = ?, updated_at = ?,
			email = CASE WHEN email = '' THEN ? ELSE email END
		WHERE id = ?
	`), PaymentPaid, time.Now().UTC(), p.Email, p.AssessmentID)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	_, err = tx.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO payments (id, assessment_id, stripe_session_id, email, amount, currency, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`), p.ID, p.AssessmentID, p.StripeSessionID, p.Email, p.Amount, p.Currency, p.Status, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit payment: %w", err)
	}
	return nil
}

// ListPayments returns the payments of an assessment, newest first
func (r *Repository) ListPayments(ctx context.Context, assessmentID string) ([]Payment, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(`
		SELECT id, assessment_id, stripe_session_id, email, amount, currency, status, created_at
		FROM payments WHERE assessment_id = ? ORDER BY created_at DESC
	`), assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments := []Payment{}
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.AssessmentID, &p.StripeSessionID, &p.Email, &p.Amount, &p.Currency, &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// DeleteAssessment removes an assessment and its payments
func (r *Repository) DeleteAssessment(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, r.db.Rebind(`DELETE FROM payments WHERE assessment_id = ?`), id); err != nil {
		return fmt.Errorf("failed to delete payments: %w", err)
	}
	res, err := tx.ExecContext(ctx, r.db.Rebind(`DELETE FROM assessments WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete assessment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// DeleteUnpaidBefore removes unpaid assessments created before cutoff
func (r *Repository) DeleteUnpaidBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		DELETE FROM assessments WHERE payment_status <> ? AND created_at < ?
	`), PaymentPaid, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired assessments: %w", err)
	}
	return res.RowsAffected()
}

// ArchetypeDistribution aggregates stored assessments by primary archetype
func (r *Repository) ArchetypeDistribution(ctx context.Context, since time.Time) ([]ArchetypeCount, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(`
		SELECT archetype_primary, COUNT(*), AVG(overhead_index), AVG(annual_cost)
		FROM assessments
		WHERE created_at >= ?
		GROUP BY archetype_primary
		ORDER BY COUNT(*) DESC, archetype_primary ASC
	`), since.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query archetype distribution: %w", err)
	}
	defer rows.Close()

	var counts []ArchetypeCount
	for rows.Next() {
		var c ArchetypeCount
		if err := rows.Scan(&c.Archetype, &c.Count, &c.AverageOverhead, &c.AverageCost); err != nil {
			return nil, fmt.Errorf("failed to scan archetype count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// CountAssessments returns the number of stored assessments
func (r *Repository) CountAssessments(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM assessments`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count assessments: %w", err)
	}
	return n, nil
}
