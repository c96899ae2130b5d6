package ledger

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chairulridjaal/invoice-chain-agent/internal/models"
)

// SQLiteLedger is the local append-only ledger implementation. It only ever
// inserts: there are no update or delete statements, so history for an
// invoice accumulates one record per submission.
type SQLiteLedger struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteLedger creates a ledger over an open database. The schema is
// managed by the database migrator.
func NewSQLiteLedger(db *sql.DB, logger *zap.Logger) *SQLiteLedger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQLiteLedger{db: db, logger: logger}
}

// Submit appends one record for a validated invoice.
func (l *SQLiteLedger) Submit(ctx context.Context, rec *models.InvoiceRecord, verdict *models.ValidationVerdict, explanation string) (*SubmitResult, error) {
	verdictJSON, err := json.Marshal(verdict)
	if err != nil {
		return nil, fmt.Errorf("failed to encode verdict: %w", err)
	}

	id := uuid.NewString()
	createdAt := time.Now().UTC()
	txHash := transactionHash(rec.InvoiceID, string(verdict.Status), createdAt)

	query := `
		INSERT INTO ledger_records (
			id, invoice_id, vendor_name, tax_id, amount, invoice_date,
			status, score, risk_score, explanation, verdict_json,
			transaction_hash, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = l.db.ExecContext(ctx, query,
		id,
		rec.InvoiceID,
		rec.VendorName,
		rec.TaxID,
		rec.Amount.Float64(),
		rec.Date,
		string(verdict.Status),
		verdict.OverallScore,
		verdict.FraudDetection.RiskScore,
		explanation,
		string(verdictJSON),
		txHash,
		createdAt,
	)
	if err != nil {
		l.logger.Error("Failed to append ledger record",
			zap.String("invoice_id", rec.InvoiceID), zap.Error(err))
		return nil, fmt.Errorf("failed to append ledger record: %w", err)
	}

	l.logger.Info("Ledger record appended",
		zap.String("invoice_id", rec.InvoiceID),
		zap.String("record_id", id),
		zap.String("transaction_hash", txHash))

	return &SubmitResult{
		Success:         true,
		RecordID:        id,
		TransactionHash: txHash,
		Message:         fmt.Sprintf("Invoice %s recorded to ledger", rec.InvoiceID),
	}, nil
}

// GetByInvoiceID returns the full audit trail for one invoice, oldest first.
func (l *SQLiteLedger) GetByInvoiceID(ctx context.Context, invoiceID string) ([]*Record, error) {
	query := selectColumns + ` WHERE invoice_id = ? ORDER BY created_at ASC`

	rows, err := l.db.QueryContext(ctx, query, invoiceID)
	if err != nil {
		l.logger.Error("Failed to query ledger records",
			zap.String("invoice_id", invoiceID), zap.Error(err))
		return nil, fmt.Errorf("failed to query ledger records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// List returns recorded entries, newest first.
func (l *SQLiteLedger) List(ctx context.Context, limit, offset int) ([]*Record, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := selectColumns + ` ORDER BY created_at DESC LIMIT ? OFFSET ?`

	rows, err := l.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		l.logger.Error("Failed to list ledger records", zap.Error(err))
		return nil, fmt.Errorf("failed to list ledger records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Stats aggregates counts and the average score over all records.
func (l *SQLiteLedger) Stats(ctx context.Context) (*Stats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'approved' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'approved_with_conditions' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'rejected' THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(score), 0),
			COALESCE(SUM(CASE WHEN risk_score >= 3 THEN 1 ELSE 0 END), 0)
		FROM ledger_records
	`

	var stats Stats
	err := l.db.QueryRowContext(ctx, query).Scan(
		&stats.Total,
		&stats.Approved,
		&stats.ApprovedWithConditions,
		&stats.Rejected,
		&stats.AverageScore,
		&stats.FraudFlagged,
	)
	if err != nil {
		l.logger.Error("Failed to aggregate ledger stats", zap.Error(err))
		return nil, fmt.Errorf("failed to aggregate ledger stats: %w", err)
	}
	return &stats, nil
}

const selectColumns = `
	SELECT id, invoice_id, vendor_name, tax_id, amount, invoice_date,
		status, score, risk_score, explanation, verdict_json,
		transaction_hash, created_at
	FROM ledger_records`

func scanRecords(rows *sql.Rows) ([]*Record, error) {
	records := make([]*Record, 0)
	for rows.Next() {
		var rec Record
		err := rows.Scan(
			&rec.ID,
			&rec.InvoiceID,
			&rec.VendorName,
			&rec.TaxID,
			&rec.Amount,
			&rec.Date,
			&rec.Status,
			&rec.Score,
			&rec.RiskScore,
			&rec.Explanation,
			&rec.VerdictJSON,
			&rec.TransactionHash,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger record: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// transactionHash fingerprints one appended record. It is a tamper-evidence
// aid for audits, not a distributed-ledger guarantee.
func transactionHash(invoiceID, status string, at time.Time) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%d:%s", invoiceID, at.UnixNano(), status)))
	return fmt.Sprintf("TX-%x", sum[:8])
}
