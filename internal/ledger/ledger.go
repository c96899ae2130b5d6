// Package ledger records validation outcomes to an append-only store. The
// store is an external collaborator behind a narrow interface; its failure is
// non-fatal and never alters an already-computed verdict.
package ledger

import (
	"context"
	"time"

	"github.com/chairulridjaal/invoice-chain-agent/internal/models"
)

// Record is one appended ledger entry. Entries are immutable once written.
type Record struct {
	ID              string    `json:"id"`
	InvoiceID       string    `json:"invoice_id"`
	VendorName      string    `json:"vendor_name"`
	TaxID           string    `json:"tax_id"`
	Amount          float64   `json:"amount"`
	Date            string    `json:"date"`
	Status          string    `json:"status"`
	Score           int       `json:"score"`
	RiskScore       int       `json:"risk_score"`
	Explanation     string    `json:"explanation"`
	VerdictJSON     string    `json:"verdict_json"`
	TransactionHash string    `json:"transaction_hash"`
	CreatedAt       time.Time `json:"created_at"`
}

// FraudRisk buckets the raw risk score for reporting.
func (r *Record) FraudRisk() string {
	switch {
	case r.RiskScore >= 6:
		return "HIGH"
	case r.RiskScore >= 3:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// SubmitResult is the opaque pass-through outcome of a submission.
type SubmitResult struct {
	Success         bool   `json:"success"`
	RecordID        string `json:"record_id,omitempty"`
	TransactionHash string `json:"transaction_hash,omitempty"`
	Message         string `json:"message,omitempty"`
	Error           string `json:"error,omitempty"`
}

// Stats aggregates the recorded outcomes.
type Stats struct {
	Total                  int     `json:"total_processed"`
	Approved               int     `json:"approved"`
	ApprovedWithConditions int     `json:"approved_with_conditions"`
	Rejected               int     `json:"rejected"`
	AverageScore           float64 `json:"average_score"`
	FraudFlagged           int     `json:"fraud_flagged"`
}

// Ledger is the narrow append-only contract the core depends on.
type Ledger interface {
	Submit(ctx context.Context, rec *models.InvoiceRecord, verdict *models.ValidationVerdict, explanation string) (*SubmitResult, error)
	GetByInvoiceID(ctx context.Context, invoiceID string) ([]*Record, error)
	List(ctx context.Context, limit, offset int) ([]*Record, error)
	Stats(ctx context.Context) (*Stats, error)
}
