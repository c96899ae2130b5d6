// Package service orchestrates the full invoice processing flow: validation,
// explanation generation and ledger submission.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chairulridjaal/invoice-chain-agent/internal/ledger"
	"github.com/chairulridjaal/invoice-chain-agent/internal/models"
	"github.com/chairulridjaal/invoice-chain-agent/internal/refdata"
	"github.com/chairulridjaal/invoice-chain-agent/internal/validation"
)

// Explainer produces the human-readable decision explanation. It must always
// return a usable string; external failures are absorbed by the implementation.
type Explainer interface {
	Explain(ctx context.Context, rec *models.InvoiceRecord, verdict *models.ValidationVerdict) string
}

// ProcessResult is the complete outcome returned to callers.
type ProcessResult struct {
	InvoiceID         string                    `json:"invoice_id"`
	Status            models.Status             `json:"status"`
	Explanation       string                    `json:"explanation"`
	Score             int                       `json:"score"`
	Issues            []models.Issue            `json:"issues"`
	ValidationDetails *models.ValidationVerdict `json:"validation_details,omitempty"`
	Ledger            *ledger.SubmitResult      `json:"ledger,omitempty"`
	ProcessedAt       time.Time                 `json:"processed_at"`
}

// InvoiceService runs the processing pipeline for submitted invoices.
type InvoiceService struct {
	pipeline  *validation.Pipeline
	refstore  *refdata.Store
	explainer Explainer
	ledger    ledger.Ledger
	logger    *zap.Logger
}

// NewInvoiceService creates the service.
func NewInvoiceService(
	pipeline *validation.Pipeline,
	refstore *refdata.Store,
	explainer Explainer,
	ldg ledger.Ledger,
	logger *zap.Logger,
) *InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{
		pipeline:  pipeline,
		refstore:  refstore,
		explainer: explainer,
		ledger:    ldg,
		logger:    logger,
	}
}

// Process validates one invoice, generates its explanation and appends the
// outcome to the ledger. Explanation and ledger failures are absorbed: the
// verdict is final before either runs and is returned unchanged. A panic
// escaping the pipeline is recovered into the catastrophic fallback record
// (status "error", score zero).
func (s *InvoiceService) Process(ctx context.Context, rec *models.InvoiceRecord) (result *ProcessResult) {
	defer func() {
		if r := recover(); r != nil {
			invoiceID := "Unknown"
			if rec != nil && rec.InvoiceID != "" {
				invoiceID = rec.InvoiceID
			}
			s.logger.Error("Invoice processing panicked",
				zap.String("invoice_id", invoiceID), zap.Any("panic", r))
			result = &ProcessResult{
				InvoiceID:   invoiceID,
				Status:      models.StatusError,
				Explanation: fmt.Sprintf("Invoice processing failed: %v", r),
				Score:       0,
				Issues:      []models.Issue{},
				ProcessedAt: time.Now().UTC(),
			}
		}
	}()

	s.logger.Info("Processing invoice",
		zap.String("invoice_id", rec.InvoiceID),
		zap.String("vendor_name", rec.VendorName),
		zap.Float64("amount", rec.Amount.Float64()))

	verdict := s.pipeline.Validate(rec, s.refstore.Current())
	explanation := s.explainer.Explain(ctx, rec, verdict)

	ledgerResult, err := s.ledger.Submit(ctx, rec, verdict, explanation)
	if err != nil {
		// The verdict is already final; a ledger failure is surfaced in the
		// result but changes nothing else.
		s.logger.Warn("Ledger submission failed",
			zap.String("invoice_id", rec.InvoiceID), zap.Error(err))
		ledgerResult = &ledger.SubmitResult{Success: false, Error: err.Error()}
	}

	return &ProcessResult{
		InvoiceID:         rec.InvoiceID,
		Status:            verdict.Status,
		Explanation:       explanation,
		Score:             verdict.OverallScore,
		Issues:            verdict.Issues,
		ValidationDetails: verdict,
		Ledger:            ledgerResult,
		ProcessedAt:       time.Now().UTC(),
	}
}

// History returns the ledger audit trail for one invoice.
func (s *InvoiceService) History(ctx context.Context, invoiceID string) ([]*ledger.Record, error) {
	return s.ledger.GetByInvoiceID(ctx, invoiceID)
}

// List returns recorded invoices, newest first.
func (s *InvoiceService) List(ctx context.Context, limit, offset int) ([]*ledger.Record, error) {
	return s.ledger.List(ctx, limit, offset)
}

// Stats returns aggregate processing statistics from the ledger.
func (s *InvoiceService) Stats(ctx context.Context) (*ledger.Stats, error) {
	return s.ledger.Stats(ctx)
}

// ReloadReferenceData refreshes the cached vendor/PO master data.
func (s *InvoiceService) ReloadReferenceData() error {
	return s.refstore.Reload()
}
