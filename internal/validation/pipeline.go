// Package validation implements the scored, multi-stage invoice validation
// pipeline: field checks, ERP cross-reference, contextual heuristics and
// fraud detection, combined into a single verdict.
package validation

import (
	"time"

	"go.uber.org/zap"

	"github.com/chairulridjaal/invoice-chain-agent/internal/models"
)

// Decision thresholds for the aggregate score.
const (
	approveThreshold    = 80
	conditionsThreshold = 60
)

// Config carries pipeline construction options.
type Config struct {
	// FraudKeywords overrides the default suspicious-phrase list.
	FraudKeywords []string
	// Now supplies the reference clock for date-relative checks. Defaults to
	// time.Now; tests pin it for deterministic results.
	Now func() time.Time
}

// Pipeline runs the four validation stages in order and aggregates their
// results. Every stage always runs so its issues and score contribute to the
// aggregate even when an earlier stage failed; stages never mutate the
// invoice record and share no state, so one pipeline may validate any number
// of invoices concurrently.
type Pipeline struct {
	fields     *FieldValidator
	crossref   *CrossRefValidator
	contextual *ContextualValidator
	fraud      *FraudEngine
	now        func() time.Time
	logger     *zap.Logger
}

// NewPipeline creates a validation pipeline.
func NewPipeline(cfg Config, logger *zap.Logger) *Pipeline {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		fields:     NewFieldValidator(),
		crossref:   NewCrossRefValidator(),
		contextual: NewContextualValidator(),
		fraud:      NewFraudEngine(cfg.FraudKeywords),
		now:        now,
		logger:     logger,
	}
}

// Validate evaluates one invoice against the reference data and returns the
// complete verdict. A nil reference dataset is treated as empty.
func (p *Pipeline) Validate(rec *models.InvoiceRecord, ref *models.ReferenceData) *models.ValidationVerdict {
	if ref == nil {
		ref = models.EmptyReferenceData()
	}
	now := p.now()

	basic := p.fields.Validate(rec, now)
	erp := p.crossref.Validate(rec, ref)
	contextual := p.contextual.Validate(rec, now)
	fraud := p.fraud.Validate(rec, ref)

	issues := make([]models.Issue, 0,
		len(basic.Issues)+len(erp.Issues)+len(contextual.Issues)+len(fraud.Issues))
	issues = append(issues, basic.Issues...)
	issues = append(issues, erp.Issues...)
	issues = append(issues, contextual.Issues...)
	issues = append(issues, fraud.Issues...)

	total := basic.Score + erp.Score + contextual.Score + fraud.Score

	verdict := &models.ValidationVerdict{
		OverallScore:         total,
		Status:               decideStatus(total, issues),
		Issues:               issues,
		BasicValidation:      basic,
		ERPValidation:        erp,
		ContextualValidation: contextual,
		FraudDetection:       fraud,
	}

	p.logger.Info("Invoice validated",
		zap.String("invoice_id", rec.InvoiceID),
		zap.Int("overall_score", total),
		zap.String("status", string(verdict.Status)),
		zap.Int("issue_count", len(issues)),
		zap.Int("risk_score", fraud.RiskScore))

	return verdict
}

// decideStatus applies the decision rules in strict order. Full approval
// requires a zero issue count of any severity, not just a high score; a
// single cosmetic warning at a perfect score still falls through to
// conditional approval.
func decideStatus(total int, issues []models.Issue) models.Status {
	switch {
	case total >= approveThreshold && len(issues) == 0:
		return models.StatusApproved
	case total >= conditionsThreshold && !models.HasCritical(issues):
		return models.StatusApprovedWithConditions
	default:
		return models.StatusRejected
	}
}
