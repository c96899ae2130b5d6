package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chairulridjaal/invoice-chain-agent/internal/ledger"
	"github.com/chairulridjaal/invoice-chain-agent/internal/models"
	"github.com/chairulridjaal/invoice-chain-agent/internal/refdata"
	"github.com/chairulridjaal/invoice-chain-agent/internal/validation"
)

type staticProvider struct {
	ref *models.ReferenceData
}

func (p *staticProvider) Load() (*models.ReferenceData, error) {
	return p.ref, nil
}

type stubExplainer struct {
	text string
}

func (e *stubExplainer) Explain(ctx context.Context, rec *models.InvoiceRecord, verdict *models.ValidationVerdict) string {
	return e.text
}

type fakeLedger struct {
	submitErr error
	submitted []*models.ValidationVerdict
	records   []*ledger.Record
}

func (f *fakeLedger) Submit(ctx context.Context, rec *models.InvoiceRecord, verdict *models.ValidationVerdict, explanation string) (*ledger.SubmitResult, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	f.submitted = append(f.submitted, verdict)
	return &ledger.SubmitResult{Success: true, RecordID: "rec-1", TransactionHash: "TX-abc"}, nil
}

func (f *fakeLedger) GetByInvoiceID(ctx context.Context, invoiceID string) ([]*ledger.Record, error) {
	return f.records, nil
}

func (f *fakeLedger) List(ctx context.Context, limit, offset int) ([]*ledger.Record, error) {
	return f.records, nil
}

func (f *fakeLedger) Stats(ctx context.Context) (*ledger.Stats, error) {
	return &ledger.Stats{Total: len(f.records)}, nil
}

func testReferenceData() *models.ReferenceData {
	return &models.ReferenceData{
		ApprovedVendors: []models.VendorRecord{
			{
				VendorName:  "Acme Corp",
				TaxID:       "12-3456789",
				CreditLimit: decimal.NewFromInt(50000),
				RiskLevel:   models.RiskLevelLow,
				Status:      models.VendorStatusApproved,
			},
		},
		BlacklistedVendors: []models.VendorRecord{},
		PurchaseOrders: []models.PurchaseOrderRecord{
			{
				PONumber:    "PO-2025-001",
				VendorName:  "Acme Corp",
				TotalAmount: decimal.NewFromInt(1500),
				Status:      models.POStatusOpen,
				CreatedDate: "2025-08-01",
			},
		},
	}
}

func newTestService(t *testing.T, ldg ledger.Ledger) *InvoiceService {
	t.Helper()

	store, err := refdata.NewStore(&staticProvider{ref: testReferenceData()}, nil)
	require.NoError(t, err)

	pipeline := validation.NewPipeline(validation.Config{
		Now: func() time.Time { return time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC) },
	}, nil)

	return NewInvoiceService(pipeline, store, &stubExplainer{text: "explained"}, ldg, nil)
}

func cleanInvoice() *models.InvoiceRecord {
	return &models.InvoiceRecord{
		InvoiceID:  "INV-001",
		VendorName: "Acme Corp",
		TaxID:      "12-3456789",
		Amount:     models.NewAmount(decimal.NewFromInt(1500)),
		Date:       "2025-08-04",
	}
}

func TestProcessApprovedInvoice(t *testing.T) {
	ldg := &fakeLedger{}
	svc := newTestService(t, ldg)

	result := svc.Process(context.Background(), cleanInvoice())

	assert.Equal(t, "INV-001", result.InvoiceID)
	assert.Equal(t, models.StatusApproved, result.Status)
	assert.Equal(t, 100, result.Score)
	assert.Equal(t, "explained", result.Explanation)
	assert.Empty(t, result.Issues)
	require.NotNil(t, result.Ledger)
	assert.True(t, result.Ledger.Success)
	assert.Len(t, ldg.submitted, 1)
	assert.False(t, result.ProcessedAt.IsZero())
}

func TestProcessLedgerFailureDoesNotAlterVerdict(t *testing.T) {
	ldg := &fakeLedger{submitErr: errors.New("disk full")}
	svc := newTestService(t, ldg)

	result := svc.Process(context.Background(), cleanInvoice())

	assert.Equal(t, models.StatusApproved, result.Status)
	assert.Equal(t, 100, result.Score)
	require.NotNil(t, result.Ledger)
	assert.False(t, result.Ledger.Success)
	assert.Equal(t, "disk full", result.Ledger.Error)
}

func TestProcessRecoversFromPanic(t *testing.T) {
	svc := newTestService(t, &fakeLedger{})

	result := svc.Process(context.Background(), nil)

	require.NotNil(t, result)
	assert.Equal(t, "Unknown", result.InvoiceID)
	assert.Equal(t, models.StatusError, result.Status)
	assert.Equal(t, 0, result.Score)
	assert.Contains(t, result.Explanation, "Invoice processing failed")
}

func TestQueryPassthroughs(t *testing.T) {
	ldg := &fakeLedger{records: []*ledger.Record{{ID: "rec-1", InvoiceID: "INV-001"}}}
	svc := newTestService(t, ldg)
	ctx := context.Background()

	history, err := svc.History(ctx, "INV-001")
	require.NoError(t, err)
	assert.Len(t, history, 1)

	list, err := svc.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
}
