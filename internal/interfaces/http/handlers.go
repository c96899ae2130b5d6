package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chairulridjaal/invoice-chain-agent/internal/ledger"
	"github.com/chairulridjaal/invoice-chain-agent/internal/models"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	service Service
	logger  Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(svc Service, logger Logger) *Handlers {
	return &Handlers{
		service: svc,
		logger:  logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string       `json:"status"`
	Timestamp string       `json:"timestamp"`
	Version   string       `json:"version"`
	Pipeline  PipelineInfo `json:"pipeline"`
}

// PipelineInfo describes the validation pipeline shape
type PipelineInfo struct {
	Stages     int      `json:"stages"`
	MaxScore   int      `json:"max_score"`
	Components []string `json:"components"`
}

// InvoiceResponse represents a recorded invoice in API responses
type InvoiceResponse struct {
	RecordID        string  `json:"record_id"`
	InvoiceID       string  `json:"invoice_id"`
	VendorName      string  `json:"vendor_name"`
	TaxID           string  `json:"tax_id"`
	Amount          float64 `json:"amount"`
	Date            string  `json:"date"`
	Status          string  `json:"status"`
	Score           int     `json:"score"`
	FraudRisk       string  `json:"fraud_risk"`
	Explanation     string  `json:"explanation"`
	TransactionHash string  `json:"transaction_hash"`
	CreatedAt       string  `json:"created_at"`
}

// ListInvoicesRequest represents query parameters for listing invoices
type ListInvoicesRequest struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
		Pipeline: PipelineInfo{
			Stages:   4,
			MaxScore: 100,
			Components: []string{
				"basic_validation",
				"erp_validation",
				"contextual_validation",
				"fraud_detection",
			},
		},
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// SubmitInvoice handles POST /submit
func (h *Handlers) SubmitInvoice(c *gin.Context) {
	var rec models.InvoiceRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		h.logger.Error("Invalid invoice payload", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid invoice payload",
		})
		return
	}

	result := h.service.Process(c.Request.Context(), &rec)

	c.JSON(http.StatusOK, Response{
		Success: result.Status != models.StatusError,
		Data:    result,
	})
}

// ListInvoices handles GET /invoices
func (h *Handlers) ListInvoices(c *gin.Context) {
	var req ListInvoicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Error("Invalid query parameters", "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid query parameters",
		})
		return
	}

	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 20
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	records, err := h.service.List(c.Request.Context(), req.Limit, req.Offset)
	if err != nil {
		h.logger.Error("Failed to list invoices", "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve invoices",
		})
		return
	}

	responses := make([]InvoiceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toInvoiceResponse(rec))
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    responses,
	})
}

// GetInvoice handles GET /invoice/:id. It returns the most recent ledger
// record for the invoice.
func (h *Handlers) GetInvoice(c *gin.Context) {
	invoiceID := c.Param("id")

	records, err := h.service.History(c.Request.Context(), invoiceID)
	if err != nil {
		h.logger.Error("Failed to get invoice", "invoice_id", invoiceID, "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve invoice",
		})
		return
	}
	if len(records) == 0 {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Error:   "invoice not found",
		})
		return
	}

	latest := records[len(records)-1]
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    toInvoiceResponse(latest),
	})
}

// GetAuditTrail handles GET /audit/:id. It returns every ledger record for
// the invoice, oldest first.
func (h *Handlers) GetAuditTrail(c *gin.Context) {
	invoiceID := c.Param("id")

	records, err := h.service.History(c.Request.Context(), invoiceID)
	if err != nil {
		h.logger.Error("Failed to get audit trail", "invoice_id", invoiceID, "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve audit trail",
		})
		return
	}
	if len(records) == 0 {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Error:   "no audit records for invoice",
		})
		return
	}

	responses := make([]InvoiceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toInvoiceResponse(rec))
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: gin.H{
			"invoice_id": invoiceID,
			"records":    responses,
			"count":      len(responses),
		},
	})
}

// GetStats handles GET /stats
func (h *Handlers) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to aggregate stats", "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to aggregate stats",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    stats,
	})
}

// toInvoiceResponse converts a ledger record to the API response shape
func toInvoiceResponse(rec *ledger.Record) InvoiceResponse {
	return InvoiceResponse{
		RecordID:        rec.ID,
		InvoiceID:       rec.InvoiceID,
		VendorName:      rec.VendorName,
		TaxID:           rec.TaxID,
		Amount:          rec.Amount,
		Date:            rec.Date,
		Status:          rec.Status,
		Score:           rec.Score,
		FraudRisk:       rec.FraudRisk(),
		Explanation:     rec.Explanation,
		TransactionHash: rec.TransactionHash,
		CreatedAt:       rec.CreatedAt.Format(time.RFC3339),
	}
}
