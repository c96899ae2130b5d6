// Package explain turns a validation verdict into a human-readable decision
// explanation, via an external language model when one is configured and a
// deterministic template otherwise.
package explain

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/chairulridjaal/invoice-chain-agent/internal/models"
)

// Config holds the external generator settings. An empty APIKey disables the
// external call entirely; every explanation then comes from the fallback.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// Generator produces decision explanations. Failure of the external call is
// never propagated: the generator always returns a usable string, and the
// fallback is byte-identical regardless of why the external path failed.
type Generator struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	logger      *zap.Logger
}

// NewGenerator creates an explanation generator.
func NewGenerator(cfg Config, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}

	var client *openai.Client
	if cfg.APIKey != "" {
		clientCfg := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
		client = openai.NewClientWithConfig(clientCfg)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Generator{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     timeout,
		logger:      logger,
	}
}

// Explain produces the explanation for one validated invoice.
func (g *Generator) Explain(ctx context.Context, rec *models.InvoiceRecord, verdict *models.ValidationVerdict) string {
	if g.client == nil {
		return g.Fallback(rec, verdict)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(rec, verdict),
			},
		},
	})
	if err != nil {
		g.logger.Warn("Explanation API call failed, using fallback", zap.Error(err))
		return g.Fallback(rec, verdict)
	}
	if len(resp.Choices) == 0 {
		g.logger.Warn("Explanation API returned no choices, using fallback")
		return g.Fallback(rec, verdict)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		g.logger.Warn("Explanation API returned empty content, using fallback")
		return g.Fallback(rec, verdict)
	}
	return content
}

// Fallback builds the deterministic templated explanation. It depends only
// on the record and the verdict, so repeated calls yield identical text no
// matter which external failure triggered it.
func (g *Generator) Fallback(rec *models.InvoiceRecord, verdict *models.ValidationVerdict) string {
	invoiceID := rec.InvoiceID
	if invoiceID == "" {
		invoiceID = "Unknown"
	}

	if len(verdict.Issues) == 0 {
		return fmt.Sprintf(
			"Invoice %s APPROVED (Score: %d/100) - All validation stages passed. Vendor: %s, Amount: $%.2f. Ready for processing and ledger logging.",
			invoiceID, verdict.OverallScore, rec.VendorName, rec.Amount.Float64())
	}

	if critical := verdict.CriticalIssues(); len(critical) > 0 {
		return fmt.Sprintf(
			"Invoice %s REJECTED - Critical issues detected: %s. Immediate review required.",
			invoiceID, strings.Join(models.Messages(critical), "; "))
	}

	shown := verdict.Issues
	truncated := ""
	if len(shown) > 3 {
		shown = shown[:3]
		truncated = "..."
	}
	statusWord := strings.ToUpper(strings.ReplaceAll(string(verdict.Status), "_", " "))
	return fmt.Sprintf(
		"Invoice %s %s - Validation finished with findings. Issues: %s%s. Please review before payment.",
		invoiceID, statusWord, strings.Join(models.Messages(shown), "; "), truncated)
}
