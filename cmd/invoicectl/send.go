package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

// sampleInvoices exercises the three interesting paths: a clean invoice, a
// vendor unknown to the ERP, and a structurally broken submission.
var sampleInvoices = []map[string]interface{}{
	{
		"invoice_id":  "INV-001",
		"vendor_name": "Acme Corp",
		"tax_id":      "12-3456789",
		"amount":      1500.00,
		"date":        "2025-08-03",
		"line_items": []map[string]interface{}{
			{"description": "Office supplies", "quantity": 10, "unit_price": 150.00},
		},
	},
	{
		"invoice_id":  "INV-002",
		"vendor_name": "Tech Solutions Inc",
		"tax_id":      "98-7654321",
		"amount":      750.50,
		"date":        "2025-08-02",
		"line_items": []map[string]interface{}{
			{"description": "Consulting services", "quantity": 5, "unit_price": 150.10},
		},
	},
	{
		"invoice_id":  "INV-003",
		"vendor_name": "Bad Invoice Co",
		"amount":      -100,
		"date":        "invalid-date",
	},
}

func newSendCmd() *cobra.Command {
	var serverURL string

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Submit sample invoices to a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := &http.Client{Timeout: 30 * time.Second}

			for _, invoice := range sampleInvoices {
				body, err := json.Marshal(invoice)
				if err != nil {
					return fmt.Errorf("failed to encode invoice: %w", err)
				}

				resp, err := client.Post(serverURL+"/submit", "application/json", bytes.NewReader(body))
				if err != nil {
					return fmt.Errorf("failed to submit invoice %v: %w", invoice["invoice_id"], err)
				}

				respBody, err := io.ReadAll(resp.Body)
				resp.Body.Close()
				if err != nil {
					return fmt.Errorf("failed to read response for %v: %w", invoice["invoice_id"], err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%v -> HTTP %d\n%s\n\n",
					invoice["invoice_id"], resp.StatusCode, respBody)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "http://localhost:8080", "server base URL")

	return cmd
}
