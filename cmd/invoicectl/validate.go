package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chairulridjaal/invoice-chain-agent/internal/explain"
	"github.com/chairulridjaal/invoice-chain-agent/internal/models"
	"github.com/chairulridjaal/invoice-chain-agent/internal/refdata"
	"github.com/chairulridjaal/invoice-chain-agent/internal/validation"
)

func newValidateCmd() *cobra.Command {
	var (
		invoiceFile string
		refPath     string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run the validation pipeline on an invoice file without a server",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(invoiceFile)
			if err != nil {
				return fmt.Errorf("failed to read invoice file: %w", err)
			}

			var rec models.InvoiceRecord
			if err := json.Unmarshal(data, &rec); err != nil {
				return fmt.Errorf("failed to parse invoice file: %w", err)
			}

			logger := zap.NewNop()
			store, err := refdata.NewStore(refdata.NewFileProvider(refPath, logger), logger)
			if err != nil {
				return fmt.Errorf("failed to load reference data: %w", err)
			}

			pipeline := validation.NewPipeline(validation.Config{}, logger)
			verdict := pipeline.Validate(&rec, store.Current())

			generator := explain.NewGenerator(explain.Config{}, logger)
			explanation := generator.Fallback(&rec, verdict)

			out, err := json.MarshalIndent(map[string]interface{}{
				"invoice_id":  rec.InvoiceID,
				"verdict":     verdict,
				"explanation": explanation,
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode verdict: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&invoiceFile, "file", "f", "", "invoice JSON file (required)")
	cmd.Flags().StringVar(&refPath, "reference", "data/erp_reference.json", "ERP reference data file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
