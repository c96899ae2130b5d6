package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chairulridjaal/invoice-chain-agent/internal/ledger"
	"github.com/chairulridjaal/invoice-chain-agent/internal/report"
	"github.com/chairulridjaal/invoice-chain-agent/pkg/database"
)

func newExportCmd() *cobra.Command {
	var (
		dbPath     string
		outputPath string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export ledger records to an .xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zap.NewNop()

			db, err := database.New(database.Config{
				Path:            dbPath,
				MaxOpenConns:    1,
				MaxIdleConns:    1,
				ConnMaxLifetime: time.Minute,
			}, logger)
			if err != nil {
				return fmt.Errorf("failed to open ledger database: %w", err)
			}
			defer db.Close()

			invoiceLedger := ledger.NewSQLiteLedger(db.DB, logger)
			records, err := invoiceLedger.List(context.Background(), limit, 0)
			if err != nil {
				return fmt.Errorf("failed to read ledger records: %w", err)
			}

			if err := report.NewExporter().Export(records, outputPath); err != nil {
				return fmt.Errorf("failed to export ledger: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to %s\n", len(records), outputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "data/ledger.db", "ledger database path")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "ledger_export.xlsx", "output .xlsx path")
	cmd.Flags().IntVar(&limit, "limit", 1000, "maximum records to export")

	return cmd
}
