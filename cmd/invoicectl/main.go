// invoicectl is the operator CLI for the invoice processing service. It can
// validate invoices offline, submit test invoices to a running server and
// export the ledger to a spreadsheet.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"
)

func main() {
	_ = gotenv.Load()

	rootCmd := &cobra.Command{
		Use:          "invoicectl",
		Short:        "Operator tools for the invoice processing service",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newSendCmd())
	rootCmd.AddCommand(newExportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
