package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"agency-console/internal/export"
)

var exportCmd = &cobra.Command{
	Use:       "export [invoices|salaries]",
	Short:     "Export a collection to an .xlsx spreadsheet",
	Example:   `  agency-console export invoices -o invoices-2025.xlsx`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"invoices", "salaries"},
	RunE:      runExport,
}

var (
	exportOutput string
	exportQuery  string
)

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default <collection>.xlsx)")
	exportCmd.Flags().StringVarP(&exportQuery, "query", "q", "", "invoice search filter")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := buildApp(ctx, cfg, nil, nil)
	if err != nil {
		return err
	}
	defer a.Close()
	if !a.Session.IsAuthenticated() {
		return errNotSignedIn
	}

	var buf *bytes.Buffer
	switch args[0] {
	case "invoices":
		invoices, err := a.Invoices.List(ctx, exportQuery)
		if err != nil {
			return fmt.Errorf("load invoices: %w", err)
		}
		buf, err = export.Invoices(invoices)
		if err != nil {
			return err
		}
	case "salaries":
		payments, err := a.Salaries.All(ctx)
		if err != nil {
			return fmt.Errorf("load salaries: %w", err)
		}
		buf, err = export.Salaries(payments)
		if err != nil {
			return err
		}
	}

	out := exportOutput
	if out == "" {
		out = args[0] + ".xlsx"
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", buf.Len(), out)
	return nil
}
