package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"agency-console/internal/invoicepdf"
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Invoice documents",
}

var invoicePDFCmd = &cobra.Command{
	Use:   "pdf [invoice-id]",
	Short: "Render an invoice to PDF",
	Example: `  # Write Invoice_<number>.pdf to the current directory
  agency-console invoice pdf 64f1c2

  # Choose the file and keep a copy in the archive bucket
  agency-console invoice pdf 64f1c2 -o march.pdf --archive`,
	Args: cobra.ExactArgs(1),
	RunE: runInvoicePDF,
}

var (
	pdfOutput  string
	pdfArchive bool
)

func init() {
	invoicePDFCmd.Flags().StringVarP(&pdfOutput, "output", "o", "", "output file (default Invoice_<number>.pdf)")
	invoicePDFCmd.Flags().BoolVar(&pdfArchive, "archive", false, "also store the PDF in the archive bucket")
	invoiceCmd.AddCommand(invoicePDFCmd)
	rootCmd.AddCommand(invoiceCmd)
}

func runInvoicePDF(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := buildApp(ctx, cfg, nil, nil)
	if err != nil {
		return err
	}
	defer a.Close()
	if !a.Session.IsAuthenticated() {
		return errNotSignedIn
	}

	inv, err := a.Invoices.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("load invoice: %w", err)
	}
	client := a.Invoices.BillTo(ctx, inv)
	data, err := invoicepdf.Render(inv, client.Address, a.Company)
	if err != nil {
		return fmt.Errorf("render invoice: %w", err)
	}

	name := invoicepdf.FileName(inv)
	out := pdfOutput
	if out == "" {
		out = name
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", out, len(data))

	if pdfArchive {
		if a.Archive == nil {
			return fmt.Errorf("archive is not enabled in the config")
		}
		key, err := a.Archive.PutPDF(ctx, name, data)
		if err != nil {
			return fmt.Errorf("archive: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Archived as %s\n", key)
	}
	return nil
}
