package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"agency-console/internal/export"
	"agency-console/internal/invoicepdf"
	"agency-console/internal/models"
	"agency-console/internal/payments"
	"agency-console/internal/services"
)

// Archiver keeps a copy of generated documents.
type Archiver interface {
	PutPDF(ctx context.Context, name string, data []byte) (string, error)
}

type InvoiceHandler struct {
	Service  *services.InvoiceService
	Payments *payments.Service
	// Archive is optional.
	Archive Archiver
	Company invoicepdf.Company
}

func NewInvoiceHandler(s *services.InvoiceService, p *payments.Service, a Archiver, company invoicepdf.Company) *InvoiceHandler {
	return &InvoiceHandler{Service: s, Payments: p, Archive: a, Company: company}
}

// ListInvoices returns invoices, filtered by ?q= when given.
func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.Service.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		readError(w, err, "Failed to load invoices")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"invoices": invoices})
}

func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.Service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		readError(w, err, "Failed to load invoice")
		return
	}
	writeJSON(w, http.StatusOK, invoice)
}

// Draft snapshots the selected client's dues for the invoice form.
func (h *InvoiceHandler) Draft(w http.ResponseWriter, r *http.Request) {
	clientID := r.URL.Query().Get("clientId")
	if clientID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "clientId is required"})
		return
	}
	draft, err := h.Service.PrepareDraft(r.Context(), clientID)
	if err != nil {
		readError(w, err, "Failed to load client dues")
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (h *InvoiceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req models.InvoiceRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Service.Create(r.Context(), &req); err != nil {
		mutationError(w, err, "Failed to create invoice")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Invoice created", "grandTotal": req.GrandTotal})
}

func (h *InvoiceHandler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	var req models.InvoiceRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Service.Update(r.Context(), mux.Vars(r)["id"], &req); err != nil {
		mutationError(w, err, "Failed to update invoice")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Invoice updated", "grandTotal": req.GrandTotal})
}

func (h *InvoiceHandler) DeleteInvoice(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		mutationError(w, err, "Failed to delete invoice")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Invoice deleted"})
}

// DownloadPDF renders the invoice. With ?archive=1 a copy is also stored in
// the archive bucket; an archive failure does not block the download.
func (h *InvoiceHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	invoice, err := h.Service.Get(ctx, mux.Vars(r)["id"])
	if err != nil {
		readError(w, err, "Failed to load invoice")
		return
	}
	client := h.Service.BillTo(ctx, invoice)

	pdf, err := invoicepdf.Render(invoice, client.Address, h.Company)
	if err != nil {
		readError(w, err, "Failed to generate invoice PDF")
		return
	}
	name := invoicepdf.FileName(invoice)

	if h.Archive != nil && r.URL.Query().Get("archive") == "1" {
		if key, err := h.Archive.PutPDF(ctx, name, pdf); err == nil {
			w.Header().Set("X-Archive-Key", key)
		}
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	_, _ = w.Write(pdf)
}

// PaymentLink creates a hosted payment page for the invoice's due.
func (h *InvoiceHandler) PaymentLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	invoice, err := h.Service.Get(ctx, mux.Vars(r)["id"])
	if err != nil {
		mutationError(w, err, "Failed to load invoice")
		return
	}
	var req struct {
		CallbackURL string `json:"callbackUrl"`
	}
	if r.ContentLength > 0 && !decode(w, r, &req) {
		return
	}

	link, err := h.Payments.LinkForInvoice(invoice, h.Service.BillTo(ctx, invoice), req.CallbackURL)
	if err != nil {
		mutationError(w, err, "Failed to create payment link")
		return
	}
	writeJSON(w, http.StatusCreated, link)
}

// Export downloads the invoice list as a spreadsheet.
func (h *InvoiceHandler) Export(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.Service.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		readError(w, err, "Failed to load invoices")
		return
	}
	buf, err := export.Invoices(invoices)
	if err != nil {
		readError(w, err, "Failed to export invoices")
		return
	}
	writeSpreadsheet(w, "invoices.xlsx", buf.Bytes())
}

func writeSpreadsheet(w http.ResponseWriter, name string, data []byte) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}
