package api

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"gstinvoice/m/domain"
	"gstinvoice/m/internal/render"
)

// invoicesInRange reads the optional start_date and end_date query
// parameters and loads the matching invoices.
func (h *Handler) invoicesInRange(w http.ResponseWriter, r *http.Request) ([]domain.Invoice, bool) {
	startDate := strings.TrimSpace(r.URL.Query().Get("start_date"))
	if startDate != "" {
		if _, err := time.Parse("2006-01-02", startDate); err != nil {
			respondError(w, http.StatusBadRequest, "start_date must be in YYYY-MM-DD format")
			return nil, false
		}
	}

	endDate := strings.TrimSpace(r.URL.Query().Get("end_date"))
	if endDate != "" {
		if _, err := time.Parse("2006-01-02", endDate); err != nil {
			respondError(w, http.StatusBadRequest, "end_date must be in YYYY-MM-DD format")
			return nil, false
		}
	}

	invoices, err := h.findInvoices(r.Context(), startDate, endDate)
	if err != nil {
		h.logError("invoicesInRange", "select", map[string]string{"start_date": startDate, "end_date": endDate}, err)
		respondError(w, http.StatusInternalServerError, "unable to fetch invoices")
		return nil, false
	}
	return invoices, true
}

func (h *Handler) invoiceRegister(w http.ResponseWriter, r *http.Request) {
	invoices, ok := h.invoicesInRange(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := render.Register(&buf, invoices); err != nil {
		h.logError("invoiceRegister", "render", len(invoices), err)
		respondError(w, http.StatusInternalServerError, "unable to build register")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=invoice-register.xlsx")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
