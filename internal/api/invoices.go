package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"gstinvoice/m/domain"
	"gstinvoice/m/internal/billing"
	"gstinvoice/m/internal/render"
)

// ErrNotFound is returned by the invoice store when no row matches.
var ErrNotFound = errors.New("record not found")

const invoiceColumns = `id, invoice_no, invoice_date, seller, buyer, bank,
        taxable_amount, cgst_rate, sgst_rate, cgst_amount, sgst_amount, rounded_off, total_amount, amount_in_words,
        eway_bill_no, vehicle_no, dispatched_through, destination, delivery_note, buyer_order_no, terms_of_delivery,
        irn, ack_no, ack_date, created_at`

// formValue accepts a JSON string, number or null so that half-typed form
// fields reach the permissive parser instead of failing the request.
type formValue struct {
	set bool
	raw string
}

func (f *formValue) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = formValue{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = formValue{set: true, raw: s}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected a number or string, got %s", data)
	}
	*f = formValue{set: true, raw: n.String()}
	return nil
}

type invoiceItemRequest struct {
	ProductID   *int64    `json:"product_id"`
	Description string    `json:"description"`
	HSNSAC      string    `json:"hsn_sac"`
	Quantity    formValue `json:"quantity"`
	Rate        formValue `json:"rate"`
	GSTRate     formValue `json:"gst_rate"`
}

type invoiceRequest struct {
	InvoiceDate string               `json:"invoice_date" validate:"omitempty,datetime=2006-01-02"`
	SellerID    int64                `json:"seller_id" validate:"required"`
	BuyerID     int64                `json:"buyer_id" validate:"required"`
	BankID      int64                `json:"bank_id" validate:"required"`
	CGSTRate    formValue            `json:"cgst_rate"`
	SGSTRate    formValue            `json:"sgst_rate"`
	Items       []invoiceItemRequest `json:"items" validate:"required,min=1"`
	domain.Transport
}

// buildInvoice turns a request into a recomputed invoice. Parties are copied
// by value; missing ids leave the snapshot empty, which only previews allow.
func (h *Handler) buildInvoice(ctx context.Context, req invoiceRequest) (domain.Invoice, error) {
	inv := domain.Invoice{
		InvoiceDate: req.InvoiceDate,
		Transport:   req.Transport,
	}
	if inv.InvoiceDate == "" {
		inv.InvoiceDate = h.now().Format("2006-01-02")
	}

	if req.SellerID != 0 {
		if err := h.db.GetContext(ctx, &inv.Seller, `SELECT id, name, address, gstin, pan, state, state_code, phone, email FROM sellers WHERE id = ?`, req.SellerID); err != nil {
			return inv, lookupError("seller", err)
		}
	}
	if req.BuyerID != 0 {
		if err := h.db.GetContext(ctx, &inv.Buyer, `SELECT id, name, address, gstin, state, state_code, phone, email FROM buyers WHERE id = ?`, req.BuyerID); err != nil {
			return inv, lookupError("buyer", err)
		}
	}
	if req.BankID != 0 {
		if err := h.db.GetContext(ctx, &inv.Bank, `SELECT id, account_name, bank_name, account_no, ifsc, branch FROM banks WHERE id = ?`, req.BankID); err != nil {
			return inv, lookupError("bank account", err)
		}
	}

	for i, row := range req.Items {
		item, err := h.buildItem(ctx, row)
		if err != nil {
			return inv, fmt.Errorf("item %d: %w", i+1, err)
		}
		inv.Items = append(inv.Items, item)
	}

	inv.CGSTRate, inv.SGSTRate = billing.DefaultRates(inv.Items)
	if req.CGSTRate.set {
		inv.CGSTRate = billing.ParseNumberOr(req.CGSTRate.raw, decimal.Zero)
	}
	if req.SGSTRate.set {
		inv.SGSTRate = billing.ParseNumberOr(req.SGSTRate.raw, decimal.Zero)
	}

	billing.Recompute(&inv)
	return inv, nil
}

// buildItem fills a row from the catalog when a product is picked: its name,
// HSN code and GST rate, and its default rate unless one was typed.
func (h *Handler) buildItem(ctx context.Context, row invoiceItemRequest) (domain.InvoiceItem, error) {
	description, hsn := row.Description, row.HSNSAC
	gstRate := billing.ParseNumberOr(row.GSTRate.raw, decimal.Zero)
	rate := row.Rate.raw

	if row.ProductID != nil {
		product, err := h.findProduct(ctx, *row.ProductID)
		if err != nil {
			return domain.InvoiceItem{}, lookupError("product", err)
		}
		if description == "" {
			description = product.Name
		}
		if hsn == "" {
			hsn = product.HSNSAC
		}
		gstRate = product.GSTRate
		if !row.Rate.set {
			rate = product.DefaultRate.String()
		}
	}

	item := billing.NewItem(description, hsn, row.Quantity.raw, rate, gstRate)
	item.ProductID = row.ProductID
	return item, nil
}

type lookupFailure struct {
	entity string
	err    error
}

func (e *lookupFailure) Error() string {
	if errors.Is(e.err, sql.ErrNoRows) {
		return e.entity + " not found"
	}
	return "unable to load " + e.entity + ": " + e.err.Error()
}

func (e *lookupFailure) Unwrap() error { return e.err }

func lookupError(entity string, err error) error {
	return &lookupFailure{entity: entity, err: err}
}

// respondBuildError maps missing referenced records to 400 and anything else to 500.
func (h *Handler) respondBuildError(w http.ResponseWriter, funcName string, err error) {
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logError(funcName, "build", nil, err)
	respondError(w, http.StatusInternalServerError, "unable to build invoice")
}

// Invoice handlers

func (h *Handler) nextInvoiceNumber(w http.ResponseWriter, r *http.Request) {
	var history []string
	if err := h.db.SelectContext(r.Context(), &history, `SELECT invoice_no FROM invoices`); err != nil {
		h.logError("nextInvoiceNumber", "select", nil, err)
		respondError(w, http.StatusInternalServerError, "unable to read invoice history")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"invoice_no": billing.NextInvoiceNumber(history, h.invoicePrefix, h.now()),
	})
}

func (h *Handler) previewInvoice(w http.ResponseWriter, r *http.Request) {
	var req invoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	inv, err := h.buildInvoice(r.Context(), req)
	if err != nil {
		h.respondBuildError(w, "previewInvoice", err)
		return
	}
	respondJSON(w, http.StatusOK, inv)
}

func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	if !h.canWrite(w, r) {
		return
	}
	var req invoiceRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	inv, err := h.buildInvoice(r.Context(), req)
	if err != nil {
		h.respondBuildError(w, "createInvoice", err)
		return
	}

	tx, err := h.db.BeginTxx(r.Context(), nil)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to start invoice")
		return
	}
	defer tx.Rollback()

	var history []string
	if err := tx.SelectContext(r.Context(), &history, `SELECT invoice_no FROM invoices`); err != nil {
		h.logError("createInvoice", "history", nil, err)
		respondError(w, http.StatusInternalServerError, "unable to read invoice history")
		return
	}
	inv.InvoiceNo = billing.NextInvoiceNumber(history, h.invoicePrefix, h.now())

	res, err := tx.NamedExecContext(r.Context(), `INSERT INTO invoices (invoice_no, invoice_date, seller, buyer, bank,
            taxable_amount, cgst_rate, sgst_rate, cgst_amount, sgst_amount, rounded_off, total_amount, amount_in_words,
            eway_bill_no, vehicle_no, dispatched_through, destination, delivery_note, buyer_order_no, terms_of_delivery,
            irn, ack_no, ack_date)
        VALUES (:invoice_no, :invoice_date, :seller, :buyer, :bank,
            :taxable_amount, :cgst_rate, :sgst_rate, :cgst_amount, :sgst_amount, :rounded_off, :total_amount, :amount_in_words,
            :eway_bill_no, :vehicle_no, :dispatched_through, :destination, :delivery_note, :buyer_order_no, :terms_of_delivery,
            :irn, :ack_no, :ack_date)`, &inv)
	if err != nil {
		h.logError("createInvoice", "insert", inv.InvoiceNo, err)
		respondError(w, http.StatusInternalServerError, "unable to create invoice")
		return
	}
	if inv.ID, err = res.LastInsertId(); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create invoice")
		return
	}
	if err := insertItems(r.Context(), tx, inv.ID, inv.Items); err != nil {
		h.logError("createInvoice", "items", inv.InvoiceNo, err)
		respondError(w, http.StatusInternalServerError, "unable to save invoice items")
		return
	}

	if err := tx.Commit(); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to finalize invoice")
		return
	}

	h.logger.WithField("invoice_no", inv.InvoiceNo).WithField("total", inv.TotalAmount.StringFixed(2)).Info("invoice created")
	respondJSON(w, http.StatusCreated, inv)
}

func (h *Handler) updateInvoice(w http.ResponseWriter, r *http.Request) {
	if !h.canWrite(w, r) {
		return
	}
	id, ok := idParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid invoice id")
		return
	}
	var req invoiceRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	existing, err := h.loadInvoice(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		respondError(w, http.StatusNotFound, "invoice not found")
		return
	}
	if err != nil {
		h.logError("updateInvoice", "load", id, err)
		respondError(w, http.StatusInternalServerError, "unable to fetch invoice")
		return
	}

	inv, err := h.buildInvoice(r.Context(), req)
	if err != nil {
		h.respondBuildError(w, "updateInvoice", err)
		return
	}
	inv.ID = existing.ID
	inv.InvoiceNo = existing.InvoiceNo
	inv.CreatedAt = existing.CreatedAt

	tx, err := h.db.BeginTxx(r.Context(), nil)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to start invoice update")
		return
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(r.Context(), `UPDATE invoices SET invoice_date = :invoice_date, seller = :seller, buyer = :buyer, bank = :bank,
            taxable_amount = :taxable_amount, cgst_rate = :cgst_rate, sgst_rate = :sgst_rate, cgst_amount = :cgst_amount,
            sgst_amount = :sgst_amount, rounded_off = :rounded_off, total_amount = :total_amount, amount_in_words = :amount_in_words,
            eway_bill_no = :eway_bill_no, vehicle_no = :vehicle_no, dispatched_through = :dispatched_through,
            destination = :destination, delivery_note = :delivery_note, buyer_order_no = :buyer_order_no,
            terms_of_delivery = :terms_of_delivery, irn = :irn, ack_no = :ack_no, ack_date = :ack_date
        WHERE id = :id`, &inv)
	if err != nil {
		h.logError("updateInvoice", "update", inv.InvoiceNo, err)
		respondError(w, http.StatusInternalServerError, "unable to update invoice")
		return
	}
	if _, err := tx.ExecContext(r.Context(), `DELETE FROM invoice_items WHERE invoice_id = ?`, inv.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update invoice items")
		return
	}
	if err := insertItems(r.Context(), tx, inv.ID, inv.Items); err != nil {
		h.logError("updateInvoice", "items", inv.InvoiceNo, err)
		respondError(w, http.StatusInternalServerError, "unable to update invoice items")
		return
	}
	if err := tx.Commit(); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to finalize invoice update")
		return
	}
	respondJSON(w, http.StatusOK, inv)
}

func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.invoiceFromPath(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, inv)
}

func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, ok := h.invoicesInRange(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, invoices)
}

func (h *Handler) deleteInvoice(w http.ResponseWriter, r *http.Request) {
	if !h.canDelete(w, r) {
		return
	}
	id, ok := idParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid invoice id")
		return
	}
	tx, err := h.db.BeginTxx(r.Context(), nil)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to start invoice delete")
		return
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(r.Context(), `DELETE FROM invoice_items WHERE invoice_id = ?`, id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete invoice items")
		return
	}
	res, err := tx.ExecContext(r.Context(), `DELETE FROM invoices WHERE id = ?`, id)
	if err == nil {
		err = tx.Commit()
	}
	h.respondMutation(w, res, err, "deleteInvoice", "invoice", "deleted")
}

func (h *Handler) invoicePDF(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.invoiceFromPath(w, r)
	if !ok {
		return
	}
	h.respondPDF(w, "invoicePDF", inv, "invoice", func(buf *bytes.Buffer) error {
		return render.InvoicePDF(buf, inv)
	})
}

func (h *Handler) ewayBillPDF(w http.ResponseWriter, r *http.Request) {
	inv, ok := h.invoiceFromPath(w, r)
	if !ok {
		return
	}
	h.respondPDF(w, "ewayBillPDF", inv, "eway-bill", func(buf *bytes.Buffer) error {
		return render.EWayBillPDF(buf, inv)
	})
}

func (h *Handler) respondPDF(w http.ResponseWriter, funcName string, inv domain.Invoice, kind string, write func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		h.logError(funcName, "render", inv.InvoiceNo, err)
		respondError(w, http.StatusInternalServerError, "unable to render document")
		return
	}
	name := kind + "-" + strings.ReplaceAll(inv.InvoiceNo, "/", "-") + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+name)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) invoiceFromPath(w http.ResponseWriter, r *http.Request) (domain.Invoice, bool) {
	id, ok := idParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid invoice id")
		return domain.Invoice{}, false
	}
	inv, err := h.loadInvoice(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		respondError(w, http.StatusNotFound, "invoice not found")
		return inv, false
	}
	if err != nil {
		h.logError("invoiceFromPath", "load", id, err)
		respondError(w, http.StatusInternalServerError, "unable to fetch invoice")
		return inv, false
	}
	return inv, true
}

// Store helpers

func insertItems(ctx context.Context, tx *sqlx.Tx, invoiceID int64, items []domain.InvoiceItem) error {
	for i := range items {
		items[i].InvoiceID = invoiceID
		res, err := tx.NamedExecContext(ctx, `INSERT INTO invoice_items (invoice_id, position, product_id, description, hsn_sac, quantity, rate_per_item, gst_rate, rate_inc_tax, amount)
            VALUES (:invoice_id, :position, :product_id, :description, :hsn_sac, :quantity, :rate_per_item, :gst_rate, :rate_inc_tax, :amount)`, &items[i])
		if err != nil {
			return fmt.Errorf("insert item %d: %w", items[i].Position, err)
		}
		if items[i].ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("insert item %d: %w", items[i].Position, err)
		}
	}
	return nil
}

func (h *Handler) loadInvoice(ctx context.Context, id int64) (domain.Invoice, error) {
	var inv domain.Invoice
	err := h.db.GetContext(ctx, &inv, `SELECT `+invoiceColumns+` FROM invoices WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return inv, ErrNotFound
	}
	if err != nil {
		return inv, fmt.Errorf("load invoice %d: %w", id, err)
	}
	inv.Items = []domain.InvoiceItem{}
	if err := h.db.SelectContext(ctx, &inv.Items, `SELECT id, invoice_id, position, product_id, description, hsn_sac, quantity, rate_per_item, gst_rate, rate_inc_tax, amount
            FROM invoice_items WHERE invoice_id = ? ORDER BY position`, id); err != nil {
		return inv, fmt.Errorf("load items of invoice %d: %w", id, err)
	}
	return inv, nil
}

// findInvoices returns invoices dated within [start, end] (either bound may be
// empty) with their items, newest first.
func (h *Handler) findInvoices(ctx context.Context, start, end string) ([]domain.Invoice, error) {
	var (
		args    []any
		clauses []string
	)
	if start != "" {
		args = append(args, start)
		clauses = append(clauses, "invoice_date >= ?")
	}
	if end != "" {
		args = append(args, end)
		clauses = append(clauses, "invoice_date <= ?")
	}
	query := `SELECT ` + invoiceColumns + ` FROM invoices`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY invoice_date DESC, id DESC"

	invoices := []domain.Invoice{}
	if err := h.db.SelectContext(ctx, &invoices, query, args...); err != nil {
		return nil, fmt.Errorf("select invoices: %w", err)
	}
	if len(invoices) == 0 {
		return invoices, nil
	}

	ids := make([]int64, len(invoices))
	for i, inv := range invoices {
		ids[i] = inv.ID
	}
	itemsQuery, itemsArgs, err := sqlx.In(`SELECT id, invoice_id, position, product_id, description, hsn_sac, quantity, rate_per_item, gst_rate, rate_inc_tax, amount
            FROM invoice_items WHERE invoice_id IN (?) ORDER BY invoice_id, position`, ids)
	if err != nil {
		return nil, fmt.Errorf("prepare items query: %w", err)
	}
	itemsQuery = h.db.Rebind(itemsQuery)

	var rows []domain.InvoiceItem
	if err := h.db.SelectContext(ctx, &rows, itemsQuery, itemsArgs...); err != nil {
		return nil, fmt.Errorf("select invoice items: %w", err)
	}
	byInvoice := make(map[int64][]domain.InvoiceItem)
	for _, row := range rows {
		byInvoice[row.InvoiceID] = append(byInvoice[row.InvoiceID], row)
	}
	for i := range invoices {
		invoices[i].Items = byInvoice[invoices[i].ID]
		if invoices[i].Items == nil {
			invoices[i].Items = []domain.InvoiceItem{}
		}
	}
	return invoices, nil
}
