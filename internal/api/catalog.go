package api

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"gstinvoice/m/domain"
	"gstinvoice/m/internal/billing"
)

const productColumns = `id, kind, name, hsn_sac, gst_rate, default_rate, capacity, created_at`

type productRequest struct {
	Name        string          `json:"name" validate:"required"`
	HSNSAC      string          `json:"hsn_sac" validate:"omitempty,numeric,min=4,max=8"`
	GSTRate     decimal.Decimal `json:"gst_rate"`
	DefaultRate decimal.Decimal `json:"default_rate"`
	Capacity    string          `json:"capacity"`
}

func (p productRequest) check() error {
	return billing.CheckCatalogRates(p.GSTRate, p.DefaultRate)
}

// catalogRoutes serves the cylinder and bottle catalogs from the products table.
func (h *Handler) catalogRoutes(kind domain.ProductKind) func(chi.Router) {
	return func(r chi.Router) {
		r.Post("/", h.createProduct(kind))
		r.Get("/", h.listProducts(kind))
		r.Get("/{id}", h.getProduct(kind))
		r.Put("/{id}", h.updateProduct(kind))
		r.Delete("/{id}", h.deleteProduct(kind))
	}
}

func (h *Handler) createProduct(kind domain.ProductKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.canWrite(w, r) {
			return
		}
		var req productRequest
		if !h.decodeAndValidate(w, r, &req) {
			return
		}
		if err := req.check(); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		var id int64
		err := h.db.QueryRowxContext(r.Context(), `INSERT INTO products (kind, name, hsn_sac, gst_rate, default_rate, capacity) VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
			kind, req.Name, req.HSNSAC, req.GSTRate, req.DefaultRate, req.Capacity).Scan(&id)
		if err != nil {
			if strings.Contains(err.Error(), "UNIQUE") {
				respondError(w, http.StatusConflict, string(kind)+" already exists")
				return
			}
			h.logError("createProduct", "insert", req, err)
			respondError(w, http.StatusInternalServerError, "unable to create "+string(kind))
			return
		}
		respondJSON(w, http.StatusCreated, map[string]any{"id": id, "name": req.Name})
	}
}

func (h *Handler) listProducts(kind domain.ProductKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("query"))
		products := []domain.Product{}
		var err error
		if query == "" {
			err = h.db.SelectContext(r.Context(), &products, `SELECT `+productColumns+` FROM products WHERE kind = ? ORDER BY name`, kind)
		} else {
			like := "%" + query + "%"
			err = h.db.SelectContext(r.Context(), &products, `SELECT `+productColumns+` FROM products WHERE kind = ? AND (name LIKE ? OR hsn_sac LIKE ?) ORDER BY name`, kind, like, like)
		}
		if err != nil {
			h.logError("listProducts", "select", kind, err)
			respondError(w, http.StatusInternalServerError, "unable to list "+string(kind)+"s")
			return
		}
		respondJSON(w, http.StatusOK, products)
	}
}

func (h *Handler) getProduct(kind domain.ProductKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r)
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid "+string(kind)+" id")
			return
		}
		product, err := h.findProduct(r.Context(), id)
		if err == nil && product.Kind != kind {
			err = sql.ErrNoRows
		}
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, string(kind)+" not found")
			return
		}
		if err != nil {
			h.logError("getProduct", "select", id, err)
			respondError(w, http.StatusInternalServerError, "unable to fetch "+string(kind))
			return
		}
		respondJSON(w, http.StatusOK, product)
	}
}

func (h *Handler) updateProduct(kind domain.ProductKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.canWrite(w, r) {
			return
		}
		id, ok := idParam(r)
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid "+string(kind)+" id")
			return
		}
		var req productRequest
		if !h.decodeAndValidate(w, r, &req) {
			return
		}
		if err := req.check(); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		res, err := h.db.ExecContext(r.Context(), `UPDATE products SET name = ?, hsn_sac = ?, gst_rate = ?, default_rate = ?, capacity = ? WHERE id = ? AND kind = ?`,
			req.Name, req.HSNSAC, req.GSTRate, req.DefaultRate, req.Capacity, id, kind)
		h.respondMutation(w, res, err, "updateProduct", string(kind), "updated")
	}
}

func (h *Handler) deleteProduct(kind domain.ProductKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.canDelete(w, r) {
			return
		}
		id, ok := idParam(r)
		if !ok {
			respondError(w, http.StatusBadRequest, "invalid "+string(kind)+" id")
			return
		}
		res, err := h.db.ExecContext(r.Context(), `DELETE FROM products WHERE id = ? AND kind = ?`, id, kind)
		h.respondMutation(w, res, err, "deleteProduct", string(kind), "deleted")
	}
}

func (h *Handler) findProduct(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	err := h.db.GetContext(ctx, &p, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	return p, err
}
