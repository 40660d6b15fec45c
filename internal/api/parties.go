package api

import (
	"database/sql"
	"errors"
	"net/http"

	"gstinvoice/m/domain"
)

// Buyer handlers

type buyerRequest struct {
	Name      string `json:"name" validate:"required"`
	Address   string `json:"address"`
	GSTIN     string `json:"gstin" validate:"omitempty,len=15,alphanum"`
	State     string `json:"state"`
	StateCode string `json:"state_code" validate:"omitempty,numeric,len=2"`
	Phone     string `json:"phone"`
	Email     string `json:"email" validate:"omitempty,email"`
}

func (h *Handler) createBuyer(w http.ResponseWriter, r *http.Request) {
	if !h.canWrite(w, r) {
		return
	}
	var req buyerRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	var id int64
	err := h.db.QueryRowxContext(r.Context(), `INSERT INTO buyers (name, address, gstin, state, state_code, phone, email) VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		req.Name, req.Address, req.GSTIN, req.State, req.StateCode, req.Phone, req.Email).Scan(&id)
	if err != nil {
		h.logError("createBuyer", "insert", req, err)
		respondError(w, http.StatusInternalServerError, "unable to create buyer")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"id": id, "name": req.Name})
}

func (h *Handler) listBuyers(w http.ResponseWriter, r *http.Request) {
	buyers := []domain.Buyer{}
	if err := h.db.SelectContext(r.Context(), &buyers, `SELECT id, name, address, gstin, state, state_code, phone, email, created_at FROM buyers ORDER BY name`); err != nil {
		h.logError("listBuyers", "select", nil, err)
		respondError(w, http.StatusInternalServerError, "unable to list buyers")
		return
	}
	respondJSON(w, http.StatusOK, buyers)
}

func (h *Handler) getBuyer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid buyer id")
		return
	}
	var buyer domain.Buyer
	err := h.db.GetContext(r.Context(), &buyer, `SELECT id, name, address, gstin, state, state_code, phone, email, created_at FROM buyers WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "buyer not found")
		return
	}
	if err != nil {
		h.logError("getBuyer", "select", id, err)
		respondError(w, http.StatusInternalServerError, "unable to fetch buyer")
		return
	}
	respondJSON(w, http.StatusOK, buyer)
}

func (h *Handler) updateBuyer(w http.ResponseWriter, r *http.Request) {
	if !h.canWrite(w, r) {
		return
	}
	id, ok := idParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid buyer id")
		return
	}
	var req buyerRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	res, err := h.db.ExecContext(r.Context(), `UPDATE buyers SET name = ?, address = ?, gstin = ?, state = ?, state_code = ?, phone = ?, email = ? WHERE id = ?`,
		req.Name, req.Address, req.GSTIN, req.State, req.StateCode, req.Phone, req.Email, id)
	h.respondMutation(w, res, err, "updateBuyer", "buyer", "updated")
}

func (h *Handler) deleteBuyer(w http.ResponseWriter, r *http.Request) {
	if !h.canDelete(w, r) {
		return
	}
	id, ok := idParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid buyer id")
		return
	}
	res, err := h.db.ExecContext(r.Context(), `DELETE FROM buyers WHERE id = ?`, id)
	h.respondMutation(w, res, err, "deleteBuyer", "buyer", "deleted")
}

// Seller handlers

type sellerRequest struct {
	Name      string `json:"name" validate:"required"`
	Address   string `json:"address"`
	GSTIN     string `json:"gstin" validate:"omitempty,len=15,alphanum"`
	PAN       string `json:"pan" validate:"omitempty,len=10,alphanum"`
	State     string `json:"state"`
	StateCode string `json:"state_code" validate:"omitempty,numeric,len=2"`
	Phone     string `json:"phone"`
	Email     string `json:"email" validate:"omitempty,email"`
}

func (h *Handler) createSeller(w http.ResponseWriter, r *http.Request) {
	if !h.canWrite(w, r) {
		return
	}
	var req sellerRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	var id int64
	err := h.db.QueryRowxContext(r.Context(), `INSERT INTO sellers (name, address, gstin, pan, state, state_code, phone, email) VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		req.Name, req.Address, req.GSTIN, req.PAN, req.State, req.StateCode, req.Phone, req.Email).Scan(&id)
	if err != nil {
		h.logError("createSeller", "insert", req, err)
		respondError(w, http.StatusInternalServerError, "unable to create seller")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"id": id, "name": req.Name})
}

func (h *Handler) listSellers(w http.ResponseWriter, r *http.Request) {
	sellers := []domain.Seller{}
	if err := h.db.SelectContext(r.Context(), &sellers, `SELECT id, name, address, gstin, pan, state, state_code, phone, email, created_at FROM sellers ORDER BY id`); err != nil {
		h.logError("listSellers", "select", nil, err)
		respondError(w, http.StatusInternalServerError, "unable to list sellers")
		return
	}
	respondJSON(w, http.StatusOK, sellers)
}

func (h *Handler) getSeller(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid seller id")
		return
	}
	var seller domain.Seller
	err := h.db.GetContext(r.Context(), &seller, `SELECT id, name, address, gstin, pan, state, state_code, phone, email, created_at FROM sellers WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "seller not found")
		return
	}
	if err != nil {
		h.logError("getSeller", "select", id, err)
		respondError(w, http.StatusInternalServerError, "unable to fetch seller")
		return
	}
	respondJSON(w, http.StatusOK, seller)
}

func (h *Handler) updateSeller(w http.ResponseWriter, r *http.Request) {
	if !h.canWrite(w, r) {
		return
	}
	id, ok := idParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid seller id")
		return
	}
	var req sellerRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	res, err := h.db.ExecContext(r.Context(), `UPDATE sellers SET name = ?, address = ?, gstin = ?, pan = ?, state = ?, state_code = ?, phone = ?, email = ? WHERE id = ?`,
		req.Name, req.Address, req.GSTIN, req.PAN, req.State, req.StateCode, req.Phone, req.Email, id)
	h.respondMutation(w, res, err, "updateSeller", "seller", "updated")
}

func (h *Handler) deleteSeller(w http.ResponseWriter, r *http.Request) {
	if !h.canDelete(w, r) {
		return
	}
	id, ok := idParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid seller id")
		return
	}
	res, err := h.db.ExecContext(r.Context(), `DELETE FROM sellers WHERE id = ?`, id)
	h.respondMutation(w, res, err, "deleteSeller", "seller", "deleted")
}

// Bank handlers

type bankRequest struct {
	AccountName string `json:"account_name" validate:"required"`
	BankName    string `json:"bank_name" validate:"required"`
	AccountNo   string `json:"account_no" validate:"required,numeric"`
	IFSC        string `json:"ifsc" validate:"omitempty,len=11,alphanum"`
	Branch      string `json:"branch"`
}

func (h *Handler) createBank(w http.ResponseWriter, r *http.Request) {
	if !h.canWrite(w, r) {
		return
	}
	var req bankRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	var id int64
	err := h.db.QueryRowxContext(r.Context(), `INSERT INTO banks (account_name, bank_name, account_no, ifsc, branch) VALUES (?, ?, ?, ?, ?) RETURNING id`,
		req.AccountName, req.BankName, req.AccountNo, req.IFSC, req.Branch).Scan(&id)
	if err != nil {
		h.logError("createBank", "insert", req.BankName, err)
		respondError(w, http.StatusInternalServerError, "unable to create bank account")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"id": id, "bank_name": req.BankName})
}

func (h *Handler) listBanks(w http.ResponseWriter, r *http.Request) {
	banks := []domain.BankAccount{}
	if err := h.db.SelectContext(r.Context(), &banks, `SELECT id, account_name, bank_name, account_no, ifsc, branch, created_at FROM banks ORDER BY id`); err != nil {
		h.logError("listBanks", "select", nil, err)
		respondError(w, http.StatusInternalServerError, "unable to list bank accounts")
		return
	}
	respondJSON(w, http.StatusOK, banks)
}

func (h *Handler) getBank(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid bank id")
		return
	}
	var bank domain.BankAccount
	err := h.db.GetContext(r.Context(), &bank, `SELECT id, account_name, bank_name, account_no, ifsc, branch, created_at FROM banks WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "bank account not found")
		return
	}
	if err != nil {
		h.logError("getBank", "select", id, err)
		respondError(w, http.StatusInternalServerError, "unable to fetch bank account")
		return
	}
	respondJSON(w, http.StatusOK, bank)
}

func (h *Handler) updateBank(w http.ResponseWriter, r *http.Request) {
	if !h.canWrite(w, r) {
		return
	}
	id, ok := idParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid bank id")
		return
	}
	var req bankRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	res, err := h.db.ExecContext(r.Context(), `UPDATE banks SET account_name = ?, bank_name = ?, account_no = ?, ifsc = ?, branch = ? WHERE id = ?`,
		req.AccountName, req.BankName, req.AccountNo, req.IFSC, req.Branch, id)
	h.respondMutation(w, res, err, "updateBank", "bank account", "updated")
}

func (h *Handler) deleteBank(w http.ResponseWriter, r *http.Request) {
	if !h.canDelete(w, r) {
		return
	}
	id, ok := idParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid bank id")
		return
	}
	res, err := h.db.ExecContext(r.Context(), `DELETE FROM banks WHERE id = ?`, id)
	h.respondMutation(w, res, err, "deleteBank", "bank account", "deleted")
}

// respondMutation answers an UPDATE or DELETE, reporting 404 when no row matched.
func (h *Handler) respondMutation(w http.ResponseWriter, res sql.Result, err error, funcName, entity, status string) {
	if err != nil {
		h.logError(funcName, "exec", entity, err)
		respondError(w, http.StatusInternalServerError, "unable to save "+entity)
		return
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		respondError(w, http.StatusNotFound, entity+" not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": status})
}
