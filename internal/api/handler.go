package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"gstinvoice/m/domain"
	"gstinvoice/m/internal/config"
)

type ctxKey string

const (
	ctxUserID ctxKey = "userID"
	ctxRole   ctxKey = "role"
)

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	db            *sqlx.DB
	secret        string
	invoicePrefix string
	logger        *logrus.Logger
	validate      *validator.Validate
	now           func() time.Time
}

// New constructs a Handler.
func New(db *sqlx.DB, cfg config.Config, logger *logrus.Logger) *Handler {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return &Handler{
		db:            db,
		secret:        cfg.Secret,
		invoicePrefix: cfg.InvoicePrefix,
		logger:        logger,
		validate:      v,
		now:           time.Now,
	}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Group(func(protected chi.Router) {
			protected.Use(h.authMiddleware)
			protected.Post("/reset-password", h.resetPassword)
		})
	})

	r.Group(func(pr chi.Router) {
		pr.Use(h.authMiddleware)

		pr.Route("/buyers", func(r chi.Router) {
			r.Post("/", h.createBuyer)
			r.Get("/", h.listBuyers)
			r.Get("/{id}", h.getBuyer)
			r.Put("/{id}", h.updateBuyer)
			r.Delete("/{id}", h.deleteBuyer)
		})

		pr.Route("/sellers", func(r chi.Router) {
			r.Post("/", h.createSeller)
			r.Get("/", h.listSellers)
			r.Get("/{id}", h.getSeller)
			r.Put("/{id}", h.updateSeller)
			r.Delete("/{id}", h.deleteSeller)
		})

		pr.Route("/banks", func(r chi.Router) {
			r.Post("/", h.createBank)
			r.Get("/", h.listBanks)
			r.Get("/{id}", h.getBank)
			r.Put("/{id}", h.updateBank)
			r.Delete("/{id}", h.deleteBank)
		})

		pr.Route("/cylinders", h.catalogRoutes(domain.KindCylinder))
		pr.Route("/bottles", h.catalogRoutes(domain.KindBottle))

		pr.Route("/invoices", func(r chi.Router) {
			r.Get("/next-number", h.nextInvoiceNumber)
			r.Post("/preview", h.previewInvoice)
			r.Post("/", h.createInvoice)
			r.Get("/", h.listInvoices)
			r.Get("/{id}", h.getInvoice)
			r.Put("/{id}", h.updateInvoice)
			r.Delete("/{id}", h.deleteInvoice)
			r.Get("/{id}/pdf", h.invoicePDF)
			r.Get("/{id}/eway-bill", h.ewayBillPDF)
		})

		pr.Get("/reports/register", h.invoiceRegister)
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start).String(),
		}).Info("request")
	})
}

// Authentication helpers

type authClaims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (h *Handler) generateToken(userID int64, role string) (string, error) {
	claims := authClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.secret))
}

func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		tokenString := strings.TrimSpace(header[len("Bearer "):])
		token, err := jwt.ParseWithClaims(tokenString, &authClaims{}, func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(h.secret), nil
		})
		if err != nil || !token.Valid {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		claims, ok := token.Claims.(*authClaims)
		if !ok {
			respondError(w, http.StatusUnauthorized, "invalid token claims")
			return
		}
		ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID)
		ctx = context.WithValue(ctx, ctxRole, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) requireRole(w http.ResponseWriter, r *http.Request, allowed ...string) bool {
	role, _ := r.Context().Value(ctxRole).(string)
	if role == "" {
		respondError(w, http.StatusUnauthorized, "missing role")
		return false
	}
	for _, allowedRole := range allowed {
		if role == allowedRole {
			return true
		}
	}
	respondError(w, http.StatusForbidden, "insufficient permissions")
	return false
}

// canWrite gates create and update routes.
func (h *Handler) canWrite(w http.ResponseWriter, r *http.Request) bool {
	return h.requireRole(w, r, domain.RoleAdmin, domain.RoleStaff)
}

// canDelete gates delete routes.
func (h *Handler) canDelete(w http.ResponseWriter, r *http.Request) bool {
	return h.requireRole(w, r, domain.RoleAdmin)
}

// Auth Handlers

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=admin staff"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to secure password")
		return
	}

	var userID int64
	err = h.db.QueryRowxContext(r.Context(), `INSERT INTO users (username, email, password, role) VALUES (?, ?, ?, ?) RETURNING id`,
		req.Username, strings.ToLower(req.Email), string(hashed), req.Role).Scan(&userID)
	if err != nil {
		respondError(w, http.StatusConflict, "email already exists")
		return
	}

	token, err := h.generateToken(userID, req.Role)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to generate token")
		return
	}

	respondJSON(w, http.StatusCreated, authResponse{Token: token, User: domain.User{ID: int(userID), Username: req.Username, Email: strings.ToLower(req.Email), Role: req.Role}})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	var user domain.User
	err := h.db.GetContext(r.Context(), &user, `SELECT id, username, email, password, role FROM users WHERE email = ?`, strings.ToLower(req.Email))
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.generateToken(int64(user.ID), user.Role)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to generate token")
		return
	}

	user.Password = ""
	respondJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		NewPassword string `json:"new_password" validate:"required,min=6"`
	}
	if !h.decodeAndValidate(w, r, &payload) {
		return
	}
	uid := r.Context().Value(ctxUserID).(int64)
	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to secure password")
		return
	}
	if _, err := h.db.ExecContext(r.Context(), `UPDATE users SET password = ? WHERE id = ?`, string(hashed), uid); err != nil {
		h.logError("resetPassword", "update", uid, err)
		respondError(w, http.StatusInternalServerError, "unable to update password")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}

// Helpers

func (h *Handler) logError(funcName, step string, data any, err error) {
	config.LogError(h.logger, "api", funcName, step, data, err)
}

func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := decodeJSON(r, dest); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	if err := h.validate.Struct(dest); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
			respondJSON(w, http.StatusBadRequest, map[string]any{"error": "validation failed", "fields": fields})
			return false
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
