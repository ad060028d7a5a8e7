package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/PrasadGhadge2211/PharmaApp/internal/config"
	"github.com/PrasadGhadge2211/PharmaApp/internal/store"
)

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	store *store.Store
	cfg   config.Config
}

// New constructs a Handler.
func New(st *store.Store, cfg config.Config) *Handler {
	return &Handler{store: st, cfg: cfg}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)
	r.Get("/", h.dashboard)

	r.Route("/inventory", func(r chi.Router) {
		h.mountCatalog(r, false)
	})
	r.Route("/general", func(r chi.Router) {
		h.mountCatalog(r, true)
	})

	r.Route("/customers", func(r chi.Router) {
		r.Get("/", h.listCustomers)
		r.Post("/", h.addCustomer)
		r.Get("/{id}", h.getCustomer)
		r.Put("/{id}", h.updateCustomer)
		r.Delete("/{id}", h.deleteCustomer)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/search_medicines", h.searchMedicines)
		r.Get("/search_customers", h.searchCustomers)
	})

	r.Route("/sales", func(r chi.Router) {
		r.Get("/", h.listSales)
		r.Post("/", h.createSale)
		r.Get("/print/{invoice}", h.printInvoice)
		r.Get("/{invoice}", h.getSale)
	})

	r.Get("/reports/sales", h.salesReport)

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.store.Dashboard()
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, d)
}

func (h *Handler) salesReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.store.SalesReport()
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// Helpers

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

// respondStoreError maps the store's error taxonomy onto HTTP statuses:
// validation 400, duplicate batch 409, not found 404, business-rule
// violations 422, anything else a logged 500 with a generic message.
func respondStoreError(w http.ResponseWriter, err error) {
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, store.ErrDuplicateBatch):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrEmptyCart),
		errors.Is(err, store.ErrInsufficientStock),
		errors.Is(err, store.ErrExpired),
		errors.Is(err, store.ErrNegativeTotal):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("unexpected error: %v", err)
		respondError(w, http.StatusInternalServerError, "unexpected error")
	}
}
