package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/PrasadGhadge2211/PharmaApp/domain"
)

type medicineRequest struct {
	Name          string   `json:"name"`
	BatchNumber   string   `json:"batch_number"`
	Company       string   `json:"company"`
	Quantity      int64    `json:"quantity"`
	Price         float64  `json:"price"`
	StripPrice    *float64 `json:"strip_price"`
	UnitsPerStrip int64    `json:"units_per_strip"`
	CostPrice     float64  `json:"cost_price"`
	Supplier      string   `json:"supplier"`
	MfgDate       string   `json:"mfg_date"`
	ExpiryDate    string   `json:"expiry_date"`
}

func (req medicineRequest) toDomain(general bool) domain.Medicine {
	return domain.Medicine{
		Name:          req.Name,
		BatchNumber:   req.BatchNumber,
		Company:       req.Company,
		Quantity:      req.Quantity,
		Price:         req.Price,
		StripPrice:    req.StripPrice,
		UnitsPerStrip: req.UnitsPerStrip,
		CostPrice:     req.CostPrice,
		Supplier:      req.Supplier,
		MfgDate:       req.MfgDate,
		ExpiryDate:    req.ExpiryDate,
		General:       general,
	}
}

// mountCatalog registers the catalog CRUD routes for one partition of the
// stock ("pharmacy inventory" or "general goods").
func (h *Handler) mountCatalog(r chi.Router, general bool) {
	r.Get("/", h.listMedicines(general))
	r.Post("/", h.addMedicine(general))
	r.Get("/{id}", h.getMedicine)
	r.Put("/{id}", h.updateMedicine(general))
	r.Delete("/{id}", h.deleteMedicine)
}

func (h *Handler) listMedicines(general bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		medicines, err := h.store.ListMedicines(general, r.URL.Query().Get("search"))
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, medicines)
	}
}

func (h *Handler) getMedicine(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid medicine id")
		return
	}
	m, err := h.store.GetMedicine(id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, m)
}

func (h *Handler) addMedicine(general bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req medicineRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		id, err := h.store.AddMedicine(req.toDomain(general))
		if err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
	}
}

func (h *Handler) updateMedicine(general bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid medicine id")
			return
		}
		var req medicineRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := h.store.UpdateMedicine(id, req.toDomain(general)); err != nil {
			respondStoreError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	}
}

func (h *Handler) deleteMedicine(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid medicine id")
		return
	}
	if err := h.store.DeleteMedicine(id); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) searchMedicines(w http.ResponseWriter, r *http.Request) {
	medicines, err := h.store.SearchMedicinesForSale(r.URL.Query().Get("query"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, medicines)
}
