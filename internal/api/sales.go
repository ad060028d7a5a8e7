package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/PrasadGhadge2211/PharmaApp/domain"
	"github.com/PrasadGhadge2211/PharmaApp/internal/invoice"
)

type saleRequest struct {
	CustomerID    *int64             `json:"customer_id"`
	PaymentMethod string             `json:"payment_method"`
	Discount      float64            `json:"discount"`
	Items         []domain.CartEntry `json:"items"`
}

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.store.ListSales()
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sales)
}

func (h *Handler) createSale(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	invoiceNumber, err := h.store.RecordSale(domain.Cart{
		CustomerID:    req.CustomerID,
		PaymentMethod: req.PaymentMethod,
		Discount:      req.Discount,
		Items:         req.Items,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"invoice_number": invoiceNumber})
}

func (h *Handler) getSale(w http.ResponseWriter, r *http.Request) {
	detail, err := h.store.GetSaleByInvoice(chi.URLParam(r, "invoice"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, detail)
}

func (h *Handler) printInvoice(w http.ResponseWriter, r *http.Request) {
	invoiceNumber := chi.URLParam(r, "invoice")
	detail, err := h.store.GetSaleByInvoice(invoiceNumber)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	pdf, err := invoice.Render(invoice.Document{
		Shop: invoice.Shop{
			Name:    h.cfg.ShopName,
			Address: h.cfg.ShopAddress,
			Phone:   h.cfg.ShopPhone,
		},
		Sale: detail,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=invoice_%s.pdf", invoiceNumber))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
