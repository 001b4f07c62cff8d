// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-smart-deals/internal/utils"
	"github.com/MKhiriev/go-smart-deals/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := decodeJSON(r, &product, false); err != nil {
		writeError(w, r, "*Handler.createProduct", err)
		return
	}

	result, err := h.services.ProductService.CreateProduct(r.Context(), product)
	if err != nil {
		writeError(w, r, "*Handler.createProduct", err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

// listProducts returns every product, or only those of ?email=.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.services.ProductService.ListProducts(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		writeError(w, r, "*Handler.listProducts", err)
		return
	}

	utils.WriteJSON(w, products, http.StatusOK)
}

func (h *Handler) listLatestProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.services.ProductService.ListLatestProducts(r.Context())
	if err != nil {
		writeError(w, r, "*Handler.listLatestProducts", err)
		return
	}

	utils.WriteJSON(w, products, http.StatusOK)
}

// getProduct answers with the product or a JSON null.
func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.services.ProductService.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "*Handler.getProduct", err)
		return
	}

	utils.WriteJSON(w, product, http.StatusOK)
}

// updateProduct applies name and price from the body. Other fields are
// ignored.
func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var update models.ProductUpdate
	if err := decodeJSON(r, &update, false); err != nil {
		writeError(w, r, "*Handler.updateProduct", err)
		return
	}

	result, err := h.services.ProductService.UpdateProduct(r.Context(), chi.URLParam(r, "id"), update)
	if err != nil {
		writeError(w, r, "*Handler.updateProduct", err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	result, err := h.services.ProductService.DeleteProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "*Handler.deleteProduct", err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}
