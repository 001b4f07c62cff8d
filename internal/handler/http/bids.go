package http

import (
	"net/http"

	"github.com/MKhiriev/go-smart-deals/internal/service"
	"github.com/MKhiriev/go-smart-deals/internal/utils"
	"github.com/MKhiriev/go-smart-deals/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) createBid(w http.ResponseWriter, r *http.Request) {
	var bid models.Bid
	if err := decodeJSON(r, &bid, false); err != nil {
		writeError(w, r, "*Handler.createBid", err)
		return
	}

	result, err := h.services.BidService.CreateBid(r.Context(), bid)
	if err != nil {
		writeError(w, r, "*Handler.createBid", err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

// listBids returns the caller's bids for ?email=<caller> and every bid
// without a filter. Any other email is forbidden.
func (h *Handler) listBids(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	callerEmail, ok := utils.GetEmailFromContext(ctx)
	if !ok {
		writeError(w, r, "*Handler.listBids", service.ErrUnauthorized)
		return
	}

	bids, err := h.services.BidService.ListBids(ctx, callerEmail, r.URL.Query().Get("email"))
	if err != nil {
		writeError(w, r, "*Handler.listBids", err)
		return
	}

	utils.WriteJSON(w, bids, http.StatusOK)
}

func (h *Handler) listProductBids(w http.ResponseWriter, r *http.Request) {
	bids, err := h.services.BidService.ListBidsForProduct(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		writeError(w, r, "*Handler.listProductBids", err)
		return
	}

	utils.WriteJSON(w, bids, http.StatusOK)
}

func (h *Handler) deleteBid(w http.ResponseWriter, r *http.Request) {
	result, err := h.services.BidService.DeleteBid(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "*Handler.deleteBid", err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}
