package http

import (
	"net/http"

	"github.com/MKhiriev/go-smart-deals/internal/service"
	"github.com/MKhiriev/go-smart-deals/internal/utils"
	"github.com/MKhiriev/go-smart-deals/models"
)

// getToken exchanges a verified identity for a session token. The body is an
// optional JSON object embedded into the token as profile data.
func (h *Handler) getToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := utils.GetIdentityFromContext(ctx)
	if !ok {
		writeError(w, r, "*Handler.getToken", service.ErrUnauthorized)
		return
	}

	payload := map[string]any{}
	if err := decodeJSON(r, &payload, true); err != nil {
		writeError(w, r, "*Handler.getToken", err)
		return
	}

	token, err := h.services.AuthService.IssueToken(ctx, identity, payload)
	if err != nil {
		writeError(w, r, "*Handler.getToken", err)
		return
	}

	utils.WriteJSON(w, models.TokenResponse{Token: token.SignedString}, http.StatusOK)
}
