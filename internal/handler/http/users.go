package http

import (
	"net/http"

	"github.com/MKhiriev/go-smart-deals/internal/app"
	"github.com/MKhiriev/go-smart-deals/internal/utils"
	"github.com/MKhiriev/go-smart-deals/models"
)

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := decodeJSON(r, &user, false); err != nil {
		writeError(w, r, "*Handler.createUser", err)
		return
	}

	result, created, err := h.services.UserService.CreateUser(r.Context(), user)
	if err != nil {
		writeError(w, r, "*Handler.createUser", err)
		return
	}
	if !created {
		utils.WriteMessage(w, app.MsgUserAlreadyExists, http.StatusOK)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}
