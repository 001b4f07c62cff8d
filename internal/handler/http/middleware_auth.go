package http

import (
	"net/http"

	"github.com/MKhiriev/go-smart-deals/internal/app"
	"github.com/MKhiriev/go-smart-deals/internal/logger"
	"github.com/MKhiriev/go-smart-deals/internal/utils"
)

// auth rejects requests without a verifiable bearer token with 401
// {"message": "unauthorized access"}. The reason is only logged. On success
// the verified identity is stored in the request context with
// [utils.WithIdentity].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Str("func", "*Handler.auth").Send()
			utils.WriteMessage(w, app.MsgUnauthorized, http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Str("func", "*Handler.auth").Send()
			utils.WriteMessage(w, app.MsgUnauthorized, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		identity, err := h.services.AuthService.VerifyToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Str("func", "*Handler.auth").Msg("bearer token rejected")
			utils.WriteMessage(w, app.MsgUnauthorized, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithIdentity(ctx, identity)))
	})
}

// strictly applies auth only when strict authorization is enabled.
func (h *Handler) strictly(next http.Handler) http.Handler {
	if !h.strictAuth {
		return next
	}
	return h.auth(next)
}
