// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-smart-deals/internal/app"
	"github.com/MKhiriev/go-smart-deals/internal/logger"
	"github.com/MKhiriev/go-smart-deals/internal/service"
	"github.com/MKhiriev/go-smart-deals/internal/store"
	"github.com/MKhiriev/go-smart-deals/internal/utils"
	"github.com/MKhiriev/go-smart-deals/internal/validators"
	"github.com/MKhiriev/go-smart-deals/models"
)

// Sentinel errors of the transport layer. Callers can match against them
// with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// request carries no "Authorization" header.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidRequestBody wraps JSON decoding failures of request documents.
	ErrInvalidRequestBody = errors.New("invalid request body")
)

var errorStatusMap = map[error]int{
	ErrInvalidRequestBody:          http.StatusBadRequest,
	models.ErrInvalidDocumentField: http.StatusBadRequest,

	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrInvalidIdentifier:   http.StatusBadRequest,
	service.ErrUnauthorized:        http.StatusUnauthorized,
	service.ErrForbidden:           http.StatusForbidden,
	service.ErrTokenCreationFailed: http.StatusInternalServerError,

	validators.ErrInvalidDocument: http.StatusBadRequest,

	store.ErrUserAlreadyExists: http.StatusConflict,
	store.ErrNothingToUpdate:   http.StatusBadRequest,
	store.ErrDocumentNotSaved:  http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and answers with its mapped status. Server side
// failures are reported with the generic status text only.
func writeError(w http.ResponseWriter, r *http.Request, fn string, err error) {
	status := statusFromError(err)

	event := logger.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		event = logger.FromRequest(r).Error()
	}
	event.Err(err).Str("func", fn).Int("status", status).Send()

	message := err.Error()
	switch status {
	case http.StatusUnauthorized:
		message = app.MsgUnauthorized
	case http.StatusForbidden:
		message = app.MsgForbidden
	case http.StatusInternalServerError:
		message = app.MsgInternalServerError
	}

	utils.WriteMessage(w, message, status)
}
