package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/corray333/order-management/internal/service/models/apperrors"
)

// Status maps a service error to an HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrInvalidID),
		errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidTotal):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrRateUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Write reports a service error to the client with the mapped status.
func Write(w http.ResponseWriter, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		slog.Error("Internal error", "error", err)
	}
	http.Error(w, err.Error(), status)
}
