package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/corray333/order-management/internal/service/models/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperrors.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("customer: %w", apperrors.ErrNotFound), http.StatusNotFound},
		{apperrors.ErrEmailTaken, http.StatusConflict},
		{apperrors.ErrInvalidID, http.StatusBadRequest},
		{apperrors.ErrValidation, http.StatusBadRequest},
		{apperrors.ErrInvalidTotal, http.StatusBadRequest},
		{apperrors.ErrRateUnavailable, http.StatusBadGateway},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Status(tt.err), "error: %v", tt.err)
	}
}
