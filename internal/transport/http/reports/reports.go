package reports

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/order-management/internal/service/models/report"
	"github.com/corray333/order-management/internal/transport/http/httperr"
	"github.com/gorilla/schema"
)

// service is an interface for the service layer.
type service interface {
	TopCustomers(ctx context.Context, limit int) ([]report.TopCustomer, error)
}

type topCustomersRequest struct {
	Limit int `schema:"limit,omitempty"`
}

// TopCustomers handles the ranked top-customers report request.
func TopCustomers(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &topCustomersRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request", "error", err)

		return
	}

	rows, err := service.TopCustomers(r.Context(), query.Limit)
	if err != nil {
		httperr.Write(w, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(rows); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}
