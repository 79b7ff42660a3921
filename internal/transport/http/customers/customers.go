package customers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/order-management/internal/service/models/customer"
	"github.com/corray333/order-management/internal/transport/http/httperr"
	"github.com/go-chi/chi/v5"
)

// service is an interface for the service layer.
type service interface {
	Create(ctx context.Context, model customer.CreateCustomerModel) (customer.Customer, error)
	List(ctx context.Context) ([]customer.Customer, error)
	Get(ctx context.Context, id string) (customer.Customer, error)
	Update(ctx context.Context, id string, model customer.UpdateCustomerModel) (customer.Customer, error)
	Delete(ctx context.Context, id string) error
}

// Create handles customer creation.
func Create(w http.ResponseWriter, r *http.Request, service service) {
	var model customer.CreateCustomerModel
	if err := json.NewDecoder(r.Body).Decode(&model); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for create customer", "error", err)

		return
	}

	created, err := service.Create(r.Context(), model)
	if err != nil {
		httperr.Write(w, err)

		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// List handles customer listing.
func List(w http.ResponseWriter, r *http.Request, service service) {
	result, err := service.List(r.Context())
	if err != nil {
		httperr.Write(w, err)

		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Get handles fetching a customer by id.
func Get(w http.ResponseWriter, r *http.Request, service service) {
	c, err := service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httperr.Write(w, err)

		return
	}

	writeJSON(w, http.StatusOK, c)
}

// Update handles partial customer updates.
func Update(w http.ResponseWriter, r *http.Request, service service) {
	var model customer.UpdateCustomerModel
	if err := json.NewDecoder(r.Body).Decode(&model); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for update customer", "error", err)

		return
	}

	updated, err := service.Update(r.Context(), chi.URLParam(r, "id"), model)
	if err != nil {
		httperr.Write(w, err)

		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete handles customer deletion.
func Delete(w http.ResponseWriter, r *http.Request, service service) {
	if err := service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httperr.Write(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}
