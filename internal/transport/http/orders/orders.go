package orders

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/corray333/order-management/internal/dal/storage"
	"github.com/corray333/order-management/internal/service/models/order"
	"github.com/corray333/order-management/internal/transport/http/httperr"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/schema"
)

// Receipt uploads are buffered in memory up to this size.
const maxReceiptSize = 10 << 20

// service is an interface for the service layer.
type service interface {
	Create(ctx context.Context, model order.CreateOrderModel) (order.Order, error)
	List(ctx context.Context, page, limit int) (order.ListOrdersResult, error)
	Get(ctx context.Context, id string) (order.Order, error)
	Update(ctx context.Context, id string, model order.UpdateOrderModel) (order.Order, error)
	Delete(ctx context.Context, id string) error
	UpdateReceipt(ctx context.Context, id, url string) (order.Order, error)
}

// Create handles the order creation request.
func Create(w http.ResponseWriter, r *http.Request, service service) {
	var model order.CreateOrderModel
	if err := json.NewDecoder(r.Body).Decode(&model); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for create order", "error", err)

		return
	}

	created, err := service.Create(r.Context(), model)
	if err != nil {
		httperr.Write(w, err)

		return
	}

	writeJSON(w, http.StatusCreated, created)
}

type listOrdersRequest struct {
	Page  int `schema:"page,omitempty"`
	Limit int `schema:"limit,omitempty"`
}

// List handles the paginated order listing request.
func List(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &listOrdersRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request", "error", err)

		return
	}

	result, err := service.List(r.Context(), query.Page, query.Limit)
	if err != nil {
		httperr.Write(w, err)

		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Get handles fetching an order by id.
func Get(w http.ResponseWriter, r *http.Request, service service) {
	o, err := service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httperr.Write(w, err)

		return
	}

	writeJSON(w, http.StatusOK, o)
}

// Update handles partial order updates.
func Update(w http.ResponseWriter, r *http.Request, service service) {
	var model order.UpdateOrderModel
	if err := json.NewDecoder(r.Body).Decode(&model); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for update order", "error", err)

		return
	}

	updated, err := service.Update(r.Context(), chi.URLParam(r, "id"), model)
	if err != nil {
		httperr.Write(w, err)

		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete handles order deletion.
func Delete(w http.ResponseWriter, r *http.Request, service service) {
	if err := service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httperr.Write(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadReceipt handles the multipart receipt upload: the file goes to the
// storage collaborator, the resulting URL onto the order.
func UploadReceipt(w http.ResponseWriter, r *http.Request, service service, store storage.Storage) {
	if err := r.ParseMultipartForm(maxReceiptSize); err != nil {
		http.Error(w, "Failed to parse multipart form", http.StatusBadRequest)

		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File is required", http.StatusBadRequest)

		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		slog.Error("Error reading receipt upload", "error", err)

		return
	}

	url, err := store.Upload(r.Context(), data, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		http.Error(w, "Failed to store file", http.StatusInternalServerError)
		slog.Error("Error storing receipt", "error", err)

		return
	}

	updated, err := service.UpdateReceipt(r.Context(), chi.URLParam(r, "id"), url)
	if err != nil {
		httperr.Write(w, err)

		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}
