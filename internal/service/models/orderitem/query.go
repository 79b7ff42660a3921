package orderitem

import "github.com/google/uuid"

// QueryOrderItemsModel filters order items by their parent orders.
type QueryOrderItemsModel struct {
	OrderIDs []uuid.UUID
}
