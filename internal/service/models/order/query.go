package order

import "github.com/google/uuid"

// QueryOrdersModel filters and paginates order queries.
type QueryOrdersModel struct {
	IDs         []uuid.UUID
	CustomerIDs []uuid.UUID
	Limit       int
	Offset      int
}

// ListOrdersResult is the paginated listing envelope.
type ListOrdersResult struct {
	Data  []Order `json:"data"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
	Total int64   `json:"total"`
}
