package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/order-management/internal/service/models/apperrors"
	"github.com/corray333/order-management/internal/service/models/order"
	"github.com/corray333/order-management/internal/service/models/orderitem"
	"github.com/corray333/order-management/internal/service/models/report"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// OrderDal represents order data access layer model.
type OrderDal struct {
	Id         uuid.UUID       `db:"id"`
	CustomerId uuid.UUID       `db:"customer_id"`
	OrderDate  time.Time       `db:"order_date"`
	TotalUSD   decimal.Decimal `db:"total_usd"`
	TotalBRL   decimal.Decimal `db:"total_brl"`
	ReceiptUrl *string         `db:"receipt_url"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

// ToModel converts OrderDal to service layer Order model.
func (o *OrderDal) ToModel() *order.Order {
	return &order.Order{
		ID:         o.Id,
		CustomerID: o.CustomerId,
		Date:       o.OrderDate,
		TotalUSD:   o.TotalUSD,
		TotalBRL:   o.TotalBRL,
		ReceiptURL: o.ReceiptUrl,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
		Items:      []orderitem.OrderItem{}, // Will be populated separately
	}
}

// GenericConn is an interface that works with both pgxpool.Pool and pgx.Tx
type GenericConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn GenericConn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var orderColumns = []string{
	"id",
	"customer_id",
	"order_date",
	"total_usd",
	"total_brl",
	"receipt_url",
	"created_at",
	"updated_at",
}

const orderColumnList = "id, customer_id, order_date, total_usd, total_brl, receipt_url, created_at, updated_at"

// Insert creates a new order and returns it with the generated id. Items are
// inserted separately by the order item repository within the same unit of work.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	query, args, err := r.sb.Insert("orders").
		Columns("customer_id", "order_date", "total_usd", "total_brl", "created_at", "updated_at").
		Values(o.CustomerID, o.Date, o.TotalUSD, o.TotalBRL, o.CreatedAt, o.UpdatedAt).
		Suffix("RETURNING " + orderColumnList).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	dal, err := scanOrder(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	model := dal.ToModel()
	model.Items = append(model.Items, o.Items...)

	return *model, nil
}

// GetByID retrieves an order by id, without its items.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	query, args, err := r.sb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	dal, err := scanOrder(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order: %w", apperrors.ErrNotFound)
		}

		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return dal.ToModel(), nil
}

// Query retrieves orders based on filter criteria, newest first.
func (r *PostgresOrderRepository) Query(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) ([]order.Order, error) {
	builder := r.sb.Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC")

	if len(filter.IDs) > 0 {
		builder = builder.Where(sq.Eq{"id": filter.IDs})
	}
	if len(filter.CustomerIDs) > 0 {
		builder = builder.Where(sq.Eq{"customer_id": filter.CustomerIDs})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	result := []order.Order{}
	for rows.Next() {
		dal, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Count returns the total number of orders.
func (r *PostgresOrderRepository) Count(ctx context.Context) (int64, error) {
	query, args, err := r.sb.Select("COUNT(*)").From("orders").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return total, nil
}

// Update replaces the mutable fields of an order.
func (r *PostgresOrderRepository) Update(ctx context.Context, o order.Order) (order.Order, error) {
	query, args, err := r.sb.Update("orders").
		Set("customer_id", o.CustomerID).
		Set("order_date", o.Date).
		Set("total_usd", o.TotalUSD).
		Set("total_brl", o.TotalBRL).
		Set("updated_at", o.UpdatedAt).
		Where(sq.Eq{"id": o.ID}).
		Suffix("RETURNING " + orderColumnList).
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build update query: %w", err)
	}

	dal, err := scanOrder(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order.Order{}, fmt.Errorf("order: %w", apperrors.ErrNotFound)
		}

		return order.Order{}, fmt.Errorf("failed to update order: %w", err)
	}

	model := dal.ToModel()
	model.Items = append(model.Items, o.Items...)

	return *model, nil
}

// Delete removes an order. Its items are removed by the cascade.
func (r *PostgresOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := r.sb.Delete("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order: %w", apperrors.ErrNotFound)
	}

	return nil
}

// SetReceipt stores the receipt URL of an order.
func (r *PostgresOrderRepository) SetReceipt(
	ctx context.Context,
	id uuid.UUID,
	url string,
) (*order.Order, error) {
	query, args, err := r.sb.Update("orders").
		Set("receipt_url", url).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + orderColumnList).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	dal, err := scanOrder(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order: %w", apperrors.ErrNotFound)
		}

		return nil, fmt.Errorf("failed to set receipt: %w", err)
	}

	return dal.ToModel(), nil
}

// TopCustomers ranks customers by the sum of their orders' BRL totals.
// The inner join drops orders whose customer has been deleted. Ties are
// broken by customer id ascending to keep results reproducible.
func (r *PostgresOrderRepository) TopCustomers(
	ctx context.Context,
	limit int,
) ([]report.TopCustomer, error) {
	query, args, err := r.sb.Select(
		"o.customer_id",
		"c.name",
		"c.email",
		"c.country",
		"SUM(o.total_brl) AS total_brl",
	).
		From("orders o").
		Join("customers c ON c.id = o.customer_id").
		GroupBy("o.customer_id", "c.name", "c.email", "c.country").
		OrderBy("total_brl DESC", "o.customer_id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build aggregation query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query top customers: %w", err)
	}
	defer rows.Close()

	result := []report.TopCustomer{}
	for rows.Next() {
		var row report.TopCustomer
		err := rows.Scan(&row.CustomerID, &row.Name, &row.Email, &row.Country, &row.TotalBRL)
		if err != nil {
			return nil, fmt.Errorf("failed to scan top customer row: %w", err)
		}
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

func scanOrder(row pgx.Row) (*OrderDal, error) {
	dal := OrderDal{}
	err := row.Scan(
		&dal.Id,
		&dal.CustomerId,
		&dal.OrderDate,
		&dal.TotalUSD,
		&dal.TotalBRL,
		&dal.ReceiptUrl,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &dal, nil
}
