package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/order-management/internal/service/models/apperrors"
	"github.com/corray333/order-management/internal/service/models/customer"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// CustomerDal represents customer data access layer model.
type CustomerDal struct {
	Id        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Country   string    `db:"country"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ToModel converts CustomerDal to service layer Customer model.
func (c *CustomerDal) ToModel() *customer.Customer {
	return &customer.Customer{
		ID:        c.Id,
		Name:      c.Name,
		Email:     c.Email,
		Country:   c.Country,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// GenericConn is an interface that works with both pgxpool.Pool and pgx.Tx
type GenericConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// PostgresCustomerRepository represents a Postgres customer repository.
type PostgresCustomerRepository struct {
	conn GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresCustomerRepository creates a new Postgres customer repository.
func NewPostgresCustomerRepository(conn GenericConn) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var customerColumns = []string{"id", "name", "email", "country", "created_at", "updated_at"}

// Insert creates a new customer and returns it with the generated id.
// A unique index on email backs the duplicate check, so a concurrent insert
// with the same email surfaces as ErrEmailTaken instead of slipping through.
func (r *PostgresCustomerRepository) Insert(
	ctx context.Context,
	c customer.Customer,
) (customer.Customer, error) {
	query, args, err := r.sb.Insert("customers").
		Columns("name", "email", "country", "created_at", "updated_at").
		Values(c.Name, c.Email, c.Country, c.CreatedAt, c.UpdatedAt).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return customer.Customer{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	dal, err := scanCustomer(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return customer.Customer{}, fmt.Errorf("failed to insert customer: %w", apperrors.ErrEmailTaken)
		}

		return customer.Customer{}, fmt.Errorf("failed to insert customer: %w", err)
	}

	return *dal.ToModel(), nil
}

// List retrieves all customers ordered by creation descending.
func (r *PostgresCustomerRepository) List(ctx context.Context) ([]customer.Customer, error) {
	query, args, err := r.sb.Select(customerColumns...).
		From("customers").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	result := []customer.Customer{}
	for rows.Next() {
		dal, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// GetByID retrieves a customer by id.
func (r *PostgresCustomerRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*customer.Customer, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

// GetByEmail retrieves a customer by exact email match.
func (r *PostgresCustomerRepository) GetByEmail(
	ctx context.Context,
	email string,
) (*customer.Customer, error) {
	return r.getOne(ctx, sq.Eq{"email": email})
}

func (r *PostgresCustomerRepository) getOne(
	ctx context.Context,
	pred sq.Eq,
) (*customer.Customer, error) {
	query, args, err := r.sb.Select(customerColumns...).
		From("customers").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	dal, err := scanCustomer(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("customer: %w", apperrors.ErrNotFound)
		}

		return nil, fmt.Errorf("failed to query customer: %w", err)
	}

	return dal.ToModel(), nil
}

// Update replaces the mutable fields of a customer.
func (r *PostgresCustomerRepository) Update(
	ctx context.Context,
	c customer.Customer,
) (customer.Customer, error) {
	query, args, err := r.sb.Update("customers").
		Set("name", c.Name).
		Set("email", c.Email).
		Set("country", c.Country).
		Set("updated_at", c.UpdatedAt).
		Where(sq.Eq{"id": c.ID}).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return customer.Customer{}, fmt.Errorf("failed to build update query: %w", err)
	}

	dal, err := scanCustomer(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return customer.Customer{}, fmt.Errorf("customer: %w", apperrors.ErrNotFound)
		}
		if isUniqueViolation(err) {
			return customer.Customer{}, fmt.Errorf("failed to update customer: %w", apperrors.ErrEmailTaken)
		}

		return customer.Customer{}, fmt.Errorf("failed to update customer: %w", err)
	}

	return *dal.ToModel(), nil
}

// Delete removes a customer. Orders referencing it are intentionally left in
// place; the reporting join drops them.
func (r *PostgresCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := r.sb.Delete("customers").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("customer: %w", apperrors.ErrNotFound)
	}

	return nil
}

func scanCustomer(row pgx.Row) (*CustomerDal, error) {
	dal := CustomerDal{}
	err := row.Scan(
		&dal.Id,
		&dal.Name,
		&dal.Email,
		&dal.Country,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &dal, nil
}

func columnList() string {
	return "id, name, email, country, created_at, updated_at"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
