package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/crm-service/internal/domain"
)

// CustomerFilter narrows customer listings. A nil SupportRepID returns
// customers of every rep; City is a substring match.
type CustomerFilter struct {
	SupportRepID *int64
	City         string
}

// CustomerRepository defines persistence access for customer records.
type CustomerRepository interface {
	List(ctx context.Context, filter CustomerFilter) ([]domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

type customerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository returns a Postgres-backed implementation.
func NewCustomerRepository(pool *pgxpool.Pool) CustomerRepository {
	return &customerRepository{pool: pool}
}

const customerColumns = `id, first_name, last_name, company, city, email, support_rep_id, created_at, updated_at`

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	if err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Company,
		&c.City,
		&c.Email,
		&c.SupportRepID,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepository) List(ctx context.Context, filter CustomerFilter) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE 1=1`
	args := []any{}

	if filter.SupportRepID != nil {
		args = append(args, *filter.SupportRepID)
		query += ` AND support_rep_id=$1`
	}
	if filter.City != "" {
		args = append(args, "%"+filter.City+"%")
		if len(args) == 1 {
			query += ` AND city ILIKE $1`
		} else {
			query += ` AND city ILIKE $2`
		}
	}
	query += ` ORDER BY last_name, first_name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *c)
	}
	return customers, rows.Err()
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE id=$1`
	return scanCustomer(r.pool.QueryRow(ctx, query, id))
}
