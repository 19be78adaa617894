package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/freerider/customer-registry/internal/models"
)

// postgresRepository implements CustomerRepository using PostgreSQL.
// It honors the same contract as the in-memory backend; the upsert in
// Save provides the overwrite (last write wins) semantics.
type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a PostgreSQL-backed customer repository
func NewPostgresRepository(db *sql.DB) CustomerRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Save(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if customer == nil {
		return nil, models.ErrInvalidInput("customer must not be nil")
	}

	query := `
		INSERT INTO customers (id, first_name, last_name, contacts)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name,
		    contacts = EXCLUDED.contacts`

	_, err := r.db.ExecContext(
		ctx,
		query,
		customer.ID,
		customer.FirstName,
		customer.LastName,
		pq.Array(customer.Contacts),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	return customer, nil
}

func (r *postgresRepository) SaveAll(ctx context.Context, customers []*models.Customer) ([]*models.Customer, error) {
	if customers == nil {
		return nil, models.ErrInvalidInput("customers must not be nil")
	}
	for _, customer := range customers {
		if customer == nil {
			return nil, models.ErrInvalidInput("customers must not contain nil elements")
		}
	}

	for _, customer := range customers {
		if _, err := r.Save(ctx, customer); err != nil {
			return nil, err
		}
	}
	return customers, nil
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check customer existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*models.Customer, error) {
	query := `
		SELECT id, first_name, last_name, contacts
		FROM customers
		WHERE id = $1`

	customer := &models.Customer{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&customer.ID,
		&customer.FirstName,
		&customer.LastName,
		pq.Array(&customer.Contacts),
	)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("customer with ID %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	return customer, nil
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]*models.Customer, error) {
	query := `SELECT id, first_name, last_name, contacts FROM customers`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	return scanCustomers(rows)
}

func (r *postgresRepository) FindAllByID(ctx context.Context, ids []int64) ([]*models.Customer, error) {
	if ids == nil {
		return nil, models.ErrInvalidInput("ids must not be nil")
	}

	query := `SELECT id, first_name, last_name, contacts FROM customers WHERE id = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list customers by id: %w", err)
	}
	defer rows.Close()

	return scanCustomers(rows)
}

func (r *postgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, customer *models.Customer) error {
	if customer == nil {
		return models.ErrInvalidInput("customer must not be nil")
	}

	query := `
		DELETE FROM customers
		WHERE id = $1 AND first_name = $2 AND last_name = $3 AND contacts = $4`

	_, err := r.db.ExecContext(
		ctx,
		query,
		customer.ID,
		customer.FirstName,
		customer.LastName,
		pq.Array(customer.Contacts),
	)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

func (r *postgresRepository) DeleteAllByID(ctx context.Context, ids []int64) error {
	if ids == nil {
		return models.ErrInvalidInput("ids must not be nil")
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ANY($1)`, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to delete customers by id: %w", err)
	}
	return nil
}

func (r *postgresRepository) DeleteAllEntities(ctx context.Context, customers []*models.Customer) error {
	if customers == nil {
		return models.ErrInvalidInput("customers must not be nil")
	}
	for _, customer := range customers {
		if customer == nil {
			return models.ErrInvalidInput("customers must not contain nil elements")
		}
	}

	for _, customer := range customers {
		if err := r.Delete(ctx, customer); err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM customers`); err != nil {
		return fmt.Errorf("failed to clear customers: %w", err)
	}
	return nil
}

// scanCustomers collects rows into a never-nil slice
func scanCustomers(rows *sql.Rows) ([]*models.Customer, error) {
	customers := []*models.Customer{}
	for rows.Next() {
		customer := &models.Customer{}
		err := rows.Scan(
			&customer.ID,
			&customer.FirstName,
			&customer.LastName,
			pq.Array(&customer.Contacts),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}
