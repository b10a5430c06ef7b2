package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rlopes/contas/internal/domain"
)

// PaymentTermRepository implements usecase.PaymentTermRepository.
type PaymentTermRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentTermRepository creates a new PaymentTermRepository.
func NewPaymentTermRepository(pool *pgxpool.Pool) *PaymentTermRepository {
	return &PaymentTermRepository{pool: pool}
}

const paymentTermColumns = `id, name, installment_count, created_at, updated_at`

// Create creates a new payment term.
func (r *PaymentTermRepository) Create(ctx context.Context, term *domain.PaymentTerm) error {
	query := `
		INSERT INTO payment_terms (` + paymentTermColumns + `)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		term.ID,
		term.Name,
		term.InstallmentCount,
		term.CreatedAt,
		term.UpdatedAt,
	)

	return err
}

// GetByID retrieves a payment term by ID.
func (r *PaymentTermRepository) GetByID(ctx context.Context, id string) (*domain.PaymentTerm, error) {
	query := `SELECT ` + paymentTermColumns + ` FROM payment_terms WHERE id = $1`

	return scanPaymentTerm(r.pool.QueryRow(ctx, query, id))
}

// Update updates a payment term.
func (r *PaymentTermRepository) Update(ctx context.Context, term *domain.PaymentTerm) error {
	query := `
		UPDATE payment_terms
		SET name = $2, installment_count = $3, updated_at = $4
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		term.ID,
		term.Name,
		term.InstallmentCount,
		term.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrPaymentTermNotFound
	}

	return nil
}

// Delete deletes a payment term. The restrict foreign key from settlements
// surfaces as domain.ErrPaymentTermInUse.
func (r *PaymentTermRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM payment_terms WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrPaymentTermInUse
		}

		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrPaymentTermNotFound
	}

	return nil
}

// List retrieves payment terms with pagination.
func (r *PaymentTermRepository) List(ctx context.Context, limit, offset int) ([]*domain.PaymentTerm, error) {
	query := `SELECT ` + paymentTermColumns + ` FROM payment_terms ORDER BY name, id LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var terms []*domain.PaymentTerm
	for rows.Next() {
		term, err := scanPaymentTerm(rows)
		if err != nil {
			return nil, err
		}

		terms = append(terms, term)
	}

	return terms, rows.Err()
}

func scanPaymentTerm(row pgx.Row) (*domain.PaymentTerm, error) {
	var term domain.PaymentTerm

	err := row.Scan(
		&term.ID,
		&term.Name,
		&term.InstallmentCount,
		&term.CreatedAt,
		&term.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentTermNotFound
		}

		return nil, err
	}

	return &term, nil
}
