package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rlopes/contas/internal/domain"
	"github.com/rlopes/contas/internal/usecase"
)

// SettlementRepository implements usecase.SettlementRepository.
type SettlementRepository struct {
	pool *pgxpool.Pool
}

// NewSettlementRepository creates a new SettlementRepository.
func NewSettlementRepository(pool *pgxpool.Pool) *SettlementRepository {
	return &SettlementRepository{pool: pool}
}

const settlementColumns = `id, entry_id, payment_term_id, interest_amount, penalty_amount, discount_amount, paid_amount, settlement_date, created_at`

// Create inserts a settlement inside the transaction.
func (r *SettlementRepository) Create(ctx context.Context, tx usecase.Transaction, settlement *domain.Settlement) error {
	query := `
		INSERT INTO settlements (` + settlementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := txQuerier(tx).Exec(ctx, query,
		settlement.ID,
		settlement.EntryID,
		settlement.PaymentTermID,
		settlement.InterestAmount,
		settlement.PenaltyAmount,
		settlement.DiscountAmount,
		settlement.PaidAmount,
		settlement.SettlementDate,
		settlement.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrPaymentTermNotFound
		}

		return err
	}

	return nil
}

// Update rewrites a settlement inside the transaction.
func (r *SettlementRepository) Update(ctx context.Context, tx usecase.Transaction, settlement *domain.Settlement) error {
	query := `
		UPDATE settlements
		SET payment_term_id = $2, interest_amount = $3, penalty_amount = $4,
		    discount_amount = $5, paid_amount = $6, settlement_date = $7
		WHERE id = $1
	`

	tag, err := txQuerier(tx).Exec(ctx, query,
		settlement.ID,
		settlement.PaymentTermID,
		settlement.InterestAmount,
		settlement.PenaltyAmount,
		settlement.DiscountAmount,
		settlement.PaidAmount,
		settlement.SettlementDate,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrPaymentTermNotFound
		}

		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrSettlementNotFound
	}

	return nil
}

// Delete hard-deletes a settlement inside the transaction.
func (r *SettlementRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	tag, err := txQuerier(tx).Exec(ctx, `DELETE FROM settlements WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrSettlementNotFound
	}

	return nil
}

// GetByID retrieves a settlement by ID.
func (r *SettlementRepository) GetByID(ctx context.Context, id string) (*domain.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements WHERE id = $1`

	return scanSettlement(r.pool.QueryRow(ctx, query, id))
}

// ListByEntry retrieves all settlements of an entry.
func (r *SettlementRepository) ListByEntry(ctx context.Context, entryID string) ([]*domain.Settlement, error) {
	query := `
		SELECT ` + settlementColumns + `
		FROM settlements
		WHERE entry_id = $1
		ORDER BY settlement_date, created_at, id
	`

	rows, err := r.pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settlements []*domain.Settlement
	for rows.Next() {
		settlement, err := scanSettlement(rows)
		if err != nil {
			return nil, err
		}

		settlements = append(settlements, settlement)
	}

	return settlements, rows.Err()
}

// SumPaidForEntry aggregates paid amounts inside the transaction, leaving
// out excludeID when set so an in-place edit is not counted against itself.
func (r *SettlementRepository) SumPaidForEntry(ctx context.Context, tx usecase.Transaction, entryID, excludeID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(paid_amount), 0)
		FROM settlements
		WHERE entry_id = $1 AND ($2 = '' OR id <> $2)
	`

	var total decimal.Decimal
	if err := txQuerier(tx).QueryRow(ctx, query, entryID, excludeID).Scan(&total); err != nil {
		return decimal.Zero, err
	}

	return total, nil
}

func scanSettlement(row pgx.Row) (*domain.Settlement, error) {
	var settlement domain.Settlement

	err := row.Scan(
		&settlement.ID,
		&settlement.EntryID,
		&settlement.PaymentTermID,
		&settlement.InterestAmount,
		&settlement.PenaltyAmount,
		&settlement.DiscountAmount,
		&settlement.PaidAmount,
		&settlement.SettlementDate,
		&settlement.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSettlementNotFound
		}

		return nil, err
	}

	return &settlement, nil
}
