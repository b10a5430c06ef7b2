package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rlopes/contas/internal/domain"
	"github.com/rlopes/contas/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

const entryColumns = `id, kind, document, installment, contact_id, issue_date, due_date, face_value, note, status, created_at, updated_at`

// Create creates a new ledger entry.
func (r *EntryRepository) Create(ctx context.Context, entry *domain.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.Kind,
		entry.Document,
		entry.Installment,
		entry.ContactID,
		entry.IssueDate,
		entry.DueDate,
		entry.FaceValue,
		entry.Note,
		entry.Status,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrContactNotFound
		}

		return err
	}

	return nil
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE id = $1`

	return scanEntry(r.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdate retrieves an entry by ID with a FOR UPDATE lock. The
// lock serializes concurrent settlements against the same entry.
func (r *EntryRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE id = $1 FOR UPDATE`

	return scanEntry(txQuerier(tx).QueryRow(ctx, query, id))
}

// Update updates an entry's fields.
func (r *EntryRepository) Update(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	query := `
		UPDATE ledger_entries
		SET document = $2, installment = $3, contact_id = $4, issue_date = $5,
		    due_date = $6, face_value = $7, note = $8, status = $9, updated_at = $10
		WHERE id = $1
	`

	tag, err := txQuerier(tx).Exec(ctx, query,
		entry.ID,
		entry.Document,
		entry.Installment,
		entry.ContactID,
		entry.IssueDate,
		entry.DueDate,
		entry.FaceValue,
		entry.Note,
		entry.Status,
		entry.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrContactNotFound
		}

		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// UpdateStatus updates only the entry status.
func (r *EntryRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.EntryStatus, updatedAt time.Time) error {
	query := `UPDATE ledger_entries SET status = $2, updated_at = $3 WHERE id = $1`

	tag, err := txQuerier(tx).Exec(ctx, query, id, status, updatedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// Delete deletes an entry. Settlements go with it via ON DELETE CASCADE.
func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM ledger_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// List retrieves entries of one kind.
func (r *EntryRepository) List(ctx context.Context, kind domain.EntryKind, limit, offset int) ([]*domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE kind = $1
		ORDER BY due_date, id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, kind, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.LedgerEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// FindOvershot returns IDs of entries whose settlements sum past the face
// value. A non-empty result is a data-integrity alarm.
func (r *EntryRepository) FindOvershot(ctx context.Context) ([]string, error) {
	query := `
		SELECT e.id
		FROM ledger_entries e
		JOIN settlements s ON s.entry_id = e.id
		GROUP BY e.id, e.face_value
		HAVING SUM(s.paid_amount) > e.face_value
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func scanEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var entry domain.LedgerEntry

	err := row.Scan(
		&entry.ID,
		&entry.Kind,
		&entry.Document,
		&entry.Installment,
		&entry.ContactID,
		&entry.IssueDate,
		&entry.DueDate,
		&entry.FaceValue,
		&entry.Note,
		&entry.Status,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return &entry, nil
}
