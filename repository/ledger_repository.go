package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"dahcoins/database"
	"dahcoins/domain/entities"

	"github.com/jackc/pgx/v5"
)

const ledgerColumns = `
	id, username, event, transaction_type, base_amount,
	available_delta, locked_delta, available_after, locked_after,
	transaction_metadata, related_id, related_type, created_at`

// LedgerRepository implements the LedgerRepository interface
type LedgerRepository struct {
	q Queryable
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *database.DB) *LedgerRepository {
	return &LedgerRepository{q: db.Pool}
}

// NewLedgerRepositoryScoped creates a new ledger repository bound to a transaction
func NewLedgerRepositoryScoped(tx Queryable) *LedgerRepository {
	return &LedgerRepository{q: tx}
}

// Append inserts an entry and fills in its ID and timestamp
func (r *LedgerRepository) Append(ctx context.Context, entry *entities.LedgerEntry) error {
	var metadataJSON []byte
	if entry.TransactionMetadata != nil {
		var err error
		metadataJSON, err = json.Marshal(entry.TransactionMetadata)
		if err != nil {
			return fmt.Errorf("failed to marshal transaction metadata: %w", err)
		}
	}

	query := `
		INSERT INTO ledger_entries
		(username, event, transaction_type, base_amount, available_delta, locked_delta,
		 available_after, locked_after, transaction_metadata, related_id, related_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		entry.Username,
		entry.Event,
		entry.TransactionType,
		entry.BaseAmount,
		entry.AvailableDelta,
		entry.LockedDelta,
		entry.AvailableAfter,
		entry.LockedAfter,
		metadataJSON,
		entry.RelatedID,
		entry.RelatedType,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append ledger entry for %s: %w", entry.Username, err)
	}

	return nil
}

// GetByUser returns a user's entries, newest first
func (r *LedgerRepository) GetByUser(ctx context.Context, username string, limit int) ([]*entities.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE username = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	rows, err := r.q.Query(ctx, query, username, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger for %s: %w", username, err)
	}
	defer rows.Close()

	return scanLedgerEntries(rows)
}

// GetRecent returns the most recent entries across all users
func (r *LedgerRepository) GetRecent(ctx context.Context, limit int) ([]*entities.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + `
		FROM ledger_entries
		ORDER BY created_at DESC, id DESC
		LIMIT $1`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger: %w", err)
	}
	defer rows.Close()

	return scanLedgerEntries(rows)
}

// SumDeltas returns the net effect of every entry recorded for username
func (r *LedgerRepository) SumDeltas(ctx context.Context, username string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(available_delta + locked_delta), 0)
		FROM ledger_entries
		WHERE username = $1
	`

	var sum int64
	if err := r.q.QueryRow(ctx, query, username).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum ledger deltas for %s: %w", username, err)
	}
	return sum, nil
}

func scanLedgerEntries(rows pgx.Rows) ([]*entities.LedgerEntry, error) {
	entries := make([]*entities.LedgerEntry, 0)
	for rows.Next() {
		var entry entities.LedgerEntry
		var metadataJSON []byte
		err := rows.Scan(
			&entry.ID,
			&entry.Username,
			&entry.Event,
			&entry.TransactionType,
			&entry.BaseAmount,
			&entry.AvailableDelta,
			&entry.LockedDelta,
			&entry.AvailableAfter,
			&entry.LockedAfter,
			&metadataJSON,
			&entry.RelatedID,
			&entry.RelatedType,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}

		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &entry.TransactionMetadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal transaction metadata: %w", err)
			}
		}

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entries: %w", err)
	}

	return entries, nil
}
