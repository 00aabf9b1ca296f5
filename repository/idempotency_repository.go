package repository

import (
	"context"
	"fmt"

	"dahcoins/database"
	"dahcoins/domain/entities"
)

// IdempotencyRepository implements the IdempotencyRepository interface
type IdempotencyRepository struct {
	q Queryable
}

// NewIdempotencyRepository creates a new idempotency repository
func NewIdempotencyRepository(db *database.DB) *IdempotencyRepository {
	return &IdempotencyRepository{q: db.Pool}
}

// NewIdempotencyRepositoryScoped creates a new idempotency repository bound to a transaction
func NewIdempotencyRepositoryScoped(tx Queryable) *IdempotencyRepository {
	return &IdempotencyRepository{q: tx}
}

// Reserve claims key for the current transaction.
// A concurrent holder of the same key blocks this insert until it commits or rolls back.
// When the key was already used, reserved is false and response holds what was stored.
func (r *IdempotencyRepository) Reserve(ctx context.Context, key, username, operation string) (bool, []byte, error) {
	tag, err := r.q.Exec(ctx, `
		INSERT INTO idempotency_keys (key, username, operation)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO NOTHING
	`, key, username, operation)
	if err != nil {
		return false, nil, fmt.Errorf("failed to reserve idempotency key: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil, nil
	}

	var storedUser, storedOperation string
	var response []byte
	err = r.q.QueryRow(ctx, `SELECT username, operation, response FROM idempotency_keys WHERE key = $1`, key).
		Scan(&storedUser, &storedOperation, &response)
	if err != nil {
		return false, nil, fmt.Errorf("failed to load idempotency key: %w", err)
	}
	if storedUser != username || storedOperation != operation {
		return false, nil, fmt.Errorf("idempotency key already used for %s %s: %w", storedUser, storedOperation, entities.ErrInvalidInput)
	}

	return false, response, nil
}

// Complete stores the response to replay for key
func (r *IdempotencyRepository) Complete(ctx context.Context, key string, response []byte) error {
	if _, err := r.q.Exec(ctx, `UPDATE idempotency_keys SET response = $2 WHERE key = $1`, key, response); err != nil {
		return fmt.Errorf("failed to store idempotent response: %w", err)
	}
	return nil
}
