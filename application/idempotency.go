package application

import (
	"context"
	"encoding/json"
	"fmt"
)

// runIdempotent executes fn once per key inside uow.
// A reused key returns the stored response with replayed set and fn is not called.
// The reservation shares the caller's transaction, so a rollback frees the key.
func runIdempotent[T any](ctx context.Context, uow UnitOfWork, key, username, operation string, fn func() (T, error)) (result T, replayed bool, err error) {
	if key == "" {
		result, err = fn()
		return result, false, err
	}

	repo := uow.IdempotencyRepository()
	reserved, stored, err := repo.Reserve(ctx, key, username, operation)
	if err != nil {
		return result, false, err
	}
	if !reserved {
		if stored == nil {
			return result, false, fmt.Errorf("idempotency key %s has no stored response", key)
		}
		if err := json.Unmarshal(stored, &result); err != nil {
			return result, false, fmt.Errorf("failed to decode stored response: %w", err)
		}
		return result, true, nil
	}

	result, err = fn()
	if err != nil {
		return result, false, err
	}

	body, err := json.Marshal(result)
	if err != nil {
		return result, false, fmt.Errorf("failed to encode response: %w", err)
	}
	if err := repo.Complete(ctx, key, body); err != nil {
		return result, false, err
	}
	return result, false, nil
}
