package repository

import (
	"context"
	"errors"
	"fmt"

	"dahcoins/database"
	"dahcoins/domain/entities"

	"github.com/jackc/pgx/v5"
)

const walletColumns = `username, available, locked_for_college, created_at, updated_at`

// WalletRepository implements the WalletRepository interface
type WalletRepository struct {
	q Queryable
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *database.DB) *WalletRepository {
	return &WalletRepository{q: db.Pool}
}

// NewWalletRepositoryScoped creates a new wallet repository bound to a transaction
func NewWalletRepositoryScoped(tx Queryable) *WalletRepository {
	return &WalletRepository{q: tx}
}

// Get returns the wallet for username, or nil if it has never been created
func (r *WalletRepository) Get(ctx context.Context, username string) (*entities.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE username = $1`

	wallet, err := scanWallet(r.q.QueryRow(ctx, query, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet for %s: %w", username, err)
	}
	return wallet, nil
}

// GetForUpdate creates the wallet if needed and locks its row until the transaction ends
func (r *WalletRepository) GetForUpdate(ctx context.Context, username string) (*entities.Wallet, error) {
	_, err := r.q.Exec(ctx, `INSERT INTO wallets (username) VALUES ($1) ON CONFLICT (username) DO NOTHING`, username)
	if err != nil {
		return nil, fmt.Errorf("failed to create wallet for %s: %w", username, err)
	}

	query := `SELECT ` + walletColumns + ` FROM wallets WHERE username = $1 FOR UPDATE`

	wallet, err := scanWallet(r.q.QueryRow(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("failed to lock wallet for %s: %w", username, err)
	}
	return wallet, nil
}

// ApplyDelta adds the deltas in a single conditional update.
// No row is updated when either balance would go negative, which surfaces as ErrInsufficientFunds.
func (r *WalletRepository) ApplyDelta(ctx context.Context, username string, availableDelta, lockedDelta int64) (*entities.Wallet, error) {
	query := `
		UPDATE wallets
		SET available = available + $2,
		    locked_for_college = locked_for_college + $3,
		    updated_at = NOW()
		WHERE username = $1
		  AND available + $2 >= 0
		  AND locked_for_college + $3 >= 0
		RETURNING ` + walletColumns

	wallet, err := scanWallet(r.q.QueryRow(ctx, query, username, availableDelta, lockedDelta))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("apply %+d/%+d to %s: %w", availableDelta, lockedDelta, username, entities.ErrInsufficientFunds)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update wallet for %s: %w", username, err)
	}
	return wallet, nil
}

func scanWallet(row pgx.Row) (*entities.Wallet, error) {
	var wallet entities.Wallet
	err := row.Scan(
		&wallet.Username,
		&wallet.Available,
		&wallet.LockedForCollege,
		&wallet.CreatedAt,
		&wallet.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}
