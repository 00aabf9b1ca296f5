package services

import (
	"context"
	"errors"
	"fmt"

	"dahcoins/domain/entities"
	"dahcoins/domain/events"
	"dahcoins/domain/interfaces"
	"dahcoins/domain/utils"
)

// ledgerService implements wallet balances on top of the append-only ledger
type ledgerService struct {
	walletRepo     interfaces.WalletRepository
	ledgerRepo     interfaces.LedgerRepository
	eventPublisher interfaces.EventPublisher
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	walletRepo interfaces.WalletRepository,
	ledgerRepo interfaces.LedgerRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.LedgerService {
	return &ledgerService{
		walletRepo:     walletRepo,
		ledgerRepo:     ledgerRepo,
		eventPublisher: eventPublisher,
	}
}

// GetWallet returns the user's wallet, or a zero wallet if none exists yet
func (s *ledgerService) GetWallet(ctx context.Context, username string) (*entities.Wallet, error) {
	wallet, err := s.walletRepo.Get(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	if wallet == nil {
		return entities.NewEmptyWallet(username), nil
	}
	return wallet, nil
}

// GetLedger returns the most recent ledger entries across all users
func (s *ledgerService) GetLedger(ctx context.Context, limit int) ([]*entities.LedgerEntry, error) {
	entries, err := s.ledgerRepo.GetRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}
	return entries, nil
}

// GetTransactionHistory returns a user's ledger entries, newest first
func (s *ledgerService) GetTransactionHistory(ctx context.Context, username string, limit int) ([]*entities.LedgerEntry, error) {
	entries, err := s.ledgerRepo.GetByUser(ctx, username, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction history: %w", err)
	}
	return entries, nil
}

// AddCoins credits the age split of base to the wallet
func (s *ledgerService) AddCoins(ctx context.Context, username string, age int, event string, base int64, opts ...entities.EntryOption) (*entities.Wallet, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required: %w", entities.ErrInvalidInput)
	}

	wallet, err := s.walletRepo.GetForUpdate(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}

	split := utils.AgeSplit(age, base)
	if split.Total() == 0 {
		return wallet, nil
	}

	wallet, err = s.walletRepo.ApplyDelta(ctx, username, split.Available, split.LockedForCollege)
	if err != nil {
		return nil, fmt.Errorf("failed to credit wallet: %w", err)
	}

	entry := &entities.LedgerEntry{
		Username:        username,
		Event:           event,
		TransactionType: entities.TransactionTypeEarn,
		BaseAmount:      base,
		AvailableDelta:  split.Available,
		LockedDelta:     split.LockedForCollege,
		AvailableAfter:  wallet.Available,
		LockedAfter:     wallet.LockedForCollege,
		TransactionMetadata: map[string]any{
			"age": age,
		},
	}
	if err := s.record(ctx, entry, opts); err != nil {
		return nil, err
	}

	return wallet, nil
}

// SpendCoins debits available funds; locked funds are never spendable
func (s *ledgerService) SpendCoins(ctx context.Context, username string, amount int64, event string, opts ...entities.EntryOption) (bool, error) {
	if username == "" {
		return false, fmt.Errorf("username is required: %w", entities.ErrInvalidInput)
	}
	if amount < 0 {
		return false, fmt.Errorf("spend amount %d must not be negative: %w", amount, entities.ErrInvalidInput)
	}

	wallet, err := s.walletRepo.GetForUpdate(ctx, username)
	if err != nil {
		return false, fmt.Errorf("failed to lock wallet: %w", err)
	}
	if !wallet.CanSpend(amount) {
		return false, nil
	}
	if amount == 0 {
		return true, nil
	}

	wallet, err = s.walletRepo.ApplyDelta(ctx, username, -amount, 0)
	if errors.Is(err, entities.ErrInsufficientFunds) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to debit wallet: %w", err)
	}

	entry := &entities.LedgerEntry{
		Username:        username,
		Event:           event,
		TransactionType: entities.TransactionTypeSpend,
		BaseAmount:      -amount,
		AvailableDelta:  -amount,
		AvailableAfter:  wallet.Available,
		LockedAfter:     wallet.LockedForCollege,
	}
	if err := s.record(ctx, entry, opts); err != nil {
		return false, err
	}

	return true, nil
}

// CreditAvailable adds a flat amount to available without applying the age split
func (s *ledgerService) CreditAvailable(ctx context.Context, username string, amount int64, event string, opts ...entities.EntryOption) (*entities.Wallet, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required: %w", entities.ErrInvalidInput)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("credit amount %d must be positive: %w", amount, entities.ErrInvalidInput)
	}

	if _, err := s.walletRepo.GetForUpdate(ctx, username); err != nil {
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}

	wallet, err := s.walletRepo.ApplyDelta(ctx, username, amount, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to credit wallet: %w", err)
	}

	entry := &entities.LedgerEntry{
		Username:        username,
		Event:           event,
		TransactionType: entities.TransactionTypeAdminCredit,
		BaseAmount:      amount,
		AvailableDelta:  amount,
		AvailableAfter:  wallet.Available,
		LockedAfter:     wallet.LockedForCollege,
	}
	if err := s.record(ctx, entry, opts); err != nil {
		return nil, err
	}

	return wallet, nil
}

// SendTip moves coins from one user's available balance to another's
func (s *ledgerService) SendTip(ctx context.Context, from, to string, amount int64) (*interfaces.TipResult, error) {
	if from == "" || to == "" {
		return nil, fmt.Errorf("sender and recipient are required: %w", entities.ErrInvalidInput)
	}
	if from == to {
		return nil, fmt.Errorf("cannot tip yourself: %w", entities.ErrInvalidInput)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("tip amount must be positive: %w", entities.ErrInvalidInput)
	}

	// Lock both wallets in a stable order so two opposite tips cannot deadlock
	first, second := from, to
	if second < first {
		first, second = second, first
	}
	locked := make(map[string]*entities.Wallet, 2)
	for _, username := range []string{first, second} {
		wallet, err := s.walletRepo.GetForUpdate(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("failed to lock wallet: %w", err)
		}
		locked[username] = wallet
	}

	sender := locked[from]
	if !sender.CanSpend(amount) {
		return &interfaces.TipResult{
			Message: entities.InsufficientFundsMessage(sender.Shortfall(amount)),
		}, nil
	}

	ok, err := s.SpendCoins(ctx, from, amount, "tip_sent",
		entities.WithTransactionType(entities.TransactionTypeTipSent),
		entities.WithMetadata(map[string]any{"to": to}),
	)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &interfaces.TipResult{
			Message: entities.InsufficientFundsMessage(sender.Shortfall(amount)),
		}, nil
	}

	recipient, err := s.CreditAvailable(ctx, to, amount, "tip_received",
		entities.WithTransactionType(entities.TransactionTypeTipReceived),
		entities.WithMetadata(map[string]any{"from": from}),
	)
	if err != nil {
		return nil, err
	}

	senderWallet, err := s.walletRepo.Get(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get sender wallet: %w", err)
	}

	utils.Notify(s.eventPublisher, to, events.NotificationTipReceived, amount, utils.TipMessage(from, amount))

	return &interfaces.TipResult{
		Success:         true,
		Message:         fmt.Sprintf("Sent %s to @%s", utils.FormatCoins(amount), to),
		SenderWallet:    senderWallet,
		RecipientWallet: recipient,
	}, nil
}

func (s *ledgerService) record(ctx context.Context, entry *entities.LedgerEntry, opts []entities.EntryOption) error {
	for _, opt := range opts {
		opt(entry)
	}
	if err := utils.RecordLedgerEntry(ctx, s.ledgerRepo, s.eventPublisher, entry); err != nil {
		return fmt.Errorf("failed to record ledger entry: %w", err)
	}
	return nil
}
