package entities

import (
	"errors"
	"fmt"
	"time"
)

// RelatedType represents what type of entity the related_id refers to
type RelatedType string

const (
	RelatedTypeStake      RelatedType = "stake"
	RelatedTypeRedemption RelatedType = "redemption"
)

// LedgerEntry is an immutable record of a single wallet balance change
type LedgerEntry struct {
	ID                  int64           `db:"id" json:"id"`
	Username            string          `db:"username" json:"username"`
	Event               string          `db:"event" json:"event"`
	TransactionType     TransactionType `db:"transaction_type" json:"transactionType"`
	BaseAmount          int64           `db:"base_amount" json:"baseAmount"`
	AvailableDelta      int64           `db:"available_delta" json:"availableDelta"`
	LockedDelta         int64           `db:"locked_delta" json:"lockedDelta"`
	AvailableAfter      int64           `db:"available_after" json:"availableAfter"`
	LockedAfter         int64           `db:"locked_after" json:"lockedAfter"`
	TransactionMetadata map[string]any  `db:"transaction_metadata" json:"metadata,omitempty"`
	RelatedID           *int64          `db:"related_id" json:"relatedId,omitempty"`
	RelatedType         *RelatedType    `db:"related_type" json:"relatedType,omitempty"`
	CreatedAt           time.Time       `db:"created_at" json:"timestamp"`
}

// TotalDelta returns the combined change across both balances
func (e *LedgerEntry) TotalDelta() int64 {
	return e.AvailableDelta + e.LockedDelta
}

// IsCredit returns true if the entry increased the wallet total
func (e *LedgerEntry) IsCredit() bool {
	return e.TotalDelta() > 0
}

// IsDebit returns true if the entry decreased the wallet total
func (e *LedgerEntry) IsDebit() bool {
	return e.TotalDelta() < 0
}

// WithRelated attaches the entity the entry refers to
func (e *LedgerEntry) WithRelated(id int64, relatedType RelatedType) *LedgerEntry {
	e.RelatedID = &id
	e.RelatedType = &relatedType
	return e
}

// Validate performs basic consistency checks on the entry
func (e *LedgerEntry) Validate() error {
	if e.Username == "" {
		return errors.New("username is required")
	}
	if e.AvailableAfter < 0 {
		return errors.New("available balance cannot go negative")
	}
	if e.LockedAfter < 0 {
		return errors.New("locked balance cannot go negative")
	}
	if e.TransactionType.IsDebitType() && e.IsCredit() {
		return fmt.Errorf("%s entry cannot add coins", e.TransactionType)
	}
	if e.TransactionType.IsIssuance() && e.IsDebit() {
		return fmt.Errorf("%s entry cannot remove coins", e.TransactionType)
	}
	return nil
}

// EntryOption customizes a ledger entry before it is recorded
type EntryOption func(*LedgerEntry)

// WithTransactionType overrides the default transaction type
func WithTransactionType(tt TransactionType) EntryOption {
	return func(e *LedgerEntry) {
		e.TransactionType = tt
	}
}

// WithMetadata merges metadata into the entry
func WithMetadata(metadata map[string]any) EntryOption {
	return func(e *LedgerEntry) {
		if e.TransactionMetadata == nil {
			e.TransactionMetadata = make(map[string]any, len(metadata))
		}
		for k, v := range metadata {
			e.TransactionMetadata[k] = v
		}
	}
}

// WithRelatedEntity links the entry to a stake or redemption
func WithRelatedEntity(id int64, relatedType RelatedType) EntryOption {
	return func(e *LedgerEntry) {
		e.WithRelated(id, relatedType)
	}
}
