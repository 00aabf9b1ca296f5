package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedgerEntry_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entry   LedgerEntry
		wantErr string
	}{
		{
			name:  "earn credit",
			entry: LedgerEntry{Username: "teen", TransactionType: TransactionTypeEarn, AvailableDelta: 3, LockedDelta: 3, AvailableAfter: 3, LockedAfter: 3},
		},
		{
			name:  "redemption debit",
			entry: LedgerEntry{Username: "alice", TransactionType: TransactionTypeRedemption, AvailableDelta: -500, AvailableAfter: 100},
		},
		{
			name:    "missing username",
			entry:   LedgerEntry{AvailableDelta: 1, AvailableAfter: 1},
			wantErr: "username is required",
		},
		{
			name:    "negative locked",
			entry:   LedgerEntry{Username: "alice", LockedDelta: -1, LockedAfter: -1},
			wantErr: "locked balance cannot go negative",
		},
		{
			name:    "debit type that adds coins",
			entry:   LedgerEntry{Username: "alice", TransactionType: TransactionTypeTipSent, AvailableDelta: 10, AvailableAfter: 10},
			wantErr: "tip_sent entry cannot add coins",
		},
		{
			name:    "issuance that removes coins",
			entry:   LedgerEntry{Username: "alice", TransactionType: TransactionTypeQuestReward, AvailableDelta: -10, AvailableAfter: 0},
			wantErr: "quest_reward entry cannot remove coins",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
