package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet is the player's balance row. The engine only touches it inside a settlement.
type Wallet struct {
	UserID    string          `json:"user_id"`
	Balance   decimal.Decimal `json:"balance"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// EntryKind tags a wallet journal row
type EntryKind string

const (
	EntryDebit  EntryKind = "debit"
	EntryCredit EntryKind = "credit"
)

// WalletEntry is one journal row. Every entry written by the engine references its round.
// Amount is signed: debits are negative.
type WalletEntry struct {
	ID        uuid.UUID       `json:"id"`
	UserID    string          `json:"user_id"`
	RoundID   uuid.UUID       `json:"round_id"`
	Kind      EntryKind       `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// ClaimStatus tracks physical prize fulfilment, which happens outside the engine
type ClaimStatus string

const ClaimPending ClaimStatus = "pending"

// PrizeClaim is the inventory record granted for a physical prize
type PrizeClaim struct {
	ID        uuid.UUID   `json:"id"`
	UserID    string      `json:"user_id"`
	ItemID    int         `json:"item_id"`
	RoundID   uuid.UUID   `json:"round_id"`
	Status    ClaimStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}
