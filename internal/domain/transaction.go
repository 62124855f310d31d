package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType тип записи в леджере
type TransactionType string

const (
	TransactionHoldCapture  TransactionType = "hold_capture"
	TransactionWalletCredit TransactionType = "wallet_credit"
	TransactionPayout       TransactionType = "payout"
)

// Transaction immutable ledger entry. Every captured no-show deposit
// produces exactly two records (master compensation + client wallet credit)
// that sum to the full slotta amount.
type Transaction struct {
	ID        int64
	BookingID *int64
	MasterID  *int64
	ClientID  *int64

	Type        TransactionType
	Amount      decimal.Decimal
	Description string

	CreatedAt time.Time
}
