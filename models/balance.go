package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceEntry is one user's net position in a group.
// Positive = the group owes them, negative = they owe the group.
type BalanceEntry struct {
	UserID uuid.UUID       `json:"user_id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// SettlementSuggestion is one recommended transfer from the optimizer.
type SettlementSuggestion struct {
	PayerID   uuid.UUID       `json:"payer_id"`
	PayerName string          `json:"payer_name"`
	PayeeID   uuid.UUID       `json:"payee_id"`
	PayeeName string          `json:"payee_name"`
	Amount    decimal.Decimal `json:"amount"`
}

// GroupBalanceSummary is returned for GET /api/groups/:id/balances
type GroupBalanceSummary struct {
	GroupID    uuid.UUID       `json:"group_id"`
	GroupName  string          `json:"group_name"`
	Currency   string          `json:"currency"`
	Balances   []BalanceEntry  `json:"balances"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}

// GroupSettlementSummary is returned for GET /api/groups/:id/settlements
type GroupSettlementSummary struct {
	GroupID     uuid.UUID              `json:"group_id"`
	Balances    []BalanceEntry         `json:"balances"`
	Settlements []SettlementSuggestion `json:"settlements"`
}

// DebtEntry is one counterparty in a user's debt view.
type DebtEntry struct {
	UserID uuid.UUID       `json:"user_id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// UserDebtSummary is returned for GET /api/groups/:id/debts
type UserDebtSummary struct {
	NetBalance decimal.Decimal `json:"net_balance"`
	Owes       []DebtEntry     `json:"owes"`
	Owed       []DebtEntry     `json:"owed"`
}
