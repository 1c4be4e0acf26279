package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Statuses that make a record count toward balances. Expenses awaiting
// approval and payments that failed or are still pending are ignored.
const (
	ExpenseApproved  = "approved"
	PaymentCompleted = "completed"
)

// ExpenseEntry is the snapshot of one expense as the engine consumes it.
type ExpenseEntry struct {
	ID     uuid.UUID
	PaidBy uuid.UUID
	Amount decimal.Decimal
	Status string
	Splits []SplitEntry
}

// SplitEntry is one user's persisted share of an expense.
type SplitEntry struct {
	UserID uuid.UUID
	Amount decimal.Decimal
}

// PaymentEntry is the snapshot of one settlement payment between two members.
type PaymentEntry struct {
	Payer  uuid.UUID
	Payee  uuid.UUID
	Amount decimal.Decimal
	Status string
}

// CalculateBalances computes the net position of every user in a group from
// its ledger. Positive means the group owes the user money, negative means
// the user owes the group. Only approved expenses and completed payments
// count. Users whose balance is within tolerance of zero are dropped, so the
// remaining balances always sum to zero.
func CalculateBalances(expenses []ExpenseEntry, payments []PaymentEntry) map[uuid.UUID]decimal.Decimal {
	balances := make(map[uuid.UUID]decimal.Decimal)

	for _, exp := range expenses {
		if exp.Status != ExpenseApproved {
			continue
		}
		// The payer fronted the full amount, every participant owes their
		// share. A payer who is also a participant nets out across the two.
		balances[exp.PaidBy] = balances[exp.PaidBy].Add(exp.Amount)
		for _, split := range exp.Splits {
			balances[split.UserID] = balances[split.UserID].Sub(split.Amount)
		}
	}

	for _, p := range payments {
		if p.Status != PaymentCompleted {
			continue
		}
		// Paying off debt raises the payer's balance and lowers the payee's,
		// since the payee already received the money.
		balances[p.Payer] = balances[p.Payer].Add(p.Amount)
		balances[p.Payee] = balances[p.Payee].Sub(p.Amount)
	}

	for userID, balance := range balances {
		if negligible(balance) {
			delete(balances, userID)
		}
	}
	return balances
}
