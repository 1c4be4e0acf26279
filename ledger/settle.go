package ledger

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Settlement is one suggested transfer that reduces outstanding balances.
type Settlement struct {
	Payer  uuid.UUID
	Payee  uuid.UUID
	Amount decimal.Decimal
}

// DebtItem is one counterparty and the amount owed to or by them.
type DebtItem struct {
	UserID uuid.UUID
	Amount decimal.Decimal
}

// DebtView is one user's slice of a settlement plan.
type DebtView struct {
	NetBalance decimal.Decimal
	Owes       []DebtItem // transfers this user should make
	Owed       []DebtItem // transfers this user should receive
}

type party struct {
	userID uuid.UUID
	amount decimal.Decimal
}

// OptimizeSettlements turns net balances into a short list of transfers that
// zeroes every balance, greedily matching the largest debtor against the
// largest creditor. Greedy matching is near-minimal rather than provably
// minimal for arbitrary debt graphs, but it never emits more than n-1
// transfers for n non-zero balances. Output order is deterministic: parties
// are taken by amount descending, ties broken by user ID.
func OptimizeSettlements(balances map[uuid.UUID]decimal.Decimal) []Settlement {
	var debtors, creditors []party
	for userID, balance := range balances {
		if balance.IsNegative() {
			debtors = append(debtors, party{userID, balance.Neg()})
		} else if balance.IsPositive() {
			creditors = append(creditors, party{userID, balance})
		}
	}
	sortParties(debtors)
	sortParties(creditors)

	var settlements []Settlement
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := debtors[i].amount
		if creditors[j].amount.LessThan(amount) {
			amount = creditors[j].amount
		}

		settlements = append(settlements, Settlement{
			Payer:  debtors[i].userID,
			Payee:  creditors[j].userID,
			Amount: amount,
		})

		debtors[i].amount = debtors[i].amount.Sub(amount)
		creditors[j].amount = creditors[j].amount.Sub(amount)

		if debtors[i].amount.LessThan(Tolerance) {
			i++
		}
		if creditors[j].amount.LessThan(Tolerance) {
			j++
		}
	}
	return settlements
}

func sortParties(parties []party) {
	sort.Slice(parties, func(a, b int) bool {
		if !parties[a].amount.Equal(parties[b].amount) {
			return parties[a].amount.GreaterThan(parties[b].amount)
		}
		return parties[a].userID.String() < parties[b].userID.String()
	})
}

// UserDebts projects a settlement plan onto one user: which transfers they
// make, which they receive, and their own net balance.
func UserDebts(userID uuid.UUID, balances map[uuid.UUID]decimal.Decimal, plan []Settlement) DebtView {
	view := DebtView{NetBalance: balances[userID]}
	for _, s := range plan {
		switch userID {
		case s.Payer:
			view.Owes = append(view.Owes, DebtItem{UserID: s.Payee, Amount: s.Amount})
		case s.Payee:
			view.Owed = append(view.Owed, DebtItem{UserID: s.Payer, Amount: s.Amount})
		}
	}
	return view
}
