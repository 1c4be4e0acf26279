package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCalculateBalances(t *testing.T) {
	a, b, c := uid(1), uid(2), uid(3)

	t.Run("payer nets out own share", func(t *testing.T) {
		// A pays 90 split equally three ways: A is owed 60, B and C owe 30.
		expenses := []ExpenseEntry{{
			ID:     uid(10),
			PaidBy: a,
			Amount: dec("90"),
			Status: ExpenseApproved,
			Splits: []SplitEntry{
				{UserID: a, Amount: dec("30")},
				{UserID: b, Amount: dec("30")},
				{UserID: c, Amount: dec("30")},
			},
		}}

		balances := CalculateBalances(expenses, nil)
		require.Len(t, balances, 3)
		require.True(t, balances[a].Equal(dec("60")), "A = %s", balances[a])
		require.True(t, balances[b].Equal(dec("-30")))
		require.True(t, balances[c].Equal(dec("-30")))
	})

	t.Run("pending and rejected expenses ignored", func(t *testing.T) {
		expenses := []ExpenseEntry{
			{PaidBy: a, Amount: dec("50"), Status: "pending",
				Splits: []SplitEntry{{UserID: b, Amount: dec("50")}}},
			{PaidBy: a, Amount: dec("70"), Status: "rejected",
				Splits: []SplitEntry{{UserID: b, Amount: dec("70")}}},
		}
		balances := CalculateBalances(expenses, nil)
		require.Empty(t, balances)
	})

	t.Run("completed payment reduces debt", func(t *testing.T) {
		expenses := []ExpenseEntry{{
			PaidBy: a,
			Amount: dec("100"),
			Status: ExpenseApproved,
			Splits: []SplitEntry{
				{UserID: a, Amount: dec("50")},
				{UserID: b, Amount: dec("50")},
			},
		}}
		payments := []PaymentEntry{
			{Payer: b, Payee: a, Amount: dec("20"), Status: PaymentCompleted},
			{Payer: b, Payee: a, Amount: dec("99"), Status: "pending"},
			{Payer: b, Payee: a, Amount: dec("99"), Status: "failed"},
		}

		balances := CalculateBalances(expenses, payments)
		require.True(t, balances[a].Equal(dec("30")), "A = %s", balances[a])
		require.True(t, balances[b].Equal(dec("-30")))
	})

	t.Run("settled users are dropped", func(t *testing.T) {
		expenses := []ExpenseEntry{{
			PaidBy: a,
			Amount: dec("50"),
			Status: ExpenseApproved,
			Splits: []SplitEntry{
				{UserID: a, Amount: dec("25")},
				{UserID: b, Amount: dec("25")},
			},
		}}
		payments := []PaymentEntry{
			{Payer: b, Payee: a, Amount: dec("25"), Status: PaymentCompleted},
		}

		balances := CalculateBalances(expenses, payments)
		require.Empty(t, balances)
	})
}

// For any mix of approved expenses and completed payments the surviving
// balances sum to zero within tolerance.
func TestZeroSumInvariant(t *testing.T) {
	a, b, c, d := uid(1), uid(2), uid(3), uid(4)

	expenses := []ExpenseEntry{
		{PaidBy: a, Amount: dec("100"), Status: ExpenseApproved, Splits: []SplitEntry{
			{UserID: a, Amount: dec("33.34")},
			{UserID: b, Amount: dec("33.33")},
			{UserID: c, Amount: dec("33.33")},
		}},
		{PaidBy: b, Amount: dec("75.50"), Status: ExpenseApproved, Splits: []SplitEntry{
			{UserID: b, Amount: dec("25.50")},
			{UserID: c, Amount: dec("25")},
			{UserID: d, Amount: dec("25")},
		}},
		{PaidBy: d, Amount: dec("42"), Status: ExpenseApproved, Splits: []SplitEntry{
			{UserID: a, Amount: dec("21")},
			{UserID: d, Amount: dec("21")},
		}},
	}
	payments := []PaymentEntry{
		{Payer: c, Payee: a, Amount: dec("30"), Status: PaymentCompleted},
		{Payer: b, Payee: d, Amount: dec("10"), Status: PaymentCompleted},
	}

	balances := CalculateBalances(expenses, payments)
	sum := decimal.Zero
	for _, balance := range balances {
		sum = sum.Add(balance)
	}
	require.True(t, sum.Abs().LessThanOrEqual(Tolerance), "balances sum to %s", sum)
}

func TestCalculateBalancesEmptyLedger(t *testing.T) {
	balances := CalculateBalances(nil, nil)
	require.Empty(t, balances)

	balances = CalculateBalances([]ExpenseEntry{}, []PaymentEntry{})
	require.Empty(t, balances)
	require.NotNil(t, balances)
	_ = balances[uuid.Nil] // lookups on an empty result are safe
}
