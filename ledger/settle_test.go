package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestOptimizeSettlements(t *testing.T) {
	a, b, c := uid(1), uid(2), uid(3)

	t.Run("one creditor two debtors", func(t *testing.T) {
		balances := map[uuid.UUID]decimal.Decimal{
			a: dec("100"),
			b: dec("-50"),
			c: dec("-50"),
		}

		plan := OptimizeSettlements(balances)
		require.Len(t, plan, 2)
		// Equal debts tie-break on user ID, so B pays first.
		require.Equal(t, b, plan[0].Payer)
		require.Equal(t, a, plan[0].Payee)
		require.True(t, plan[0].Amount.Equal(dec("50")))
		require.Equal(t, c, plan[1].Payer)
		require.Equal(t, a, plan[1].Payee)
		require.True(t, plan[1].Amount.Equal(dec("50")))
	})

	t.Run("single pair", func(t *testing.T) {
		plan := OptimizeSettlements(map[uuid.UUID]decimal.Decimal{
			a: dec("100"),
			b: dec("-100"),
		})
		require.Len(t, plan, 1)
		require.Equal(t, Settlement{Payer: b, Payee: a, Amount: dec("100")}, plan[0])
	})

	t.Run("all settled", func(t *testing.T) {
		plan := OptimizeSettlements(map[uuid.UUID]decimal.Decimal{})
		require.Empty(t, plan)
	})

	t.Run("largest debtor pays largest creditor first", func(t *testing.T) {
		d := uid(4)
		plan := OptimizeSettlements(map[uuid.UUID]decimal.Decimal{
			a: dec("70"),
			b: dec("30"),
			c: dec("-80"),
			d: dec("-20"),
		})
		require.Len(t, plan, 3)
		require.Equal(t, c, plan[0].Payer)
		require.Equal(t, a, plan[0].Payee)
		require.True(t, plan[0].Amount.Equal(dec("70")), "got %s", plan[0].Amount)
		require.Equal(t, c, plan[1].Payer)
		require.Equal(t, b, plan[1].Payee)
		require.True(t, plan[1].Amount.Equal(dec("10")))
		require.Equal(t, d, plan[2].Payer)
		require.Equal(t, b, plan[2].Payee)
		require.True(t, plan[2].Amount.Equal(dec("20")))
	})
}

// The plan settles exactly the sum of positive balances and never needs more
// than n-1 transfers for n non-zero balances.
func TestSettlementCompletenessAndCardinality(t *testing.T) {
	tests := []struct {
		name     string
		balances map[uuid.UUID]decimal.Decimal
	}{
		{"pairwise", map[uuid.UUID]decimal.Decimal{
			uid(1): dec("10"), uid(2): dec("-10"),
		}},
		{"fan in", map[uuid.UUID]decimal.Decimal{
			uid(1): dec("99.99"), uid(2): dec("-33.33"), uid(3): dec("-33.33"), uid(4): dec("-33.33"),
		}},
		{"fan out", map[uuid.UUID]decimal.Decimal{
			uid(1): dec("-120"), uid(2): dec("40"), uid(3): dec("40"), uid(4): dec("40"),
		}},
		{"mixed magnitudes", map[uuid.UUID]decimal.Decimal{
			uid(1): dec("250.75"), uid(2): dec("-100"), uid(3): dec("-75.25"),
			uid(4): dec("-125.50"), uid(5): dec("50"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := OptimizeSettlements(tt.balances)

			positive := decimal.Zero
			nonZero := 0
			for _, balance := range tt.balances {
				if balance.IsPositive() {
					positive = positive.Add(balance)
				}
				if !negligible(balance) {
					nonZero++
				}
			}

			settled := decimal.Zero
			for _, s := range plan {
				settled = settled.Add(s.Amount)
			}
			require.True(t, settled.Sub(positive).Abs().LessThanOrEqual(Tolerance),
				"settled %s, positive balances %s", settled, positive)
			require.LessOrEqual(t, len(plan), nonZero-1)
		})
	}
}

func TestOptimizeSettlementsDeterministic(t *testing.T) {
	balances := map[uuid.UUID]decimal.Decimal{
		uid(1): dec("50"), uid(2): dec("50"), uid(3): dec("-25"),
		uid(4): dec("-25"), uid(5): dec("-25"), uid(6): dec("-25"),
	}

	first := OptimizeSettlements(balances)
	for range [20]int{} {
		require.Equal(t, first, OptimizeSettlements(balances))
	}
}

func TestUserDebts(t *testing.T) {
	a, b, c := uid(1), uid(2), uid(3)
	balances := map[uuid.UUID]decimal.Decimal{
		a: dec("100"), b: dec("-50"), c: dec("-50"),
	}
	plan := OptimizeSettlements(balances)

	t.Run("creditor view", func(t *testing.T) {
		view := UserDebts(a, balances, plan)
		require.True(t, view.NetBalance.Equal(dec("100")))
		require.Empty(t, view.Owes)
		require.Len(t, view.Owed, 2)
		require.Equal(t, b, view.Owed[0].UserID)
		require.Equal(t, c, view.Owed[1].UserID)
	})

	t.Run("debtor view", func(t *testing.T) {
		view := UserDebts(b, balances, plan)
		require.True(t, view.NetBalance.Equal(dec("-50")))
		require.Len(t, view.Owes, 1)
		require.Equal(t, a, view.Owes[0].UserID)
		require.True(t, view.Owes[0].Amount.Equal(dec("50")))
		require.Empty(t, view.Owed)
	})

	t.Run("uninvolved user", func(t *testing.T) {
		view := UserDebts(uid(9), balances, plan)
		require.True(t, view.NetBalance.IsZero())
		require.Empty(t, view.Owes)
		require.Empty(t, view.Owed)
	})

	t.Run("projection is idempotent", func(t *testing.T) {
		require.Equal(t, UserDebts(b, balances, plan), UserDebts(b, balances, plan))
	})
}
