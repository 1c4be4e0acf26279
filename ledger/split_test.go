package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func uid(n byte) uuid.UUID {
	return uuid.UUID{15: n}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSplitExpenseEqual(t *testing.T) {
	u1, u2, u3 := uid(1), uid(2), uid(3)

	t.Run("even division", func(t *testing.T) {
		shares, err := SplitExpense(dec("100"), SplitEqual, []uuid.UUID{u1, u2}, nil)
		require.NoError(t, err)
		require.Len(t, shares, 2)
		require.True(t, shares[0].Amount.Equal(dec("50")), "got %s", shares[0].Amount)
		require.True(t, shares[1].Amount.Equal(dec("50")))
		require.True(t, shares[0].Percentage.Equal(dec("50")))
	})

	t.Run("remainder goes to first member", func(t *testing.T) {
		shares, err := SplitExpense(dec("100"), SplitEqual, []uuid.UUID{u1, u2, u3}, nil)
		require.NoError(t, err)
		require.Len(t, shares, 3)
		require.True(t, shares[0].Amount.Equal(dec("33.34")), "got %s", shares[0].Amount)
		require.True(t, shares[1].Amount.Equal(dec("33.33")))
		require.True(t, shares[2].Amount.Equal(dec("33.33")))
	})

	t.Run("no members", func(t *testing.T) {
		_, err := SplitExpense(dec("100"), SplitEqual, nil, nil)
		require.Error(t, err)
		var splitErr *InvalidSplitError
		require.ErrorAs(t, err, &splitErr)
	})
}

func TestSplitExpensePercentage(t *testing.T) {
	u1, u2 := uid(1), uid(2)

	t.Run("valid percentages", func(t *testing.T) {
		shares, err := SplitExpense(dec("100"), SplitUnequal, nil, []ShareInput{
			{UserID: u1, Percentage: dec("70")},
			{UserID: u2, Percentage: dec("30")},
		})
		require.NoError(t, err)
		require.Len(t, shares, 2)
		require.True(t, shares[0].Amount.Equal(dec("70")), "got %s", shares[0].Amount)
		require.True(t, shares[1].Amount.Equal(dec("30")))
		require.True(t, shares[1].Percentage.Equal(dec("30")))
	})

	t.Run("percentages under 100 rejected", func(t *testing.T) {
		_, err := SplitExpense(dec("100"), SplitUnequal, nil, []ShareInput{
			{UserID: u1, Percentage: dec("70")},
			{UserID: u2, Percentage: dec("20")},
		})
		var splitErr *InvalidSplitError
		require.ErrorAs(t, err, &splitErr)
		require.Contains(t, splitErr.Reason, "100")
	})

	t.Run("missing input rejected", func(t *testing.T) {
		_, err := SplitExpense(dec("100"), SplitUnequal, nil, nil)
		var splitErr *InvalidSplitError
		require.ErrorAs(t, err, &splitErr)
	})

	t.Run("last share absorbs rounding residual", func(t *testing.T) {
		shares, err := SplitExpense(dec("100"), SplitUnequal, nil, []ShareInput{
			{UserID: u1, Percentage: dec("33.33")},
			{UserID: u2, Percentage: dec("33.33")},
			{UserID: uid(3), Percentage: dec("33.34")},
		})
		require.NoError(t, err)
		sum := decimal.Zero
		for _, s := range shares {
			sum = sum.Add(s.Amount)
		}
		require.True(t, sum.Equal(dec("100")), "shares sum to %s", sum)
	})
}

func TestSplitExpenseCustom(t *testing.T) {
	u1, u2 := uid(1), uid(2)

	t.Run("valid amounts", func(t *testing.T) {
		shares, err := SplitExpense(dec("150"), SplitCustom, nil, []ShareInput{
			{UserID: u1, Amount: dec("100")},
			{UserID: u2, Amount: dec("50")},
		})
		require.NoError(t, err)
		require.Len(t, shares, 2)
		require.True(t, shares[0].Amount.Equal(dec("100")))
		require.True(t, shares[0].Percentage.Equal(dec("66.67")), "got %s", shares[0].Percentage)
		require.True(t, shares[1].Percentage.Equal(dec("33.33")))
	})

	t.Run("amounts not matching total rejected", func(t *testing.T) {
		_, err := SplitExpense(dec("150"), SplitCustom, nil, []ShareInput{
			{UserID: u1, Amount: dec("60")},
			{UserID: u2, Amount: dec("30")},
		})
		var splitErr *InvalidSplitError
		require.ErrorAs(t, err, &splitErr)
	})

	t.Run("missing input rejected", func(t *testing.T) {
		_, err := SplitExpense(dec("150"), SplitCustom, nil, nil)
		var splitErr *InvalidSplitError
		require.ErrorAs(t, err, &splitErr)
	})
}

func TestSplitExpenseUnknownType(t *testing.T) {
	_, err := SplitExpense(dec("10"), "shares", []uuid.UUID{uid(1)}, nil)
	var splitErr *InvalidSplitError
	require.ErrorAs(t, err, &splitErr)
}

// The sum of generated shares must equal the expense amount exactly for any
// valid input, regardless of policy.
func TestSplitSumInvariant(t *testing.T) {
	members := []uuid.UUID{uid(1), uid(2), uid(3), uid(4), uid(5), uid(6), uid(7)}

	tests := []struct {
		name      string
		total     decimal.Decimal
		splitType string
		members   []uuid.UUID
		inputs    []ShareInput
	}{
		{"equal odd total", dec("99.99"), SplitEqual, members, nil},
		{"equal indivisible", dec("10"), SplitEqual, members[:3], nil},
		{"equal tiny", dec("0.05"), SplitEqual, members[:4], nil},
		{"percentage thirds", dec("250"), SplitUnequal, nil, []ShareInput{
			{UserID: uid(1), Percentage: dec("33.33")},
			{UserID: uid(2), Percentage: dec("33.33")},
			{UserID: uid(3), Percentage: dec("33.34")},
		}},
		{"percentage uneven", dec("1000000"), SplitUnequal, nil, []ShareInput{
			{UserID: uid(1), Percentage: dec("12.5")},
			{UserID: uid(2), Percentage: dec("37.5")},
			{UserID: uid(3), Percentage: dec("50")},
		}},
		{"custom exact", dec("75.25"), SplitCustom, nil, []ShareInput{
			{UserID: uid(1), Amount: dec("25.25")},
			{UserID: uid(2), Amount: dec("50")},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := SplitExpense(tt.total, tt.splitType, tt.members, tt.inputs)
			require.NoError(t, err)
			sum := decimal.Zero
			for _, s := range shares {
				sum = sum.Add(s.Amount)
			}
			require.True(t, sum.Sub(tt.total).Abs().LessThanOrEqual(Tolerance),
				"shares sum to %s, want %s", sum, tt.total)
		})
	}
}
