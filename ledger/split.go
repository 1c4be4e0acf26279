// Package ledger holds the pure money math of the app: computing expense
// splits and turning a group's ledger into net balances and a minimal set of
// settlement transfers. It never touches the database; callers load the
// records and pass them in as values.
package ledger

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Split types
const (
	SplitEqual   = "equal"   // divide evenly among all group members
	SplitUnequal = "unequal" // divide by per-user percentages
	SplitCustom  = "custom"  // divide by per-user fixed amounts
)

// SplitShare is one participant's computed share of an expense.
type SplitShare struct {
	UserID     uuid.UUID
	Amount     decimal.Decimal
	Percentage decimal.Decimal
}

// ShareInput is the caller-provided portion for one user. Percentage is read
// for unequal splits, Amount for custom splits.
type ShareInput struct {
	UserID     uuid.UUID
	Percentage decimal.Decimal
	Amount     decimal.Decimal
}

// InvalidSplitError reports split input that fails its consistency
// precondition. It is always caused by bad caller input; retrying with the
// same input yields the same error.
type InvalidSplitError struct {
	Reason string
}

func (e *InvalidSplitError) Error() string {
	return "invalid split: " + e.Reason
}

func invalidSplit(format string, args ...interface{}) error {
	return &InvalidSplitError{Reason: fmt.Sprintf(format, args...)}
}

// SplitExpense computes the full set of shares for an expense under the given
// split type. Equal splits derive participants from memberIDs; unequal and
// custom splits require explicit inputs. The returned shares always sum to
// exactly the total.
func SplitExpense(total decimal.Decimal, splitType string, memberIDs []uuid.UUID, inputs []ShareInput) ([]SplitShare, error) {
	switch splitType {
	case SplitEqual:
		return equalSplit(total, memberIDs)
	case SplitUnequal:
		return percentageSplit(total, inputs)
	case SplitCustom:
		return amountSplit(total, inputs)
	default:
		return nil, invalidSplit("unknown split type: %s", splitType)
	}
}

// equalSplit divides the total evenly. Shares are rounded to two decimal
// places and the first member absorbs the rounding remainder, so the shares
// sum to the total exactly even when it does not divide evenly.
func equalSplit(total decimal.Decimal, memberIDs []uuid.UUID) ([]SplitShare, error) {
	if len(memberIDs) == 0 {
		return nil, invalidSplit("group has no members to split among")
	}

	n := decimal.NewFromInt(int64(len(memberIDs)))
	perPerson := round2(total.Div(n))
	remainder := total.Sub(perPerson.Mul(n))
	percentage := round2(hundred.Div(n))

	shares := make([]SplitShare, 0, len(memberIDs))
	for i, userID := range memberIDs {
		amount := perPerson
		if i == 0 {
			amount = amount.Add(remainder)
		}
		shares = append(shares, SplitShare{
			UserID:     userID,
			Amount:     amount,
			Percentage: percentage,
		})
	}
	return shares, nil
}

// percentageSplit divides the total by per-user percentages, which must sum
// to 100 within tolerance. Per-share amounts are rounded to two decimal
// places; the last share absorbs the residual so the sum stays exact.
func percentageSplit(total decimal.Decimal, inputs []ShareInput) ([]SplitShare, error) {
	if len(inputs) == 0 {
		return nil, invalidSplit("split data required for unequal split")
	}

	totalPercentage := decimal.Zero
	for _, in := range inputs {
		totalPercentage = totalPercentage.Add(in.Percentage)
	}
	if !negligible(totalPercentage.Sub(hundred)) {
		return nil, invalidSplit("percentages must add up to 100, got %s", totalPercentage)
	}

	shares := make([]SplitShare, 0, len(inputs))
	allocated := decimal.Zero
	for i, in := range inputs {
		var amount decimal.Decimal
		if i == len(inputs)-1 {
			amount = total.Sub(allocated)
		} else {
			amount = round2(total.Mul(in.Percentage).Div(hundred))
			allocated = allocated.Add(amount)
		}
		shares = append(shares, SplitShare{
			UserID:     in.UserID,
			Amount:     amount,
			Percentage: in.Percentage,
		})
	}
	return shares, nil
}

// amountSplit uses caller-specified fixed amounts, which must sum to the
// total within tolerance. Percentages are back-computed for display.
func amountSplit(total decimal.Decimal, inputs []ShareInput) ([]SplitShare, error) {
	if len(inputs) == 0 {
		return nil, invalidSplit("split data required for custom split")
	}

	totalSplit := decimal.Zero
	for _, in := range inputs {
		totalSplit = totalSplit.Add(in.Amount)
	}
	if !negligible(totalSplit.Sub(total)) {
		return nil, invalidSplit("split amounts must equal total expense amount, got %s of %s", totalSplit, total)
	}

	shares := make([]SplitShare, 0, len(inputs))
	for _, in := range inputs {
		percentage := decimal.Zero
		if !total.IsZero() {
			percentage = round2(in.Amount.Mul(hundred).Div(total))
		}
		shares = append(shares, SplitShare{
			UserID:     in.UserID,
			Amount:     round2(in.Amount),
			Percentage: percentage,
		})
	}
	return shares, nil
}
