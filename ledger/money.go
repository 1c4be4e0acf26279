package ledger

import "github.com/shopspring/decimal"

// Tolerance is the absolute threshold below which a money difference is
// treated as zero. It absorbs rounding from proportional splits. The same
// 0.01 is used for every supported currency (VND, USD, EUR).
var Tolerance = decimal.NewFromFloat(0.01)

var hundred = decimal.NewFromInt(100)

// round2 rounds a money value to two decimal places (minor currency units).
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// negligible reports whether a money value is within tolerance of zero.
func negligible(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(Tolerance)
}
