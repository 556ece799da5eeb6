package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Mapping is a learned keyword->category association with an amount
// tolerance band. A mapping only matches transactions whose amount falls
// inside [LowAmount, HighAmount].
type Mapping struct {
	ID             int64
	Keyword        string // lowercased
	LowAmount      decimal.Decimal
	HighAmount     decimal.Decimal
	CategoryID     int64
	RecurringGuess bool
	LastUsed       time.Time
}

// Covers reports whether amt falls inside the mapping's amount band.
func (m Mapping) Covers(amt decimal.Decimal) bool {
	return amt.GreaterThanOrEqual(m.LowAmount) && amt.LessThanOrEqual(m.HighAmount)
}

var (
	bandLow  = decimal.RequireFromString("0.95")
	bandHigh = decimal.RequireFromString("1.05")
)

// Band returns the +/-5% tolerance band around amount. The band is
// normalized so low <= high holds for negative amounts too.
func Band(amount decimal.Decimal) (low, high decimal.Decimal) {
	low = amount.Mul(bandLow)
	high = amount.Mul(bandHigh)
	if low.GreaterThan(high) {
		low, high = high, low
	}
	return low, high
}
