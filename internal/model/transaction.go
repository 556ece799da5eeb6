package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a persisted ledger row.
type Transaction struct {
	ID          int64
	Date        time.Time
	Description string
	Amount      decimal.Decimal // negative = expense, positive = income
	CategoryID  int64           // 0 = uncategorised
	Type        CategoryType
	Recurring   bool
}

// StatementRow is one parsed bank-statement line, before categorisation.
type StatementRow struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
}

// amountStrip covers thousands separators and the currency symbols seen in
// UK and US statement exports.
var amountStrip = strings.NewReplacer(",", "", "£", "", "$", "", " ", "")

// ParseAmount parses a raw statement amount cell, tolerating thousands
// separators and currency symbols.
func ParseAmount(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(amountStrip.Replace(strings.TrimSpace(raw)))
}
