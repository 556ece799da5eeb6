// Package colmap infers which statement column supplies the transaction
// date, description, and amount when importing an unfamiliar export format.
package colmap

import (
	"strings"

	"github.com/ledgerlight-dev/ledgerlight/internal/model"
	"github.com/ledgerlight-dev/ledgerlight/internal/textmatch"
)

// Role is one of the three fields every statement import must resolve.
type Role string

const (
	RoleDate        Role = "date"
	RoleDescription Role = "description"
	RoleAmount      Role = "amount"
)

// Roles lists the standard roles in resolution order.
var Roles = []Role{RoleDate, RoleDescription, RoleAmount}

// matchThreshold is deliberately conservative: it admits
// "Transaction Date" -> date while rejecting unrelated columns.
const matchThreshold = 0.6

var synonyms = map[Role][]string{
	RoleDate:        {"date", "transaction date", "posted date"},
	RoleDescription: {"description", "details", "merchant", "narrative"},
	RoleAmount:      {"amount", "value", "debit", "credit"},
}

// Guess maps roles to header names for a statement whose format has not been
// seen before. Headers are matched case-folded against each role's synonyms;
// a header is selected only when its best score reaches the threshold, with
// ties broken by first occurrence (later headers overwrite on strictly
// greater scores only). If no header resolves the amount and a sample row is
// present, the first column whose sample value parses as a number becomes
// the amount column. Absent keys mean "unresolved".
func Guess(headerRow, sampleRow []string) map[Role]string {
	lower := make([]string, len(headerRow))
	for i, h := range headerRow {
		lower[i] = strings.ToLower(strings.TrimSpace(h))
	}

	mapping := make(map[Role]string, len(Roles))
	for _, role := range Roles {
		bestCol := ""
		bestScore := 0.0
		for _, col := range lower {
			if score := textmatch.BestRatio(col, synonyms[role]); score > bestScore {
				bestCol = col
				bestScore = score
			}
		}
		if bestScore >= matchThreshold && bestCol != "" {
			mapping[role] = bestCol
		}
	}

	// Numeric-sample fallback applies to the amount column only.
	if _, ok := mapping[RoleAmount]; !ok && len(sampleRow) > 0 {
		for i, col := range lower {
			if i >= len(sampleRow) {
				break
			}
			if _, err := model.ParseAmount(sampleRow[i]); err == nil {
				mapping[RoleAmount] = col
				break
			}
		}
	}

	return mapping
}

// Complete reports whether all three roles are resolved.
func Complete(mapping map[Role]string) bool {
	for _, role := range Roles {
		if _, ok := mapping[role]; !ok {
			return false
		}
	}
	return true
}

// Missing returns the unresolved roles, in resolution order.
func Missing(mapping map[Role]string) []Role {
	var missing []Role
	for _, role := range Roles {
		if _, ok := mapping[role]; !ok {
			missing = append(missing, role)
		}
	}
	return missing
}
