package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerlight-dev/ledgerlight/internal/colmap"
	"github.com/ledgerlight-dev/ledgerlight/internal/model"
)

// dateLayouts are tried in order. UK day-first formats come before the US
// month-first one.
var dateLayouts = []string{
	"02/01/2006",
	"2006-01-02",
	"02-01-2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"01/02/2006",
}

// ReadHeader returns the header row and first data row (nil when the file
// has no data rows) without consuming the rest of the file.
func ReadHeader(r io.Reader) (header, sample []string, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err = cr.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("statement is empty")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}

	sample, err = cr.Read()
	if err == io.EOF {
		return header, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading sample row: %w", err)
	}
	return header, sample, nil
}

// ParseStatement reads a statement CSV into typed rows using a complete
// column mapping (lowercased header name per role). Rows whose amount does
// not parse are skipped; an unparseable date is an error, since it means
// the mapping picked the wrong column. When the amount column is a
// debit/credit pair member and a row's cell is blank, the counterpart
// column supplies the amount, with debits negated.
func ParseStatement(r io.Reader, mapping map[colmap.Role]string) ([]model.StatementRow, error) {
	if !colmap.Complete(mapping) {
		return nil, fmt.Errorf("unresolved column mapping: missing %v", colmap.Missing(mapping))
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	index := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}

	cols := make(map[colmap.Role]int, len(colmap.Roles))
	for _, role := range colmap.Roles {
		i, ok := index[mapping[role]]
		if !ok {
			return nil, fmt.Errorf("mapped column %q for %s not in header", mapping[role], role)
		}
		cols[role] = i
	}

	var rows []model.StatementRow
	for n, rec := range records[1:] {
		row, ok, err := parseRow(rec, cols, mapping[colmap.RoleAmount], index)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		if ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func parseRow(rec []string, cols map[colmap.Role]int, amountCol string, index map[string]int) (model.StatementRow, bool, error) {
	for _, i := range cols {
		if i >= len(rec) {
			return model.StatementRow{}, false, nil
		}
	}

	date, err := parseDate(rec[cols[colmap.RoleDate]])
	if err != nil {
		return model.StatementRow{}, false, err
	}

	amount, ok := rowAmount(rec, cols[colmap.RoleAmount], amountCol, index)
	if !ok {
		return model.StatementRow{}, false, nil
	}

	return model.StatementRow{
		Date:        date,
		Description: strings.TrimSpace(rec[cols[colmap.RoleDescription]]),
		Amount:      amount,
	}, true, nil
}

// rowAmount resolves a row's amount. Statements that split money out and
// money in across debit/credit columns leave one of them blank per row;
// amounts drawn from a debit column are negated so spending stays negative.
func rowAmount(rec []string, amountIdx int, amountCol string, index map[string]int) (decimal.Decimal, bool) {
	cell := rec[amountIdx]
	col := amountCol

	if strings.TrimSpace(cell) == "" {
		counterpart := map[string]string{"debit": "credit", "credit": "debit"}[amountCol]
		if i, exists := index[counterpart]; exists && i < len(rec) && strings.TrimSpace(rec[i]) != "" {
			cell = rec[i]
			col = counterpart
		}
	}

	amt, err := model.ParseAmount(cell)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if col == "debit" && amt.IsPositive() {
		amt = amt.Neg()
	}
	return amt, true
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing date %q", raw)
}
