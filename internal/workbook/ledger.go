package workbook

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	submissiondb "github.com/TanzimK12/pvm-kingdom/app/modules/submission/infrastructure/repositories"
)

var _ submissiondb.Repository = (*Store)(nil)

// ledgerTimeLayout is the timestamp format organizers see in the sheet.
const ledgerTimeLayout = "2006-01-02 15:04:05"

// hasActivityColumn reports whether the Submissions sheet still carries the
// legacy Activity column, detected from the cached header row.
func (s *Store) hasActivityColumn() bool {
	for _, h := range s.submissionHeader {
		if strings.EqualFold(strings.TrimSpace(h), "activity") {
			return true
		}
	}
	return false
}

// AppendLedger appends one row to the Submissions sheet. When the sheet
// still has the legacy Activity column a blank cell keeps the columns
// aligned.
func (s *Store) AppendLedger(ctx context.Context, row submissiondb.LedgerRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := []interface{}{
		row.CreatedAt.Format(ledgerTimeLayout),
		row.LookupKey,
		row.UserDisplay,
		row.Tile,
	}
	if s.hasActivityColumn() {
		values = append(values, "")
	}
	values = append(values, row.Item, row.Amount, row.ImageURL)

	if err := s.appendRow(SheetSubmissions, values); err != nil {
		return fmt.Errorf("%w: %v", submissiondb.ErrAppendFailed, err)
	}
	return nil
}

// LedgerRows returns the rows for one lookup key in sheet order.
func (s *Store) LedgerRows(ctx context.Context, lookupKey string) ([]submissiondb.LedgerRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.file.GetRows(SheetSubmissions)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", SheetSubmissions, err)
	}

	offset := 0
	if s.hasActivityColumn() {
		offset = 1
	}

	var out []submissiondb.LedgerRow
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if strings.TrimSpace(cellAt(row, 1)) != lookupKey {
			continue
		}
		createdAt, _ := time.ParseInLocation(ledgerTimeLayout, strings.TrimSpace(cellAt(row, 0)), time.Local)
		amount, _ := strconv.Atoi(strings.TrimSpace(cellAt(row, 5+offset)))
		out = append(out, submissiondb.LedgerRow{
			CreatedAt:   createdAt,
			LookupKey:   lookupKey,
			UserDisplay: cellAt(row, 2),
			Tile:        cellAt(row, 3),
			Item:        cellAt(row, 4+offset),
			Amount:      amount,
			ImageURL:    cellAt(row, 6+offset),
		})
	}
	return out, nil
}
