// Package workbook is the spreadsheet storage backend. It serves the same
// repository interfaces as the database backend from a single .xlsx file,
// which is how small competitions are actually run: organizers edit the
// sheets by hand and the bot reads them live.
package workbook

import (
	"fmt"
	"sync"

	"github.com/xuri/excelize/v2"
)

// Sheet names, matching the layout organizers maintain.
const (
	SheetTiles       = "TilesActivities"
	SheetSubmissions = "Submissions"
	SheetTeams       = "TeamDetails"
	SheetInfo        = "CompetitionInformation"
	SheetCompiled    = "Compiled Messages by Team"
	SheetCosts       = "APICostLog"
)

// Store is a mutex-guarded handle on the workbook. One Store serves every
// repository interface; excelize files are not safe for concurrent use.
type Store struct {
	mu   sync.Mutex
	path string
	file *excelize.File

	// submissionHeader is cached at open, the way the running competition
	// treats it: schema edits require a restart.
	submissionHeader []string
}

// Open loads the workbook, creating any missing sheets so a fresh file is
// usable immediately.
func Open(path string) (*Store, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		file = excelize.NewFile()
		if err := ensureSheets(file); err != nil {
			return nil, fmt.Errorf("failed to initialize workbook: %w", err)
		}
		if err := file.SaveAs(path); err != nil {
			return nil, fmt.Errorf("failed to create workbook %s: %w", path, err)
		}
	} else if err := ensureSheets(file); err != nil {
		return nil, fmt.Errorf("failed to initialize workbook: %w", err)
	}

	s := &Store{path: path, file: file}

	header, err := file.GetRows(SheetSubmissions)
	if err != nil {
		return nil, fmt.Errorf("failed to read submissions header: %w", err)
	}
	if len(header) > 0 {
		s.submissionHeader = header[0]
	}

	return s, nil
}

func ensureSheets(file *excelize.File) error {
	headers := map[string][]interface{}{
		SheetTiles:       {"Tile", "Notes", "Items"},
		SheetSubmissions: {"Timestamp", "Lookup Key", "Submitted By", "Tile", "Item", "Amount", "Image URL"},
		SheetTeams:       {"Team", "Lookup Key", "Approval", "Approved", "Denied", "Progress", "Guild"},
		SheetCompiled:    {"Tile", "Team 1", "Team 2"},
		SheetCosts:       {"Timestamp", "User", "Model", "Images", "Prompt Tokens", "Completion Tokens", "Cost USD", "Notes"},
	}

	for name, header := range headers {
		idx, err := file.GetSheetIndex(name)
		if err != nil {
			return err
		}
		if idx >= 0 {
			continue
		}
		if _, err := file.NewSheet(name); err != nil {
			return err
		}
		if err := file.SetSheetRow(name, "A1", &header); err != nil {
			return err
		}
	}

	if idx, err := file.GetSheetIndex(SheetInfo); err != nil {
		return err
	} else if idx < 0 {
		if _, err := file.NewSheet(SheetInfo); err != nil {
			return err
		}
		if err := file.SetCellValue(SheetInfo, "A1", "Server mode"); err != nil {
			return err
		}
		if err := file.SetCellValue(SheetInfo, "B1", "false"); err != nil {
			return err
		}
	}

	return nil
}

// appendRow writes one row after the last occupied row and saves. Callers
// hold the mutex.
func (s *Store) appendRow(sheet string, values []interface{}) error {
	rows, err := s.file.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", sheet, err)
	}
	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return err
	}
	if err := s.file.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s: %w", sheet, err)
	}
	if err := s.file.Save(); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// Close releases the underlying file.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

func cellAt(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
