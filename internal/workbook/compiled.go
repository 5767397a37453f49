package workbook

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	progressdb "github.com/TanzimK12/pvm-kingdom/app/modules/progress/infrastructure/repositories"
)

var _ progressdb.Repository = (*Store)(nil)

// TileNumbers returns the distinct tile numbers in column A of the compiled
// sheet, ascending.
func (s *Store) TileNumbers(ctx context.Context) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.file.GetRows(SheetCompiled)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", SheetCompiled, err)
	}

	seen := make(map[int]bool)
	var numbers []int
	for i, row := range rows {
		if i == 0 {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(cellAt(row, 0)))
		if err != nil || n <= 0 || seen[n] {
			continue
		}
		seen[n] = true
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers, nil
}

// Compiled returns the compiled messages for one tile and team. Team 1 reads
// column B, team 2 column C. Cells may hold multiple lines.
func (s *Store) Compiled(ctx context.Context, tileNumber, teamIndex int) ([]string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.file.GetRows(SheetCompiled)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", SheetCompiled, err)
	}

	key := strconv.Itoa(tileNumber)
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if strings.TrimSpace(cellAt(row, 0)) != key {
			continue
		}
		cell := ""
		switch teamIndex {
		case 1:
			cell = cellAt(row, 1)
		case 2:
			cell = cellAt(row, 2)
		}
		cell = strings.TrimSpace(cell)
		if cell == "" {
			return nil, true, nil
		}
		var messages []string
		for _, line := range strings.Split(cell, "\n") {
			if line = strings.TrimRight(line, "\r"); line != "" {
				messages = append(messages, line)
			}
		}
		return messages, true, nil
	}
	return nil, false, nil
}
