package workbook

import (
	"context"
	"fmt"
	"strings"

	routingdomain "github.com/TanzimK12/pvm-kingdom/app/modules/routing/domain"
	routingdb "github.com/TanzimK12/pvm-kingdom/app/modules/routing/infrastructure/repositories"
)

var _ routingdb.Repository = (*Store)(nil)

// Mode reads CompetitionInformation!B1 on every call so organizers can flip
// it mid-competition.
func (s *Store) Mode(ctx context.Context) (routingdomain.Mode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, err := s.file.GetCellValue(SheetInfo, "B1")
	if err != nil {
		return "", fmt.Errorf("failed to read competition mode: %w", err)
	}
	if strings.EqualFold(strings.TrimSpace(value), "true") {
		return routingdomain.ModeServer, nil
	}
	return routingdomain.ModeChannel, nil
}

// Entries reads TeamDetails rows in sheet order. Columns: team label, lookup
// key, approval, approved, denied, progress channel, guild.
func (s *Store) Entries(ctx context.Context) ([]routingdomain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.file.GetRows(SheetTeams)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", SheetTeams, err)
	}

	var entries []routingdomain.Entry
	for i, row := range rows {
		if i == 0 {
			continue
		}
		lookupKey := strings.TrimSpace(cellAt(row, 1))
		if lookupKey == "" {
			continue
		}
		entries = append(entries, routingdomain.Entry{
			Team:              strings.TrimSpace(cellAt(row, 0)),
			LookupKey:         lookupKey,
			ApprovalChannelID: strings.TrimSpace(cellAt(row, 2)),
			ApprovedChannelID: strings.TrimSpace(cellAt(row, 3)),
			DeniedChannelID:   strings.TrimSpace(cellAt(row, 4)),
			ProgressChannelID: strings.TrimSpace(cellAt(row, 5)),
			GuildID:           strings.TrimSpace(cellAt(row, 6)),
		})
	}
	return entries, nil
}
