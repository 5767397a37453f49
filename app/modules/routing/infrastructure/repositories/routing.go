package routingdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	routingdomain "github.com/TanzimK12/pvm-kingdom/app/modules/routing/domain"
)

// RoutingDBImpl is the bun-backed routing repository.
type RoutingDBImpl struct {
	DB *bun.DB
}

// Mode reads the settings row. Missing settings default to channel mode,
// matching a fresh competition before an organizer flips the flag.
func (db *RoutingDBImpl) Mode(ctx context.Context) (routingdomain.Mode, error) {
	var setting CompetitionSetting
	err := db.DB.NewSelect().
		Model(&setting).
		Order("id ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return routingdomain.ModeChannel, nil
		}
		return "", fmt.Errorf("failed to read competition settings: %w", err)
	}
	if setting.ServerMode {
		return routingdomain.ModeServer, nil
	}
	return routingdomain.ModeChannel, nil
}

// Entries returns routing rows in stored order.
func (db *RoutingDBImpl) Entries(ctx context.Context) ([]routingdomain.Entry, error) {
	var rows []RoutingEntry
	err := db.DB.NewSelect().
		Model(&rows).
		Order("position ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load routing entries: %w", err)
	}

	entries := make([]routingdomain.Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, routingdomain.Entry{
			GuildID:           r.GuildID,
			Team:              r.Team,
			LookupKey:         r.LookupKey,
			ApprovalChannelID: r.ApprovalChannelID,
			ApprovedChannelID: r.ApprovedChannelID,
			DeniedChannelID:   r.DeniedChannelID,
			ProgressChannelID: r.ProgressChannelID,
		})
	}
	return entries, nil
}
