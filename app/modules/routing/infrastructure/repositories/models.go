package routingdb

import "github.com/uptrace/bun"

// RoutingEntry is one team routing row.
type RoutingEntry struct {
	bun.BaseModel `bun:"table:routing_entries,alias:re"`

	ID                int64  `bun:"id,pk,autoincrement"`
	GuildID           string `bun:"guild_id,notnull"`
	Team              string `bun:"team,notnull"`
	LookupKey         string `bun:"lookup_key,notnull"`
	ApprovalChannelID string `bun:"approval_channel_id,notnull"`
	ApprovedChannelID string `bun:"approved_channel_id,notnull"`
	DeniedChannelID   string `bun:"denied_channel_id,notnull"`
	ProgressChannelID string `bun:"progress_channel_id"`
	Position          int    `bun:"position,notnull,default:0"`
}

// CompetitionSetting is a single-row table carrying the mode flag.
type CompetitionSetting struct {
	bun.BaseModel `bun:"table:competition_settings,alias:cs"`

	ID         int64 `bun:"id,pk,autoincrement"`
	ServerMode bool  `bun:"server_mode,notnull,default:false"`
}
