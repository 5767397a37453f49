package events

// ProgressRequestedPayloadV1 is the /progress command.
type ProgressRequestedPayloadV1 struct {
	GuildID    string `json:"guild_id"`
	ChannelID  string `json:"channel_id"`
	UserID     string `json:"user_id"`
	TileNumber int    `json:"tile_number,omitempty"`
	WithChart  bool   `json:"with_chart"`
}

// HealthRequestedPayloadV1 is the /health admin command.
type HealthRequestedPayloadV1 struct {
	ChannelID string `json:"channel_id"`
	UserID    string `json:"user_id"`
}

// ResyncRequestedPayloadV1 is the /resync admin command.
type ResyncRequestedPayloadV1 struct {
	GuildID      string `json:"guild_id"`
	ChannelID    string `json:"channel_id"`
	UserID       string `json:"user_id"`
	UserElevated bool   `json:"user_elevated"`
}

// TaxonomyRefreshRequestedPayloadV1 forces a taxonomy cache reload.
type TaxonomyRefreshRequestedPayloadV1 struct {
	ChannelID string `json:"channel_id"`
	UserID    string `json:"user_id"`
}
