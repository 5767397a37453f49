// Package routingdomain holds competition routing types: where a submission
// goes for review and where outcomes are announced.
package routingdomain

import "errors"

// Mode controls how submissions are keyed to a team row.
type Mode string

const (
	// ModeServer keys rows by guild: one team per server, any channel.
	ModeServer Mode = "server"
	// ModeChannel keys rows by submission channel: multiple teams share a
	// guild and each team submits from its own channel.
	ModeChannel Mode = "channel"
)

// Entry is one team routing row.
type Entry struct {
	GuildID           string
	Team              string
	LookupKey         string
	ApprovalChannelID string
	ApprovedChannelID string
	DeniedChannelID   string
	ProgressChannelID string
}

var (
	// ErrDirectMessage rejects submissions outside a guild.
	ErrDirectMessage = errors.New("submissions are not accepted in direct messages")

	// ErrNotRegistered indicates no routing row exists for the guild.
	ErrNotRegistered = errors.New("competition not registered here")

	// ErrChannelForbidden indicates the guild is registered but the invoking
	// channel is not a registered submission channel.
	ErrChannelForbidden = errors.New("submissions are not accepted in this channel")
)
