package routingservice

import (
	"context"

	routingdomain "github.com/TanzimK12/pvm-kingdom/app/modules/routing/domain"
)

// Service resolves where submissions and progress queries belong.
type Service interface {
	// Resolve finds the routing row governing a submission. The competition
	// mode is read fresh on every call.
	Resolve(ctx context.Context, guildID, channelID string) (routingdomain.Entry, error)

	// TeamIndexForChannel maps a progress channel to its 1-based team index.
	TeamIndexForChannel(ctx context.Context, channelID string) (int, routingdomain.Entry, error)
}
