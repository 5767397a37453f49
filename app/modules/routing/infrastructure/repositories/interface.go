package routingdb

import (
	"context"

	routingdomain "github.com/TanzimK12/pvm-kingdom/app/modules/routing/domain"
)

// Repository reads routing rows and the competition mode.
type Repository interface {
	// Mode is read fresh on every resolve so organizers can flip it mid-run.
	Mode(ctx context.Context) (routingdomain.Mode, error)

	// Entries returns routing rows in stored order.
	Entries(ctx context.Context) ([]routingdomain.Entry, error)
}
