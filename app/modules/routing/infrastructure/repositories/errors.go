package routingdb

import "errors"

// ErrNoSettings indicates the settings row has not been seeded.
var ErrNoSettings = errors.New("competition settings not found")
