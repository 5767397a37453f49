package submissiondomain

import (
	"time"

	"github.com/google/uuid"

	routingdomain "github.com/TanzimK12/pvm-kingdom/app/modules/routing/domain"
)

// State is the review lifecycle of a submission. Approved and Denied are
// terminal.
type State string

const (
	StatePending  State = "pending"
	StateApproved State = "approved"
	StateDenied   State = "denied"
)

// Kind distinguishes how a submission entered the system. The image-only
// path defers the ledger row until the approver confirms item and amount.
type Kind string

const (
	KindManual    Kind = "manual"
	KindAuto      Kind = "auto"
	KindImageOnly Kind = "image_only"
)

// Submission is the durable record of one drop submission. It is the source
// of truth for review decisions; the Discord embed is only a rendering of it.
type Submission struct {
	ID        uuid.UUID
	MessageID string // approval message id, set once the gateway posts
	Kind      Kind

	GuildID     string
	ChannelID   string
	UserID      string
	UserDisplay string

	Tile     string
	Item     string // empty on the image-only path until the approver confirms
	Amount   int    // zero on the image-only path until the approver confirms
	ImageURL string

	DetectedRSN   string
	DetectedItems []string

	CreatedAt     time.Time
	Route         routingdomain.Entry
	State         State
	LedgerWritten bool
}

// Terminal reports whether the submission has been decided.
func (s *Submission) Terminal() bool {
	return s.State == StateApproved || s.State == StateDenied
}
