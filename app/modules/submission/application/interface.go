package submissionservice

import (
	"context"

	"github.com/TanzimK12/pvm-kingdom/app/events"
	"github.com/TanzimK12/pvm-kingdom/internal/handlerwrapper"
)

// Service drives the submission lifecycle. Each operation consumes one
// gateway event and returns the outbound events it produces.
type Service interface {
	Create(ctx context.Context, p *events.SubmitRequestedPayloadV1) ([]handlerwrapper.Result, error)
	CreateAuto(ctx context.Context, p *events.AutoSubmitRequestedPayloadV1) ([]handlerwrapper.Result, error)
	CreateImageOnly(ctx context.Context, p *events.ImageOnlyRequestedPayloadV1) ([]handlerwrapper.Result, error)

	HandleApprovalPosted(ctx context.Context, p *events.ApprovalPostedPayloadV1) ([]handlerwrapper.Result, error)
	HandleApproveClicked(ctx context.Context, p *events.ApproveClickedPayloadV1) ([]handlerwrapper.Result, error)
	HandleDenyClicked(ctx context.Context, p *events.DenyClickedPayloadV1) ([]handlerwrapper.Result, error)
	HandleItemSelected(ctx context.Context, p *events.ItemSelectedPayloadV1) ([]handlerwrapper.Result, error)
	HandleAmountEntered(ctx context.Context, p *events.AmountEnteredPayloadV1) ([]handlerwrapper.Result, error)
	HandleReactionAdded(ctx context.Context, p *events.ReactionAddedPayloadV1) ([]handlerwrapper.Result, error)

	// PendingCounts feeds the ops health report.
	PendingCounts() (awaiting, pending int)
}
