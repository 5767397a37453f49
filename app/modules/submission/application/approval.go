package submissionservice

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/TanzimK12/pvm-kingdom/app/events"
	submissiondomain "github.com/TanzimK12/pvm-kingdom/app/modules/submission/domain"
	"github.com/TanzimK12/pvm-kingdom/internal/attr"
	"github.com/TanzimK12/pvm-kingdom/internal/handlerwrapper"
)

type approver struct {
	id       string
	display  string
	elevated bool
}

// HandleApprovalPosted activates a submission under the approval message id
// the gateway reported. Decisions can only arrive after this event, because
// the message id does not exist anywhere earlier.
func (s *SubmissionService) HandleApprovalPosted(ctx context.Context, p *events.ApprovalPostedPayloadV1) ([]handlerwrapper.Result, error) {
	id, err := uuid.Parse(p.SubmissionID)
	if err != nil {
		return nil, fmt.Errorf("approval posted with bad submission id %q: %w", p.SubmissionID, err)
	}
	if _, ok := s.pending.Activate(id, p.MessageID); !ok {
		// Replay or a submission dropped across a restart. Nothing to do.
		s.logger.InfoContext(ctx, "Approval posted for unknown submission",
			attr.ExtractCorrelationID(ctx),
			attr.String("submission_id", p.SubmissionID),
		)
		return nil, nil
	}
	return nil, nil
}

// HandleApproveClicked resolves the Approve button. Image-only submissions
// detour into the confirm sub-flow; everything else finalizes immediately.
func (s *SubmissionService) HandleApproveClicked(ctx context.Context, p *events.ApproveClickedPayloadV1) ([]handlerwrapper.Result, error) {
	return s.approve(ctx, p.MessageID, approver{
		id:       p.ApproverID,
		display:  p.ApproverDisplay,
		elevated: p.ApproverElevated,
	})
}

// HandleDenyClicked resolves the Deny button.
func (s *SubmissionService) HandleDenyClicked(ctx context.Context, p *events.DenyClickedPayloadV1) ([]handlerwrapper.Result, error) {
	return s.deny(ctx, p.MessageID, approver{
		id:       p.ApproverID,
		display:  p.ApproverDisplay,
		elevated: p.ApproverElevated,
	})
}

func (s *SubmissionService) approve(ctx context.Context, messageID string, ap approver) ([]handlerwrapper.Result, error) {
	ctx, span := s.tracer.Start(ctx, "SubmissionApprove", trace.WithAttributes(
		attribute.String("operation", "SubmissionApprove"),
	))
	defer span.End()

	lock := s.pending.DecisionLock(messageID)
	lock.Lock()
	defer lock.Unlock()

	sub, ok := s.pending.Get(messageID)
	if !ok || sub.Terminal() {
		// Benign race: the other approver got there first, or the message is
		// not an approval message at all. Stay silent.
		s.pending.ForgetLock(messageID)
		return nil, nil
	}

	if forbidden := s.forbiddenReply(sub, ap); forbidden != nil {
		return forbidden, nil
	}

	if sub.Kind == submissiondomain.KindImageOnly && sub.Item == "" {
		return s.startConfirmFlow(sub, ap), nil
	}

	return s.finalizeApproval(ctx, sub, ap)
}

func (s *SubmissionService) deny(ctx context.Context, messageID string, ap approver) ([]handlerwrapper.Result, error) {
	ctx, span := s.tracer.Start(ctx, "SubmissionDeny", trace.WithAttributes(
		attribute.String("operation", "SubmissionDeny"),
	))
	defer span.End()

	lock := s.pending.DecisionLock(messageID)
	lock.Lock()
	defer lock.Unlock()

	sub, ok := s.pending.Get(messageID)
	if !ok || sub.Terminal() {
		s.pending.ForgetLock(messageID)
		return nil, nil
	}

	if forbidden := s.forbiddenReply(sub, ap); forbidden != nil {
		return forbidden, nil
	}

	sub.State = submissiondomain.StateDenied
	s.pending.Remove(sub.MessageID)
	s.clearFlows(sub.MessageID)

	s.logger.InfoContext(ctx, "Submission denied",
		attr.ExtractCorrelationID(ctx),
		attr.String("submission_id", sub.ID.String()),
		attr.String("decider", ap.display),
	)
	s.metrics.RecordOperationSuccess(ctx, "SubmissionDeny", "submission")

	return []handlerwrapper.Result{
		forwardRequest(sub.Route.DeniedChannelID, sub, "Submission denied"),
		archiveRequest(sub.MessageID, "denied", ap.display),
	}, nil
}

// forbiddenReply rejects non-elevated approvers when enforcement is on.
func (s *SubmissionService) forbiddenReply(sub *submissiondomain.Submission, ap approver) []handlerwrapper.Result {
	if !s.opts.RequireElevated || ap.elevated {
		return nil
	}
	return []handlerwrapper.Result{
		reply(sub.Route.ApprovalChannelID, ap.id,
			"Only moderators can review submissions."),
	}
}

// finalizeApproval writes the ledger row if it is still owed, then forwards
// and archives. A ledger failure keeps the submission pending so review can
// be retried.
func (s *SubmissionService) finalizeApproval(ctx context.Context, sub *submissiondomain.Submission, ap approver) ([]handlerwrapper.Result, error) {
	if !sub.LedgerWritten {
		if err := s.appendLedgerRow(ctx, sub); err != nil {
			s.logger.ErrorContext(ctx, "Ledger append failed during approval",
				attr.ExtractCorrelationID(ctx),
				attr.String("submission_id", sub.ID.String()),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, "SubmissionApprove", "submission")
			return []handlerwrapper.Result{
				reply(sub.Route.ApprovalChannelID, ap.id,
					"Couldn't write the ledger. The submission is still pending, try again shortly."),
			}, nil
		}
	}

	sub.State = submissiondomain.StateApproved
	s.pending.Remove(sub.MessageID)
	s.clearFlows(sub.MessageID)

	s.logger.InfoContext(ctx, "Submission approved",
		attr.ExtractCorrelationID(ctx),
		attr.String("submission_id", sub.ID.String()),
		attr.String("decider", ap.display),
	)
	s.metrics.RecordOperationSuccess(ctx, "SubmissionApprove", "submission")

	return []handlerwrapper.Result{
		forwardRequest(sub.Route.ApprovedChannelID, sub, "Submission approved"),
		archiveRequest(sub.MessageID, "approved", ap.display),
	}, nil
}

// HandleReactionAdded is the legacy review path: a check mark approves, a
// cross denies, anything else is ignored.
func (s *SubmissionService) HandleReactionAdded(ctx context.Context, p *events.ReactionAddedPayloadV1) ([]handlerwrapper.Result, error) {
	ap := approver{id: p.UserID, display: p.UserDisplay, elevated: p.UserElevated}
	switch p.Emoji {
	case "✅":
		return s.approve(ctx, p.MessageID, ap)
	case "❌":
		return s.deny(ctx, p.MessageID, ap)
	default:
		return nil, nil
	}
}
