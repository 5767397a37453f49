package submissionservice

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/TanzimK12/pvm-kingdom/app/events"
	submissiondomain "github.com/TanzimK12/pvm-kingdom/app/modules/submission/domain"
	"github.com/TanzimK12/pvm-kingdom/internal/handlerwrapper"
)

// The confirm sub-flow collects item and amount from the approver of an
// image-only submission. It is keyed by (message id, approver id): two
// approvers can be mid-flow on the same message independently, and the
// submission stays pending until one of them completes.
type flowKey struct {
	messageID  string
	approverID string
}

type flowStage int

const (
	stageItemChoice flowStage = iota + 1
	stageAmount
)

type approvalFlow struct {
	stage    flowStage
	item     string
	approver approver
}

func (s *SubmissionService) startConfirmFlow(sub *submissiondomain.Submission, ap approver) []handlerwrapper.Result {
	s.flowMu.Lock()
	s.flows[flowKey{sub.MessageID, ap.id}] = &approvalFlow{stage: stageItemChoice, approver: ap}
	s.flowMu.Unlock()

	return []handlerwrapper.Result{{
		Topic: events.DiscordItemPromptRequestedV1,
		Payload: events.ItemPromptRequestedPayloadV1{
			MessageID:  sub.MessageID,
			ApproverID: ap.id,
			Items:      s.taxonomy.Snapshot().Items(sub.Tile),
		},
	}}
}

func (s *SubmissionService) getFlow(messageID, approverID string) (*approvalFlow, bool) {
	s.flowMu.Lock()
	defer s.flowMu.Unlock()
	f, ok := s.flows[flowKey{messageID, approverID}]
	return f, ok
}

func (s *SubmissionService) clearFlow(messageID, approverID string) {
	s.flowMu.Lock()
	defer s.flowMu.Unlock()
	delete(s.flows, flowKey{messageID, approverID})
}

// clearFlows drops every approver's flow on a message once it is decided.
func (s *SubmissionService) clearFlows(messageID string) {
	s.flowMu.Lock()
	defer s.flowMu.Unlock()
	for k := range s.flows {
		if k.messageID == messageID {
			delete(s.flows, k)
		}
	}
}

// HandleItemSelected records the approver's item choice and asks for the
// amount. Selections from anyone who has not started the flow are rejected.
func (s *SubmissionService) HandleItemSelected(ctx context.Context, p *events.ItemSelectedPayloadV1) ([]handlerwrapper.Result, error) {
	flow, ok := s.getFlow(p.MessageID, p.ApproverID)
	if !ok || flow.stage != stageItemChoice {
		sub, found := s.pending.Get(p.MessageID)
		if !found {
			return nil, nil
		}
		return []handlerwrapper.Result{
			reply(sub.Route.ApprovalChannelID, p.ApproverID,
				"Click Approve first to confirm this submission."),
		}, nil
	}

	sub, found := s.pending.Get(p.MessageID)
	if !found || sub.Terminal() {
		s.clearFlow(p.MessageID, p.ApproverID)
		return nil, nil
	}

	if !s.taxonomy.Snapshot().HasItem(sub.Tile, p.Item) {
		return []handlerwrapper.Result{
			reply(sub.Route.ApprovalChannelID, p.ApproverID,
				fmt.Sprintf("%q doesn't count for %s. Valid items: %s.",
					p.Item, sub.Tile, strings.Join(s.taxonomy.Snapshot().Items(sub.Tile), ", "))),
		}, nil
	}

	flow.stage = stageAmount
	flow.item = p.Item

	return []handlerwrapper.Result{{
		Topic: events.DiscordAmountPromptRequestedV1,
		Payload: events.AmountPromptRequestedPayloadV1{
			MessageID:  p.MessageID,
			ApproverID: p.ApproverID,
			Item:       p.Item,
		},
	}}, nil
}

// HandleAmountEntered validates the amount and completes the approval from
// the durable record. An abandoned flow simply leaves the submission pending.
func (s *SubmissionService) HandleAmountEntered(ctx context.Context, p *events.AmountEnteredPayloadV1) ([]handlerwrapper.Result, error) {
	flow, ok := s.getFlow(p.MessageID, p.ApproverID)
	if !ok || flow.stage != stageAmount {
		return nil, nil
	}

	lock := s.pending.DecisionLock(p.MessageID)
	lock.Lock()
	defer lock.Unlock()

	sub, found := s.pending.Get(p.MessageID)
	if !found || sub.Terminal() {
		s.clearFlow(p.MessageID, p.ApproverID)
		s.pending.ForgetLock(p.MessageID)
		return nil, nil
	}

	amount, err := strconv.Atoi(strings.TrimSpace(p.RawAmount))
	if err != nil || amount <= 0 {
		return []handlerwrapper.Result{
			reply(sub.Route.ApprovalChannelID, p.ApproverID,
				fmt.Sprintf("%q isn't a valid amount, enter a positive whole number.", p.RawAmount)),
		}, nil
	}

	sub.Item = flow.item
	sub.Amount = amount
	s.clearFlow(p.MessageID, p.ApproverID)

	return s.finalizeApproval(ctx, sub, flow.approver)
}
