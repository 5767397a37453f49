package submissionservice

import (
	"context"
	"strings"
	"testing"

	"github.com/TanzimK12/pvm-kingdom/app/events"
)

// imageOnlyAtReview creates an image-only submission and returns its approval
// message id.
func imageOnlyAtReview(t *testing.T, s *SubmissionService) string {
	t.Helper()
	ctx := context.Background()

	results, err := s.CreateImageOnly(ctx, &events.ImageOnlyRequestedPayloadV1{
		GuildID: "guild-1", ChannelID: "chan-sub-1", UserID: "user-1",
		UserDisplay: "Zezima", Tile: "Zulrah", ImageURL: "https://cdn.example/drop.png",
	})
	if err != nil {
		t.Fatalf("CreateImageOnly returned error: %v", err)
	}
	post := results[0].Payload.(events.ApprovalPostRequestedPayloadV1)

	messageID := "msg-img-flow"
	if _, err := s.HandleApprovalPosted(ctx, &events.ApprovalPostedPayloadV1{
		SubmissionID: post.SubmissionID, MessageID: messageID,
	}); err != nil {
		t.Fatalf("HandleApprovalPosted returned error: %v", err)
	}
	return messageID
}

func TestConfirmFlow_CompletesApproval(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps()
	s := newTestSubmissionService(d, Options{RequireElevated: true})
	messageID := imageOnlyAtReview(t, s)

	// Approve enters the confirm flow instead of finalizing.
	results, err := s.HandleApproveClicked(ctx, elevatedApprove(messageID))
	if err != nil {
		t.Fatalf("approve returned error: %v", err)
	}
	if len(results) != 1 || results[0].Topic != events.DiscordItemPromptRequestedV1 {
		t.Fatalf("want an item prompt, got %v", topicsOf(results))
	}
	prompt := results[0].Payload.(events.ItemPromptRequestedPayloadV1)
	if len(prompt.Items) != 2 {
		t.Errorf("prompt offers %v, want the tile's items", prompt.Items)
	}

	results, err = s.HandleItemSelected(ctx, &events.ItemSelectedPayloadV1{
		MessageID: messageID, ApproverID: "mod-1", Item: "Magic fang",
	})
	if err != nil {
		t.Fatalf("item select returned error: %v", err)
	}
	if len(results) != 1 || results[0].Topic != events.DiscordAmountPromptRequestedV1 {
		t.Fatalf("want an amount prompt, got %v", topicsOf(results))
	}

	results, err = s.HandleAmountEntered(ctx, &events.AmountEnteredPayloadV1{
		MessageID: messageID, ApproverID: "mod-1", ApproverDisplay: "ModAlice",
		ApproverElevated: true, RawAmount: "3",
	})
	if err != nil {
		t.Fatalf("amount entered returned error: %v", err)
	}
	if len(results) != 2 || results[0].Topic != events.DiscordForwardRequestedV1 {
		t.Fatalf("want forward+archive, got %v", topicsOf(results))
	}

	if len(d.ledger.Rows) != 1 {
		t.Fatalf("ledger has %d rows, want 1", len(d.ledger.Rows))
	}
	row := d.ledger.Rows[0]
	if row.Item != "Magic fang" || row.Amount != 3 {
		t.Errorf("row = %+v, want the approver-supplied item and amount", row)
	}
}

func TestConfirmFlow_RejectsOutsiders(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps()
	s := newTestSubmissionService(d, Options{RequireElevated: true})
	messageID := imageOnlyAtReview(t, s)

	if _, err := s.HandleApproveClicked(ctx, elevatedApprove(messageID)); err != nil {
		t.Fatalf("approve returned error: %v", err)
	}

	// A different approver never clicked Approve; their select is rejected.
	results, err := s.HandleItemSelected(ctx, &events.ItemSelectedPayloadV1{
		MessageID: messageID, ApproverID: "mod-2", Item: "Magic fang",
	})
	if err != nil {
		t.Fatalf("item select returned error: %v", err)
	}
	if len(results) != 1 || !strings.Contains(replyContent(t, results[0]), "Approve first") {
		t.Fatalf("want an ownership rejection, got %v", results)
	}
}

func TestConfirmFlow_InvalidInputs(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps()
	s := newTestSubmissionService(d, Options{RequireElevated: true})
	messageID := imageOnlyAtReview(t, s)

	if _, err := s.HandleApproveClicked(ctx, elevatedApprove(messageID)); err != nil {
		t.Fatalf("approve returned error: %v", err)
	}

	// An item from another tile keeps the flow at the item stage.
	results, err := s.HandleItemSelected(ctx, &events.ItemSelectedPayloadV1{
		MessageID: messageID, ApproverID: "mod-1", Item: "Vorkath's head",
	})
	if err != nil {
		t.Fatalf("item select returned error: %v", err)
	}
	if len(results) != 1 || !strings.Contains(replyContent(t, results[0]), "doesn't count") {
		t.Fatalf("want an invalid-item reply, got %v", results)
	}

	if _, err := s.HandleItemSelected(ctx, &events.ItemSelectedPayloadV1{
		MessageID: messageID, ApproverID: "mod-1", Item: "Tanzanite fang",
	}); err != nil {
		t.Fatalf("item select returned error: %v", err)
	}

	for _, raw := range []string{"zero", "-1", "0", "2.5", ""} {
		results, err = s.HandleAmountEntered(ctx, &events.AmountEnteredPayloadV1{
			MessageID: messageID, ApproverID: "mod-1", ApproverDisplay: "ModAlice",
			ApproverElevated: true, RawAmount: raw,
		})
		if err != nil {
			t.Fatalf("amount %q returned error: %v", raw, err)
		}
		if len(results) != 1 || !strings.Contains(replyContent(t, results[0]), "positive whole number") {
			t.Fatalf("amount %q: want a validation reply, got %v", raw, results)
		}
	}

	// Abandonment: nothing was finalized, the submission is still pending.
	if _, pending := s.PendingCounts(); pending != 1 {
		t.Error("an unfinished flow must leave the submission pending")
	}
	if len(d.ledger.Rows) != 0 {
		t.Error("an unfinished flow must not write the ledger")
	}
}

func TestConfirmFlow_AmountWithoutFlowIsSilent(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps()
	s := newTestSubmissionService(d, Options{RequireElevated: true})
	messageID := imageOnlyAtReview(t, s)

	results, err := s.HandleAmountEntered(ctx, &events.AmountEnteredPayloadV1{
		MessageID: messageID, ApproverID: "mod-1", RawAmount: "3",
	})
	if err != nil || len(results) != 0 {
		t.Fatalf("amount without a flow = %v, %v; want silence", results, err)
	}
}
