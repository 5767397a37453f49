package submissionservice

import (
	"context"
	"strings"
	"testing"

	"github.com/TanzimK12/pvm-kingdom/app/events"
	detectionservice "github.com/TanzimK12/pvm-kingdom/app/modules/detection/application"
)

func autoPayload() *events.AutoSubmitRequestedPayloadV1 {
	return &events.AutoSubmitRequestedPayloadV1{
		GuildID:     "guild-1",
		ChannelID:   "chan-sub-1",
		UserID:      "user-1",
		UserDisplay: "Zezima",
		Amount:      1,
		ImageURL:    "https://cdn.example/drop.png",
	}
}

func TestCreateAuto_HappyPath(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps()
	d.detection.AnalyzeAndLogFunc = func(ctx context.Context, imageURL, user string) (detectionservice.Result, error) {
		return detectionservice.Result{
			Items: []string{"Tanzanite fang"},
			RSN:   "Zezima",
		}, nil
	}
	s := newTestSubmissionService(d, Options{})

	results, err := s.CreateAuto(ctx, autoPayload())
	if err != nil {
		t.Fatalf("CreateAuto returned error: %v", err)
	}

	got := topicsOf(results)
	if len(got) != 2 || got[0] != events.DiscordApprovalPostRequestedV1 {
		t.Fatalf("topics = %v, want approval post then ack", got)
	}

	if len(d.ledger.Rows) != 1 {
		t.Fatalf("ledger has %d rows, want 1", len(d.ledger.Rows))
	}
	row := d.ledger.Rows[0]
	if row.Tile != "Zulrah" || row.Item != "Tanzanite fang" {
		t.Errorf("matched row = %+v, want Zulrah / Tanzanite fang", row)
	}
}

func TestCreateAuto_QuotaGuidance(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps()
	d.detection.AnalyzeAndLogFunc = func(ctx context.Context, imageURL, user string) (detectionservice.Result, error) {
		return detectionservice.Result{}, detectionservice.ErrQuotaExceeded
	}
	s := newTestSubmissionService(d, Options{})

	results, err := s.CreateAuto(ctx, autoPayload())
	if err != nil {
		t.Fatalf("CreateAuto returned error: %v", err)
	}
	if len(results) != 1 || !strings.Contains(replyContent(t, results[0]), "/submit") {
		t.Fatalf("want guidance to fall back to /submit, got %v", results)
	}
	if len(d.ledger.Rows) != 0 {
		t.Error("quota failure must not write the ledger")
	}
}

func TestCreateAuto_NothingDetected(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps()
	d.detection.AnalyzeAndLogFunc = func(ctx context.Context, imageURL, user string) (detectionservice.Result, error) {
		return detectionservice.Result{}, nil
	}
	s := newTestSubmissionService(d, Options{})

	results, err := s.CreateAuto(ctx, autoPayload())
	if err != nil {
		t.Fatalf("CreateAuto returned error: %v", err)
	}
	if len(results) != 1 || !strings.Contains(replyContent(t, results[0]), "Couldn't read") {
		t.Fatalf("want a nothing-detected reply, got %v", results)
	}
}

func TestCreateAuto_NameMismatch(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps()
	d.detection.AnalyzeAndLogFunc = func(ctx context.Context, imageURL, user string) (detectionservice.Result, error) {
		return detectionservice.Result{
			Items: []string{"Tanzanite fang"},
			RSN:   "Woox",
		}, nil
	}
	s := newTestSubmissionService(d, Options{})

	results, err := s.CreateAuto(ctx, autoPayload())
	if err != nil {
		t.Fatalf("CreateAuto returned error: %v", err)
	}
	if len(results) != 1 || !strings.Contains(replyContent(t, results[0]), "Woox") {
		t.Fatalf("want a name-mismatch reply naming the observed RSN, got %v", results)
	}
	if len(d.ledger.Rows) != 0 {
		t.Error("a name mismatch must not write the ledger")
	}
}

func TestCreateAuto_NoTileMatch(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps()
	d.detection.AnalyzeAndLogFunc = func(ctx context.Context, imageURL, user string) (detectionservice.Result, error) {
		return detectionservice.Result{
			Items: []string{"Twisted bow", "Elder maul"},
			RSN:   "Zezima",
		}, nil
	}
	s := newTestSubmissionService(d, Options{})

	results, err := s.CreateAuto(ctx, autoPayload())
	if err != nil {
		t.Fatalf("CreateAuto returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("want a single reply, got %v", topicsOf(results))
	}
	text := replyContent(t, results[0])
	if !strings.Contains(text, "Twisted bow") || !strings.Contains(text, "Elder maul") {
		t.Errorf("no-match reply %q should list the detected items", text)
	}
	if awaiting, _ := s.PendingCounts(); awaiting != 0 {
		t.Error("unmatched detection must not be tracked")
	}
}
