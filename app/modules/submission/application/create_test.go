package submissionservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace/noop"

	"github.com/TanzimK12/pvm-kingdom/app/events"
	routingdomain "github.com/TanzimK12/pvm-kingdom/app/modules/routing/domain"
	submissiondb "github.com/TanzimK12/pvm-kingdom/app/modules/submission/infrastructure/repositories"
	taxonomydomain "github.com/TanzimK12/pvm-kingdom/app/modules/taxonomy/domain"
	"github.com/TanzimK12/pvm-kingdom/internal/handlerwrapper"
	"github.com/TanzimK12/pvm-kingdom/internal/metrics"
)

func testRoute() routingdomain.Entry {
	return routingdomain.Entry{
		GuildID:           "guild-1",
		Team:              "Team 1",
		LookupKey:         "chan-sub-1",
		ApprovalChannelID: "chan-appr",
		ApprovedChannelID: "chan-ok",
		DeniedChannelID:   "chan-no",
		ProgressChannelID: "chan-prog",
	}
}

func testTaxonomy() *FakeTaxonomy {
	return &FakeTaxonomy{
		Snap: taxonomydomain.BuildSnapshot([]taxonomydomain.TileRecord{
			{Tile: "Zulrah", ItemsRaw: "Tanzanite fang, Magic fang"},
			{Tile: "Vorkath", ItemsRaw: "Vorkath's head"},
		}),
	}
}

type testDeps struct {
	taxonomy  *FakeTaxonomy
	routing   *FakeRouting
	detection *FakeDetection
	ledger    *FakeLedger
}

func newTestDeps() *testDeps {
	return &testDeps{
		taxonomy: testTaxonomy(),
		routing: &FakeRouting{
			ResolveFunc: func(ctx context.Context, guildID, channelID string) (routingdomain.Entry, error) {
				return testRoute(), nil
			},
		},
		detection: &FakeDetection{},
		ledger:    &FakeLedger{},
	}
}

func newTestSubmissionService(d *testDeps, opts Options) *SubmissionService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	return NewSubmissionService(d.taxonomy, d.routing, d.detection, d.ledger, opts, logger, metrics.NoOp{}, tracer)
}

func topicsOf(results []handlerwrapper.Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Topic)
	}
	return out
}

func replyContent(t *testing.T, r handlerwrapper.Result) string {
	t.Helper()
	p, ok := r.Payload.(events.ReplyRequestedPayloadV1)
	if !ok {
		t.Fatalf("payload is %T, want ReplyRequestedPayloadV1", r.Payload)
	}
	return p.Content
}

func manualPayload() *events.SubmitRequestedPayloadV1 {
	return &events.SubmitRequestedPayloadV1{
		GuildID:     "guild-1",
		ChannelID:   "chan-sub-1",
		UserID:      "user-1",
		UserDisplay: "Zezima",
		Tile:        "Zulrah",
		Item:        "Tanzanite fang",
		Amount:      1,
		ImageURL:    "https://cdn.example/drop.png",
	}
}

func TestCreate_HappyPath(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps()
	s := newTestSubmissionService(d, Options{RequireElevated: true})

	results, err := s.Create(ctx, manualPayload())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	want := []string{events.DiscordApprovalPostRequestedV1, events.DiscordReplyRequestedV1}
	got := topicsOf(results)
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("topics = %v, want %v", got, want)
	}

	post, ok := results[0].Payload.(events.ApprovalPostRequestedPayloadV1)
	if !ok {
		t.Fatalf("payload is %T, want ApprovalPostRequestedPayloadV1", results[0].Payload)
	}
	if post.ApprovalChannelID != "chan-appr" || !post.WithAffordances {
		t.Errorf("unexpected approval post: %+v", post)
	}
	if !strings.Contains(post.Footer, "SID chan-sub-1") {
		t.Errorf("footer %q missing lookup key", post.Footer)
	}

	if len(d.ledger.Rows) != 1 {
		t.Fatalf("ledger has %d rows, want 1", len(d.ledger.Rows))
	}
	row := d.ledger.Rows[0]
	if row.Tile != "Zulrah" || row.Item != "Tanzanite fang" || row.Amount != 1 || row.LookupKey != "chan-sub-1" {
		t.Errorf("unexpected ledger row: %+v", row)
	}

	awaiting, pending := s.PendingCounts()
	if awaiting != 1 || pending != 0 {
		t.Errorf("counts = %d awaiting / %d pending, want 1 / 0", awaiting, pending)
	}
}

func TestCreate_ValidationFailures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		mutate   func(p *events.SubmitRequestedPayloadV1)
		wantText string
	}{
		{
			name:     "unknown tile",
			mutate:   func(p *events.SubmitRequestedPayloadV1) { p.Tile = "Jad" },
			wantText: "Unknown tile",
		},
		{
			name:     "item not on tile",
			mutate:   func(p *events.SubmitRequestedPayloadV1) { p.Item = "Vorkath's head" },
			wantText: "doesn't count",
		},
		{
			name:     "zero amount",
			mutate:   func(p *events.SubmitRequestedPayloadV1) { p.Amount = 0 },
			wantText: "positive",
		},
		{
			name:     "missing screenshot",
			mutate:   func(p *events.SubmitRequestedPayloadV1) { p.ImageURL = "" },
			wantText: "screenshot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps()
			s := newTestSubmissionService(d, Options{})

			p := manualPayload()
			tt.mutate(p)

			results, err := s.Create(ctx, p)
			if err != nil {
				t.Fatalf("Create returned error: %v", err)
			}
			if len(results) != 1 || results[0].Topic != events.DiscordReplyRequestedV1 {
				t.Fatalf("want a single reply, got %v", topicsOf(results))
			}
			if text := replyContent(t, results[0]); !strings.Contains(text, tt.wantText) {
				t.Errorf("reply %q missing %q", text, tt.wantText)
			}
			if len(d.ledger.Rows) != 0 {
				t.Error("rejected submission must not reach the ledger")
			}
			if awaiting, _ := s.PendingCounts(); awaiting != 0 {
				t.Error("rejected submission must not be tracked")
			}
		})
	}
}

func TestCreate_RoutingRejections(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		err      error
		wantText string
	}{
		{"direct message", routingdomain.ErrDirectMessage, "DMs"},
		{"wrong channel", routingdomain.ErrChannelForbidden, "channel"},
		{"unregistered", routingdomain.ErrNotRegistered, "registered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps()
			d.routing.ResolveFunc = func(ctx context.Context, guildID, channelID string) (routingdomain.Entry, error) {
				return routingdomain.Entry{}, tt.err
			}
			s := newTestSubmissionService(d, Options{})

			results, err := s.Create(ctx, manualPayload())
			if err != nil {
				t.Fatalf("Create returned error: %v", err)
			}
			if len(results) != 1 {
				t.Fatalf("want a single reply, got %v", topicsOf(results))
			}
			if text := replyContent(t, results[0]); !strings.Contains(text, tt.wantText) {
				t.Errorf("reply %q missing %q", text, tt.wantText)
			}
		})
	}
}

func TestCreate_NotReady(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps()
	d.taxonomy.NotReady = true
	s := newTestSubmissionService(d, Options{})

	results, err := s.Create(ctx, manualPayload())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(results) != 1 || !strings.Contains(replyContent(t, results[0]), "starting") {
		t.Fatalf("want a still-starting reply, got %v", results)
	}
}

func TestCreate_LedgerFailureAbortsEverything(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps()
	d.ledger.AppendLedgerFunc = func(ctx context.Context, row submissiondb.LedgerRow) error {
		return errors.New("disk full")
	}
	s := newTestSubmissionService(d, Options{})

	results, err := s.Create(ctx, manualPayload())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(results) != 1 || results[0].Topic != events.DiscordReplyRequestedV1 {
		t.Fatalf("want only a failure reply, got %v", topicsOf(results))
	}
	if awaiting, pending := s.PendingCounts(); awaiting != 0 || pending != 0 {
		t.Error("a failed ledger append must leave nothing tracked")
	}
}
