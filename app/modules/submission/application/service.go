// Package submissionservice is the submission state machine: intake,
// validation, review and ledger writes.
package submissionservice

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/TanzimK12/pvm-kingdom/app/events"
	detectionservice "github.com/TanzimK12/pvm-kingdom/app/modules/detection/application"
	routingservice "github.com/TanzimK12/pvm-kingdom/app/modules/routing/application"
	submissiondomain "github.com/TanzimK12/pvm-kingdom/app/modules/submission/domain"
	submissiondb "github.com/TanzimK12/pvm-kingdom/app/modules/submission/infrastructure/repositories"
	taxonomyservice "github.com/TanzimK12/pvm-kingdom/app/modules/taxonomy/application"
	"github.com/TanzimK12/pvm-kingdom/internal/handlerwrapper"
	"github.com/TanzimK12/pvm-kingdom/internal/metrics"
)

// Options carries review policy knobs.
type Options struct {
	RequireElevated bool
	MatchThreshold  float64
	NameThreshold   float64
}

// SubmissionService implements the Service interface.
type SubmissionService struct {
	taxonomy  taxonomyservice.Service
	routing   routingservice.Service
	detection detectionservice.Service
	ledger    submissiondb.Repository
	pending   *PendingStore
	opts      Options

	logger  *slog.Logger
	metrics metrics.Recorder
	tracer  trace.Tracer

	flowMu sync.Mutex
	flows  map[flowKey]*approvalFlow

	now func() time.Time
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(
	taxonomy taxonomyservice.Service,
	routing routingservice.Service,
	detection detectionservice.Service,
	ledger submissiondb.Repository,
	opts Options,
	logger *slog.Logger,
	rec metrics.Recorder,
	tracer trace.Tracer,
) *SubmissionService {
	if rec == nil {
		rec = metrics.NoOp{}
	}
	if opts.MatchThreshold == 0 {
		opts.MatchThreshold = submissiondomain.DefaultMatchThreshold
	}
	if opts.NameThreshold == 0 {
		opts.NameThreshold = submissiondomain.DefaultNameThreshold
	}
	return &SubmissionService{
		taxonomy:  taxonomy,
		routing:   routing,
		detection: detection,
		ledger:    ledger,
		pending:   NewPendingStore(),
		opts:      opts,
		logger:    logger,
		metrics:   rec,
		tracer:    tracer,
		flows:     make(map[flowKey]*approvalFlow),
		now:       time.Now,
	}
}

// PendingCounts reports live submission counts for health reporting.
func (s *SubmissionService) PendingCounts() (awaiting, pending int) {
	return s.pending.Counts()
}

// --- outbound event builders ---

func reply(channelID, userID, content string) handlerwrapper.Result {
	return handlerwrapper.Result{
		Topic: events.DiscordReplyRequestedV1,
		Payload: events.ReplyRequestedPayloadV1{
			ChannelID: channelID,
			UserID:    userID,
			Content:   content,
			Ephemeral: true,
		},
	}
}

func (s *SubmissionService) notReadyReply(channelID, userID string) []handlerwrapper.Result {
	return []handlerwrapper.Result{
		reply(channelID, userID, "The bot is still starting up, try again in a minute."),
	}
}

// embedFields renders the durable record into embed fields. Amount and item
// are omitted until they are known.
func embedFields(sub *submissiondomain.Submission) []events.EmbedField {
	fields := []events.EmbedField{
		{Name: "Tile", Value: sub.Tile, Inline: true},
		{Name: "Submitted By", Value: sub.UserDisplay, Inline: true},
	}
	if sub.Item != "" {
		fields = append(fields, events.EmbedField{Name: "Item", Value: sub.Item, Inline: true})
	}
	if sub.Amount > 0 {
		fields = append(fields, events.EmbedField{Name: "Amount", Value: strconv.Itoa(sub.Amount), Inline: true})
	}
	return fields
}

func embedFooter(sub *submissiondomain.Submission) string {
	return fmt.Sprintf("Submitted at %s • SID %s",
		sub.CreatedAt.Format(time.RFC3339), sub.Route.LookupKey)
}

func (s *SubmissionService) approvalPostRequest(sub *submissiondomain.Submission) handlerwrapper.Result {
	return handlerwrapper.Result{
		Topic: events.DiscordApprovalPostRequestedV1,
		Payload: events.ApprovalPostRequestedPayloadV1{
			SubmissionID:      sub.ID.String(),
			ApprovalChannelID: sub.Route.ApprovalChannelID,
			Title:             "Drop submission",
			Fields:            embedFields(sub),
			ImageURL:          sub.ImageURL,
			Footer:            embedFooter(sub),
			WithAffordances:   true,
		},
	}
}

func forwardRequest(channelID string, sub *submissiondomain.Submission, title string) handlerwrapper.Result {
	return handlerwrapper.Result{
		Topic: events.DiscordForwardRequestedV1,
		Payload: events.ForwardRequestedPayloadV1{
			ChannelID: channelID,
			Title:     title,
			Fields:    embedFields(sub),
			ImageURL:  sub.ImageURL,
			Footer:    embedFooter(sub),
		},
	}
}

func archiveRequest(messageID, outcome, decider string) handlerwrapper.Result {
	return handlerwrapper.Result{
		Topic: events.DiscordArchiveRequestedV1,
		Payload: events.ArchiveRequestedPayloadV1{
			MessageID: messageID,
			Outcome:   outcome,
			Decider:   decider,
		},
	}
}
