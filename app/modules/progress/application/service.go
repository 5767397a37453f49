// Package progressservice serves compiled tile progress to team channels.
package progressservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/TanzimK12/pvm-kingdom/app/events"
	progressdb "github.com/TanzimK12/pvm-kingdom/app/modules/progress/infrastructure/repositories"
	routingservice "github.com/TanzimK12/pvm-kingdom/app/modules/routing/application"
	routingdomain "github.com/TanzimK12/pvm-kingdom/app/modules/routing/domain"
	submissiondb "github.com/TanzimK12/pvm-kingdom/app/modules/submission/infrastructure/repositories"
	taxonomyservice "github.com/TanzimK12/pvm-kingdom/app/modules/taxonomy/application"
	"github.com/TanzimK12/pvm-kingdom/internal/attr"
	"github.com/TanzimK12/pvm-kingdom/internal/handlerwrapper"
	"github.com/TanzimK12/pvm-kingdom/internal/metrics"
)

// messageLimit is the transport's hard cap on one message body.
const messageLimit = 2000

// ProgressService implements the Service interface.
type ProgressService struct {
	taxonomy taxonomyservice.Service
	routing  routingservice.Service
	compiled progressdb.Repository
	ledger   submissiondb.Repository

	logger  *slog.Logger
	metrics metrics.Recorder
	tracer  trace.Tracer
}

// NewProgressService creates a new ProgressService.
func NewProgressService(
	taxonomy taxonomyservice.Service,
	routing routingservice.Service,
	compiled progressdb.Repository,
	ledger submissiondb.Repository,
	logger *slog.Logger,
	rec metrics.Recorder,
	tracer trace.Tracer,
) *ProgressService {
	if rec == nil {
		rec = metrics.NoOp{}
	}
	return &ProgressService{
		taxonomy: taxonomy,
		routing:  routing,
		compiled: compiled,
		ledger:   ledger,
		logger:   logger,
		metrics:  rec,
		tracer:   tracer,
	}
}

func reply(channelID, userID, content string, ephemeral bool) handlerwrapper.Result {
	return handlerwrapper.Result{
		Topic: events.DiscordReplyRequestedV1,
		Payload: events.ReplyRequestedPayloadV1{
			ChannelID: channelID,
			UserID:    userID,
			Content:   content,
			Ephemeral: ephemeral,
		},
	}
}

// HandleProgressRequested renders compiled progress for one tile. The reply
// is public in the team channel, split to fit the transport limit. With no
// tile number it lists the tiles that have compiled content.
func (s *ProgressService) HandleProgressRequested(ctx context.Context, p *events.ProgressRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := s.tracer.Start(ctx, "HandleProgressRequested", trace.WithAttributes(
		attribute.String("operation", "HandleProgressRequested"),
		attribute.String("channel_id", p.ChannelID),
		attribute.Int("tile_number", p.TileNumber),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, "HandleProgressRequested", "progress")
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, "HandleProgressRequested", "progress", time.Since(start))
	}()

	if !s.taxonomy.Ready() {
		return []handlerwrapper.Result{
			reply(p.ChannelID, p.UserID, "The bot is still starting up, try again in a minute.", true),
		}, nil
	}

	teamIndex, entry, err := s.routing.TeamIndexForChannel(ctx, p.ChannelID)
	if err != nil {
		if errors.Is(err, routingdomain.ErrNotRegistered) {
			return []handlerwrapper.Result{
				reply(p.ChannelID, p.UserID, "You can only use this in your team's designated progress channel.", true),
			}, nil
		}
		s.metrics.RecordOperationFailure(ctx, "HandleProgressRequested", "progress")
		span.RecordError(err)
		return nil, fmt.Errorf("progress request: %w", err)
	}

	if p.TileNumber <= 0 {
		return s.listTiles(ctx, p)
	}

	messages, found, err := s.compiled.Compiled(ctx, p.TileNumber, teamIndex)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "HandleProgressRequested", "progress")
		span.RecordError(err)
		return nil, fmt.Errorf("progress request: %w", err)
	}
	if !found {
		return []handlerwrapper.Result{
			reply(p.ChannelID, p.UserID, fmt.Sprintf("Tile %d has no compiled progress page.", p.TileNumber), true),
		}, nil
	}
	if len(messages) == 0 {
		return []handlerwrapper.Result{
			reply(p.ChannelID, p.UserID, fmt.Sprintf("Nothing compiled yet for tile %d (Team %d).", p.TileNumber, teamIndex), true),
		}, nil
	}

	var results []handlerwrapper.Result
	for _, chunk := range splitForTransport(strings.Join(messages, "\n"), messageLimit) {
		results = append(results, reply(p.ChannelID, p.UserID, chunk, false))
	}

	if p.WithChart {
		if chart, ok := s.buildChart(ctx, p, entry); ok {
			results = append(results, chart)
		}
	}

	s.metrics.RecordOperationSuccess(ctx, "HandleProgressRequested", "progress")
	return results, nil
}

func (s *ProgressService) listTiles(ctx context.Context, p *events.ProgressRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	numbers, err := s.compiled.TileNumbers(ctx)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "HandleProgressRequested", "progress")
		return nil, fmt.Errorf("progress request: %w", err)
	}
	if len(numbers) == 0 {
		return []handlerwrapper.Result{
			reply(p.ChannelID, p.UserID, "No tiles have compiled progress yet.", true),
		}, nil
	}

	labels := make([]string, len(numbers))
	for i, n := range numbers {
		labels[i] = strconv.Itoa(n)
	}
	s.metrics.RecordOperationSuccess(ctx, "HandleProgressRequested", "progress")
	return []handlerwrapper.Result{
		reply(p.ChannelID, p.UserID, "Tiles with compiled progress: "+strings.Join(labels, ", "), true),
	}, nil
}

// buildChart renders the team's approved-per-tile bar chart. Chart failures
// never block the text reply.
func (s *ProgressService) buildChart(ctx context.Context, p *events.ProgressRequestedPayloadV1, entry routingdomain.Entry) (handlerwrapper.Result, bool) {
	rows, err := s.ledger.LedgerRows(ctx, entry.LookupKey)
	if err != nil {
		s.logger.WarnContext(ctx, "Skipping progress chart, ledger read failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("lookup_key", entry.LookupKey),
			attr.Error(err),
		)
		return handlerwrapper.Result{}, false
	}

	png, err := RenderApprovedChart(entry.Team, rows)
	if err != nil {
		s.logger.WarnContext(ctx, "Skipping progress chart, render failed",
			attr.ExtractCorrelationID(ctx),
			attr.Error(err),
		)
		return handlerwrapper.Result{}, false
	}

	return handlerwrapper.Result{
		Topic: events.DiscordChartPostRequestedV1,
		Payload: events.ChartPostRequestedPayloadV1{
			ChannelID: p.ChannelID,
			Filename:  "progress.png",
			PNG:       png,
		},
	}, true
}

// splitForTransport chunks text at the transport limit, preferring line
// boundaries so compiled entries stay intact.
func splitForTransport(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		for len(line) > limit {
			if b.Len() > 0 {
				chunks = append(chunks, b.String())
				b.Reset()
			}
			chunks = append(chunks, line[:limit])
			line = line[limit:]
		}
		if b.Len()+len(line)+1 > limit && b.Len() > 0 {
			chunks = append(chunks, b.String())
			b.Reset()
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	if b.Len() > 0 {
		chunks = append(chunks, b.String())
	}
	return chunks
}
