// Package opsservice handles health, resync and cache refresh commands.
package opsservice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/TanzimK12/pvm-kingdom/app/events"
	taxonomyservice "github.com/TanzimK12/pvm-kingdom/app/modules/taxonomy/application"
	"github.com/TanzimK12/pvm-kingdom/internal/attr"
	"github.com/TanzimK12/pvm-kingdom/internal/handlerwrapper"
	"github.com/TanzimK12/pvm-kingdom/internal/metrics"
)

// PendingCounter reports live submission counts.
type PendingCounter interface {
	PendingCounts() (awaiting, pending int)
}

// OpsService implements the Service interface.
type OpsService struct {
	taxonomy    taxonomyservice.Service
	submissions PendingCounter
	started     time.Time

	logger  *slog.Logger
	metrics metrics.Recorder
	tracer  trace.Tracer

	now func() time.Time
}

// NewOpsService creates a new OpsService.
func NewOpsService(
	taxonomy taxonomyservice.Service,
	submissions PendingCounter,
	logger *slog.Logger,
	rec metrics.Recorder,
	tracer trace.Tracer,
) *OpsService {
	if rec == nil {
		rec = metrics.NoOp{}
	}
	return &OpsService{
		taxonomy:    taxonomy,
		submissions: submissions,
		started:     time.Now(),
		logger:      logger,
		metrics:     rec,
		tracer:      tracer,
		now:         time.Now,
	}
}

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

// HandleHealthRequested renders the status report. It never fails: a broken
// cache is exactly what the report is for.
func (s *OpsService) HandleHealthRequested(ctx context.Context, p *events.HealthRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := s.tracer.Start(ctx, "HandleHealthRequested", trace.WithAttributes(
		attribute.String("operation", "HandleHealthRequested"),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, "HandleHealthRequested", "ops")
	defer s.metrics.RecordOperationSuccess(ctx, "HandleHealthRequested", "ops")

	var b strings.Builder
	fmt.Fprintf(&b, "Taxonomy ready: **%t**\n", s.taxonomy.Ready())
	if loadedAt := s.taxonomy.LoadedAt(); !loadedAt.IsZero() {
		fmt.Fprintf(&b, "Taxonomy loaded: %s\n", loadedAt.Format(time.RFC3339))
	}
	lastErr := "none"
	if err := s.taxonomy.LastError(); err != nil {
		lastErr = err.Error()
	}
	fmt.Fprintf(&b, "Last error: `%s`\n", lastErr)

	awaiting, pending := s.submissions.PendingCounts()
	fmt.Fprintf(&b, "Submissions awaiting post: %d, pending review: %d\n", awaiting, pending)
	fmt.Fprintf(&b, "Uptime: %s", s.now().Sub(s.started).Round(time.Second))

	return []handlerwrapper.Result{reply(p.ChannelID, p.UserID, b.String())}, nil
}

// HandleResyncRequested forwards a command re-registration request to the
// gateway.
func (s *OpsService) HandleResyncRequested(ctx context.Context, p *events.ResyncRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := s.tracer.Start(ctx, "HandleResyncRequested", trace.WithAttributes(
		attribute.String("operation", "HandleResyncRequested"),
		attribute.String("guild_id", p.GuildID),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, "HandleResyncRequested", "ops")

	if !p.UserElevated {
		s.metrics.RecordOperationFailure(ctx, "HandleResyncRequested", "ops")
		return []handlerwrapper.Result{
			reply(p.ChannelID, p.UserID, "Only moderators can resync commands."),
		}, nil
	}

	s.logger.InfoContext(ctx, "Command resync requested",
		attr.ExtractCorrelationID(ctx),
		attr.String("guild_id", p.GuildID),
		attr.String("user_id", p.UserID),
	)
	s.metrics.RecordOperationSuccess(ctx, "HandleResyncRequested", "ops")

	return []handlerwrapper.Result{
		{
			Topic:   events.DiscordCommandSyncRequestedV1,
			Payload: events.CommandSyncRequestedPayloadV1{GuildID: p.GuildID},
		},
		reply(p.ChannelID, p.UserID, "Command sync requested."),
	}, nil
}

// HandleTaxonomyRefreshRequested reloads the tile cache. A failed reload
// keeps the previous snapshot serving.
func (s *OpsService) HandleTaxonomyRefreshRequested(ctx context.Context, p *events.TaxonomyRefreshRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := s.tracer.Start(ctx, "HandleTaxonomyRefreshRequested", trace.WithAttributes(
		attribute.String("operation", "HandleTaxonomyRefreshRequested"),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, "HandleTaxonomyRefreshRequested", "ops")

	if err := s.taxonomy.Load(ctx); err != nil {
		s.metrics.RecordOperationFailure(ctx, "HandleTaxonomyRefreshRequested", "ops")
		span.RecordError(err)
		s.logger.ErrorContext(ctx, "Taxonomy refresh failed",
			attr.ExtractCorrelationID(ctx),
			attr.Error(err),
		)
		return []handlerwrapper.Result{
			reply(p.ChannelID, p.UserID, "Reload failed, the previous tile list is still serving."),
		}, nil
	}

	s.metrics.RecordOperationSuccess(ctx, "HandleTaxonomyRefreshRequested", "ops")

	tiles := 0
	if snap := s.taxonomy.Snapshot(); snap != nil {
		tiles = len(snap.Tiles())
	}
	return []handlerwrapper.Result{
		reply(p.ChannelID, p.UserID, fmt.Sprintf("Reloaded %d tiles.", tiles)),
	}, nil
}
