// Package routingservice resolves guilds and channels to team routing rows.
package routingservice

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	routingdomain "github.com/TanzimK12/pvm-kingdom/app/modules/routing/domain"
	routingdb "github.com/TanzimK12/pvm-kingdom/app/modules/routing/infrastructure/repositories"
	"github.com/TanzimK12/pvm-kingdom/internal/attr"
	"github.com/TanzimK12/pvm-kingdom/internal/metrics"
)

// RoutingService implements the Service interface.
type RoutingService struct {
	repo    routingdb.Repository
	logger  *slog.Logger
	metrics metrics.Recorder
	tracer  trace.Tracer
}

// NewRoutingService creates a new RoutingService.
func NewRoutingService(
	repo routingdb.Repository,
	logger *slog.Logger,
	rec metrics.Recorder,
	tracer trace.Tracer,
) *RoutingService {
	if rec == nil {
		rec = metrics.NoOp{}
	}
	return &RoutingService{
		repo:    repo,
		logger:  logger,
		metrics: rec,
		tracer:  tracer,
	}
}

// Resolve finds the routing row for a submission. Direct messages are
// rejected before any storage read. In server mode the row is keyed by
// guild; in channel mode the invoking channel must be the registered
// lookup key itself, and a registered guild with an unregistered channel
// is a distinct failure from an unregistered guild.
func (s *RoutingService) Resolve(ctx context.Context, guildID, channelID string) (routingdomain.Entry, error) {
	ctx, span := s.tracer.Start(ctx, "RoutingResolve", trace.WithAttributes(
		attribute.String("operation", "RoutingResolve"),
		attribute.String("guild_id", guildID),
		attribute.String("channel_id", channelID),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, "RoutingResolve", "routing")
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, "RoutingResolve", "routing", time.Since(start))
	}()

	if guildID == "" {
		s.metrics.RecordOperationFailure(ctx, "RoutingResolve", "routing")
		return routingdomain.Entry{}, routingdomain.ErrDirectMessage
	}

	mode, err := s.repo.Mode(ctx)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "RoutingResolve", "routing")
		span.RecordError(err)
		return routingdomain.Entry{}, fmt.Errorf("routing resolve: %w", err)
	}

	entries, err := s.repo.Entries(ctx)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "RoutingResolve", "routing")
		span.RecordError(err)
		return routingdomain.Entry{}, fmt.Errorf("routing resolve: %w", err)
	}

	entry, rerr := resolve(mode, entries, guildID, channelID)
	if rerr != nil {
		s.logger.InfoContext(ctx, "Routing resolve rejected",
			attr.ExtractCorrelationID(ctx),
			attr.String("guild_id", guildID),
			attr.String("channel_id", channelID),
			attr.String("mode", string(mode)),
			attr.Error(rerr),
		)
		s.metrics.RecordOperationFailure(ctx, "RoutingResolve", "routing")
		return routingdomain.Entry{}, rerr
	}

	s.metrics.RecordOperationSuccess(ctx, "RoutingResolve", "routing")
	return entry, nil
}

func resolve(mode routingdomain.Mode, entries []routingdomain.Entry, guildID, channelID string) (routingdomain.Entry, error) {
	if mode == routingdomain.ModeServer {
		// In server mode the lookup key is the guild id itself; that key is
		// what downstream ledger rows and embeds carry.
		for _, e := range entries {
			if e.LookupKey == guildID {
				return e, nil
			}
		}
		// Rows provisioned with only a guild column still resolve, with the
		// guild recorded as the origin key.
		for _, e := range entries {
			if e.GuildID == guildID {
				e.LookupKey = guildID
				return e, nil
			}
		}
		return routingdomain.Entry{}, routingdomain.ErrNotRegistered
	}

	guildRegistered := false
	for _, e := range entries {
		if e.GuildID == guildID {
			guildRegistered = true
		}
		if e.LookupKey == channelID {
			return e, nil
		}
	}
	if guildRegistered {
		return routingdomain.Entry{}, routingdomain.ErrChannelForbidden
	}
	return routingdomain.Entry{}, routingdomain.ErrNotRegistered
}

// TeamIndexForChannel maps a progress channel to its team. The index comes
// from a number in the team label when one is present, otherwise from the
// row's 1-based position.
func (s *RoutingService) TeamIndexForChannel(ctx context.Context, channelID string) (int, routingdomain.Entry, error) {
	entries, err := s.repo.Entries(ctx)
	if err != nil {
		return 0, routingdomain.Entry{}, fmt.Errorf("team index lookup: %w", err)
	}
	for i, e := range entries {
		if e.ProgressChannelID != "" && e.ProgressChannelID == channelID {
			if n, ok := teamNumber(e.Team); ok {
				return n, e, nil
			}
			return i + 1, e, nil
		}
	}
	return 0, routingdomain.Entry{}, routingdomain.ErrNotRegistered
}

func teamNumber(label string) (int, bool) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, label)
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
