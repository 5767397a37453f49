package submissionservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/TanzimK12/pvm-kingdom/app/events"
	routingdomain "github.com/TanzimK12/pvm-kingdom/app/modules/routing/domain"
	submissiondomain "github.com/TanzimK12/pvm-kingdom/app/modules/submission/domain"
	submissiondb "github.com/TanzimK12/pvm-kingdom/app/modules/submission/infrastructure/repositories"
	"github.com/TanzimK12/pvm-kingdom/internal/attr"
	"github.com/TanzimK12/pvm-kingdom/internal/handlerwrapper"
)

// routeOrReply resolves routing, turning the known rejections into an
// ephemeral reply. A nil slice means routing succeeded.
func (s *SubmissionService) routeOrReply(ctx context.Context, guildID, channelID, userID string) (routingdomain.Entry, []handlerwrapper.Result, error) {
	route, err := s.routing.Resolve(ctx, guildID, channelID)
	if err == nil {
		return route, nil, nil
	}
	switch {
	case errors.Is(err, routingdomain.ErrDirectMessage):
		return route, []handlerwrapper.Result{reply(channelID, userID,
			"Submissions only work inside the competition server, not in DMs.")}, nil
	case errors.Is(err, routingdomain.ErrChannelForbidden):
		return route, []handlerwrapper.Result{reply(channelID, userID,
			"This isn't your team's submission channel.")}, nil
	case errors.Is(err, routingdomain.ErrNotRegistered):
		return route, []handlerwrapper.Result{reply(channelID, userID,
			"This server isn't registered for the competition.")}, nil
	default:
		return route, nil, err
	}
}

// appendLedgerRow writes the submission to the ledger. Callers abort on
// failure: nothing is posted and nothing is tracked.
func (s *SubmissionService) appendLedgerRow(ctx context.Context, sub *submissiondomain.Submission) error {
	err := s.ledger.AppendLedger(ctx, submissiondb.LedgerRow{
		CreatedAt:   sub.CreatedAt,
		LookupKey:   sub.Route.LookupKey,
		UserDisplay: sub.UserDisplay,
		Tile:        sub.Tile,
		Item:        sub.Item,
		Amount:      sub.Amount,
		ImageURL:    sub.ImageURL,
	})
	if err != nil {
		return err
	}
	sub.LedgerWritten = true
	return nil
}

// track registers the submission and returns the approval post request plus
// the submitter's ack.
func (s *SubmissionService) track(sub *submissiondomain.Submission, ackChannelID, ackUserID string) []handlerwrapper.Result {
	s.pending.TrackAwaiting(sub)
	return []handlerwrapper.Result{
		s.approvalPostRequest(sub),
		reply(ackChannelID, ackUserID, "Submission sent for review."),
	}
}

// Create handles the manual /submit path: the player names tile and item
// themselves, so everything is validated against the taxonomy up front and
// the ledger row is written before review.
func (s *SubmissionService) Create(ctx context.Context, p *events.SubmitRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := s.tracer.Start(ctx, "SubmissionCreate", trace.WithAttributes(
		attribute.String("operation", "SubmissionCreate"),
	))
	defer span.End()
	s.metrics.RecordOperationAttempt(ctx, "SubmissionCreate", "submission")

	if !s.taxonomy.Ready() {
		return s.notReadyReply(p.ChannelID, p.UserID), nil
	}

	route, rejection, err := s.routeOrReply(ctx, p.GuildID, p.ChannelID, p.UserID)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "SubmissionCreate", "submission")
		return nil, fmt.Errorf("submission create: %w", err)
	}
	if rejection != nil {
		return rejection, nil
	}

	snap := s.taxonomy.Snapshot()
	tile, ok := snap.Canonical(p.Tile)
	if !ok {
		return []handlerwrapper.Result{reply(p.ChannelID, p.UserID,
			fmt.Sprintf("Unknown tile %q. Check the board and try again.", p.Tile))}, nil
	}
	if !snap.HasItem(tile, p.Item) {
		return []handlerwrapper.Result{reply(p.ChannelID, p.UserID,
			fmt.Sprintf("%q doesn't count for %s. Valid items: %s.",
				p.Item, tile, strings.Join(snap.Items(tile), ", ")))}, nil
	}
	if p.Amount <= 0 {
		return []handlerwrapper.Result{reply(p.ChannelID, p.UserID,
			"Amount must be a positive number.")}, nil
	}
	if p.ImageURL == "" {
		return []handlerwrapper.Result{reply(p.ChannelID, p.UserID,
			"Attach a screenshot of the drop.")}, nil
	}

	sub := &submissiondomain.Submission{
		ID:          uuid.New(),
		Kind:        submissiondomain.KindManual,
		GuildID:     p.GuildID,
		ChannelID:   p.ChannelID,
		UserID:      p.UserID,
		UserDisplay: p.UserDisplay,
		Tile:        tile,
		Item:        p.Item,
		Amount:      p.Amount,
		ImageURL:    p.ImageURL,
		CreatedAt:   s.now().UTC(),
		Route:       route,
		State:       submissiondomain.StatePending,
	}

	if err := s.appendLedgerRow(ctx, sub); err != nil {
		s.logger.ErrorContext(ctx, "Ledger append failed, submission aborted",
			attr.ExtractCorrelationID(ctx),
			attr.String("user", p.UserDisplay),
			attr.Error(err),
		)
		s.metrics.RecordOperationFailure(ctx, "SubmissionCreate", "submission")
		return []handlerwrapper.Result{reply(p.ChannelID, p.UserID,
			"Couldn't record the submission, nothing was sent for review. Try again shortly.")}, nil
	}

	s.metrics.RecordOperationSuccess(ctx, "SubmissionCreate", "submission")
	return s.track(sub, p.ChannelID, p.UserID), nil
}

// CreateImageOnly handles the reduced variant: tile plus screenshot, with
// item and amount supplied by the approver during review. No ledger row is
// written here; it lands at approval time from the durable record.
func (s *SubmissionService) CreateImageOnly(ctx context.Context, p *events.ImageOnlyRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := s.tracer.Start(ctx, "SubmissionCreateImageOnly", trace.WithAttributes(
		attribute.String("operation", "SubmissionCreateImageOnly"),
	))
	defer span.End()
	s.metrics.RecordOperationAttempt(ctx, "SubmissionCreateImageOnly", "submission")

	if !s.taxonomy.Ready() {
		return s.notReadyReply(p.ChannelID, p.UserID), nil
	}

	route, rejection, err := s.routeOrReply(ctx, p.GuildID, p.ChannelID, p.UserID)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "SubmissionCreateImageOnly", "submission")
		return nil, fmt.Errorf("image-only create: %w", err)
	}
	if rejection != nil {
		return rejection, nil
	}

	tile, ok := s.taxonomy.Snapshot().Canonical(p.Tile)
	if !ok {
		return []handlerwrapper.Result{reply(p.ChannelID, p.UserID,
			fmt.Sprintf("Unknown tile %q. Check the board and try again.", p.Tile))}, nil
	}
	if p.ImageURL == "" {
		return []handlerwrapper.Result{reply(p.ChannelID, p.UserID,
			"Attach a screenshot of the drop.")}, nil
	}

	sub := &submissiondomain.Submission{
		ID:          uuid.New(),
		Kind:        submissiondomain.KindImageOnly,
		GuildID:     p.GuildID,
		ChannelID:   p.ChannelID,
		UserID:      p.UserID,
		UserDisplay: p.UserDisplay,
		Tile:        tile,
		ImageURL:    p.ImageURL,
		CreatedAt:   s.now().UTC(),
		Route:       route,
		State:       submissiondomain.StatePending,
	}

	s.metrics.RecordOperationSuccess(ctx, "SubmissionCreateImageOnly", "submission")
	return s.track(sub, p.ChannelID, p.UserID), nil
}
