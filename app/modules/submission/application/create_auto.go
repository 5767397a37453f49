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
	detectionservice "github.com/TanzimK12/pvm-kingdom/app/modules/detection/application"
	submissiondomain "github.com/TanzimK12/pvm-kingdom/app/modules/submission/domain"
	"github.com/TanzimK12/pvm-kingdom/internal/attr"
	"github.com/TanzimK12/pvm-kingdom/internal/handlerwrapper"
)

// CreateAuto handles /auto_submit: the screenshot is analyzed, the observed
// player name must reconcile with the submitter, and the detected items must
// fuzzy-match a board tile before anything is recorded.
func (s *SubmissionService) CreateAuto(ctx context.Context, p *events.AutoSubmitRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	ctx, span := s.tracer.Start(ctx, "SubmissionCreateAuto", trace.WithAttributes(
		attribute.String("operation", "SubmissionCreateAuto"),
	))
	defer span.End()
	s.metrics.RecordOperationAttempt(ctx, "SubmissionCreateAuto", "submission")

	if !s.taxonomy.Ready() {
		return s.notReadyReply(p.ChannelID, p.UserID), nil
	}

	route, rejection, err := s.routeOrReply(ctx, p.GuildID, p.ChannelID, p.UserID)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "SubmissionCreateAuto", "submission")
		return nil, fmt.Errorf("auto submission: %w", err)
	}
	if rejection != nil {
		return rejection, nil
	}

	if p.Amount <= 0 {
		return []handlerwrapper.Result{reply(p.ChannelID, p.UserID,
			"Amount must be a positive number.")}, nil
	}
	if p.ImageURL == "" {
		return []handlerwrapper.Result{reply(p.ChannelID, p.UserID,
			"Attach a screenshot of the drop.")}, nil
	}

	detected, err := s.detection.AnalyzeAndLog(ctx, p.ImageURL, p.UserDisplay)
	if err != nil {
		if errors.Is(err, detectionservice.ErrQuotaExceeded) {
			return []handlerwrapper.Result{reply(p.ChannelID, p.UserID,
				"Screenshot analysis is out of quota right now. Use /submit with the tile and item instead.")}, nil
		}
		s.metrics.RecordOperationFailure(ctx, "SubmissionCreateAuto", "submission")
		return nil, fmt.Errorf("auto submission analysis: %w", err)
	}

	if len(detected.Items) == 0 {
		return []handlerwrapper.Result{reply(p.ChannelID, p.UserID,
			"Couldn't read anything from that screenshot. Use /submit with the tile and item instead.")}, nil
	}
	if detected.RSN == "" || !submissiondomain.NamesMatch(p.UserDisplay, detected.RSN, s.opts.NameThreshold) {
		return []handlerwrapper.Result{reply(p.ChannelID, p.UserID,
			fmt.Sprintf("The name in the screenshot (%q) doesn't look like yours. Submit your own drops, or use /submit.",
				detected.RSN))}, nil
	}

	match, tracePairs, found := submissiondomain.BestMatch(detected.Items, s.taxonomy.Snapshot(), s.opts.MatchThreshold)
	if !found {
		s.logger.InfoContext(ctx, "No tile matched detected items",
			attr.ExtractCorrelationID(ctx),
			attr.String("user", p.UserDisplay),
			attr.Any("near_misses", tracePairs),
		)
		return []handlerwrapper.Result{reply(p.ChannelID, p.UserID,
			fmt.Sprintf("Couldn't match that drop to a tile. Detected: %s. Use /submit if it should count.",
				strings.Join(detected.Items, ", ")))}, nil
	}

	sub := &submissiondomain.Submission{
		ID:            uuid.New(),
		Kind:          submissiondomain.KindAuto,
		GuildID:       p.GuildID,
		ChannelID:     p.ChannelID,
		UserID:        p.UserID,
		UserDisplay:   p.UserDisplay,
		Tile:          match.Tile,
		Item:          match.Item,
		Amount:        p.Amount,
		ImageURL:      p.ImageURL,
		DetectedRSN:   detected.RSN,
		DetectedItems: detected.Items,
		CreatedAt:     s.now().UTC(),
		Route:         route,
		State:         submissiondomain.StatePending,
	}

	if err := s.appendLedgerRow(ctx, sub); err != nil {
		s.logger.ErrorContext(ctx, "Ledger append failed, submission aborted",
			attr.ExtractCorrelationID(ctx),
			attr.String("user", p.UserDisplay),
			attr.Error(err),
		)
		s.metrics.RecordOperationFailure(ctx, "SubmissionCreateAuto", "submission")
		return []handlerwrapper.Result{reply(p.ChannelID, p.UserID,
			"Couldn't record the submission, nothing was sent for review. Try again shortly.")}, nil
	}

	s.metrics.RecordOperationSuccess(ctx, "SubmissionCreateAuto", "submission")
	return s.track(sub, p.ChannelID, p.UserID), nil
}
