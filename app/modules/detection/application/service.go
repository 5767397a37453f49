// Package detectionservice runs screenshot analysis and keeps the API cost
// ledger.
package detectionservice

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	detectiondb "github.com/TanzimK12/pvm-kingdom/app/modules/detection/infrastructure/repositories"
	"github.com/TanzimK12/pvm-kingdom/internal/attr"
	"github.com/TanzimK12/pvm-kingdom/internal/metrics"
)

// DetectionService implements the Service interface.
type DetectionService struct {
	client  Client
	costs   detectiondb.CostRepository
	pricing Pricing
	model   string
	logger  *slog.Logger
	metrics metrics.Recorder
	tracer  trace.Tracer
}

// NewDetectionService creates a new DetectionService.
func NewDetectionService(
	client Client,
	costs detectiondb.CostRepository,
	pricing Pricing,
	model string,
	logger *slog.Logger,
	rec metrics.Recorder,
	tracer trace.Tracer,
) *DetectionService {
	if rec == nil {
		rec = metrics.NoOp{}
	}
	return &DetectionService{
		client:  client,
		costs:   costs,
		pricing: pricing,
		model:   model,
		logger:  logger,
		metrics: rec,
		tracer:  tracer,
	}
}

// AnalyzeAndLog runs detection and appends a cost row. A cost append failure
// is logged and swallowed: losing a cost row must never block a submission.
func (s *DetectionService) AnalyzeAndLog(ctx context.Context, imageURL, user string) (Result, error) {
	ctx, span := s.tracer.Start(ctx, "DetectionAnalyze", trace.WithAttributes(
		attribute.String("operation", "DetectionAnalyze"),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, "DetectionAnalyze", "detection")
	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, "DetectionAnalyze", "detection", time.Since(start))
	}()

	result, err := s.client.Analyze(ctx, imageURL)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "DetectionAnalyze", "detection")
		span.RecordError(err)
		return Result{}, err
	}

	entry := detectiondb.CostEntry{
		Timestamp:        time.Now().UTC(),
		User:             user,
		Model:            s.model,
		Images:           1,
		PromptTokens:     result.PromptTokens,
		CompletionTokens: result.CompletionTokens,
		CostUSD:          s.pricing.Cost(1, result.PromptTokens, result.CompletionTokens),
		Notes:            "auto_submit",
	}
	if cerr := s.costs.AppendCost(ctx, entry); cerr != nil {
		s.logger.ErrorContext(ctx, "Failed to append cost entry",
			attr.ExtractCorrelationID(ctx),
			attr.String("user", user),
			attr.Error(cerr),
		)
	}

	s.metrics.RecordOperationSuccess(ctx, "DetectionAnalyze", "detection")
	return result, nil
}
