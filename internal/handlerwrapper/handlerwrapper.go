// Package handlerwrapper adapts typed transformation handlers to Watermill.
//
// A transformation handler takes a decoded payload and returns zero or more
// results, each bound to an outbound topic. The wrapper owns payload decoding,
// tracing, metrics, panic containment and correlation propagation so handler
// code stays pure.
package handlerwrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/TanzimK12/pvm-kingdom/internal/attr"
	"github.com/TanzimK12/pvm-kingdom/internal/eventbus"
	"github.com/TanzimK12/pvm-kingdom/internal/metrics"
)

// Result is one outbound event produced by a handler.
type Result struct {
	Topic    string
	Payload  any
	Metadata map[string]string
}

// WrapTransformingTyped builds a Watermill handler from a typed transformation
// function. Decode failures and handler errors are contained here: they are
// logged and the message is acked, because redelivering a malformed or
// rejected event can never succeed.
func WrapTransformingTyped[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	rec metrics.Recorder,
	handler func(context.Context, *T) ([]Result, error),
) message.HandlerFunc {
	if rec == nil {
		rec = metrics.NoOp{}
	}
	return func(msg *message.Message) (out []*message.Message, err error) {
		ctx := msg.Context()
		if cid := middleware.MessageCorrelationID(msg); cid != "" {
			ctx = attr.WithCorrelationID(ctx, cid)
		}

		ctx, span := tracer.Start(ctx, handlerName, trace.WithAttributes(
			attribute.String("handler", handlerName),
			attribute.String("message_id", msg.UUID),
		))
		defer span.End()

		rec.RecordOperationAttempt(ctx, handlerName, "handler")
		start := time.Now()
		defer func() {
			rec.RecordOperationDuration(ctx, handlerName, "handler", time.Since(start))
		}()

		defer func() {
			if r := recover(); r != nil {
				panicErr := fmt.Errorf("panic in %s: %v", handlerName, r)
				logger.ErrorContext(ctx, "Panic recovered in handler",
					attr.ExtractCorrelationID(ctx),
					attr.String("handler", handlerName),
					attr.Error(panicErr),
				)
				span.RecordError(panicErr)
				rec.RecordOperationFailure(ctx, handlerName, "handler")
				out, err = nil, nil
			}
		}()

		payload := new(T)
		if uerr := json.Unmarshal(msg.Payload, payload); uerr != nil {
			logger.ErrorContext(ctx, "Failed to decode event payload",
				attr.ExtractCorrelationID(ctx),
				attr.String("handler", handlerName),
				attr.Error(uerr),
			)
			span.RecordError(uerr)
			rec.RecordOperationFailure(ctx, handlerName, "handler")
			return nil, nil
		}

		handlerResults, herr := handler(ctx, payload)
		if herr != nil {
			logger.ErrorContext(ctx, "Handler returned error",
				attr.ExtractCorrelationID(ctx),
				attr.String("handler", handlerName),
				attr.Error(herr),
			)
			span.RecordError(herr)
			rec.RecordOperationFailure(ctx, handlerName, "handler")
			return nil, nil
		}

		messages, merr := ToMessages(msg, handlerResults)
		if merr != nil {
			logger.ErrorContext(ctx, "Failed to encode handler results",
				attr.ExtractCorrelationID(ctx),
				attr.String("handler", handlerName),
				attr.Error(merr),
			)
			span.RecordError(merr)
			rec.RecordOperationFailure(ctx, handlerName, "handler")
			return nil, nil
		}

		rec.RecordOperationSuccess(ctx, handlerName, "handler")
		return messages, nil
	}
}

// ToMessages marshals handler results into outbound messages, carrying the
// destination topic in metadata and propagating the correlation ID.
func ToMessages(parent *message.Message, handlerResults []Result) ([]*message.Message, error) {
	out := make([]*message.Message, 0, len(handlerResults))
	for _, r := range handlerResults {
		body, err := json.Marshal(r.Payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload for %s: %w", r.Topic, err)
		}
		msg := message.NewMessage(watermill.NewUUID(), body)
		msg.Metadata.Set(eventbus.MetadataTopicKey, r.Topic)
		if cid := middleware.MessageCorrelationID(parent); cid != "" {
			middleware.SetCorrelationID(cid, msg)
		}
		for k, v := range r.Metadata {
			msg.Metadata.Set(k, v)
		}
		out = append(out, msg)
	}
	return out, nil
}
