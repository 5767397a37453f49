// Package eventbus provides the NATS JetStream event bus used for all
// gateway-facing traffic, exposed through Watermill's publisher/subscriber
// interfaces so it plugs straight into a message router.
package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/TanzimK12/pvm-kingdom/internal/attr"
	"github.com/TanzimK12/pvm-kingdom/internal/metrics"
)

// MetadataTopicKey carries the destination topic on messages emitted by
// transforming handlers. Publish resolves it when called with an empty topic.
const MetadataTopicKey = "topic"

// EventBus is the bus contract consumed by module routers. It satisfies both
// watermill publisher and subscriber roles.
type EventBus interface {
	message.Publisher
	message.Subscriber
	CreateStream(ctx context.Context, streamName string, subjects []string) error
	Close() error
}

type eventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	js         jetstream.JetStream
	conn       *nc.Conn
	logger     *slog.Logger
	metrics    metrics.Recorder

	streamMu       sync.Mutex
	createdStreams map[string]bool
}

// New connects to NATS, initializes JetStream, and builds the Watermill
// publisher/subscriber pair around one marshaller.
func New(ctx context.Context, natsURL string, logger *slog.Logger, rec metrics.Recorder) (EventBus, error) {
	conn, err := nc.Connect(natsURL, nc.RetryOnFailedConnect(true))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize JetStream: %w", err)
	}

	wmLogger := watermill.NewSlogLogger(logger)
	marshaller := &wmnats.NATSMarshaler{}

	publisher, err := wmnats.NewPublisher(wmnats.PublisherConfig{
		URL:       natsURL,
		Marshaler: marshaller,
		NatsOptions: []nc.Option{
			nc.RetryOnFailedConnect(true),
		},
	}, wmLogger)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create publisher: %w", err)
	}

	subscriber, err := wmnats.NewSubscriber(wmnats.SubscriberConfig{
		URL:         natsURL,
		Unmarshaler: marshaller,
		NatsOptions: []nc.Option{
			nc.RetryOnFailedConnect(true),
		},
	}, wmLogger)
	if err != nil {
		publisher.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to create subscriber: %w", err)
	}

	if rec == nil {
		rec = metrics.NoOp{}
	}

	return &eventBus{
		publisher:      publisher,
		subscriber:     subscriber,
		js:             js,
		conn:           conn,
		logger:         logger,
		metrics:        rec,
		createdStreams: make(map[string]bool),
	}, nil
}

// Publish sends messages to topic. When topic is empty, each message must
// carry its destination in the MetadataTopicKey metadata entry; this is how
// transforming handlers fan results out to multiple topics.
func (eb *eventBus) Publish(topic string, messages ...*message.Message) error {
	ctx := context.Background()
	for _, msg := range messages {
		if msg.UUID == "" {
			msg.UUID = watermill.NewUUID()
		}
		dest := topic
		if dest == "" {
			dest = msg.Metadata.Get(MetadataTopicKey)
		}
		if dest == "" {
			return errors.New("message has no destination topic")
		}
		eb.metrics.RecordOperationAttempt(ctx, "publish", dest)
		if err := eb.publisher.Publish(dest, msg); err != nil {
			eb.metrics.RecordOperationFailure(ctx, "publish", dest)
			eb.logger.Error("Failed to publish message",
				attr.String("topic", dest),
				attr.String("message_id", msg.UUID),
				attr.Error(err),
			)
			return fmt.Errorf("failed to publish to %s: %w", dest, err)
		}
		eb.metrics.RecordOperationSuccess(ctx, "publish", dest)
		eb.logger.Debug("Message published",
			attr.String("topic", dest),
			attr.String("message_id", msg.UUID),
		)
	}
	return nil
}

func (eb *eventBus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	eb.logger.Info("Subscribing", attr.String("topic", topic))
	return eb.subscriber.Subscribe(ctx, topic)
}

// CreateStream ensures a JetStream stream exists and covers the given
// subjects, extending the subject list of an existing stream when needed.
func (eb *eventBus) CreateStream(ctx context.Context, streamName string, subjects []string) error {
	eb.streamMu.Lock()
	defer eb.streamMu.Unlock()

	if eb.createdStreams[streamName] {
		return nil
	}

	stream, err := eb.js.Stream(ctx, streamName)
	if err != nil && !errors.Is(err, jetstream.ErrStreamNotFound) {
		return fmt.Errorf("failed to check stream %s: %w", streamName, err)
	}

	if errors.Is(err, jetstream.ErrStreamNotFound) {
		if _, err := eb.js.CreateStream(ctx, jetstream.StreamConfig{
			Name:     streamName,
			Subjects: subjects,
		}); err != nil {
			return fmt.Errorf("failed to create stream %s: %w", streamName, err)
		}
		eb.logger.Info("Stream created", attr.String("stream", streamName))
	} else {
		info, err := stream.Info(ctx)
		if err != nil {
			return fmt.Errorf("failed to get stream info for %s: %w", streamName, err)
		}
		missing := missingSubjects(info.Config.Subjects, subjects)
		if len(missing) > 0 {
			info.Config.Subjects = append(info.Config.Subjects, missing...)
			if _, err := eb.js.UpdateStream(ctx, info.Config); err != nil {
				return fmt.Errorf("failed to update stream %s: %w", streamName, err)
			}
			eb.logger.Info("Stream updated with new subjects",
				attr.String("stream", streamName),
				attr.Any("subjects", missing),
			)
		}
	}

	eb.createdStreams[streamName] = true
	return nil
}

func missingSubjects(existing, wanted []string) []string {
	have := make(map[string]bool, len(existing))
	for _, s := range existing {
		have[s] = true
	}
	var missing []string
	for _, s := range wanted {
		if !have[s] {
			missing = append(missing, s)
		}
	}
	return missing
}

// Close shuts down the publisher, subscriber and NATS connection.
func (eb *eventBus) Close() error {
	var firstErr error
	if err := eb.publisher.Close(); err != nil {
		firstErr = err
	}
	if err := eb.subscriber.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	eb.conn.Close()
	return firstErr
}
