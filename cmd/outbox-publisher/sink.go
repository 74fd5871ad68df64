package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gcppubsub "cloud.google.com/go/pubsub/v2"

	"github.com/angelmondragon/storefront-backend/pkg/outbox/registry"
)

const (
	SinkPubSub = "pubsub"
	SinkRedis  = "redis"
)

// Message is one outbox row ready for delivery.
type Message struct {
	Topic      string
	Data       []byte
	Attributes map[string]string
}

// Sink is a broker the publisher can deliver to.
type Sink interface {
	Name() string
	Ping(ctx context.Context) error
	Deliver(ctx context.Context, msg Message) error
}

type publisherFactory func(topic string) publisher

type publisher interface {
	Publish(context.Context, *gcppubsub.Message) publishResult
}

type publishResult interface {
	Get(context.Context) (string, error)
}

type pubSubClient interface {
	Ping(context.Context) error
	Publisher(name string) *gcppubsub.Publisher
}

// PubSubSink publishes each message to the Pub/Sub topic named by its descriptor.
type PubSubSink struct {
	client  pubSubClient
	factory publisherFactory
}

func NewPubSubSink(client pubSubClient) *PubSubSink {
	return &PubSubSink{
		client: client,
		factory: func(topic string) publisher {
			p := client.Publisher(topic)
			if p == nil {
				return nil
			}
			return &gcpPublisher{Publisher: p}
		},
	}
}

func (s *PubSubSink) Name() string { return SinkPubSub }

func (s *PubSubSink) Ping(ctx context.Context) error { return s.client.Ping(ctx) }

func (s *PubSubSink) Deliver(ctx context.Context, msg Message) error {
	pub := s.factory(msg.Topic)
	if pub == nil {
		return registry.NewNonRetryableError(fmt.Errorf("publisher not configured for topic %s", msg.Topic))
	}
	result := pub.Publish(ctx, &gcppubsub.Message{Data: msg.Data, Attributes: msg.Attributes})
	if result == nil {
		return registry.NewNonRetryableError(fmt.Errorf("publisher returned nil for topic %s", msg.Topic))
	}
	_, err := result.Get(ctx)
	return err
}

type gcpPublisher struct {
	*gcppubsub.Publisher
}

func (p *gcpPublisher) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	return &gcpPublishResult{PublishResult: p.Publisher.Publish(ctx, msg)}
}

type gcpPublishResult struct {
	*gcppubsub.PublishResult
}

func (r *gcpPublishResult) Get(ctx context.Context) (string, error) {
	if r == nil || r.PublishResult == nil {
		return "", errors.New("publish result is nil")
	}
	return r.PublishResult.Get(ctx)
}

type streamClient interface {
	Ping(context.Context) error
	XAdd(ctx context.Context, stream string, fields map[string]any) (string, error)
}

// StreamSink appends messages to Redis streams named <prefix>:<topic>. It lets
// a single-box deployment run without Pub/Sub.
type StreamSink struct {
	client streamClient
	prefix string
}

func NewStreamSink(client streamClient, prefix string) *StreamSink {
	return &StreamSink{client: client, prefix: strings.TrimSuffix(prefix, ":")}
}

func (s *StreamSink) Name() string { return SinkRedis }

func (s *StreamSink) Ping(ctx context.Context) error { return s.client.Ping(ctx) }

func (s *StreamSink) Stream(topic string) string {
	if s.prefix == "" {
		return topic
	}
	return s.prefix + ":" + topic
}

func (s *StreamSink) Deliver(ctx context.Context, msg Message) error {
	if msg.Topic == "" {
		return registry.NewNonRetryableError(errors.New("message topic is required"))
	}
	fields := make(map[string]any, len(msg.Attributes)+1)
	for k, v := range msg.Attributes {
		fields[k] = v
	}
	fields["data"] = string(msg.Data)
	if _, err := s.client.XAdd(ctx, s.Stream(msg.Topic), fields); err != nil {
		return fmt.Errorf("xadd %s: %w", s.Stream(msg.Topic), err)
	}
	return nil
}
