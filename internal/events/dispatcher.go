package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	defaultQueueSize = 256
	drainTimeout     = 5 * time.Second
)

type messageWriter interface {
	WriteMessages(context.Context, ...kafka.Message) error
}

// Option configures optional Dispatcher behaviour.
type Option func(*Dispatcher)

// WithQueueSize overrides the bounded queue capacity.
func WithQueueSize(size int) Option {
	return func(d *Dispatcher) {
		d.queue = make(chan RosterEvent, size)
	}
}

// Dispatcher delivers roster events to Kafka from a bounded queue so request
// handling never blocks on the broker. When the queue is full the event is
// dropped and counted.
type Dispatcher struct {
	producer         messageWriter
	logger           *zap.Logger
	queue            chan RosterEvent
	shutdownComplete chan struct{}
}

// NewDispatcher constructs a Dispatcher.
func NewDispatcher(producer messageWriter, logger *zap.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		producer:         producer,
		logger:           logger,
		queue:            make(chan RosterEvent, defaultQueueSize),
		shutdownComplete: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Publish enqueues an event without blocking. Implements Publisher.
func (d *Dispatcher) Publish(_ context.Context, event RosterEvent) {
	select {
	case d.queue <- event:
		recordEnqueued(event.EventType)
	default:
		d.logger.Warn("roster event dropped, queue full",
			zap.String("event_type", event.EventType),
			zap.String("activity", event.Activity),
		)
		recordDropped(event.EventType)
	}
}

// Start runs the delivery loop until the context is cancelled, then drains
// whatever is still queued. It should be called in a goroutine.
func (d *Dispatcher) Start(ctx context.Context) {
	defer close(d.shutdownComplete)

	for {
		select {
		case <-ctx.Done():
			d.drain()
			return
		case event := <-d.queue:
			d.deliver(ctx, event)
		}
	}
}

// Wait blocks until the dispatcher has stopped and drained.
func (d *Dispatcher) Wait() {
	<-d.shutdownComplete
}

func (d *Dispatcher) deliver(ctx context.Context, event RosterEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		d.logger.Error("roster event encode failed", zap.Error(err))
		recordFailed(event.EventType)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.Activity),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "event_id", Value: []byte(event.EventID)},
		},
	}

	if err := d.producer.WriteMessages(ctx, msg); err != nil {
		d.logger.Error("roster event delivery failed",
			zap.Error(err),
			zap.String("event_type", event.EventType),
			zap.String("activity", event.Activity),
		)
		recordFailed(event.EventType)
		return
	}
	recordDelivered(event.EventType)
}

func (d *Dispatcher) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()

	for {
		select {
		case event := <-d.queue:
			d.deliver(ctx, event)
		default:
			return
		}
	}
}
