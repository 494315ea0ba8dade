package events

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.uber.org/zap"
)

const subscriberBuffer = 16

// Broker is the process-wide event bus. It wraps a watermill gochannel
// pub/sub; swapping in a broker-backed watermill publisher is what a
// multi-instance deployment would change.
type Broker struct {
	bus *gochannel.GoChannel
	log *zap.Logger
}

// NewBroker creates the bus.
func NewBroker(log *zap.Logger) *Broker {
	bus := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 64,
	}, watermill.NopLogger{})
	return &Broker{bus: bus, log: log}
}

// Publish emits the event on the topic without blocking the caller. A
// failed publish is logged, never surfaced: delivery is best-effort.
func (b *Broker) Publish(topic Topic, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		b.log.Error("encode event", zap.String("topic", string(topic)), zap.Error(err))
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	go func() {
		if err := b.bus.Publish(string(topic), msg); err != nil {
			b.log.Error("publish event", zap.String("topic", string(topic)), zap.Error(err))
		}
	}()
}

// Close shuts the bus down, closing every subscriber channel.
func (b *Broker) Close() error {
	return b.bus.Close()
}

// Subscribe registers a predicate-filtered listener on the topic. The
// returned channel closes when ctx is cancelled or the broker shuts down.
// Events failing the predicate are skipped; a decode failure or a panicking
// predicate drops the event for this subscriber only, with a log line.
func Subscribe[T any](ctx context.Context, b *Broker, topic Topic, pred func(T) bool) (<-chan T, error) {
	msgs, err := b.bus.Subscribe(ctx, string(topic))
	if err != nil {
		return nil, err
	}

	out := make(chan T, subscriberBuffer)
	go func() {
		defer close(out)
		for msg := range msgs {
			var event T
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				b.log.Warn("event dropped: decode failed",
					zap.String("topic", string(topic)), zap.Error(err))
				msg.Ack()
				continue
			}
			if !admit(b, topic, pred, event) {
				msg.Ack()
				continue
			}
			select {
			case out <- event:
			default:
				b.log.Warn("event dropped: slow subscriber",
					zap.String("topic", string(topic)))
			}
			msg.Ack()
		}
	}()
	return out, nil
}

// admit runs the predicate, treating a panic as a non-match so one broken
// subscriber cannot take down the bus.
func admit[T any](b *Broker, topic Topic, pred func(T) bool, event T) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event dropped: filter panicked",
				zap.String("topic", string(topic)), zap.Any("panic", r))
			ok = false
		}
	}()
	if pred == nil {
		return true
	}
	return pred(event)
}
