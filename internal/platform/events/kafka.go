package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// KafkaPublisher writes events to one topic keyed by Event.Key.
type KafkaPublisher struct {
	w *kafkago.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		w: &kafkago.Writer{
			Addr:                   kafkago.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafkago.Hash{},
			RequiredAcks:           kafkago.RequireOne,
			AllowAutoTopicCreation: true,
			WriteTimeout:           5 * time.Second,
			MaxAttempts:            1,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, evt Event) error {
	msg, err := kafkaMessage(evt)
	if err != nil {
		return err
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write %s: %w", evt.Type, err)
	}
	return nil
}

func kafkaMessage(evt Event) (kafkago.Message, error) {
	body, err := json.Marshal(evt)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("marshal event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(evt.Key),
		Value: body,
		Headers: []kafkago.Header{
			{Key: "event-type", Value: []byte(evt.Type)},
		},
		Time: evt.OccurredAt,
	}, nil
}

func (p *KafkaPublisher) Close() error { return p.w.Close() }
