package events

import (
	"context"
	"encoding/json"
	"fmt"

	"kycshare/internal/platform/kafka/producer"
)

// DefaultTopic is the broker topic carrying ledger observations.
const DefaultTopic = "kycshare.ledger.events"

// KafkaSink publishes events to a Kafka topic, keyed by customer id so all
// observations for one customer land on the same partition in order.
type KafkaSink struct {
	producer *producer.Producer
	topic    string
}

// NewKafkaSink wraps a producer. An empty topic falls back to DefaultTopic.
func NewKafkaSink(p *producer.Producer, topic string) *KafkaSink {
	if topic == "" {
		topic = DefaultTopic
	}
	return &KafkaSink{producer: p, topic: topic}
}

func (s *KafkaSink) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode ledger event: %w", err)
	}
	return s.producer.Produce(ctx, &producer.Message{
		Topic: s.topic,
		Key:   []byte(event.CustomerID),
		Value: payload,
		Headers: map[string]string{
			"event_type": string(event.Type),
		},
	})
}
