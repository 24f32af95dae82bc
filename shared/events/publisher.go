package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const defaultPublishTimeout = 5 * time.Second

// Publisher writes events to Kafka. RequireAll acks mean a nil return
// confirms the broker accepted the message for delivery; it says nothing
// about consumers.
type Publisher struct {
	writer  *kafka.Writer
	timeout time.Duration
}

func NewPublisher(brokers []string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
		timeout: defaultPublishTimeout,
	}
}

// Publish marshals the event envelope and writes it to topic, keyed so that
// all events for one aggregate land in the same partition. The call blocks
// no longer than the publish timeout.
func (p *Publisher) Publish(ctx context.Context, topic, eventType, key string, data any) error {
	event := Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: eventJSON,
	})
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
