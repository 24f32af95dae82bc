package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"
)

type Handler func(ctx context.Context, event Event) error

// Consumer reads events from a Kafka topic as part of a consumer group.
// Offsets are committed only after the handler succeeds, so delivery is
// at-least-once and handlers must tolerate duplicates.
type Consumer struct {
	reader  *kafka.Reader
	handler Handler
}

type ConsumerConfig struct {
	Brokers []string
	GroupID string
	Topic   string
	Handler Handler
}

func NewConsumer(config ConsumerConfig) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  config.Brokers,
			GroupID:  config.GroupID,
			Topic:    config.Topic,
			MinBytes: 10e3,
			MaxBytes: 10e6,
		}),
		handler: config.Handler,
	}
}

// Start consumes until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	log.Printf("Consumer started: topic=%s", c.reader.Config().Topic)

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				log.Printf("Consumer stopping: %s", c.reader.Config().Topic)
				return ctx.Err()
			}
			return fmt.Errorf("failed to fetch message: %w", err)
		}

		var event Event
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Printf("Skipping malformed message at offset %d: %v", msg.Offset, err)
			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				log.Printf("Failed to commit offset %d: %v", msg.Offset, err)
			}
			continue
		}

		if err := c.handler(ctx, event); err != nil {
			// Not committed - the message is redelivered.
			log.Printf("Failed to process message at offset %d: %v", msg.Offset, err)
			continue
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			log.Printf("Failed to commit offset %d: %v", msg.Offset, err)
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
