package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ify-osakwe/hygea/shared/events"
)

const eventCountKeyPrefix = "analytics:events:"

// EventTracker consumes patient lifecycle events and keeps per-type counters
// in Redis. Counters are monotonic, so a redelivered event at worst counts
// twice; they feed dashboards, not billing.
type EventTracker struct {
	redis *goredis.Client
}

func NewEventTracker(redis *goredis.Client) *EventTracker {
	return &EventTracker{redis: redis}
}

// HandlePatientEvent is the consumer handler for the patient events topic.
func (t *EventTracker) HandlePatientEvent(ctx context.Context, event events.Event) error {
	switch event.Type {
	case events.PatientCreated:
		dataBytes, _ := json.Marshal(event.Data)
		var data events.PatientCreatedEvent
		if err := json.Unmarshal(dataBytes, &data); err != nil {
			return fmt.Errorf("failed to unmarshal patient.created event: %w", err)
		}
		log.Printf("Patient %s registered (%s)", data.PatientID, data.Email)
	default:
		log.Printf("Received patient event: %s", event.Type)
	}

	if err := t.redis.Incr(ctx, eventCountKeyPrefix+event.Type).Err(); err != nil {
		return fmt.Errorf("failed to count %s event: %w", event.Type, err)
	}
	return nil
}

// Count returns the number of events of the given type seen so far.
func (t *EventTracker) Count(ctx context.Context, eventType string) (int64, error) {
	n, err := t.redis.Get(ctx, eventCountKeyPrefix+eventType).Int64()
	if err == goredis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read %s counter: %w", eventType, err)
	}
	return n, nil
}
