package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"velora/rdx"
	"velora/utils"
)

const eventsChannel = "store-events"

// Event is a domain event published on the store-events channel.
type Event struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	EntityID string    `json:"entity_id"`
	UserID   string    `json:"user_id,omitempty"`
	At       time.Time `json:"at"`
}

// Emit publishes a domain event to Redis. Failures are logged, never
// propagated; event delivery is best-effort.
func Emit(ctx context.Context, eventType, entityID, userID string) {
	ev := Event{ID: utils.GetUUID(), Type: eventType, EntityID: entityID, UserID: userID, At: time.Now()}

	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("mq: failed to marshal event %q: %v", eventType, err)
		return
	}

	if err := rdx.Conn.Publish(ctx, eventsChannel, data).Err(); err != nil {
		log.Printf("mq: failed to publish event %q: %v", eventType, err)
	}
}

// StartEventWorker consumes store events and keeps per-type counters.
func StartEventWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, eventsChannel)
	ch := sub.Channel()

	log.Println("mq: event worker listening")

	for msg := range ch {
		var ev Event
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			log.Printf("mq: failed to parse event: %v", err)
			continue
		}
		log.Printf("mq: event type=%s entity=%s user=%s", ev.Type, ev.EntityID, ev.UserID)

		counter := fmt.Sprintf("events:%s", ev.Type)
		if err := rdx.Conn.Incr(ctx, counter).Err(); err != nil {
			log.Printf("mq: failed to bump counter %s: %v", counter, err)
		}
	}
}
