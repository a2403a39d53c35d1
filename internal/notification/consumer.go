package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/sandeepvarma05/event-planner-backend/utils"
)

// StartKafkaConsumer runs the RSVP trigger loop: each message published
// by the RSVP paths becomes a bell entry and push for the event's team.
// Blocks until ctx is cancelled; call it in its own goroutine.
func StartKafkaConsumer(ctx context.Context, svc Service) {
	reader := utils.NewRSVPReader("notification-service")
	if reader == nil {
		log.Println("⚠️ Kafka not configured, RSVP notification consumer disabled")
		return
	}
	defer reader.Close()

	log.Println("✅ RSVP notification consumer started")
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("🛑 RSVP notification consumer stopped")
				return
			}
			log.Printf("❌ Failed to read RSVP message: %v", err)
			continue
		}

		var ev utils.RSVPEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			log.Printf("❌ Malformed RSVP message at offset %d: %v", msg.Offset, err)
			continue
		}

		if err := svc.HandleRSVPEvent(ctx, ev); err != nil {
			// Fan-out failure is not retried; the RSVP itself is already
			// durable and the team can still see it on the guest list.
			log.Printf("⚠️ RSVP fan-out failed for event %s: %v", ev.EventID, err)
		}
	}
}
