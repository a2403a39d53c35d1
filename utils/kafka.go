package utils

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

var (
	kafkaWriter  *kafka.Writer
	kafkaBrokers []string
	rsvpTopic    = "rsvp-events"
)

// RSVPEvent is the trigger payload published whenever a guest responds;
// either the event-level RSVP or a per-function invite response. The
// notification consumer fans it out to the event's team.
type RSVPEvent struct {
	EventID      string    `json:"event_id"`
	EventTitle   string    `json:"event_title"`
	GuestID      string    `json:"guest_id"`
	GuestName    string    `json:"guest_name"`
	FunctionID   string    `json:"function_id,omitempty"`
	FunctionName string    `json:"function_name,omitempty"`
	Response     string    `json:"response"`
	PartySize    int       `json:"party_size"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// InitializeKafka sets up the RSVP event writer. Without brokers configured
// the publisher is a no-op and notifications simply don't fan out.
func InitializeKafka() {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		log.Println("⚠️ KAFKA_BROKERS not set, RSVP event publishing disabled")
		return
	}
	if topic := os.Getenv("KAFKA_RSVP_TOPIC"); topic != "" {
		rsvpTopic = topic
	}

	kafkaBrokers = strings.Split(brokers, ",")
	kafkaWriter = &kafka.Writer{
		Addr:         kafka.TCP(kafkaBrokers...),
		Topic:        rsvpTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	log.Println("✅ Kafka writer initialized for topic:", rsvpTopic)
}

// PublishRSVPEvent emits one RSVP trigger. Failures are logged and counted
// against nothing; a lost notification never fails the RSVP itself.
func PublishRSVPEvent(ctx context.Context, ev RSVPEvent) {
	if kafkaWriter == nil {
		return
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("❌ Failed to marshal RSVP event: %v", err)
		return
	}

	err = kafkaWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.EventID),
		Value: payload,
	})
	if err != nil {
		log.Printf("❌ Failed to publish RSVP event for guest %s: %v", ev.GuestID, err)
	}
}

// NewRSVPReader builds a consumer for the RSVP topic. Returns nil when
// Kafka is not configured.
func NewRSVPReader(groupID string) *kafka.Reader {
	if len(kafkaBrokers) == 0 {
		return nil
	}
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  kafkaBrokers,
		GroupID:  groupID,
		Topic:    rsvpTopic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}
