package notification

import (
	"context"
	"fmt"
	"log"

	"firebase.google.com/go/v4/messaging"

	"github.com/sandeepvarma05/event-planner-backend/utils"
)

// FCMChannel implements Channel for Firebase Cloud Messaging. It rides
// on the shared Firebase app from utils; when FCM is not configured the
// channel reports an error and callers count it as a failed delivery.
type FCMChannel struct {
	ctx context.Context
}

func NewFCMChannel() Channel {
	return &FCMChannel{ctx: context.Background()}
}

// Send delivers a push to the given device tokens.
func (f *FCMChannel) Send(recipients []string, subject, body string) error {
	client := utils.GetFCMClient()
	if client == nil {
		return fmt.Errorf("FCM client not initialized")
	}
	if len(recipients) == 0 {
		return fmt.Errorf("no FCM tokens provided")
	}

	if len(recipients) == 1 {
		return f.sendSingle(client, recipients[0], subject, body)
	}
	return f.sendMulticast(client, recipients, subject, body)
}

func (f *FCMChannel) sendSingle(client *messaging.Client, token, title, body string) error {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:        "default",
				ChannelID:    "event_notifications",
				Priority:     messaging.PriorityHigh,
				DefaultSound: true,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
					Badge: intPtr(1),
				},
			},
		},
	}

	response, err := client.Send(f.ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send FCM message: %v", err)
	}

	log.Printf("✅ FCM message sent: %s\n", response)
	return nil
}

func (f *FCMChannel) sendMulticast(client *messaging.Client, tokens []string, title, body string) error {
	// FCM caps multicast at 500 tokens per call.
	batchSize := 500
	successCount := 0
	failCount := 0

	for i := 0; i < len(tokens); i += batchSize {
		end := i + batchSize
		if end > len(tokens) {
			end = len(tokens)
		}
		batch := tokens[i:end]

		message := &messaging.MulticastMessage{
			Tokens: batch,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Android: &messaging.AndroidConfig{
				Priority: "high",
				Notification: &messaging.AndroidNotification{
					Sound:     "default",
					ChannelID: "event_notifications",
					Priority:  messaging.PriorityHigh,
				},
			},
		}

		resp, err := client.SendEachForMulticast(f.ctx, message)
		if err != nil {
			return fmt.Errorf("FCM multicast failed: %v", err)
		}
		successCount += resp.SuccessCount
		failCount += resp.FailureCount
	}

	log.Printf("📊 FCM multicast: %d delivered, %d failed\n", successCount, failCount)
	if successCount == 0 && failCount > 0 {
		return fmt.Errorf("all %d FCM deliveries failed", failCount)
	}
	return nil
}

func intPtr(i int) *int {
	return &i
}
