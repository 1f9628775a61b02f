package consumer

import (
	"context"
	"fmt"
	"log"

	"github.com/Eursukkul/paddle-center/booking-service/internal/events"
	"github.com/Eursukkul/paddle-center/booking-service/internal/notifier"
	"github.com/Eursukkul/paddle-center/booking-service/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
)

const timeLayout = "2006-01-02 15:04 MST"

// NotificationWorker turns reservation events into one message per participant.
type NotificationWorker struct {
	users  repository.UserRepository
	sender notifier.Sender
}

func NewNotificationWorker(users repository.UserRepository, sender notifier.Sender) *NotificationWorker {
	return &NotificationWorker{users: users, sender: sender}
}

func (w *NotificationWorker) Start(ctx context.Context, msgs <-chan amqp.Delivery) {
	go run(ctx, "NotificationWorker", msgs, w.handleMessage)
}

// handleMessage drops malformed messages, requeues a failed user lookup once,
// and only logs per-user send failures.
func (w *NotificationWorker) handleMessage(ctx context.Context, msg amqp.Delivery) {
	ev, err := events.Decode[events.ReservationEvent](msg.Body)
	if err != nil {
		log.Printf("[NotificationWorker] drop malformed %s: %v", msg.RoutingKey, err)
		msg.Nack(false, false)
		return
	}

	text, ok := messageFor(msg.RoutingKey, ev)
	if !ok {
		log.Printf("[NotificationWorker] skip unknown key=%s", msg.RoutingKey)
		msg.Ack(false)
		return
	}

	users, err := w.users.FindByIDs(ctx, ev.UserIDs)
	if err != nil {
		log.Printf("[NotificationWorker] resolve users for %s: %v", ev.ReservationID, err)
		msg.Nack(false, !msg.Redelivered)
		return
	}

	for i := range users {
		if err := w.sender.Send(ctx, &users[i], text); err != nil {
			log.Printf("[NotificationWorker] send to %s failed: %v", users[i].ID, err)
		}
	}
	msg.Ack(false)
}

func messageFor(key string, ev events.ReservationEvent) (string, bool) {
	what := ev.ResourceName
	if what == "" {
		what = ev.ResourceID
	}
	when := ev.StartTime.UTC().Format(timeLayout)

	switch key {
	case events.RKReservationCreated:
		return fmt.Sprintf("Booked: %s at %s.", what, when), true
	case events.RKReservationCancelled:
		return fmt.Sprintf("Cancelled: %s at %s.", what, when), true
	case events.RKReservationRescheduled:
		from := "another time"
		if ev.PreviousStartTime != nil {
			from = ev.PreviousStartTime.UTC().Format(timeLayout)
		}
		return fmt.Sprintf("Moved: %s from %s to %s.", what, from, when), true
	case events.RKReservationUpdated:
		return fmt.Sprintf("Participants changed: %s at %s.", what, when), true
	}
	return "", false
}
