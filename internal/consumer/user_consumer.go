package consumer

import (
	"context"
	"log"
	"time"

	"github.com/Eursukkul/paddle-center/booking-service/internal/events"
	"github.com/Eursukkul/paddle-center/booking-service/internal/models"
	"github.com/Eursukkul/paddle-center/booking-service/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
)

// UserConsumer keeps the local users table in step with the identity service.
type UserConsumer struct {
	users repository.UserRepository
}

func NewUserConsumer(users repository.UserRepository) *UserConsumer {
	return &UserConsumer{users: users}
}

// Start handles messages until ctx is done or the channel closes.
func (uc *UserConsumer) Start(ctx context.Context, msgs <-chan amqp.Delivery) {
	go run(ctx, "UserSync", msgs, uc.handleMessage)
}

func (uc *UserConsumer) handleMessage(ctx context.Context, msg amqp.Delivery) {
	switch msg.RoutingKey {
	case events.RKUserUpserted:
		ev, err := events.Decode[events.UserUpserted](msg.Body)
		if err != nil || ev.ID == "" {
			log.Printf("[UserSync] drop malformed %s: %v", msg.RoutingKey, err)
			msg.Nack(false, false)
			return
		}
		user := &models.User{
			ID:             ev.ID,
			FirstName:      ev.FirstName,
			LastName:       ev.LastName,
			Email:          ev.Email,
			Admin:          ev.Admin,
			Banned:         ev.Banned,
			TelegramChatID: ev.TelegramChatID,
			UpdatedAt:      time.Now(),
			Friends:        friendSet(ev.ID, ev.Friends),
			Reports:        make([]models.Report, 0, len(ev.Reports)),
		}
		for _, rep := range ev.Reports {
			user.Reports = append(user.Reports, models.Report{
				UserID:       ev.ID,
				ReportedByID: rep.ReportedByID,
				Reason:       rep.Reason,
				Timestamp:    rep.Timestamp,
			})
		}
		if err := uc.users.Upsert(ctx, user); err != nil {
			log.Printf("[UserSync] failed to upsert user %s: %v", ev.ID, err)
			msg.Nack(false, !msg.Redelivered)
			return
		}
		log.Printf("[UserSync] synced user %s", ev.ID)

	case events.RKUserDeleted:
		ev, err := events.Decode[events.UserDeleted](msg.Body)
		if err != nil || ev.ID == "" {
			log.Printf("[UserSync] drop malformed %s: %v", msg.RoutingKey, err)
			msg.Nack(false, false)
			return
		}
		if err := uc.users.Delete(ctx, ev.ID); err != nil {
			log.Printf("[UserSync] failed to delete user %s: %v", ev.ID, err)
			msg.Nack(false, !msg.Redelivered)
			return
		}
		log.Printf("[UserSync] removed user %s", ev.ID)

	default:
		log.Printf("[UserSync] skip unknown key=%s", msg.RoutingKey)
	}
	msg.Ack(false)
}

// friendSet drops blanks, self references and repeats while keeping order.
func friendSet(userID string, ids []string) []models.UserFriend {
	seen := make(map[string]struct{}, len(ids))
	out := make([]models.UserFriend, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup || id == "" || id == userID {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, models.UserFriend{UserID: userID, FriendID: id})
	}
	return out
}

func run(ctx context.Context, name string, msgs <-chan amqp.Delivery, handle func(context.Context, amqp.Delivery)) {
	for {
		select {
		case <-ctx.Done():
			log.Printf("[%s] context done, stopping consumer", name)
			return
		case msg, ok := <-msgs:
			if !ok {
				log.Printf("[%s] channel closed, stopping consumer", name)
				return
			}
			handle(ctx, msg)
		}
	}
}
