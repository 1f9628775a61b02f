package notifier

import (
	"context"
	"fmt"
	"log"

	"github.com/Eursukkul/paddle-center/booking-service/internal/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender delivers one message to one user.
type Sender interface {
	Send(ctx context.Context, user *models.User, text string) error
}

// LogSender writes messages to the log. Used when no bot token is configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, user *models.User, text string) error {
	log.Printf("[notify] to=%s :: %s", user.ID, text)
	return nil
}

type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramSender struct {
	bot botAPI
}

func NewTelegramSender(token string) (*TelegramSender, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &TelegramSender{bot: bot}, nil
}

// Send skips users without a linked chat.
func (s *TelegramSender) Send(ctx context.Context, user *models.User, text string) error {
	if user.TelegramChatID == nil {
		log.Printf("[notify] skip %s: no telegram chat", user.ID)
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(*user.TelegramChatID, text)
	if _, err := s.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send to %d: %w", *user.TelegramChatID, err)
	}
	return nil
}

// New picks Telegram when a token is set, the log otherwise.
func New(telegramToken string) (Sender, error) {
	if telegramToken == "" {
		log.Println("[notify] telegram token is empty, logging notifications instead")
		return LogSender{}, nil
	}
	return NewTelegramSender(telegramToken)
}
