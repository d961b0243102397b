package notify

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
)

// Notifier доставляет сообщения администратору
type Notifier interface {
	NotifyAdmin(ctx context.Context, text string) error
}

// Nop ничего не отправляет
type Nop struct{}

func (Nop) NotifyAdmin(context.Context, string) error {
	return nil
}

// TelegramNotifier отправляет уведомления в чат администратора
type TelegramNotifier struct {
	bot    *bot.Bot
	chatID int64
}

// NewTelegramNotifier создаёт нотификатор без сетевых запросов при старте
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	b, err := bot.New(token, bot.WithSkipGetMe())
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramNotifier{bot: b, chatID: chatID}, nil
}

func (n *TelegramNotifier) NotifyAdmin(ctx context.Context, text string) error {
	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: n.chatID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("send admin notification: %w", err)
	}

	return nil
}
