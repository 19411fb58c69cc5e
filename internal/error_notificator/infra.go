package error_notificator

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/go-utils/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramInfra sends failures to a single admin chat.
type TelegramInfra struct {
	bot    Sender
	chatID int64
	log    *logger.ZapLogger
}

func NewTelegramInfra(token string, chatID int64, log *logger.ZapLogger) (*TelegramInfra, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return NewTelegramInfraWithSender(bot, chatID, log), nil
}

func NewTelegramInfraWithSender(bot Sender, chatID int64, log *logger.ZapLogger) *TelegramInfra {
	return &TelegramInfra{bot: bot, chatID: chatID, log: log}
}

func (i *TelegramInfra) Notify(ctx context.Context, err error, details string) error {
	_, sendErr := i.bot.Send(tgbotapi.NewMessage(i.chatID, FormatMessage(err, details)))
	if sendErr != nil {
		i.log.Log(logger.LogEntry{Level: "error", Message: "[error_notificator] send fail", Error: sendErr})
		return sendErr
	}
	return nil
}

// LogInfra is used when no admin chat is configured.
type LogInfra struct {
	log *logger.ZapLogger
}

func NewLogInfra(log *logger.ZapLogger) *LogInfra {
	return &LogInfra{log: log}
}

func (i *LogInfra) Notify(ctx context.Context, err error, details string) error {
	i.log.Log(logger.LogEntry{Level: "error", Message: "[error_notificator] " + details, Error: err})
	return nil
}

func FormatMessage(err error, details string) string {
	return fmt.Sprintf("❗ Ошибка конвертации\n\nОшибка: %v\n\nДетали: %s", err, details)
}
