// Package bot adapts telegram updates to the conversation engine and renders
// its reply directives back into messages and keyboards.
package bot

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"alcofree-bot/internal/engine"
	"alcofree-bot/internal/metrics"
	"alcofree-bot/internal/models"
)

const textTryAgain = "Что-то пошло не так. Попробуй ещё раз."

type Bot struct {
	api    *tgbotapi.BotAPI
	engine *engine.Engine

	// Telegram caps bot output at ~30 msg/s; the limiter keeps reminder
	// bursts from tripping it.
	limiter *rate.Limiter
}

func New(token string, eng *engine.Engine) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:     api,
		engine:  eng,
		limiter: rate.NewLimiter(rate.Limit(25), 5),
	}, nil
}

// Run blocks on the long-polling update loop.
func (b *Bot) Run() {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := b.api.GetUpdatesChan(updateConfig)

	for upd := range updates {
		switch {
		case upd.Message != nil:
			b.handleMessage(upd.Message)
		case upd.CallbackQuery != nil:
			b.handleCallback(upd.CallbackQuery)
		}
	}
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	text := msg.Text
	if msg.IsCommand() {
		text = "/" + msg.Command()
	}

	reply, err := b.engine.HandleText(chatID, text)
	if err != nil {
		log.Printf("handle text for %d: %v", chatID, err)
		metrics.MessagesProcessed.WithLabelValues("error").Inc()
		reply = models.Reply{Text: textTryAgain}
	} else {
		metrics.MessagesProcessed.WithLabelValues("ok").Inc()
	}
	b.send(chatID, reply)
}

func (b *Bot) handleCallback(cq *tgbotapi.CallbackQuery) {
	// always answer callback to remove 'loading...'
	_, _ = b.api.Request(tgbotapi.NewCallback(cq.ID, ""))

	if cq.Message == nil {
		return
	}
	chatID := cq.Message.Chat.ID

	reply, err := b.engine.HandleAction(chatID, cq.Data)
	if err != nil {
		log.Printf("handle callback for %d: %v", chatID, err)
		metrics.MessagesProcessed.WithLabelValues("error").Inc()
		reply = models.Reply{Text: textTryAgain}
	} else {
		metrics.MessagesProcessed.WithLabelValues("ok").Inc()
	}
	b.send(chatID, reply)
}

// SendReminder implements scheduler.Sender.
func (b *Bot) SendReminder(userID int64, text string) error {
	_ = b.limiter.Wait(context.Background())
	msg := tgbotapi.NewMessage(userID, text)
	msg.ReplyMarkup = mainKB
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) send(chatID int64, reply models.Reply) {
	if reply.Text == "" {
		return
	}
	msg := tgbotapi.NewMessage(chatID, reply.Text)
	if kb := keyboardFor(reply.Menu); kb != nil {
		msg.ReplyMarkup = kb
	}
	_ = b.limiter.Wait(context.Background())
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("send to %d: %v", chatID, err)
	}
}
